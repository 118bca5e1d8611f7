package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/api/models"
	"github.com/jon4hz/whispernet/internal/category"
)

// GetCategories lists the selectable message categories.
func (h *Handler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.ToCategories(category.All()))
}
