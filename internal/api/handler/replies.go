package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/api/models"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/schema"
)

// CreateReply adds a reply to an existing message.
func (h *Handler) CreateReply(c *gin.Context) {
	var payload schema.CreateReply
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "Reply")
		return
	}

	reply := &database.Reply{
		MessageID: payload.MessageID,
		Content:   payload.Content,
		Nickname:  payload.Nickname,
	}
	if err := h.db.CreateReply(c.Request.Context(), reply); err != nil {
		respondError(c, err, "Message")
		return
	}

	c.JSON(http.StatusCreated, models.ToReply(reply))
}

// DeleteReply removes a reply from its thread.
func (h *Handler) DeleteReply(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err, "Reply")
		return
	}

	if err := h.db.DeleteReply(c.Request.Context(), id); err != nil {
		respondError(c, err, "Reply")
		return
	}

	log.Info("reply deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}
