package handler

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/api/models"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/password"
	"github.com/jon4hz/whispernet/internal/schema"
)

// CreateAdmin creates an admin account.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var payload schema.CreateAdmin
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "Admin")
		return
	}

	admin := &database.Admin{
		Username:    payload.Username,
		DisplayName: payload.DisplayName,
		Role:        payload.Role,
	}
	if payload.Password != nil {
		hash, err := password.Hash(*payload.Password)
		if err != nil {
			respondError(c, fmt.Errorf("failed to hash password: %w", err), "Admin")
			return
		}
		admin.Password = &hash
	}

	if err := h.db.CreateAdmin(c.Request.Context(), admin); err != nil {
		respondError(c, err, "Admin")
		return
	}

	log.Info("admin created", "id", admin.ID, "username", admin.Username, "role", admin.Role)
	c.JSON(http.StatusCreated, models.ToAdmin(admin))
}

// ListAdmins returns all admin accounts.
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.db.GetAllAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err, "Admin")
		return
	}
	c.JSON(http.StatusOK, models.ToAdmins(admins))
}

// UpdateAdminStatus enables or disables an admin account.
func (h *Handler) UpdateAdminStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err, "Admin")
		return
	}

	var payload schema.StatusUpdate
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "Admin")
		return
	}

	admin, err := h.db.UpdateAdminStatus(c.Request.Context(), id, *payload.IsActive)
	if err != nil {
		respondError(c, err, "Admin")
		return
	}

	log.Info("admin status changed", "id", admin.ID, "active", admin.IsActive)
	c.JSON(http.StatusOK, models.ToAdmin(admin))
}
