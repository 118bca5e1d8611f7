package handler

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/api/models"
	"github.com/jon4hz/whispernet/internal/category"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/schema"
)

// GetPublicMessages lists all public messages, newest first.
func (h *Handler) GetPublicMessages(c *gin.Context) {
	h.listMessages(c, h.db.GetPublicMessages)
}

// GetPrivateMessages lists all private messages, newest first.
func (h *Handler) GetPrivateMessages(c *gin.Context) {
	h.listMessages(c, h.db.GetPrivateMessages)
}

// GetMessagesByCategory lists the public messages of one category.
func (h *Handler) GetMessagesByCategory(c *gin.Context) {
	name := c.Param("category")
	if !category.IsValid(name) {
		respondError(c, ErrUnknownCategory, "Category")
		return
	}
	h.listMessages(c, func(ctx context.Context) ([]database.Message, error) {
		return h.db.GetMessagesByCategory(ctx, name)
	})
}

// GetMessagesByRecipient lists the public messages addressed to a recipient.
func (h *Handler) GetMessagesByRecipient(c *gin.Context) {
	recipient := c.Param("recipient")
	h.listMessages(c, func(ctx context.Context) ([]database.Message, error) {
		return h.db.GetMessagesByRecipient(ctx, recipient)
	})
}

func (h *Handler) listMessages(c *gin.Context, list func(context.Context) ([]database.Message, error)) {
	messages, err := list(c.Request.Context())
	if err != nil {
		respondError(c, err, "Message")
		return
	}
	c.JSON(http.StatusOK, models.ToMessages(messages))
}

// GetMessage returns a single message with its replies.
func (h *Handler) GetMessage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err, "Message")
		return
	}

	message, err := h.db.GetMessageByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Message")
		return
	}
	c.JSON(http.StatusOK, models.ToMessageThread(message))
}

// GetRecipients lists the distinct recipients of public messages.
func (h *Handler) GetRecipients(c *gin.Context) {
	recipients, err := h.db.GetRecipients(c.Request.Context())
	if err != nil {
		respondError(c, err, "Recipient")
		return
	}
	if recipients == nil {
		recipients = []string{}
	}
	c.JSON(http.StatusOK, recipients)
}

// CreateMessage posts a new message.
func (h *Handler) CreateMessage(c *gin.Context) {
	var payload schema.CreateMessage
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "Message")
		return
	}

	message := &database.Message{
		Content:     payload.Content,
		Category:    payload.Category,
		Recipient:   payload.Recipient,
		SpotifyLink: payload.SpotifyLink,
		IsPublic:    h.defaultPublic,
	}
	if payload.IsPublic != nil {
		message.IsPublic = *payload.IsPublic
	}

	if err := h.db.CreateMessage(c.Request.Context(), message); err != nil {
		respondError(c, err, "Message")
		return
	}

	log.Debug("message created", "id", message.ID, "category", message.Category, "public", message.IsPublic)
	c.JSON(http.StatusCreated, models.ToMessage(message))
}

// UpdateMessageVisibility publishes or hides a message.
func (h *Handler) UpdateMessageVisibility(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err, "Message")
		return
	}

	var payload schema.VisibilityUpdate
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "Message")
		return
	}

	message, err := h.db.UpdateMessageVisibility(c.Request.Context(), id, *payload.IsPublic)
	if err != nil {
		respondError(c, err, "Message")
		return
	}

	log.Info("message visibility changed", "id", message.ID, "public", message.IsPublic)
	c.JSON(http.StatusOK, models.ToMessage(message))
}
