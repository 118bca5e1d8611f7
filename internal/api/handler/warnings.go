package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/schema"
)

// SendWarning records a moderation warning about a reply.
// The warning is only logged, nothing is stored or delivered.
func (h *Handler) SendWarning(c *gin.Context) {
	var payload schema.Warning
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "Warning")
		return
	}

	fields := []any{"reply_id", payload.ReplyID, "reason", payload.Reason}
	if identity, ok := SessionIdentity(c); ok && identity.IsAdmin {
		fields = append(fields, "admin", identity.Username)
	}
	log.WithPrefix("moderation").Warn("warning sent", fields...)

	c.JSON(http.StatusOK, gin.H{"message": "Warning sent successfully"})
}
