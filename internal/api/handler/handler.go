package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/config"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/schema"
)

// Session keys.
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
	SessionIsAdmin  = "is_admin"
)

type Handler struct {
	db            database.DB
	validator     *schema.Validator
	defaultPublic bool
}

func New(db database.DB, v *schema.Validator, cfg *config.Config) *Handler {
	h := &Handler{
		db:        db,
		validator: v,
	}
	if cfg != nil && cfg.Messages != nil {
		h.defaultPublic = cfg.Messages.DefaultPublic
	}
	return h
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bind decodes the JSON body into payload and validates it.
func (h *Handler) bind(c *gin.Context, payload any) error {
	if err := c.ShouldBindJSON(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return h.validator.Struct(payload)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, c.Param(name))
	}
	id, err := safecast.Convert[uint](raw)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, c.Param(name))
	}
	return id, nil
}
