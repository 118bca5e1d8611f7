package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/api/models"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/password"
	"github.com/jon4hz/whispernet/internal/schema"
)

// Register creates a user account.
func (h *Handler) Register(c *gin.Context) {
	var payload schema.Registration
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "User")
		return
	}

	hash, err := password.Hash(payload.Password)
	if err != nil {
		respondError(c, fmt.Errorf("failed to hash password: %w", err), "User")
		return
	}

	user, err := h.db.CreateUser(c.Request.Context(), payload.Username, hash)
	if err != nil {
		respondError(c, err, "User")
		return
	}

	log.Info("user registered", "id", user.ID, "username", user.Username)
	c.JSON(http.StatusCreated, models.ToUser(user))
}

// Login authenticates a user and starts a session.
func (h *Handler) Login(c *gin.Context) {
	var payload schema.Login
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "Login")
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), payload.Username)
	if err != nil {
		respondError(c, credentialsError(err), "User")
		return
	}
	if !password.Verify(payload.Password, user.Password) {
		respondError(c, ErrInvalidCredentials, "User")
		return
	}
	if !user.IsActive {
		respondError(c, ErrAccountDisabled, "User")
		return
	}

	if err := startSession(c, user.ID, user.Username, false); err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, models.ToUser(user))
}

// AdminLogin authenticates an admin and starts an admin session.
// Admins without a password cannot log in.
func (h *Handler) AdminLogin(c *gin.Context) {
	var payload schema.Login
	if err := h.bind(c, &payload); err != nil {
		respondError(c, err, "Login")
		return
	}

	admin, err := h.db.GetAdminByUsername(c.Request.Context(), payload.Username)
	if err != nil {
		respondError(c, credentialsError(err), "Admin")
		return
	}
	if admin.Password == nil || !password.Verify(payload.Password, *admin.Password) {
		respondError(c, ErrInvalidCredentials, "Admin")
		return
	}
	if !admin.IsActive {
		respondError(c, ErrAccountDisabled, "Admin")
		return
	}

	if err := startSession(c, admin.ID, admin.Username, true); err != nil {
		respondError(c, err, "Admin")
		return
	}
	log.Info("admin logged in", "id", admin.ID, "username", admin.Username)
	c.JSON(http.StatusOK, models.ToAdmin(admin))
}

// Me returns the identity stored in the session.
func (h *Handler) Me(c *gin.Context) {
	identity, ok := SessionIdentity(c)
	if !ok {
		respondError(c, ErrUnauthorized, "Session")
		return
	}
	c.JSON(http.StatusOK, identity)
}

// Logout clears the session.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, fmt.Errorf("failed to clear session: %w", err), "Session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// SessionIdentity reads the logged in identity from the session.
func SessionIdentity(c *gin.Context) (*models.SessionIdentity, bool) {
	session := sessions.Default(c)
	id, ok := session.Get(SessionUserID).(uint)
	if !ok || id == 0 {
		return nil, false
	}
	username, _ := session.Get(SessionUsername).(string)
	isAdmin, _ := session.Get(SessionIsAdmin).(bool)
	return &models.SessionIdentity{
		ID:       id,
		Username: username,
		IsAdmin:  isAdmin,
	}, true
}

func startSession(c *gin.Context, id uint, username string, isAdmin bool) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(SessionUserID, id)
	session.Set(SessionUsername, username)
	session.Set(SessionIsAdmin, isAdmin)
	if err := session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// credentialsError hides whether an account exists.
func credentialsError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrInvalidCredentials
	}
	return err
}
