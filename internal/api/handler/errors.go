package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/schema"
)

var (
	// ErrInvalidBody is returned when the request body is not valid JSON for the payload.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrInvalidID is returned when a path id is not a positive integer.
	ErrInvalidID = errors.New("invalid id")
	// ErrUnknownCategory is returned for category lookups outside the category set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidCredentials is returned for unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned when a deactivated account logs in with a valid password.
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrUnauthorized is returned when no session is present.
	ErrUnauthorized = errors.New("not logged in")
	// ErrForbidden is returned when the session lacks admin rights.
	ErrForbidden = errors.New("forbidden")
)

// respondError writes the JSON error response for err.
// subject names the resource for not-found and conflict responses, e.g. "Message".
func respondError(c *gin.Context, err error, subject string) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid " + lowerFirst(subject) + " data",
			"errors":  verr.Errors,
		})
	case errors.Is(err, ErrInvalidBody):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + lowerFirst(subject) + " data"})
	case errors.Is(err, ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + lowerFirst(subject) + " ID"})
	case errors.Is(err, ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown category"})
	case errors.Is(err, database.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"message": conflictMessage(subject)})
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Account is disabled"})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not logged in"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": subject + " not found"})
	default:
		log.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

// conflictMessage names the kind of account whose username is taken.
func conflictMessage(subject string) string {
	if subject == "Admin" {
		return "Admin username already exists"
	}
	return "Username already exists"
}
