package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/api/handler"
	"github.com/jon4hz/whispernet/internal/api/middleware"
	"github.com/jon4hz/whispernet/internal/config"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/schema"
)

const sessionName = "whispernet_session"

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        database.DB
	srv       *http.Server
}

func New(cfg *config.Config, db database.DB) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	if cfg.Gzip {
		ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: ginEngine,
		db:        db,
		srv: &http.Server{
			Addr:              cfg.Listen,
			Handler:           ginEngine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	s.setupSession()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(sessionName, store))
}

func (s *Server) setupRoutes() {
	maxContentLength := 0
	if s.cfg.Messages != nil {
		maxContentLength = s.cfg.Messages.MaxContentLength
	}
	h := handler.New(s.db, schema.New(maxContentLength), s.cfg)

	s.ginEngine.GET("/healthz", h.Health)

	api := s.ginEngine.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/admin-login", h.AdminLogin)
	authGroup.GET("/me", h.Me)
	authGroup.POST("/logout", h.Logout)

	api.GET("/categories", h.GetCategories)
	api.GET("/recipients", h.GetRecipients)

	api.GET("/messages/public", h.GetPublicMessages)
	api.GET("/messages/category/:category", h.GetMessagesByCategory)
	api.GET("/messages/recipient/:recipient", h.GetMessagesByRecipient)
	api.GET("/messages/:id", h.GetMessage)
	api.POST("/messages", h.CreateMessage)
	api.POST("/replies", h.CreateReply)

	// moderation routes, guarded only if configured
	moderation := api.Group("")
	if s.cfg.RequireAdmin() {
		moderation.Use(middleware.RequireAdmin())
	}

	moderation.GET("/messages/private", h.GetPrivateMessages)
	moderation.PATCH("/messages/:id", h.UpdateMessageVisibility)
	moderation.DELETE("/replies/:id", h.DeleteReply)
	moderation.POST("/warnings", h.SendWarning)

	moderation.POST("/admin/create", h.CreateAdmin)
	moderation.GET("/admin/list", h.ListAdmins)
	moderation.PATCH("/admin/:id/status", h.UpdateAdminStatus)

	moderation.POST("/admins", h.CreateAdmin)
	moderation.GET("/admins", h.ListAdmins)
	moderation.PATCH("/admins/:id", h.UpdateAdminStatus)
}

// Handler returns the http handler of the server.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves http until Shutdown is called.
func (s *Server) Run() error {
	log.Info("starting server", "listen", s.cfg.Listen)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.srv.Shutdown(ctx)
}
