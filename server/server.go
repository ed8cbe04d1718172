package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kanbankarma/karma/internal/config"
	"github.com/kanbankarma/karma/internal/logger"
	"github.com/kanbankarma/karma/internal/token"
	"github.com/kanbankarma/karma/server/store"
)

// Server is the Kanban Karma REST service
type Server struct {
	cfg    config.ServerConfig
	store  *store.Store
	signer *token.Signer
	echo   *echo.Echo
}

// New creates a new server
func New(cfg config.ServerConfig) (*Server, error) {
	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		signer: token.NewSigner([]byte(cfg.JWTSecret), token.DefaultTTL),
	}

	s.setupEcho()

	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if s.cfg.FrontendOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{s.cfg.FrontendOrigin},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	} else {
		e.Use(middleware.CORS())
	}

	// Health check
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")

	// Auth endpoints (public)
	auth := api.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/boards", s.handleListBoards)
	protected.POST("/boards", s.handleCreateBoard)
	protected.PUT("/boards/:id", s.handleUpdateBoard)
	protected.DELETE("/boards/:id", s.handleDeleteBoard)
	protected.GET("/tasks", s.handleListTasks)
	protected.POST("/tasks", s.handleCreateTask)
	protected.PUT("/tasks/:id", s.handleUpdateTask)
	protected.DELETE("/tasks/:id", s.handleDeleteTask)

	// In production the server also hosts the built web client.
	if s.cfg.Production() {
		s.mountStatic(e)
	}

	s.echo = e
}

// Close closes the backing store
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
