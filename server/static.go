package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kanbankarma/karma/internal/logger"
)

// mountStatic serves the compiled web client from the configured directory.
// API routes stay JSON-only; everything else falls back to index.html so
// client-side routing works on refresh.
func (s *Server) mountStatic(e *echo.Echo) {
	dir := s.cfg.StaticDir
	if dir == "" {
		logger.Warn("static directory not configured; API only mode")
		return
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("static directory missing", logger.F("path", dir), logger.F("error", err))
		return
	}

	indexPath := filepath.Join(dir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		logger.Warn("index.html not found", logger.F("path", indexPath))
		return
	}

	e.Static("/assets", filepath.Join(dir, "assets"))
	e.File("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	e.GET("/", func(c echo.Context) error {
		return c.File(indexPath)
	})
	echo.NotFoundHandler = func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			return fail(c, http.StatusNotFound, "endpoint not found")
		}
		return c.File(indexPath)
	}
}
