package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kanbankarma/karma/internal/logger"
	"github.com/kanbankarma/karma/internal/token"
)

// authMiddleware is the auth gate. Each request ends in exactly one of four
// ways: no token -> 401, malformed token -> 401, expired or bad signature
// -> 403, valid -> identity attached and the handler runs.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		if auth == "" {
			return fail(c, http.StatusUnauthorized, "no token provided")
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		if raw == auth || raw == "" {
			return fail(c, http.StatusUnauthorized, "invalid authorization format")
		}

		claims, err := s.signer.Parse(raw)
		if err != nil {
			if errors.Is(err, token.ErrMalformed) {
				return fail(c, http.StatusUnauthorized, "invalid token")
			}
			logger.Warn("token rejected", logger.F("error", err))
			return fail(c, http.StatusForbidden, "invalid or expired token")
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		return next(c)
	}
}

// userID returns the identity the auth gate attached.
func userID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
