package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/kanbankarma/karma/internal/logger"
	"github.com/kanbankarma/karma/server/store"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// invalidCredentials is deliberately the same for unknown email and wrong
// password so responses can't be used to probe which emails exist.
const invalidCredentials = "invalid credentials"

// handleRegister handles user registration
func (s *Server) handleRegister(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password required")
	}
	if len(req.Password) < 8 {
		return fail(c, http.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("bcrypt error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	user, err := s.store.CreateUser(c.Request().Context(), req.Email, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return fail(c, http.StatusConflict, "user already exists")
		}
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	signed, err := s.signer.Sign(user.ID, user.Email)
	if err != nil {
		logger.Error("token error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	logger.Info("user registered", logger.F("email", user.Email))

	return respond(c, http.StatusCreated, signed)
}

// handleLogin handles user login
func (s *Server) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	user, err := s.store.UserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, invalidCredentials)
		}
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return fail(c, http.StatusUnauthorized, invalidCredentials)
	}

	signed, err := s.signer.Sign(user.ID, user.Email)
	if err != nil {
		logger.Error("token error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	logger.Info("user logged in", logger.F("email", user.Email))

	return respond(c, http.StatusOK, signed)
}
