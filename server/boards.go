package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kanbankarma/karma/internal/logger"
)

type boardRequest struct {
	Title string `json:"title"`
}

// handleListBoards returns every board owned by the authenticated user
func (s *Server) handleListBoards(c echo.Context) error {
	boards, err := s.store.ListBoards(c.Request().Context(), userID(c))
	if err != nil {
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "error fetching boards")
	}
	return respond(c, http.StatusOK, boards)
}

// handleCreateBoard creates a board owned by the authenticated user
func (s *Server) handleCreateBoard(c echo.Context) error {
	var req boardRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}
	if req.Title == "" {
		return fail(c, http.StatusBadRequest, "title required")
	}

	board, err := s.store.CreateBoard(c.Request().Context(), userID(c), req.Title)
	if err != nil {
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "error creating board")
	}
	return respond(c, http.StatusCreated, board)
}

// handleUpdateBoard renames an owned board.
// A missing board and someone else's board are both 403, never 404.
func (s *Server) handleUpdateBoard(c echo.Context) error {
	var req boardRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}
	if req.Title == "" {
		return fail(c, http.StatusBadRequest, "title required")
	}

	count, err := s.store.UpdateBoard(c.Request().Context(), userID(c), c.Param("id"), req.Title)
	if err != nil {
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "error updating board")
	}
	if count == 0 {
		return fail(c, http.StatusForbidden, "not authorized to update this board")
	}
	return respondMessage(c, http.StatusAccepted, "board updated successfully")
}

// handleDeleteBoard deletes an owned board and its tasks
func (s *Server) handleDeleteBoard(c echo.Context) error {
	count, err := s.store.DeleteBoard(c.Request().Context(), userID(c), c.Param("id"))
	if err != nil {
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "error deleting board")
	}
	if count == 0 {
		return fail(c, http.StatusForbidden, "not authorized to delete this board")
	}
	return respondMessage(c, http.StatusOK, "board deleted successfully")
}
