package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kanbankarma/karma/internal/logger"
	"github.com/kanbankarma/karma/internal/model"
	"github.com/kanbankarma/karma/server/store"
)

type createTaskRequest struct {
	Title   string `json:"title"`
	Status  string `json:"status,omitempty"`
	Color   string `json:"color,omitempty"`
	BoardID string `json:"boardId,omitempty"`
}

type updateTaskRequest struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
	Color  *string `json:"color,omitempty"`
}

// handleListTasks returns every task owned by the authenticated user
func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.store.ListTasks(c.Request().Context(), userID(c))
	if err != nil {
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "error fetching tasks")
	}
	return respond(c, http.StatusOK, tasks)
}

// handleCreateTask creates a task owned by the authenticated user
func (s *Server) handleCreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}
	if req.Title == "" {
		return fail(c, http.StatusBadRequest, "title required")
	}

	status := model.Status(req.Status)
	if req.Status != "" && !status.Valid() {
		return fail(c, http.StatusBadRequest, "invalid status")
	}

	task, err := s.store.CreateTask(c.Request().Context(), userID(c), store.CreateTaskParams{
		Title:   req.Title,
		Status:  status,
		Color:   req.Color,
		BoardID: req.BoardID,
	})
	if err != nil {
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "error creating task")
	}
	return respond(c, http.StatusCreated, task)
}

// handleUpdateTask applies a partial update to an owned task.
// A missing task and someone else's task are both 403, never 404.
func (s *Server) handleUpdateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	params := store.UpdateTaskParams{Title: req.Title, Color: req.Color}
	if req.Status != nil {
		status := model.Status(*req.Status)
		if !status.Valid() {
			return fail(c, http.StatusBadRequest, "invalid status")
		}
		params.Status = &status
	}

	count, err := s.store.UpdateTask(c.Request().Context(), userID(c), c.Param("id"), params)
	if err != nil {
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "error updating task")
	}
	if count == 0 {
		return fail(c, http.StatusForbidden, "not authorized to update this task")
	}
	return respondMessage(c, http.StatusAccepted, "task updated successfully")
}

// handleDeleteTask deletes an owned task
func (s *Server) handleDeleteTask(c echo.Context) error {
	count, err := s.store.DeleteTask(c.Request().Context(), userID(c), c.Param("id"))
	if err != nil {
		logger.Error("db error", logger.F("error", err))
		return fail(c, http.StatusInternalServerError, "error deleting task")
	}
	if count == 0 {
		return fail(c, http.StatusForbidden, "not authorized to delete this task")
	}
	return respondMessage(c, http.StatusOK, "task deleted successfully")
}
