package model

import "time"

// Status is the kanban column a task lives in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists the three columns in board order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three persisted statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a single card on a board
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    Status    `json:"status"`
	Color     string    `json:"color,omitempty"`
	BoardID   string    `json:"boardId,omitempty"`
	OwnerID   string    `json:"ownerId"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTask creates a new task with defaults
func NewTask(id, ownerID, title string) Task {
	return Task{
		ID:        id,
		Title:     title,
		Status:    StatusTodo,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
	}
}
