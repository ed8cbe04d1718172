package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kanbankarma/karma/internal/model"
)

// CreateTaskParams are the client-supplied fields of a new task.
type CreateTaskParams struct {
	Title   string
	Status  model.Status
	Color   string
	BoardID string
}

// UpdateTaskParams are the optional fields of a task update.
// Nil fields are left untouched.
type UpdateTaskParams struct {
	Title  *string
	Status *model.Status
	Color  *string
}

// ListTasks returns every task owned by userID, oldest first.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, color, board_id, owner_id, created_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.Color, &t.BoardID, &t.OwnerID, &createdAt); err != nil {
			return nil, err
		}
		t.Timestamp, _ = time.Parse(time.RFC3339Nano, createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask inserts a task owned by userID and returns the full record
// including the server-assigned id.
func (s *Store) CreateTask(ctx context.Context, userID string, p CreateTaskParams) (model.Task, error) {
	t := model.NewTask(uuid.New().String(), userID, p.Title)
	if p.Status != "" {
		t.Status = p.Status
	}
	t.Color = p.Color
	t.BoardID = p.BoardID

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, status, color, board_id, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Title, t.Status, t.Color, t.BoardID, t.OwnerID, t.Timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// UpdateTask applies the non-nil fields of p to the task matching both id
// and owner. The returned count is zero when the task does not exist or
// belongs to someone else.
func (s *Store) UpdateTask(ctx context.Context, userID, id string, p UpdateTaskParams) (int64, error) {
	set := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.Title != nil {
		set = append(set, "title = "+arg(*p.Title))
	}
	if p.Status != nil {
		set = append(set, "status = "+arg(string(*p.Status)))
	}
	if p.Color != nil {
		set = append(set, "color = "+arg(*p.Color))
	}
	if len(set) == 0 {
		// Nothing to change; still report whether the task is owned so the
		// handler's ownership semantics hold.
		var n int64
		err := s.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM tasks WHERE id = $1 AND owner_id = $2`,
			id, userID,
		).Scan(&n)
		return n, err
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = %s AND owner_id = %s`,
		strings.Join(set, ", "), arg(id), arg(userID))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteTask removes the task matching both id and owner.
func (s *Store) DeleteTask(ctx context.Context, userID, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		id, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
