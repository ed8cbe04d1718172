package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kanbankarma/karma/internal/model"
)

// ListBoards returns every board owned by userID, oldest first.
func (s *Store) ListBoards(ctx context.Context, userID string) ([]model.Board, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, owner_id, created_at
		FROM boards
		WHERE owner_id = $1
		ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []model.Board{}
	for rows.Next() {
		var b model.Board
		var createdAt string
		if err := rows.Scan(&b.ID, &b.Title, &b.OwnerID, &createdAt); err != nil {
			return nil, err
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// CreateBoard inserts a board owned by userID and returns the full record.
func (s *Store) CreateBoard(ctx context.Context, userID, title string) (model.Board, error) {
	b := model.Board{
		ID:        uuid.New().String(),
		Title:     title,
		OwnerID:   userID,
		CreatedAt: time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO boards (id, title, owner_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		b.ID, b.Title, b.OwnerID, b.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return model.Board{}, err
	}
	return b, nil
}

// UpdateBoard renames the board matching both id and owner. The returned
// count is zero when the board does not exist or belongs to someone else.
func (s *Store) UpdateBoard(ctx context.Context, userID, id, title string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE boards SET title = $1 WHERE id = $2 AND owner_id = $3`,
		title, id, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteBoard removes the board matching both id and owner, along with the
// owner's tasks on that board, in one transaction. The returned count is
// the number of boards deleted (zero or one).
func (s *Store) DeleteBoard(ctx context.Context, userID, id string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM tasks WHERE board_id = $1 AND owner_id = $2`,
		id, userID,
	); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM boards WHERE id = $1 AND owner_id = $2`,
		id, userID,
	)
	if err != nil {
		return 0, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if count == 0 {
		// Not the owner: keep the cascade from touching anything.
		return 0, tx.Rollback()
	}

	return count, tx.Commit()
}
