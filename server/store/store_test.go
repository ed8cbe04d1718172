package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbankarma/karma/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite:" + filepath.Join(t.TempDir(), "karma.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestUser(t *testing.T, s *Store, email string) model.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), email, "bcrypt-hash")
	require.NoError(t, err)
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice@example.com", "hash-1")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice@example.com", "hash-2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := newTestUser(t, s, "alice@example.com")

	got, err := s.UserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "bcrypt-hash", got.PasswordHash)

	_, err = s.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardOwnershipScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	board, err := s.CreateBoard(ctx, alice.ID, "Sprint 1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, board.OwnerID)

	// Bob sees no boards and cannot touch alice's.
	boards, err := s.ListBoards(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, boards)

	n, err := s.UpdateBoard(ctx, bob.ID, board.ID, "Hijacked")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.DeleteBoard(ctx, bob.ID, board.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	boards, err = s.ListBoards(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "Sprint 1", boards[0].Title)
}

func TestUpdateBoardRename(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser(t, s, "alice@example.com")
	board, err := s.CreateBoard(ctx, alice.ID, "Sprint 1")
	require.NoError(t, err)

	n, err := s.UpdateBoard(ctx, alice.ID, board.ID, "Sprint 2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	boards, err := s.ListBoards(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 2", boards[0].Title)
}

func TestDeleteBoardCascadesOwnTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser(t, s, "alice@example.com")
	board, err := s.CreateBoard(ctx, alice.ID, "Sprint 1")
	require.NoError(t, err)

	_, err = s.CreateTask(ctx, alice.ID, CreateTaskParams{Title: "Write spec", BoardID: board.ID})
	require.NoError(t, err)
	loose, err := s.CreateTask(ctx, alice.ID, CreateTaskParams{Title: "Unattached"})
	require.NoError(t, err)

	n, err := s.DeleteBoard(ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	tasks, err := s.ListTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, loose.ID, tasks[0].ID)
}

func TestCreateTaskDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser(t, s, "alice@example.com")

	task, err := s.CreateTask(ctx, alice.ID, CreateTaskParams{Title: "Write spec"})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, alice.ID, task.OwnerID)
	assert.False(t, task.Timestamp.IsZero())
}

func TestUpdateTaskPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser(t, s, "alice@example.com")
	task, err := s.CreateTask(ctx, alice.ID, CreateTaskParams{Title: "Write spec", Color: "#ffffff"})
	require.NoError(t, err)

	done := model.StatusDone
	n, err := s.UpdateTask(ctx, alice.ID, task.ID, UpdateTaskParams{Status: &done})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	tasks, err := s.ListTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	// Only status changed.
	assert.Equal(t, model.StatusDone, tasks[0].Status)
	assert.Equal(t, "Write spec", tasks[0].Title)
	assert.Equal(t, "#ffffff", tasks[0].Color)
}

func TestUpdateTaskIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser(t, s, "alice@example.com")
	task, err := s.CreateTask(ctx, alice.ID, CreateTaskParams{Title: "Write spec"})
	require.NoError(t, err)

	done := model.StatusDone
	for i := 0; i < 2; i++ {
		n, err := s.UpdateTask(ctx, alice.ID, task.ID, UpdateTaskParams{Status: &done})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n, "attempt %d", i+1)
	}

	tasks, err := s.ListTasks(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, tasks[0].Status)
}

func TestTaskCrossUserMutationsRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser(t, s, "alice@example.com")
	bob := newTestUser(t, s, "bob@example.com")

	task, err := s.CreateTask(ctx, alice.ID, CreateTaskParams{Title: "Write spec"})
	require.NoError(t, err)

	title := "Stolen"
	n, err := s.UpdateTask(ctx, bob.ID, task.ID, UpdateTaskParams{Title: &title})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.DeleteTask(ctx, bob.ID, task.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	tasks, err := s.ListTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write spec", tasks[0].Title)
}

func TestListTasksStableOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser(t, s, "alice@example.com")
	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		task, err := s.CreateTask(ctx, alice.ID, CreateTaskParams{Title: title})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	for i := 0; i < 3; i++ {
		tasks, err := s.ListTasks(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		for j, task := range tasks {
			assert.Equal(t, ids[j], task.ID)
		}
	}
}
