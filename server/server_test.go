package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/kanbankarma/karma/internal/config"
	"github.com/kanbankarma/karma/internal/model"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.ServerConfig{
		DatabaseURL: "sqlite:" + filepath.Join(t.TempDir(), "karma.db"),
		JWTSecret:   testSecret,
		Env:         "development",
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

func doJSON(t *testing.T, s *Server, method, path, token, body string) (int, testEnvelope) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echoHeaderContentType, "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

const echoHeaderContentType = "Content-Type"

func registerUser(t *testing.T, s *Server, email string) string {
	t.Helper()
	code, env := doJSON(t, s, http.MethodPost, "/api/auth/register", "",
		`{"email":"`+email+`","password":"pw123456"}`)
	if code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", code, env.Message)
	}
	var tok string
	if err := json.Unmarshal(env.Data, &tok); err != nil || tok == "" {
		t.Fatalf("register returned no token: %s", env.Data)
	}
	return tok
}

func TestRegisterThenLogin(t *testing.T) {
	s := newTestServer(t)

	registerUser(t, s, "alice@example.com")

	code, env := doJSON(t, s, http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"pw123456"}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200 got %d", code)
	}
	if !env.Success || len(env.Data) == 0 {
		t.Fatalf("expected token in login response, got %+v", env)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	code, _ := doJSON(t, s, http.MethodPost, "/api/auth/register", "", `{"email":"alice@example.com"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("missing password: expected 400 got %d", code)
	}

	code, _ = doJSON(t, s, http.MethodPost, "/api/auth/register", "",
		`{"email":"alice@example.com","password":"short"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("short password: expected 400 got %d", code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	registerUser(t, s, "alice@example.com")

	code, env := doJSON(t, s, http.MethodPost, "/api/auth/register", "",
		`{"email":"alice@example.com","password":"pw123456"}`)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", code)
	}
	if env.Success {
		t.Fatalf("expected success=false")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)
	registerUser(t, s, "alice@example.com")

	codeUnknown, envUnknown := doJSON(t, s, http.MethodPost, "/api/auth/login", "",
		`{"email":"nobody@example.com","password":"pw123456"}`)
	codeWrongPw, envWrongPw := doJSON(t, s, http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"wrong-password"}`)

	if codeUnknown != http.StatusUnauthorized || codeWrongPw != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", codeUnknown, codeWrongPw)
	}
	if envUnknown.Message != envWrongPw.Message {
		t.Fatalf("login failure messages differ: %q vs %q", envUnknown.Message, envWrongPw.Message)
	}
}

func TestAuthGateOutcomes(t *testing.T) {
	s := newTestServer(t)

	// No token.
	code, _ := doJSON(t, s, http.MethodGet, "/api/tasks", "", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401 got %d", code)
	}

	// Malformed header (no Bearer prefix).
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header: expected 401 got %d", rec.Code)
	}

	// Malformed token.
	code, _ = doJSON(t, s, http.MethodGet, "/api/tasks", "not-a-jwt", "")
	if code != http.StatusUnauthorized {
		t.Fatalf("malformed token: expected 401 got %d", code)
	}

	// Bad signature.
	badClaims := jwt.MapClaims{
		"userId": "user-123",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	badToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, badClaims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	code, _ = doJSON(t, s, http.MethodGet, "/api/tasks", badToken, "")
	if code != http.StatusForbidden {
		t.Fatalf("bad signature: expected 403 got %d", code)
	}

	// Expired token.
	expiredClaims := jwt.MapClaims{
		"userId": "user-123",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}
	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	code, _ = doJSON(t, s, http.MethodGet, "/api/tasks", expiredToken, "")
	if code != http.StatusForbidden {
		t.Fatalf("expired token: expected 403 got %d", code)
	}

	// Valid token.
	tok := registerUser(t, s, "alice@example.com")
	code, env := doJSON(t, s, http.MethodGet, "/api/tasks", tok, "")
	if code != http.StatusOK || !env.Success {
		t.Fatalf("valid token: expected 200 success, got %d %+v", code, env)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestServer(t)
	tok := registerUser(t, s, "alice@example.com")

	// Create a board.
	code, env := doJSON(t, s, http.MethodPost, "/api/boards", tok, `{"title":"Sprint 1"}`)
	if code != http.StatusCreated {
		t.Fatalf("create board: expected 201 got %d", code)
	}
	var board model.Board
	if err := json.Unmarshal(env.Data, &board); err != nil {
		t.Fatalf("invalid board: %v", err)
	}
	if board.ID == "" || board.Title != "Sprint 1" {
		t.Fatalf("unexpected board: %+v", board)
	}

	// Create a task on it; status defaults to todo.
	code, env = doJSON(t, s, http.MethodPost, "/api/tasks", tok,
		`{"title":"Write spec","boardId":"`+board.ID+`"}`)
	if code != http.StatusCreated {
		t.Fatalf("create task: expected 201 got %d", code)
	}
	var task model.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("invalid task: %v", err)
	}
	if task.Status != model.StatusTodo {
		t.Fatalf("expected default status todo, got %q", task.Status)
	}
	if task.BoardID != board.ID {
		t.Fatalf("expected boardId %q, got %q", board.ID, task.BoardID)
	}

	// Move it to done.
	code, _ = doJSON(t, s, http.MethodPut, "/api/tasks/"+task.ID, tok, `{"status":"done"}`)
	if code != http.StatusAccepted {
		t.Fatalf("update task: expected 202 got %d", code)
	}

	// Listing reflects the move.
	code, env = doJSON(t, s, http.MethodGet, "/api/tasks", tok, "")
	if code != http.StatusOK {
		t.Fatalf("list tasks: expected 200 got %d", code)
	}
	var tasks []model.Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		t.Fatalf("invalid tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != model.StatusDone {
		t.Fatalf("unexpected tasks after update: %+v", tasks)
	}

	// Delete it.
	code, _ = doJSON(t, s, http.MethodDelete, "/api/tasks/"+task.ID, tok, "")
	if code != http.StatusOK {
		t.Fatalf("delete task: expected 200 got %d", code)
	}
}

func TestCreateTaskRejectsUnknownStatus(t *testing.T) {
	s := newTestServer(t)
	tok := registerUser(t, s, "alice@example.com")

	code, _ := doJSON(t, s, http.MethodPost, "/api/tasks", tok,
		`{"title":"Write spec","status":"blocked"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", code)
	}

	code, _ = doJSON(t, s, http.MethodPost, "/api/tasks", tok, `{"status":"todo"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("missing title: expected 400 got %d", code)
	}
}

func TestCrossUserMutationIsForbidden(t *testing.T) {
	s := newTestServer(t)
	aliceTok := registerUser(t, s, "alice@example.com")
	bobTok := registerUser(t, s, "bob@example.com")

	code, env := doJSON(t, s, http.MethodPost, "/api/boards", aliceTok, `{"title":"Sprint 1"}`)
	if code != http.StatusCreated {
		t.Fatalf("create board: expected 201 got %d", code)
	}
	var board model.Board
	if err := json.Unmarshal(env.Data, &board); err != nil {
		t.Fatalf("invalid board: %v", err)
	}

	// Bob cannot delete alice's board; the response never says "not found".
	code, env = doJSON(t, s, http.MethodDelete, "/api/boards/"+board.ID, bobTok, "")
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", code)
	}
	if env.Success {
		t.Fatalf("expected success=false")
	}

	// Same response shape for a board that does not exist at all.
	code, _ = doJSON(t, s, http.MethodDelete, "/api/boards/does-not-exist", bobTok, "")
	if code != http.StatusForbidden {
		t.Fatalf("nonexistent id: expected 403 got %d", code)
	}

	// The board is still there for alice.
	code, env = doJSON(t, s, http.MethodGet, "/api/boards", aliceTok, "")
	if code != http.StatusOK {
		t.Fatalf("list boards: expected 200 got %d", code)
	}
	var boards []model.Board
	if err := json.Unmarshal(env.Data, &boards); err != nil {
		t.Fatalf("invalid boards: %v", err)
	}
	if len(boards) != 1 || boards[0].ID != board.ID {
		t.Fatalf("alice's board missing after bob's attempt: %+v", boards)
	}
}

func TestUpdateTaskIdempotent(t *testing.T) {
	s := newTestServer(t)
	tok := registerUser(t, s, "alice@example.com")

	code, env := doJSON(t, s, http.MethodPost, "/api/tasks", tok, `{"title":"Write spec"}`)
	if code != http.StatusCreated {
		t.Fatalf("create task: expected 201 got %d", code)
	}
	var task model.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("invalid task: %v", err)
	}

	for i := 0; i < 2; i++ {
		code, env = doJSON(t, s, http.MethodPut, "/api/tasks/"+task.ID, tok, `{"status":"in-progress"}`)
		if code != http.StatusAccepted || !env.Success {
			t.Fatalf("attempt %d: expected 202 success, got %d %+v", i+1, code, env)
		}
	}

	_, env = doJSON(t, s, http.MethodGet, "/api/tasks", tok, "")
	var tasks []model.Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		t.Fatalf("invalid tasks: %v", err)
	}
	if tasks[0].Status != model.StatusInProgress {
		t.Fatalf("expected in-progress, got %q", tasks[0].Status)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
