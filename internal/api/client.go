package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kanbankarma/karma/internal/model"
)

// Envelope is the uniform response shape of every API call.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client is the typed HTTP client for the Kanban Karma REST API.
// One method per endpoint; no retries, no caching.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	session     Session
	sessionPath string
}

// NewClient creates a client pointed at serverURL, loading any stored
// session from the default path.
func NewClient(serverURL string) (*Client, error) {
	path, err := DefaultSessionPath()
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:     serverURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		session:     loadSession(path),
		sessionPath: path,
	}
	if c.session.ServerURL != "" {
		c.baseURL = c.session.ServerURL
	}
	return c, nil
}

// LoggedIn reports whether a session token is stored.
func (c *Client) LoggedIn() bool {
	return c.session.LoggedIn()
}

// SessionExpired reports whether the stored token has locally expired.
func (c *Client) SessionExpired() bool {
	return c.session.Expired()
}

// Email returns the email of the stored session, if any.
func (c *Client) Email() string {
	return c.session.Email
}

// do performs one request and decodes the envelope. Failure envelopes come
// back as errors carrying the server's message.
func (c *Client) do(method, path string, body any, authed bool) (Envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return Envelope{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if !c.session.LoggedIn() {
			return Envelope{}, ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Envelope{}, fmt.Errorf("invalid response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return env, fmt.Errorf("%s", msg)
	}
	return env, nil
}

// Register creates a new account and stores the returned session token.
func (c *Client) Register(email, password string) error {
	env, err := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return fmt.Errorf("register failed: %w", err)
	}
	return c.storeToken(env, email)
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(email, password string) error {
	env, err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return c.storeToken(env, email)
}

func (c *Client) storeToken(env Envelope, email string) error {
	var tok string
	if err := json.Unmarshal(env.Data, &tok); err != nil || tok == "" {
		return fmt.Errorf("server returned no token")
	}
	c.session = Session{ServerURL: c.baseURL, Token: tok, Email: email}
	return saveSession(c.sessionPath, c.session)
}

// Logout clears the stored session.
func (c *Client) Logout() error {
	c.session = Session{ServerURL: c.baseURL}
	return saveSession(c.sessionPath, c.session)
}

// Boards returns every board of the logged-in user.
func (c *Client) Boards() ([]model.Board, error) {
	env, err := c.do(http.MethodGet, "/api/boards", nil, true)
	if err != nil {
		return nil, err
	}
	var boards []model.Board
	if err := json.Unmarshal(env.Data, &boards); err != nil {
		return nil, fmt.Errorf("invalid boards payload: %w", err)
	}
	return boards, nil
}

// CreateBoard creates a board and returns the server-assigned record.
func (c *Client) CreateBoard(title string) (model.Board, error) {
	env, err := c.do(http.MethodPost, "/api/boards", map[string]string{"title": title}, true)
	if err != nil {
		return model.Board{}, err
	}
	var board model.Board
	if err := json.Unmarshal(env.Data, &board); err != nil {
		return model.Board{}, fmt.Errorf("invalid board payload: %w", err)
	}
	return board, nil
}

// RenameBoard changes a board's title.
func (c *Client) RenameBoard(id, title string) error {
	_, err := c.do(http.MethodPut, "/api/boards/"+id, map[string]string{"title": title}, true)
	return err
}

// DeleteBoard deletes a board and its tasks.
func (c *Client) DeleteBoard(id string) error {
	_, err := c.do(http.MethodDelete, "/api/boards/"+id, nil, true)
	return err
}

// Tasks returns every task of the logged-in user.
func (c *Client) Tasks() ([]model.Task, error) {
	env, err := c.do(http.MethodGet, "/api/tasks", nil, true)
	if err != nil {
		return nil, err
	}
	var tasks []model.Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		return nil, fmt.Errorf("invalid tasks payload: %w", err)
	}
	return tasks, nil
}

// NewTask are the fields of a task creation request.
type NewTask struct {
	Title   string `json:"title"`
	Status  string `json:"status,omitempty"`
	Color   string `json:"color,omitempty"`
	BoardID string `json:"boardId,omitempty"`
}

// CreateTask creates a task and returns the server-assigned record.
func (c *Client) CreateTask(p NewTask) (model.Task, error) {
	env, err := c.do(http.MethodPost, "/api/tasks", p, true)
	if err != nil {
		return model.Task{}, err
	}
	var task model.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		return model.Task{}, fmt.Errorf("invalid task payload: %w", err)
	}
	return task, nil
}

// TaskPatch are the optional fields of a task update.
type TaskPatch struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
	Color  *string `json:"color,omitempty"`
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(id string, p TaskPatch) error {
	_, err := c.do(http.MethodPut, "/api/tasks/"+id, p, true)
	return err
}

// MoveTask changes only a task's status column.
func (c *Client) MoveTask(id string, status model.Status) error {
	s := string(status)
	return c.UpdateTask(id, TaskPatch{Status: &s})
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(id string) error {
	_, err := c.do(http.MethodDelete, "/api/tasks/"+id, nil, true)
	return err
}
