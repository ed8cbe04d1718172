package api

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/kanbankarma/karma/internal/token"
)

// Session is the persisted login state. The token is the sole client-side
// authentication signal; the server is the authority on whether it still
// works.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	Email     string `json:"email,omitempty"`
}

// DefaultSessionPath returns ~/.karma/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".karma", "session.json"), nil
}

func loadSession(path string) Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}
	}
	var s Session
	json.Unmarshal(data, &s)
	return s
}

func saveSession(path string, s Session) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// LoggedIn reports whether a token is stored.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Expired reports whether the stored token's expiry has passed. This is a
// local pre-check only; the server still rejects a stale token with 403.
func (s Session) Expired() bool {
	if s.Token == "" {
		return true
	}
	var claims token.Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.Token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}

// ErrNotLoggedIn is returned when an authenticated call is made without a
// stored session token.
var ErrNotLoggedIn = errors.New("not logged in, run 'karma auth login' first")
