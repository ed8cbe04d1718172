package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Store provides ownership-scoped access to users, boards and tasks.
// Every board/task read and write is filtered by the owner's user id;
// a mutation that matches zero rows means the record is missing or owned
// by someone else, and callers must not distinguish the two.
type Store struct {
	db *sql.DB
}

// Open connects to the database named by url and runs migrations.
// A "sqlite:" prefix selects the embedded SQLite driver, anything else
// is treated as a Postgres connection string.
func Open(url string) (*Store, error) {
	driver := "postgres"
	dsn := url
	if path, ok := strings.CutPrefix(url, "sqlite:"); ok {
		driver = "sqlite"
		dsn = path
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a unique-constraint error.
// lib/pq and modernc/sqlite both spell "unique" in the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
