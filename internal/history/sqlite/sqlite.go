// Package sqlite implements history.Store on a SQLite database file
// using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/equalang/equa/internal/history"

	_ "modernc.org/sqlite"
)

// Store implements history.Store using SQLite
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		input TEXT NOT NULL,
		outcome TEXT NOT NULL,
		is_error INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) StartSession(ctx context.Context) (*history.Session, error) {
	session := &history.Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		session.ID, session.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session, nil
}

func (s *Store) Record(ctx context.Context, entry *history.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, session_id, input, outcome, is_error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SessionID, entry.Input, entry.Outcome, boolToInt(entry.IsError), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record entry: %w", err)
	}
	return nil
}

func (s *Store) Recent(ctx context.Context, sessionID string, limit int) ([]history.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, input, outcome, is_error, created_at
		 FROM (
			SELECT * FROM entries WHERE session_id = ? ORDER BY created_at DESC, id LIMIT ?
		 ) ORDER BY created_at ASC, id`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var entry history.Entry
		var isError int
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Input, &entry.Outcome, &isError, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.IsError = isError != 0
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
