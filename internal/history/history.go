// Package history records the statements a session executed and their
// outcomes, so a REPL user can review what was solved and with which
// result.
package history

import (
	"context"
	"time"
)

// Entry is one executed statement.
type Entry struct {
	ID        string
	SessionID string
	Input     string
	Outcome   string // printed result, or the error text
	IsError   bool
	CreatedAt time.Time
}

// Session groups the entries of one interpreter run.
type Session struct {
	ID        string
	StartedAt time.Time
}

// Store defines the interface for history persistence.
type Store interface {
	// StartSession registers a new session and returns it.
	StartSession(ctx context.Context) (*Session, error)

	// Record appends an entry to a session.
	Record(ctx context.Context, entry *Entry) error

	// Recent returns up to limit entries of a session, oldest first.
	Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error)

	// Close releases resources.
	Close() error
}
