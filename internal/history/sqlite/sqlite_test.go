package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/equalang/equa/internal/history"
	"github.com/equalang/equa/internal/history/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(t *testing.T, store *sqlite.Store, sessionID, input, outcome string, at time.Time) {
	t.Helper()
	err := store.Record(context.Background(), &history.Entry{
		SessionID: sessionID,
		Input:     input,
		Outcome:   outcome,
		CreatedAt: at,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestStartSession(t *testing.T) {
	store := newStore(t)

	session, err := store.StartSession(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if session.ID == "" {
		t.Error("session ID must be assigned")
	}
	if session.StartedAt.IsZero() {
		t.Error("session start time must be assigned")
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	session, err := store.StartSession(ctx)
	if err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record(t, store, session.ID, "x + 1 = 3", "x = 2", base)
	record(t, store, session.ID, "x ^ 2 = 4", "x = 2, x_neg = -2", base.Add(time.Second))
	record(t, store, session.ID, "x ^ 2 + 10 = 0", "no roots found", base.Add(2*time.Second))

	entries, err := store.Recent(ctx, session.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// The last two entries, oldest first.
	if entries[0].Input != "x ^ 2 = 4" || entries[1].Input != "x ^ 2 + 10 = 0" {
		t.Errorf("wrong entries or order: %q, %q", entries[0].Input, entries[1].Input)
	}
	if entries[0].ID == "" {
		t.Error("entry ID must be assigned on record")
	}
}

func TestRecentScopedToSession(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, err := store.StartSession(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.StartSession(ctx)
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record(t, store, first.ID, "a = 1", "a = 1", at)
	record(t, store, second.ID, "b = 2", "b = 2", at)

	entries, err := store.Recent(ctx, second.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Input != "b = 2" {
		t.Errorf("expected only the second session's entry, got %v", entries)
	}
}

func TestRecordError(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	session, err := store.StartSession(ctx)
	if err != nil {
		t.Fatal(err)
	}
	err = store.Record(ctx, &history.Entry{
		SessionID: session.ID,
		Input:     "1 / (x - x) = 5",
		Outcome:   "division by zero",
		IsError:   true,
	})
	if err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(ctx, session.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].IsError {
		t.Errorf("error flag not persisted: %v", entries)
	}
}
