package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Persisted slice keys. Each key owns one JSON document; the workspace
// store is the only writer.
const (
	KeyCalendarEvents = "calendarEvents"
	KeyDraftPosts     = "draftPosts"
	KeyPublishedPosts = "publishedPosts"
	KeyFailedPosts    = "failedPosts"
	KeySavedSources   = "savedSources"
	KeyPostContents   = "postContents"
	KeyApiKeys        = "apiKeys"
	KeyApiStats       = "apiStats"
	KeyVideoProjects  = "videoProjects"
)

// Store is a small key-value layer over a local SQLite file. Reads fall
// back to the caller's zero value on absent or corrupt entries; writes
// are logged and swallowed on failure so in-memory state stays
// authoritative.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv_state (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load unmarshals the value stored under key into dest. It reports
// whether a usable value was found; dest is untouched otherwise.
func (s *Store) Load(ctx context.Context, key string, dest any) bool {
	var raw []byte
	query := "SELECT value FROM kv_state WHERE key = ?"
	err := s.db.QueryRowContext(ctx, query, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		slog.Error("storage read failed", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Error("storage entry corrupt, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

// Save marshals value and upserts it under key. A failed persist never
// blocks the caller.
func (s *Store) Save(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Error("storage marshal failed", "key", key, "error", err)
		return
	}

	query := `INSERT INTO kv_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, raw); err != nil {
		slog.Error("storage write failed", "key", key, "error", err)
	}
}

func (s *Store) Remove(ctx context.Context, key string) {
	query := "DELETE FROM kv_state WHERE key = ?"
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		slog.Error("storage delete failed", "key", key, "error", err)
	}
}

func (s *Store) Clear(ctx context.Context) {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_state"); err != nil {
		slog.Error("storage clear failed", "error", err)
	}
}
