// Package sqlite persists client-side state (view preferences, the
// refresh token) in a local SQLite database, so sessions and saved
// filters survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hotelmanager/staffkit/core"
)

//go:embed schema.sql
var schemaFS embed.FS

// refreshTokenKey is the kv row holding the persisted session.
const refreshTokenKey = "auth.refresh_token"

// Store is a kv-backed implementation of both client storage ports.
type Store struct {
	db *sql.DB
}

var (
	_ core.PreferenceStorage = (*Store)(nil)
	_ core.SessionStore      = (*Store)(nil)
)

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := applySchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func applySchema(ctx context.Context, db *sql.DB) error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schemaSQL)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements core.PreferenceStorage.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return value, nil
}

// Set implements core.PreferenceStorage.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// SaveRefreshToken implements core.SessionStore.
func (s *Store) SaveRefreshToken(ctx context.Context, token string) error {
	return s.Set(ctx, refreshTokenKey, []byte(token))
}

// LoadRefreshToken implements core.SessionStore.
func (s *Store) LoadRefreshToken(ctx context.Context) (string, error) {
	value, err := s.Get(ctx, refreshTokenKey)
	if errors.Is(err, core.ErrPreferencesNotFound) {
		return "", core.ErrNoStoredSession
	}
	if err != nil {
		return "", err
	}
	if len(value) == 0 {
		return "", core.ErrNoStoredSession
	}
	return string(value), nil
}

// Clear implements core.SessionStore. Preferences are left alone so a
// sign-out does not discard saved filters.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", refreshTokenKey)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
