// Package memstore provides in-memory implementations of the local
// storage ports. It is the default when no database path is configured
// and doubles as a test fixture.
package memstore

import (
	"context"
	"sync"

	"github.com/hotelmanager/staffkit/core"
)

type Store struct {
	mu       sync.RWMutex
	values   map[string][]byte
	token    string
	hasToken bool
}

var (
	_ core.PreferenceStorage = (*Store)(nil)
	_ core.SessionStore      = (*Store)(nil)
)

func New() *Store {
	return &Store{
		values: make(map[string][]byte),
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, core.ErrPreferencesNotFound
	}

	// Copy so callers can't mutate stored bytes.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (s *Store) SaveRefreshToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.hasToken = true
	return nil
}

func (s *Store) LoadRefreshToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasToken {
		return "", core.ErrNoStoredSession
	}
	return s.token, nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.hasToken = false
	return nil
}
