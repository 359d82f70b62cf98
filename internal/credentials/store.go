// Package credentials implements the host credential selection mechanism:
// a process-wide store reporting whether an API key is currently active and
// allowing one to be selected at runtime.
package credentials

import (
	"errors"
	"strings"
	"sync"
)

// Resolver is the read side consumed by the generation pipeline. The active
// key is resolved once per submission attempt and never cached by callers.
type Resolver interface {
	APIKey() (string, bool)
}

// Store holds the currently selected API key. Keys live only for the
// process lifetime; durable storage is deliberately out of scope.
type Store struct {
	mu  sync.RWMutex
	key string
}

// NewStore seeds the store with an initial key, usually from the
// environment. An empty seed leaves the store unselected.
func NewStore(seed string) *Store {
	return &Store{key: strings.TrimSpace(seed)}
}

// APIKey returns the active key and whether one is selected.
func (s *Store) APIKey() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key, s.key != ""
}

// Selected reports whether a credential is currently active.
func (s *Store) Selected() bool {
	_, ok := s.APIKey()
	return ok
}

// Select replaces the active key.
func (s *Store) Select(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is required")
	}
	s.mu.Lock()
	s.key = key
	s.mu.Unlock()
	return nil
}

// Clear drops the active key, returning the store to the unselected state.
func (s *Store) Clear() {
	s.mu.Lock()
	s.key = ""
	s.mu.Unlock()
}

var _ Resolver = (*Store)(nil)
