// Package blob holds fetched binaries in memory and serves them at
// session-lived URLs. It is the server-side analogue of a browser object
// URL: handles die with the process, nothing touches disk.
package blob

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Blob is one registered binary.
type Blob struct {
	ID       string
	MimeType string
	Data     []byte
}

// Store is an in-memory blob registry.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

func NewStore() *Store {
	return &Store{blobs: make(map[string]Blob)}
}

// Put registers data and returns the blob identifier.
func (s *Store) Put(mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("blob: empty payload")
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.blobs[id] = Blob{ID: id, MimeType: mimeType, Data: data}
	s.mu.Unlock()
	return id, nil
}

// Get returns the blob for id.
func (s *Store) Get(id string) (Blob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[id]
	return b, ok
}

// Delete drops a blob. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
}

// Len reports the number of registered blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
