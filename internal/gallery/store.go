// Package gallery keeps the running session's generated ads in memory.
package gallery

import (
	"sync"

	"github.com/icecube7035-art/ADAI/internal/domain"
)

// Store is the ordered collection of every ad generated in one session.
// Newest campaign first; within a campaign, ads keep generation order. There
// is no eviction, bound, or persistence: store lifetime equals session
// lifetime. All mutation is serialized behind the lock.
type Store struct {
	mu  sync.RWMutex
	ads []domain.Ad
}

func NewStore() *Store {
	return &Store{}
}

// Prepend inserts a completed campaign's ads ahead of everything already
// stored, preserving their internal order.
func (s *Store) Prepend(ads []domain.Ad) {
	if len(ads) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := make([]domain.Ad, 0, len(ads)+len(s.ads))
	merged = append(merged, ads...)
	merged = append(merged, s.ads...)
	s.ads = merged
}

// ReplaceContent swaps the content of the ad with the given id. An unknown
// id is a silent no-op.
func (s *Store) ReplaceContent(id, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ads {
		if s.ads[i].ID == id {
			s.ads[i].Content = content
			return true
		}
	}
	return false
}

// Get returns a copy of the ad with the given id.
func (s *Store) Get(id string) (domain.Ad, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ad := range s.ads {
		if ad.ID == id {
			return ad, true
		}
	}
	return domain.Ad{}, false
}

// List returns a copy of the collection in display order.
func (s *Store) List() []domain.Ad {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ad, len(s.ads))
	copy(out, s.ads)
	return out
}

// Len reports the number of stored ads.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ads)
}
