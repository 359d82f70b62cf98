package gallery

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConsentFlags are the client-local acknowledgment flags the SPA records.
// They are advisory only; nothing else validates them.
type ConsentFlags struct {
	TermsAccepted   bool       `json:"terms_accepted"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at,omitempty"`
	PrivacyAcked    bool       `json:"privacy_acknowledged"`
	IntroPlayed     bool       `json:"intro_played"`
}

// Session ties a browser session to its gallery, consent flags, and the
// single-flight guard for campaign runs.
type Session struct {
	ID      string
	Gallery *Store

	mu       sync.Mutex
	consent  ConsentFlags
	lastSeen time.Time

	// runGuard admits at most one campaign run at a time.
	runGuard chan struct{}
}

// TryBeginRun claims the session's run slot. It reports false when another
// run is already in flight.
func (s *Session) TryBeginRun() bool {
	select {
	case s.runGuard <- struct{}{}:
		return true
	default:
		return false
	}
}

// EndRun releases the run slot.
func (s *Session) EndRun() {
	select {
	case <-s.runGuard:
	default:
	}
}

// Consent returns the current flags.
func (s *Session) Consent() ConsentFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consent
}

// UpdateConsent applies fn to the flags under the session lock.
func (s *Session) UpdateConsent(fn func(*ConsentFlags)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.consent)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Manager owns all live sessions and evicts the ones idle past the TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Resolve returns the session for id, creating a fresh one when id is empty
// or unknown (a reload after eviction starts a clean session, matching the
// volatile-state contract).
func (m *Manager) Resolve(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.touch(m.now())
		return s
	}
	s := &Session{
		ID:       uuid.NewString(),
		Gallery:  NewStore(),
		lastSeen: m.now(),
		runGuard: make(chan struct{}, 1),
	}
	m.sessions[s.ID] = s
	return s
}

// Drop discards a session and everything it holds.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Janitor evicts idle sessions until ctx is cancelled. Run it in its own
// goroutine.
func (m *Manager) Janitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
		}
	}
}
