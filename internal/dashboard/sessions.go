package dashboard

import (
	"context"
	"sync"
	"time"
)

// Factory builds the controller for a new browser session.
type Factory func(ctx context.Context, sessionID string) *Controller

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Sessions keeps one Controller per browser session in memory. Persisted
// data (the recent-city list) outlives a pruned session.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*session
	factory Factory
	now     func() time.Time
}

// NewSessions creates an empty registry.
func NewSessions(factory Factory) *Sessions {
	return &Sessions{
		entries: make(map[string]*session),
		factory: factory,
		now:     time.Now,
	}
}

// Get returns the controller for id, creating it on first use.
func (s *Sessions) Get(ctx context.Context, id string) *Controller {
	s.mu.Lock()
	if e, ok := s.entries[id]; ok {
		e.lastSeen = s.now()
		s.mu.Unlock()
		return e.ctrl
	}
	s.mu.Unlock()

	// Built outside the lock: the factory reads persistence.
	ctrl := s.factory(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		e.lastSeen = s.now()
		return e.ctrl
	}
	s.entries[id] = &session{ctrl: ctrl, lastSeen: s.now()}
	return ctrl
}

// Prune drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (s *Sessions) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
