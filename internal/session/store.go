package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"tradenet/domain/viewstate"
)

// Store keeps per-session view state in memory. Sessions are ephemeral:
// they exist for the lifetime of a browser session and are swept after TTL
// of inactivity. The loaded reference tables are never touched here, so this
// is the only mutable shared state in the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
}

type entry struct {
	state    *viewstate.State
	lastSeen time.Time
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
	}
}

// Create registers a new session and returns its id.
func (s *Store) Create() *viewstate.State {
	id := uuid.NewString()
	state := viewstate.New(id)

	s.mu.Lock()
	s.sessions[id] = &entry{state: state, lastSeen: time.Now()}
	s.mu.Unlock()

	return state
}

// Snapshot returns a copy of the session's state, so readers never race
// with a concurrent transition on the same session.
func (s *Store) Snapshot(id string) (viewstate.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return viewstate.State{}, false
	}
	e.lastSeen = time.Now()
	return *e.state, true
}

// Update applies a transition to the session's state under the store lock
// and returns the resulting snapshot. The callback must not retain the
// pointer.
func (s *Store) Update(id string, fn func(*viewstate.State) error) (viewstate.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return viewstate.State{}, false, nil
	}
	e.lastSeen = time.Now()
	if err := fn(e.state); err != nil {
		return *e.state, true, err
	}
	return *e.state, true, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle past the TTL and returns how many were removed.
func (s *Store) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper sweeps expired sessions on the given interval until ctx is
// cancelled.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					log.Printf("[SessionStore] swept %d expired sessions, %d live", n, s.Len())
				}
			}
		}
	}()
}
