// Package session keeps one ViewState per browser session. The store
// serializes updates so a session's viewport is never modified concurrently,
// and a background sweeper drops sessions idle past the TTL.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"disastermap/internal/models"
)

type entry struct {
	state    models.ViewState
	lastSeen time.Time
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	clock    clockwork.Clock
	wg       sync.WaitGroup
}

func NewStore(ttl time.Duration, clock clockwork.Clock) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		clock:    clock,
	}
}

// State returns the session's current view state, creating the session with
// the default viewport if it does not exist.
func (s *Store) State(id string) models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id).state
}

// Update applies fn to the session's view state under the store lock and
// returns the new state. fn must be cheap and must not block.
func (s *Store) Update(id string, fn func(models.ViewState) models.ViewState) models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.get(id)
	e.state = fn(e.state)
	return e.state
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// get assumes s.mu is held.
func (s *Store) get(id string) *entry {
	e, ok := s.sessions[id]
	if !ok {
		e = &entry{state: models.DefaultViewState()}
		s.sessions[id] = e
	}
	e.lastSeen = s.clock.Now()
	return e
}

// StartSweeper launches the background goroutine that evicts idle sessions.
// It exits when ctx is cancelled; Stop waits for it.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := s.clock.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				s.sweep()
			}
		}
	}()
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-s.ttl)
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("swept idle sessions", "removed", removed, "remaining", len(s.sessions))
	}
}

// Stop waits for the sweeper goroutine to exit.
func (s *Store) Stop() {
	s.wg.Wait()
}
