package main

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/neural-portfolio/internal/skillgraph"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many skill graph sessions")
	ErrStoreClosed     = errors.New("skill graph sessions are shut down")
)

// session is one mounted skill graph, addressed by id from the page script.
type session struct {
	widget   *skillgraph.Widget
	lastSeen time.Time
}

// sessionStore owns every mounted widget of a server. Widgets are unmounted
// on DELETE, after sitting idle for ttl, or when the store shuts down.
type sessionStore struct {
	mu      sync.Mutex
	items   map[string]*session
	pending int // mounts in flight, counted against limit
	closed  bool
	ttl     time.Duration
	limit   int
	now     func() time.Time
	mount   func() (*skillgraph.Widget, error)
}

func newSessionStore(ttl time.Duration, limit int, mount func() (*skillgraph.Widget, error)) *sessionStore {
	return &sessionStore{
		items: make(map[string]*session),
		ttl:   ttl,
		limit: limit,
		now:   time.Now,
		mount: mount,
	}
}

func (s *sessionStore) create() (string, *skillgraph.Widget, error) {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return "", nil, ErrStoreClosed
	case s.limit > 0 && len(s.items)+s.pending >= s.limit:
		s.mu.Unlock()
		return "", nil, ErrTooManySessions
	}
	s.pending++
	s.mu.Unlock()

	w, err := s.mount()

	s.mu.Lock()
	s.pending--
	if err != nil {
		s.mu.Unlock()
		return "", nil, err
	}
	if s.closed {
		s.mu.Unlock()
		w.Unmount()
		return "", nil, ErrStoreClosed
	}
	id := uuid.NewString()
	s.items[id] = &session{widget: w, lastSeen: s.now()}
	s.mu.Unlock()
	return id, w, nil
}

// get returns the widget and marks the session as used.
func (s *sessionStore) get(id string) (*skillgraph.Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess.widget, nil
}

func (s *sessionStore) remove(id string) error {
	s.mu.Lock()
	sess, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sess.widget.Unmount()
	return nil
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// sweep unmounts sessions idle for longer than ttl.
func (s *sessionStore) sweep() int {
	cutoff := s.now().Add(-s.ttl)
	var stale []*session

	s.mu.Lock()
	for id, sess := range s.items {
		if sess.lastSeen.Before(cutoff) {
			stale = append(stale, sess)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.widget.Unmount()
	}
	return len(stale)
}

// closeAll unmounts every session. Later creates fail with ErrStoreClosed.
func (s *sessionStore) closeAll() {
	s.mu.Lock()
	s.closed = true
	items := s.items
	s.items = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range items {
		sess.widget.Unmount()
	}
}

// run sweeps periodically until ctx is done, then unmounts everything.
func (s *sessionStore) run(ctx context.Context) {
	interval := s.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				log.Printf("Unmounted %d idle skill graph sessions", n)
			}
		}
	}
}
