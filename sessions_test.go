package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Zachkp/neural-portfolio/internal/catalog"
	"github.com/Zachkp/neural-portfolio/internal/skillgraph"
)

func newTestStore(t *testing.T, ttl time.Duration, limit int) (*sessionStore, *time.Time) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newSessionStore(ttl, limit, func() (*skillgraph.Widget, error) {
		return skillgraph.Mount(context.Background(), cat, skillgraph.WithoutAnimation())
	})
	s.now = func() time.Time { return now }
	t.Cleanup(s.closeAll)
	return s, &now
}

func unmounted(w *skillgraph.Widget) bool {
	return errors.Is(w.Apply(skillgraph.Event{Type: "leave"}), skillgraph.ErrUnmounted)
}

func TestSessionSweep(t *testing.T) {
	s, now := newTestStore(t, time.Minute, 0)

	idle, idleWidget, err := s.create()
	if err != nil {
		t.Fatal(err)
	}
	busy, _, err := s.create()
	if err != nil {
		t.Fatal(err)
	}

	*now = now.Add(45 * time.Second)
	if _, err := s.get(busy); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(30 * time.Second)

	if n := s.sweep(); n != 1 {
		t.Fatalf("sweep removed %d sessions, want 1", n)
	}
	if _, err := s.get(idle); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session still present: %v", err)
	}
	if !unmounted(idleWidget) {
		t.Error("swept widget was not unmounted")
	}
	if _, err := s.get(busy); err != nil {
		t.Errorf("recently used session was swept: %v", err)
	}
}

func TestSessionRemove(t *testing.T) {
	s, _ := newTestStore(t, time.Minute, 0)
	id, w, err := s.create()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.remove(id); err != nil {
		t.Fatal(err)
	}
	if !unmounted(w) {
		t.Error("removed widget was not unmounted")
	}
	if err := s.remove(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second remove = %v, want ErrSessionNotFound", err)
	}
	if s.count() != 0 {
		t.Errorf("count = %d", s.count())
	}
}

func TestSessionLimitAndCloseAll(t *testing.T) {
	s, _ := newTestStore(t, time.Minute, 2)
	_, a, _ := s.create()
	_, b, _ := s.create()
	if _, _, err := s.create(); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("third create = %v, want ErrTooManySessions", err)
	}

	s.closeAll()
	if s.count() != 0 || !unmounted(a) || !unmounted(b) {
		t.Error("closeAll left sessions mounted")
	}
	if _, _, err := s.create(); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("create after closeAll = %v, want ErrStoreClosed", err)
	}
}

func TestSessionLimitUnderConcurrentCreate(t *testing.T) {
	s, _ := newTestStore(t, time.Minute, 2)
	mount := s.mount
	var mounts atomic.Int32
	s.mount = func() (*skillgraph.Widget, error) {
		mounts.Add(1)
		// widen the window between the limit check and the insert
		time.Sleep(10 * time.Millisecond)
		return mount()
	}

	var (
		wg      sync.WaitGroup
		created atomic.Int32
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := s.create(); err == nil {
				created.Add(1)
			} else if !errors.Is(err, ErrTooManySessions) {
				t.Errorf("create: %v", err)
			}
		}()
	}
	wg.Wait()

	if created.Load() != 2 || mounts.Load() != 2 || s.count() != 2 {
		t.Errorf("created %d, mounted %d, stored %d; want 2 each", created.Load(), mounts.Load(), s.count())
	}
}

func TestSessionFailedMountFreesSlot(t *testing.T) {
	s, _ := newTestStore(t, time.Minute, 1)
	mount := s.mount
	s.mount = func() (*skillgraph.Widget, error) { return nil, errors.New("boom") }
	if _, _, err := s.create(); err == nil {
		t.Fatal("expected the mount error")
	}
	s.mount = mount
	if _, _, err := s.create(); err != nil {
		t.Errorf("create after a failed mount: %v", err)
	}
}

func TestSessionRunStopsWithContext(t *testing.T) {
	s, _ := newTestStore(t, time.Minute, 0)
	_, w, _ := s.create()

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.run(ctx)
		close(stopped)
	}()
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	if !unmounted(w) {
		t.Error("run should unmount everything on exit")
	}
}
