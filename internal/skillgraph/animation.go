package skillgraph

import (
	"context"
	"math/rand/v2"
	"time"
)

// Timing controls the animation cadence.
type Timing struct {
	RotationInterval  time.Duration `toml:"rotation_interval"`
	RotationStep      float64       `toml:"rotation_step"`
	HighlightInterval time.Duration `toml:"highlight_interval"`
	HighlightHold     time.Duration `toml:"highlight_hold"`
	PulseHold         time.Duration `toml:"pulse_hold"`
}

// DefaultTiming matches the cadence of the live site.
func DefaultTiming() Timing {
	return Timing{
		RotationInterval:  50 * time.Millisecond,
		RotationStep:      0.5,
		HighlightInterval: 5 * time.Second,
		HighlightHold:     2 * time.Second,
		PulseHold:         300 * time.Millisecond,
	}
}

func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.RotationInterval <= 0 {
		t.RotationInterval = d.RotationInterval
	}
	if t.RotationStep == 0 {
		t.RotationStep = d.RotationStep
	}
	if t.HighlightInterval <= 0 {
		t.HighlightInterval = d.HighlightInterval
	}
	if t.HighlightHold <= 0 {
		t.HighlightHold = d.HighlightHold
	}
	if t.PulseHold <= 0 {
		t.PulseHold = d.PulseHold
	}
	return t
}

// highlight is one in-flight pulse sequence.
type highlight struct {
	entity string
	queue  []Connection
	pos    int
}

func (h *highlight) current() *Connection {
	if h == nil || h.pos >= len(h.queue) {
		return nil
	}
	c := h.queue[h.pos]
	return &c
}

func defaultPick(n int) int { return rand.IntN(n) }

// drive runs the rotation and highlight timers until ctx is done. Everything
// happens on this goroutine, so a new cycle simply replaces the old one.
func (w *Widget) drive(ctx context.Context) {
	defer close(w.done)

	rotate := time.NewTicker(w.timing.RotationInterval)
	defer rotate.Stop()
	cycle := time.NewTicker(w.timing.HighlightInterval)
	defer cycle.Stop()

	pulse := time.NewTimer(w.timing.PulseHold)
	pulse.Stop()
	defer pulse.Stop()
	hold := time.NewTimer(w.timing.HighlightHold)
	hold.Stop()
	defer hold.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-rotate.C:
			if err := w.Rotate(); err != nil {
				return
			}
		case <-cycle.C:
			if w.StartRandomHighlight() {
				pulse.Reset(w.timing.PulseHold)
				hold.Reset(w.timing.HighlightHold)
			}
		case <-pulse.C:
			if w.AdvancePulse() {
				pulse.Reset(w.timing.PulseHold)
			}
		case <-hold.C:
			pulse.Stop()
			w.EndHighlight()
		}
	}
}
