package skillgraph

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrUnknownEvent = errors.New("unknown event type")
	ErrUnmounted    = errors.New("widget is unmounted")
)

// Frame is one rendered picture of the graph together with the state it
// was rendered from.
type Frame struct {
	SVG   string    `json:"svg"`
	Scene Scene     `json:"scene"`
	State ViewState `json:"state"`
}

// Event is a pointer or filter input, as delivered by the page script.
type Event struct {
	Type     string  `json:"type" binding:"required"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Button   int     `json:"button"`
	DeltaY   float64 `json:"deltaY"`
	Entity   string  `json:"entity"`
	Category string  `json:"category"`
}

// Option configures a widget at mount time.
type Option func(*Widget)

// WithTiming overrides the animation cadence.
func WithTiming(t Timing) Option {
	return func(w *Widget) { w.timing = t.withDefaults() }
}

// WithPicker replaces the random source used to choose highlighted entities.
func WithPicker(pick func(n int) int) Option {
	return func(w *Widget) { w.pick = pick }
}

// WithoutAnimation mounts a static widget; nothing moves unless driven by hand.
func WithoutAnimation() Option {
	return func(w *Widget) { w.static = true }
}

// Widget owns one live skill graph: its view state, its projector and its
// timers. It is created by Mount and destroyed by Unmount.
type Widget struct {
	mu      sync.Mutex
	catalog *Catalog
	proj    *Projector
	ctrl    *Controller
	seq     *highlight
	subs    map[chan struct{}]struct{}
	timing  Timing
	pick    func(n int) int
	static  bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Mount validates the catalog and starts the animation driver. The driver
// stops when ctx is canceled or Unmount is called.
func Mount(ctx context.Context, cat *Catalog, opts ...Option) (*Widget, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("mount skill graph: %w", err)
	}
	w := &Widget{
		catalog: cat,
		proj:    NewProjector(cat.Entities),
		ctrl:    NewController(cat),
		subs:    make(map[chan struct{}]struct{}),
		timing:  DefaultTiming(),
		pick:    defaultPick,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	ctx, w.cancel = context.WithCancel(ctx)
	if w.static {
		close(w.done)
	} else {
		go w.drive(ctx)
	}
	return w, nil
}

// Unmount stops every timer and closes all subscriptions. It waits for the
// driver goroutine to exit and is safe to call more than once.
func (w *Widget) Unmount() {
	w.cancel()
	<-w.done

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for ch := range w.subs {
		close(ch)
	}
	w.subs = nil
}

// Done is closed once the animation driver has stopped.
func (w *Widget) Done() <-chan struct{} { return w.done }

// Subscribe returns a channel that receives a signal after every change.
// Signals coalesce; a slow reader only sees that something changed.
func (w *Widget) Subscribe() (<-chan struct{}, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ch := make(chan struct{}, 1)
	if w.closed {
		close(ch)
		return ch, func() {}
	}
	w.subs[ch] = struct{}{}
	return ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if _, ok := w.subs[ch]; ok {
			delete(w.subs, ch)
			close(ch)
		}
	}
}

// notify must be called with w.mu held.
func (w *Widget) notify() {
	for ch := range w.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// update runs fn under the lock and wakes subscribers.
func (w *Widget) update(fn func(c *Controller)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrUnmounted
	}
	fn(w.ctrl)
	w.notify()
	return nil
}

// State returns a copy of the current view state.
func (w *Widget) State() ViewState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctrl.State()
}

// Frame projects and renders the current state.
func (w *Widget) Frame() Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	state := w.ctrl.State()
	nodes := w.proj.Project(state.Angle)
	scene := Compose(w.catalog, nodes, state, w.ctrl.Tooltip(nodes))
	return Frame{SVG: scene.SVG(), Scene: scene, State: state}
}

// Apply routes one input event to the controller.
func (w *Widget) Apply(ev Event) error {
	var apply func(c *Controller)
	p := Point{X: ev.X, Y: ev.Y}
	switch ev.Type {
	case "enter":
		apply = func(c *Controller) { c.HoverEnter(ev.Entity) }
	case "leave":
		apply = func(c *Controller) { c.HoverLeave() }
	case "down":
		apply = func(c *Controller) { c.PointerDown(p, ev.Button) }
	case "move":
		apply = func(c *Controller) { c.PointerMove(p) }
	case "up":
		apply = func(c *Controller) { c.PointerUp() }
	case "out":
		apply = func(c *Controller) { c.PointerLeave() }
	case "wheel":
		apply = func(c *Controller) { c.Wheel(ev.DeltaY) }
	case "category":
		apply = func(c *Controller) { c.ToggleCategory(ev.Category) }
	case "hover":
		// hover at a surface point: hit-test, then enter or leave
		apply = func(c *Controller) {
			nodes := w.proj.Project(c.State().Angle)
			if name, ok := c.EntityAt(nodes, p); ok {
				c.HoverEnter(name)
			} else {
				c.HoverLeave()
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return w.update(apply)
}

// Rotate advances the rotation by one step. It fails with ErrUnmounted once
// the widget is gone.
func (w *Widget) Rotate() error {
	return w.update(func(c *Controller) { c.Rotate(w.timing.RotationStep) })
}

// StartRandomHighlight picks one entity and starts its pulse sequence.
func (w *Widget) StartRandomHighlight() bool {
	n := len(w.catalog.Entities)
	if n == 0 {
		return false
	}
	return w.StartHighlight(w.catalog.Entities[w.pick(n)].Name)
}

// StartHighlight makes name active and pulses its first connection. Any
// sequence already running is replaced.
func (w *Widget) StartHighlight(name string) bool {
	started := false
	w.update(func(c *Controller) {
		if !c.HoverEnter(name) {
			return
		}
		w.seq = &highlight{entity: name, queue: w.catalog.ConnectionsOf(name)}
		c.SetPulse(w.seq.current())
		started = true
	})
	return started
}

// AdvancePulse moves the pulse to the next connection. It reports false once
// the sequence has played out, leaving no connection marked.
func (w *Widget) AdvancePulse() bool {
	more := false
	w.update(func(c *Controller) {
		if w.seq == nil {
			return
		}
		w.seq.pos++
		next := w.seq.current()
		c.SetPulse(next)
		more = next != nil
	})
	return more
}

// EndHighlight clears the pulse marker and, unless the visitor has since
// hovered something else, the active entity.
func (w *Widget) EndHighlight() {
	w.update(func(c *Controller) {
		if w.seq == nil {
			return
		}
		if c.State().ActiveEntity == w.seq.entity {
			c.HoverLeave()
		}
		c.SetPulse(nil)
		w.seq = nil
	})
}

// Render projects the catalog at the given state without mounting a widget.
// It is what the stateless image endpoint and the CLI use.
func Render(cat *Catalog, state ViewState) Frame {
	proj := NewProjector(cat.Entities)
	state.Zoom = ClampZoom(state.Zoom)
	state.Angle = WrapAngle(state.Angle)
	ctrl := &Controller{catalog: cat, state: state}
	nodes := proj.Project(state.Angle)
	scene := Compose(cat, nodes, state, ctrl.Tooltip(nodes))
	return Frame{SVG: scene.SVG(), Scene: scene, State: state}
}
