package skillgraph

import (
	"math"
	"sort"
)

const (
	MinZoom    = 0.5
	MaxZoom    = 3.0
	ZoomFactor = 1.1

	// PrimaryButton is the pointer button that starts a drag.
	PrimaryButton = 0
)

// Point is a 2D coordinate in surface units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ViewState is everything the visitor (or the animation) can change.
type ViewState struct {
	Angle          float64     `json:"angle"`
	Zoom           float64     `json:"zoom"`
	Pan            Point       `json:"pan"`
	ActiveEntity   string      `json:"activeEntity,omitempty"`
	ActiveCategory string      `json:"activeCategory,omitempty"`
	DragAnchor     *Point      `json:"dragAnchor,omitempty"`
	Pulse          *Connection `json:"pulse,omitempty"`
}

// DefaultViewState is the state a freshly mounted graph starts with.
func DefaultViewState() ViewState {
	return ViewState{Zoom: 1}
}

// Rect is the visible viewport in surface coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Viewport keeps the surface center fixed and scales the visible area by 1/zoom.
func (s ViewState) Viewport() Rect {
	zoom := ClampZoom(s.Zoom)
	w := SurfaceWidth / zoom
	h := SurfaceHeight / zoom
	return Rect{
		X:      (SurfaceWidth-w)/2 - s.Pan.X,
		Y:      (SurfaceHeight-h)/2 - s.Pan.Y,
		Width:  w,
		Height: h,
	}
}

// ClampZoom bounds z to [MinZoom, MaxZoom]. Non-numbers fall back to 1.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Tooltip describes the hover card for one entity.
type Tooltip struct {
	Entity string   `json:"entity"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Lines  []string `json:"lines"`
}

// Controller translates pointer input into ViewState changes. It never
// touches entity data.
type Controller struct {
	catalog *Catalog
	state   ViewState
}

// NewController returns a controller in the default view state.
func NewController(cat *Catalog) *Controller {
	return &Controller{catalog: cat, state: DefaultViewState()}
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState {
	s := c.state
	if s.DragAnchor != nil {
		a := *s.DragAnchor
		s.DragAnchor = &a
	}
	if s.Pulse != nil {
		p := *s.Pulse
		s.Pulse = &p
	}
	return s
}

// HoverEnter makes name the active entity. Unknown names are ignored.
func (c *Controller) HoverEnter(name string) bool {
	if _, ok := c.catalog.Entity(name); !ok {
		return false
	}
	c.state.ActiveEntity = name
	return true
}

// HoverLeave clears the active entity.
func (c *Controller) HoverLeave() {
	c.state.ActiveEntity = ""
}

// PointerDown starts a drag when the primary button is pressed.
func (c *Controller) PointerDown(p Point, button int) {
	if button != PrimaryButton {
		return
	}
	c.state.DragAnchor = &p
}

// PointerMove pans by the pointer delta scaled by 1/zoom while dragging.
func (c *Controller) PointerMove(p Point) bool {
	anchor := c.state.DragAnchor
	if anchor == nil {
		return false
	}
	zoom := ClampZoom(c.state.Zoom)
	c.state.Pan.X += (p.X - anchor.X) / zoom
	c.state.Pan.Y += (p.Y - anchor.Y) / zoom
	c.state.DragAnchor = &p
	return true
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	c.state.DragAnchor = nil
}

// PointerLeave ends a drag when the pointer leaves the surface.
func (c *Controller) PointerLeave() {
	c.state.DragAnchor = nil
}

// Wheel zooms in for negative deltas and out for positive ones.
func (c *Controller) Wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		c.state.Zoom = ClampZoom(c.state.Zoom * ZoomFactor)
	case deltaY > 0:
		c.state.Zoom = ClampZoom(c.state.Zoom / ZoomFactor)
	}
}

// ToggleCategory switches the category filter on, or off when it is already
// the active one.
func (c *Controller) ToggleCategory(title string) {
	if c.state.ActiveCategory == title {
		c.state.ActiveCategory = ""
		return
	}
	c.state.ActiveCategory = title
}

// Rotate advances the rotation angle by step degrees.
func (c *Controller) Rotate(step float64) {
	c.state.Angle = WrapAngle(c.state.Angle + step)
}

// SetAngle sets the rotation angle directly.
func (c *Controller) SetAngle(deg float64) {
	c.state.Angle = WrapAngle(deg)
}

// SetPulse marks conn as the connection currently animating, or clears the
// marker when conn is nil.
func (c *Controller) SetPulse(conn *Connection) {
	c.state.Pulse = conn
}

// Tooltip returns the hover card for the active entity, positioned next to
// its projected node.
func (c *Controller) Tooltip(nodes []Node) *Tooltip {
	name := c.state.ActiveEntity
	if name == "" {
		return nil
	}
	for _, n := range nodes {
		if n.Name != name {
			continue
		}
		tip := &Tooltip{Entity: name, X: n.X + n.Radius + 8, Y: n.Y - n.Radius}
		for _, conn := range c.catalog.ConnectionsOf(name) {
			if conn.From == name {
				tip.Lines = append(tip.Lines, "→ "+conn.To)
			} else {
				tip.Lines = append(tip.Lines, "← "+conn.From)
			}
		}
		return tip
	}
	return nil
}

// EntityAt returns the nearest entity under p, given in surface (viewport)
// coordinates. Entities outside the category filter are still hit.
func (c *Controller) EntityAt(nodes []Node, p Point) (string, bool) {
	vp := c.state.Viewport()
	zoom := ClampZoom(c.state.Zoom)
	wx := vp.X + p.X/zoom
	wy := vp.Y + p.Y/zoom

	ordered := make([]Node, len(nodes))
	copy(ordered, nodes)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Depth < ordered[j].Depth })

	for _, n := range ordered {
		if math.Hypot(wx-n.X, wy-n.Y) <= n.Radius {
			return n.Name, true
		}
	}
	return "", false
}
