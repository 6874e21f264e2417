package skillgraph

import (
	"math"
	"testing"
)

func TestWheelClampsZoom(t *testing.T) {
	c := NewController(testCatalog())
	for i := 0; i < 100; i++ {
		c.Wheel(-1e9)
	}
	if got := c.State().Zoom; got != MaxZoom {
		t.Errorf("zoom after zooming in = %v, want %v", got, MaxZoom)
	}
	for i := 0; i < 100; i++ {
		c.Wheel(5)
	}
	if got := c.State().Zoom; got != MinZoom {
		t.Errorf("zoom after zooming out = %v, want %v", got, MinZoom)
	}
	c.Wheel(0)
	if got := c.State().Zoom; got != MinZoom {
		t.Errorf("zero delta changed zoom to %v", got)
	}
}

func TestWheelStepsByFactor(t *testing.T) {
	c := NewController(testCatalog())
	c.Wheel(-120)
	if got := c.State().Zoom; math.Abs(got-ZoomFactor) > 1e-12 {
		t.Errorf("zoom = %v, want %v", got, ZoomFactor)
	}
	c.Wheel(120)
	if got := c.State().Zoom; math.Abs(got-1) > 1e-12 {
		t.Errorf("zoom = %v, want 1", got)
	}
}

func TestToggleCategoryTwiceClears(t *testing.T) {
	c := NewController(testCatalog())
	c.ToggleCategory("Development")
	if got := c.State().ActiveCategory; got != "Development" {
		t.Fatalf("active category = %q", got)
	}
	c.ToggleCategory("AI & Automation")
	if got := c.State().ActiveCategory; got != "AI & Automation" {
		t.Fatalf("switching category: got %q", got)
	}
	c.ToggleCategory("AI & Automation")
	if got := c.State().ActiveCategory; got != "" {
		t.Errorf("second toggle should clear, got %q", got)
	}
}

func TestDragPansByDeltaOverZoom(t *testing.T) {
	tests := []struct {
		name string
		zoom float64
		want Point
	}{
		{"zoom 1", 1, Point{50, 20}},
		{"zoom 2", 2, Point{25, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(testCatalog())
			c.state.Zoom = tt.zoom
			c.PointerDown(Point{100, 100}, PrimaryButton)
			if !c.PointerMove(Point{150, 120}) {
				t.Fatal("move during drag should pan")
			}
			c.PointerUp()
			if got := c.State().Pan; got != tt.want {
				t.Errorf("pan = %+v, want %+v", got, tt.want)
			}
			if c.State().DragAnchor != nil {
				t.Error("pointer up should clear the drag anchor")
			}
		})
	}
}

func TestDragAccumulatesAcrossMoves(t *testing.T) {
	c := NewController(testCatalog())
	c.PointerDown(Point{0, 0}, PrimaryButton)
	c.PointerMove(Point{10, 0})
	c.PointerMove(Point{10, 30})
	c.PointerLeave()
	c.PointerMove(Point{500, 500})
	if got := c.State().Pan; got != (Point{10, 30}) {
		t.Errorf("pan = %+v, want {10 30}", got)
	}
}

func TestSecondaryButtonDoesNotDrag(t *testing.T) {
	c := NewController(testCatalog())
	c.PointerDown(Point{100, 100}, 2)
	if c.PointerMove(Point{150, 150}) {
		t.Error("right button should not start a drag")
	}
	if got := c.State().Pan; got != (Point{}) {
		t.Errorf("pan = %+v, want zero", got)
	}
}

func TestViewport(t *testing.T) {
	c := NewController(testCatalog())
	if got := c.State().Viewport(); got != (Rect{0, 0, SurfaceWidth, SurfaceHeight}) {
		t.Errorf("default viewport = %+v", got)
	}
	c.state.Zoom = 2
	c.state.Pan = Point{10, -20}
	got := c.State().Viewport()
	want := Rect{X: 200 - 10, Y: 125 + 20, Width: 400, Height: 250}
	if got != want {
		t.Errorf("viewport = %+v, want %+v", got, want)
	}
}

func TestHoverUnknownEntityIgnored(t *testing.T) {
	c := NewController(testCatalog())
	if c.HoverEnter("COBOL") {
		t.Error("unknown entity should not become active")
	}
	if c.State().ActiveEntity != "" {
		t.Errorf("active entity = %q", c.State().ActiveEntity)
	}
}

func TestTooltipArrows(t *testing.T) {
	cat := testCatalog()
	c := NewController(cat)
	nodes := NewProjector(cat.Entities).Project(0)
	if c.Tooltip(nodes) != nil {
		t.Fatal("no tooltip without an active entity")
	}

	c.HoverEnter("AWS")
	tip := c.Tooltip(nodes)
	if tip == nil {
		t.Fatal("expected a tooltip for AWS")
	}
	want := []string{"← Python", "← Kafka"}
	if len(tip.Lines) != len(want) {
		t.Fatalf("lines = %v, want %v", tip.Lines, want)
	}
	for i := range want {
		if tip.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, tip.Lines[i], want[i])
		}
	}

	c.HoverEnter("Python")
	tip = c.Tooltip(nodes)
	if tip.Lines[0] != "→ AWS" {
		t.Errorf("first Python line = %q, want %q", tip.Lines[0], "→ AWS")
	}
	if tip.X <= nodes[0].X {
		t.Errorf("tooltip x %v should sit right of the node at %v", tip.X, nodes[0].X)
	}
}

func TestEntityAtPrefersNearest(t *testing.T) {
	cat := &Catalog{Entities: []Entity{
		{Name: "back", Position: Vec3{0, 0, 3}, Color: "#fff", Size: 1},
		{Name: "front", Position: Vec3{0, 0, -3}, Color: "#fff", Size: 1},
	}}
	c := NewController(cat)
	nodes := NewProjector(cat.Entities).Project(0)

	name, ok := c.EntityAt(nodes, Point{CenterX, CenterY})
	if !ok || name != "front" {
		t.Errorf("EntityAt(center) = %q, %v; want front", name, ok)
	}
	if _, ok := c.EntityAt(nodes, Point{5, 5}); ok {
		t.Error("corner should hit nothing")
	}

	// dimmed entities still count
	c.ToggleCategory("nothing matches this")
	if _, ok := c.EntityAt(nodes, Point{CenterX, CenterY}); !ok {
		t.Error("category filter must not remove entities from hit-testing")
	}
}

func TestEntityAtHonorsZoom(t *testing.T) {
	cat := &Catalog{Entities: []Entity{
		{Name: "solo", Position: Vec3{0, 0, 0}, Color: "#fff", Size: 1},
	}}
	c := NewController(cat)
	c.state.Zoom = 2
	nodes := NewProjector(cat.Entities).Project(0)
	// at zoom 2 the surface center still maps to the world center
	if name, ok := c.EntityAt(nodes, Point{CenterX, CenterY}); !ok || name != "solo" {
		t.Errorf("EntityAt = %q, %v", name, ok)
	}
}
