package skillgraph

import "math"

// Projection tuning. Depth is kept positive by the projector's offset, so
// depth + PerspectiveC never reaches zero.
const (
	PerspectiveK       = 15.0
	PerspectiveC       = 5.0
	MinDepthOffset     = 10.0
	ScaleXY            = 50.0
	SizeUnit           = 20.0
	SizeBlend          = 0.6
	SurfaceWidth       = 800.0
	SurfaceHeight      = 500.0
	CenterX            = SurfaceWidth / 2
	CenterY            = SurfaceHeight / 2
	depthOffsetPadding = 1.0
)

// Node is the per-frame projection of one entity. It belongs to the render
// pass that asked for it.
type Node struct {
	Entity
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Depth  float64 `json:"depth"`
	Radius float64 `json:"radius"`
}

// Projector maps catalog entities to screen space for a rotation angle.
type Projector struct {
	entities    []Entity
	depthOffset float64
}

// NewProjector sizes the depth offset from the catalog's largest horizontal
// radius so every rotated depth stays at or above 1.
func NewProjector(entities []Entity) *Projector {
	var r float64
	for _, e := range entities {
		r = math.Max(r, math.Hypot(e.Position.X, e.Position.Z))
	}
	return &Projector{
		entities:    entities,
		depthOffset: math.Max(MinDepthOffset, r+depthOffsetPadding),
	}
}

// DepthOffset returns the constant added to rotated z.
func (p *Projector) DepthOffset() float64 { return p.depthOffset }

// Project returns one node per entity, in catalog order.
func (p *Projector) Project(angle float64) []Node {
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)

	nodes := make([]Node, len(p.entities))
	for i, e := range p.entities {
		rx := e.Position.X*cos + e.Position.Z*sin
		rz := -e.Position.X*sin + e.Position.Z*cos
		ry := e.Position.Y

		depth := rz + p.depthOffset
		scale := PerspectiveK / (depth + PerspectiveC)

		nodes[i] = Node{
			Entity: e,
			X:      rx*scale*ScaleXY + CenterX,
			Y:      -ry*scale*ScaleXY + CenterY,
			Depth:  depth,
			Radius: e.Size * SizeUnit * (scale*SizeBlend + (1 - SizeBlend)),
		}
	}
	return nodes
}

// WrapAngle normalizes degrees into [0, 360).
func WrapAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
