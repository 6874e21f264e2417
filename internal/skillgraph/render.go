package skillgraph

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	ConnectionColor  = "#00F7FF"
	HighlightColor   = "#FF00FF"
	depthFalloff     = 20.0
	activeOpacity    = 0.9
	idleOpacity      = 0.6
	dimmedOpacity    = 0.15
	haloBlend        = 0.45
	labelFontSize    = 14
	tooltipLineGap   = 16.0
	tooltipMinWidth  = 120.0
	tooltipCharWidth = 8.0
)

// Line is one connection as it will be drawn.
type Line struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	X2          float64 `json:"x2"`
	Y2          float64 `json:"y2"`
	Stroke      string  `json:"stroke"`
	Width       float64 `json:"width"`
	Opacity     float64 `json:"opacity"`
	Highlighted bool    `json:"highlighted"`
}

// Glyph is one entity circle and its label.
type Glyph struct {
	Node
	FillOpacity float64 `json:"fillOpacity"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Halo        string  `json:"halo,omitempty"`
	Active      bool    `json:"active"`
	Dimmed      bool    `json:"dimmed"`
}

// Scene is a fully styled frame, ready to serialize.
type Scene struct {
	Viewport Rect     `json:"viewport"`
	Lines    []Line   `json:"lines"`
	Glyphs   []Glyph  `json:"glyphs"`
	Tooltip  *Tooltip `json:"tooltip,omitempty"`
}

// Compose styles the projected nodes for the given view state. Connections
// with an unknown endpoint are left out. Glyphs are ordered far to near.
func Compose(cat *Catalog, nodes []Node, state ViewState, tip *Tooltip) Scene {
	byName := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byName[n.Name] = n
	}

	scene := Scene{Viewport: state.Viewport(), Tooltip: tip}

	for _, conn := range cat.Connections {
		from, ok := byName[conn.From]
		if !ok {
			continue
		}
		to, ok := byName[conn.To]
		if !ok {
			continue
		}
		factor := depthFalloff / (depthFalloff + math.Abs(from.Depth) + math.Abs(to.Depth))
		line := Line{
			From: conn.From, To: conn.To,
			X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y,
		}
		if highlighted(conn, state) {
			line.Highlighted = true
			line.Stroke = HighlightColor
			line.Width = 3 + factor
			line.Opacity = 0.95
		} else {
			line.Stroke = ConnectionColor
			line.Width = 0.5 + 1.5*factor
			line.Opacity = 0.25 + 0.5*factor
		}
		scene.Lines = append(scene.Lines, line)
	}

	var filter *Category
	if state.ActiveCategory != "" {
		if c, ok := cat.Category(state.ActiveCategory); ok {
			filter = &c
		}
	}

	ordered := make([]Node, len(nodes))
	copy(ordered, nodes)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Depth > ordered[j].Depth })

	for _, n := range ordered {
		g := Glyph{Node: n, FillOpacity: idleOpacity, Stroke: n.Color}
		if n.Name == state.ActiveEntity {
			g.Active = true
			g.FillOpacity = activeOpacity
			g.Stroke = "#FFFFFF"
			g.StrokeWidth = 2
			g.Halo = haloColor(n.Color)
		}
		if filter != nil && !filter.Matches(n.Entity) {
			g.Dimmed = true
			g.FillOpacity = dimmedOpacity
		}
		scene.Glyphs = append(scene.Glyphs, g)
	}
	return scene
}

func highlighted(conn Connection, state ViewState) bool {
	if state.ActiveEntity != "" && conn.Touches(state.ActiveEntity) {
		return true
	}
	return state.Pulse != nil && conn.Same(*state.Pulse)
}

// haloColor lightens the entity color towards white for the active glow.
func haloColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(ConnectionColor)
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, haloBlend).Clamped().Hex()
}

// SVG serializes the scene.
func (s Scene) SVG() string {
	var svg bytes.Buffer
	vp := s.Viewport
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%d" height="%d" class="skill-graph">`,
		vp.X, vp.Y, vp.Width, vp.Height, int(SurfaceWidth), int(SurfaceHeight))
	svg.WriteString("\n")
	svg.WriteString(`<defs><filter id="glow" x="-50%" y="-50%" width="200%" height="200%"><feGaussianBlur stdDeviation="4" result="blur"/><feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge></filter></defs>`)
	svg.WriteString("\n")
	fmt.Fprintf(&svg, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="rgba(10,10,10,0.5)"/>`+"\n",
		vp.X, vp.Y, vp.Width, vp.Height)

	// decorative guides
	svg.WriteString(`<g class="decorative-elements" opacity="0.2">`)
	svg.WriteString(`<circle cx="100" cy="450" r="80" fill="none" stroke="#00F7FF" stroke-width="1" stroke-dasharray="5,5"/>`)
	svg.WriteString(`<circle cx="700" cy="50" r="60" fill="none" stroke="#FF00FF" stroke-width="1" stroke-dasharray="5,5"/>`)
	svg.WriteString(`<path d="M 50 250 L 750 250" stroke="#333" stroke-width="1" stroke-dasharray="2,2"/>`)
	svg.WriteString(`<path d="M 400 50 L 400 450" stroke="#333" stroke-width="1" stroke-dasharray="2,2"/>`)
	svg.WriteString("</g>\n")

	svg.WriteString(`<g class="connections">` + "\n")
	for _, l := range s.Lines {
		class := "connection"
		if l.Highlighted {
			class += " highlighted"
		}
		fmt.Fprintf(&svg, `<line class="%s" data-from="%s" data-to="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f"/>`+"\n",
			class, html.EscapeString(l.From), html.EscapeString(l.To),
			l.X1, l.Y1, l.X2, l.Y2, l.Stroke, l.Width, l.Opacity)
	}
	svg.WriteString("</g>\n")

	svg.WriteString(`<g class="nodes">` + "\n")
	for _, g := range s.Glyphs {
		name := html.EscapeString(g.Name)
		color := html.EscapeString(g.Color)
		fmt.Fprintf(&svg, `<g class="node" data-entity="%s">`, name)
		if g.Halo != "" {
			fmt.Fprintf(&svg, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="0.35" filter="url(#glow)"/>`,
				g.X, g.Y, g.Radius*1.4, g.Halo)
		}
		fmt.Fprintf(&svg, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.2f"/>`,
			g.X, g.Y, g.Radius, color, g.FillOpacity, html.EscapeString(g.Stroke), g.StrokeWidth)
		fmt.Fprintf(&svg, `<text x="%.2f" y="%.2f" font-size="%dpx" font-family="'Space Mono', monospace" text-anchor="middle" fill="%s" fill-opacity="%.2f" font-weight="bold">%s</text>`,
			g.X, g.Y+g.Radius+15, labelFontSize, color, labelOpacity(g), name)
		svg.WriteString("</g>\n")
	}
	svg.WriteString("</g>\n")

	if s.Tooltip != nil {
		writeTooltip(&svg, s.Tooltip)
	}

	svg.WriteString("</svg>")
	return svg.String()
}

func labelOpacity(g Glyph) float64 {
	if g.Dimmed {
		return 0.3
	}
	return 1
}

func writeTooltip(svg *bytes.Buffer, tip *Tooltip) {
	longest := len([]rune(tip.Entity))
	for _, l := range tip.Lines {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}
	width := max(tooltipMinWidth, float64(longest)*tooltipCharWidth+20)
	height := tooltipLineGap*float64(len(tip.Lines)+1) + 12

	fmt.Fprintf(svg, `<g class="tooltip" transform="translate(%.2f %.2f)">`, tip.X, tip.Y)
	fmt.Fprintf(svg, `<rect width="%.2f" height="%.2f" rx="4" fill="rgba(0,0,0,0.85)" stroke="%s" stroke-opacity="0.5"/>`,
		width, height, ConnectionColor)
	fmt.Fprintf(svg, `<text x="10" y="%.2f" font-size="13px" fill="%s" font-weight="bold">%s</text>`,
		tooltipLineGap+2, ConnectionColor, html.EscapeString(tip.Entity))
	for i, l := range tip.Lines {
		fmt.Fprintf(svg, `<text x="10" y="%.2f" font-size="12px" fill="#D1D5DB">%s</text>`,
			tooltipLineGap*float64(i+2)+2, html.EscapeString(l))
	}
	svg.WriteString("</g>\n")
}
