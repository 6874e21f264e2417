package skillgraph

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Vec3 is a position in catalog units.
type Vec3 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	Z float64 `json:"z" toml:"z"`
}

// Entity is a named skill node. Entities are never mutated after load.
type Entity struct {
	Name     string  `json:"name" toml:"name"`
	Position Vec3    `json:"position" toml:"position"`
	Color    string  `json:"color" toml:"color"`
	Size     float64 `json:"size" toml:"size"`
}

// Connection pairs two entity names. Direction only matters for tooltips.
type Connection struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

// Touches reports whether name is either end of c.
func (c Connection) Touches(name string) bool {
	return c.From == name || c.To == name
}

// Same reports whether c and o join the same two entities in either orientation.
func (c Connection) Same(o Connection) bool {
	return (c.From == o.From && c.To == o.To) || (c.From == o.To && c.To == o.From)
}

// Category labels a filter button and selects entities by color token.
type Category struct {
	Title  string   `json:"title" toml:"title"`
	Icon   string   `json:"icon" toml:"icon"`
	Color  string   `json:"color" toml:"color"`
	Skills []string `json:"skills" toml:"skills"`
}

// Palette resolves category color tokens to the hex colors entities use.
var Palette = map[string]string{
	"teal":    "#00F7FF",
	"magenta": "#FF00FF",
}

// Matches reports whether e belongs to the category by partial color-token match.
func (c Category) Matches(e Entity) bool {
	token := strings.ToLower(strings.TrimSpace(c.Color))
	if token == "" {
		return false
	}
	color := strings.ToLower(e.Color)
	if strings.Contains(color, token) {
		return true
	}
	if hex, ok := Palette[token]; ok && strings.EqualFold(e.Color, hex) {
		return true
	}
	return false
}

// Catalog is the static data the graph renders.
type Catalog struct {
	Entities    []Entity     `json:"entities" toml:"entities"`
	Connections []Connection `json:"connections" toml:"connections"`
	Categories  []Category   `json:"categories" toml:"categories"`
}

var (
	ErrEmptyName     = errors.New("entity name is empty")
	ErrDuplicateName = errors.New("duplicate entity name")
	ErrBadPosition   = errors.New("entity position is not finite")
	ErrBadSize       = errors.New("entity size must be positive")
	ErrSelfLoop      = errors.New("connection joins an entity to itself")
)

// Validate checks the structural invariants of the catalog. Connections that
// reference unknown entities are allowed; the renderer skips them.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Entities))
	for i, e := range c.Entities {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("entity %d: %w", i, ErrEmptyName)
		}
		if seen[e.Name] {
			return fmt.Errorf("entity %q: %w", e.Name, ErrDuplicateName)
		}
		seen[e.Name] = true
		if !finite(e.Position.X) || !finite(e.Position.Y) || !finite(e.Position.Z) {
			return fmt.Errorf("entity %q: %w", e.Name, ErrBadPosition)
		}
		if !(e.Size > 0) || math.IsInf(e.Size, 0) {
			return fmt.Errorf("entity %q: %w", e.Name, ErrBadSize)
		}
	}
	for i, conn := range c.Connections {
		if conn.From == conn.To {
			return fmt.Errorf("connection %d (%s): %w", i, conn.From, ErrSelfLoop)
		}
	}
	return nil
}

// Entity returns the entity with the given name.
func (c *Catalog) Entity(name string) (Entity, bool) {
	for _, e := range c.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// Category returns the category with the given title.
func (c *Catalog) Category(title string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Title == title {
			return cat, true
		}
	}
	return Category{}, false
}

// ConnectionsOf returns every connection touching name whose other end exists.
func (c *Catalog) ConnectionsOf(name string) []Connection {
	var out []Connection
	for _, conn := range c.Connections {
		if !conn.Touches(name) {
			continue
		}
		if _, ok := c.Entity(conn.From); !ok {
			continue
		}
		if _, ok := c.Entity(conn.To); !ok {
			continue
		}
		out = append(out, conn)
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
