// Package catalog provisions the skill graph data: the built-in catalog,
// TOML files and read-only SQLite snapshots.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Zachkp/neural-portfolio/internal/skillgraph"
)

//go:embed default.toml
var defaultTOML []byte

// Default returns the catalog shipped with the site.
func Default() (*skillgraph.Catalog, error) {
	cat, err := decode(defaultTOML)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return cat, nil
}

// LoadTOML reads a catalog from a TOML file.
func LoadTOML(path string) (*skillgraph.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Load picks a loader by file extension. An empty path means the built-in
// catalog.
func Load(ctx context.Context, path string) (*skillgraph.Catalog, error) {
	if path == "" {
		return Default()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("catalog %s: unsupported format %q", path, filepath.Ext(path))
	}
}

// EncodeTOML writes cat in the same layout Default and LoadTOML read.
func EncodeTOML(cat *skillgraph.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cat); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (*skillgraph.Catalog, error) {
	var cat skillgraph.Catalog
	md, err := toml.Decode(string(data), &cat)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}
