package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/neural-portfolio/internal/skillgraph"
)

const schema = `
CREATE TABLE entities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	x REAL NOT NULL,
	y REAL NOT NULL,
	z REAL NOT NULL,
	color TEXT NOT NULL,
	size REAL NOT NULL
);
CREATE TABLE connections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_name TEXT NOT NULL,
	to_name TEXT NOT NULL
);
CREATE TABLE categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	icon TEXT,
	color TEXT,
	skills TEXT -- JSON array
);`

// ErrExists is returned when an export would overwrite a file.
var ErrExists = errors.New("catalog file already exists")

// LoadSQLite reads a catalog from a SQLite file opened read-only. Rows keep
// their insertion order.
func LoadSQLite(ctx context.Context, path string) (*skillgraph.Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	var cat skillgraph.Catalog

	rows, err := db.QueryContext(ctx, `SELECT name, x, y, z, color, size FROM entities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	for rows.Next() {
		var e skillgraph.Entity
		if err := rows.Scan(&e.Name, &e.Position.X, &e.Position.Y, &e.Position.Z, &e.Color, &e.Size); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		cat.Entities = append(cat.Entities, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, `SELECT from_name, to_name FROM connections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query connections: %w", err)
	}
	for rows.Next() {
		var c skillgraph.Connection
		if err := rows.Scan(&c.From, &c.To); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		cat.Connections = append(cat.Connections, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, `SELECT title, COALESCE(icon, ''), COALESCE(color, ''), COALESCE(skills, '[]') FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c      skillgraph.Category
			skills string
		)
		if err := rows.Scan(&c.Title, &c.Icon, &c.Color, &skills); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if err := json.Unmarshal([]byte(skills), &c.Skills); err != nil {
			return nil, fmt.Errorf("category %q skills: %w", c.Title, err)
		}
		cat.Categories = append(cat.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cat, nil
}

// ExportSQLite writes cat into a new SQLite file. It refuses to touch an
// existing file.
func ExportSQLite(ctx context.Context, path string, cat *skillgraph.Catalog) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for _, e := range cat.Entities {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entities (name, x, y, z, color, size) VALUES (?, ?, ?, ?, ?, ?)`,
			e.Name, e.Position.X, e.Position.Y, e.Position.Z, e.Color, e.Size)
		if err != nil {
			return fmt.Errorf("insert entity %q: %w", e.Name, err)
		}
	}
	for _, c := range cat.Connections {
		if _, err := tx.ExecContext(ctx, `INSERT INTO connections (from_name, to_name) VALUES (?, ?)`, c.From, c.To); err != nil {
			return fmt.Errorf("insert connection %s-%s: %w", c.From, c.To, err)
		}
	}
	for _, c := range cat.Categories {
		skills, err := json.Marshal(c.Skills)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO categories (title, icon, color, skills) VALUES (?, ?, ?, ?)`,
			c.Title, c.Icon, c.Color, string(skills))
		if err != nil {
			return fmt.Errorf("insert category %q: %w", c.Title, err)
		}
	}
	return tx.Commit()
}
