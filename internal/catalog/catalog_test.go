package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Zachkp/neural-portfolio/internal/skillgraph"
)

func TestDefault(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(cat.Entities) != 8 || len(cat.Connections) != 8 || len(cat.Categories) != 3 {
		t.Fatalf("sizes = %d/%d/%d, want 8/8/3", len(cat.Entities), len(cat.Connections), len(cat.Categories))
	}
	aws, ok := cat.Entity("AWS")
	if !ok {
		t.Fatal("AWS missing")
	}
	if aws.Position != (skillgraph.Vec3{X: -3, Y: 2, Z: -3}) || aws.Size != 1.1 {
		t.Errorf("AWS = %+v", aws)
	}
	if got := cat.Categories[0].Skills[0]; got != "Python (Advanced)" {
		t.Errorf("first skill = %q", got)
	}
}

func TestLoadTOMLRoundTrip(t *testing.T) {
	want, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	data, err := EncodeTOML(want)
	if err != nil {
		t.Fatalf("EncodeTOML: %v", err)
	}
	path := filepath.Join(t.TempDir(), "skills.toml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadTOMLRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name: "self loop",
			content: `[[entities]]
name = "Go"
position = { x = 0.0, y = 0.0, z = 0.0 }
color = "#00F7FF"
size = 1.0

[[connections]]
from = "Go"
to = "Go"
`,
			want: skillgraph.ErrSelfLoop,
		},
		{
			name: "missing size",
			content: `[[entities]]
name = "Go"
color = "#00F7FF"
`,
			want: skillgraph.ErrBadSize,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			os.WriteFile(path, []byte(tt.content), 0644)
			if _, err := LoadTOML(path); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.toml")
	os.WriteFile(path, []byte("[[entities]]\nname = \"Go\"\nsize = 1.0\ncolour = \"red\"\n"), 0644)
	if _, err := LoadTOML(path); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load(context.Background(), "skills.yaml"); err == nil {
		t.Error("expected an error for .yaml")
	}
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	cat, err := Load(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Entities) != 8 {
		t.Errorf("got %d entities", len(cat.Entities))
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	want, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	// dangling connections survive provisioning; the renderer drops them
	want.Connections = append(want.Connections, skillgraph.Connection{From: "Go", To: "Python"})

	path := filepath.Join(t.TempDir(), "skills.db")
	if err := ExportSQLite(ctx, path, want); err != nil {
		t.Fatalf("ExportSQLite: %v", err)
	}
	got, err := Load(ctx, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	if err := ExportSQLite(ctx, path, want); !errors.Is(err, ErrExists) {
		t.Errorf("second export error = %v, want ErrExists", err)
	}
}

func TestLoadSQLiteMissingFile(t *testing.T) {
	_, err := LoadSQLite(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want not-exist", err)
	}
}
