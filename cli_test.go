package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/Zachkp/neural-portfolio/internal/terminal"
)

func TestREPL(t *testing.T) {
	color.NoColor = true
	in := strings.NewReader("help\n\nsudo rm\nexit\nskills\n")
	var out bytes.Buffer

	err := repl(context.Background(), in, &out, terminal.Terminal(), terminal.RoleCommand, terminal.RoleResponse, terminal.BootTranscript())
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Establishing secure connection...",
		"Available commands:",
		`Command not recognized: "sudo rm"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "skills matrix") {
		t.Error("input after exit should not be answered")
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("PORTFOLIO_CONFIG", "")
	t.Setenv("CATALOG_PATH", "")
	catalogPath = ""

	out := filepath.Join(t.TempDir(), "graph.svg")
	cmd := rootCmd()
	cmd.SetArgs([]string{"render", "--zoom", "0.1", "--active", "AWS", "-o", out})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	var stdout bytes.Buffer
	cmd = rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"render", "--zoom", "0.1"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render to stdout: %v", err)
	}
	// zoom clamps to 0.5
	if !strings.Contains(stdout.String(), `viewBox="-400.00 -250.00 1600.00 1000.00"`) {
		t.Errorf("unexpected svg header: %.200s", stdout.String())
	}

	cmd = rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--active", "Cobol"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("expected an error for an unknown skill")
	}
}

func TestCatalogExportAndCheck(t *testing.T) {
	catalogPath = ""
	db := filepath.Join(t.TempDir(), "skills.db")

	var errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"catalog", "export", "--sqlite", db})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}

	var out bytes.Buffer
	cmd = rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"catalog", "check", db})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out.String(), "8 skills, 8 connections, 3 categories") {
		t.Errorf("check output = %s", out.String())
	}
}
