package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/neural-portfolio/internal/catalog"
	"github.com/Zachkp/neural-portfolio/internal/config"
	"github.com/Zachkp/neural-portfolio/internal/skillgraph"
	"github.com/Zachkp/neural-portfolio/internal/snapshot"
	"github.com/Zachkp/neural-portfolio/internal/terminal"
)

var (
	brand  = color.New(color.FgHiMagenta, color.Bold)
	accent = color.New(color.FgHiCyan)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

var catalogPath string

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Neural interface portfolio server and tools",
		// no subcommand means serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Skill catalog (.toml or .db); overrides CATALOG_PATH")

	root.AddCommand(
		serveCmd(),
		renderCmd(),
		termCmd(),
		catalogCmd(),
	)
	return root
}

// Execute runs the command line until SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd().ExecuteContext(ctx)
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*skillgraph.Catalog, error) {
	path := cfg.CatalogPath
	if catalogPath != "" {
		path = catalogPath
	}
	cat, err := catalog.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Printf("Loaded skill catalog from %s", path)
	}
	return cat, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.Mode)

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	return NewServer(cfg, cat).Run(ctx)
}

func renderCmd() *cobra.Command {
	var (
		state  = skillgraph.DefaultViewState()
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one skill graph frame as SVG or PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if state.ActiveEntity != "" {
				if _, ok := cat.Entity(state.ActiveEntity); !ok {
					return fmt.Errorf("unknown skill %q", state.ActiveEntity)
				}
			}
			if state.ActiveCategory != "" {
				if _, ok := cat.Category(state.ActiveCategory); !ok {
					return fmt.Errorf("unknown category %q", state.ActiveCategory)
				}
			}

			frame := skillgraph.Render(cat, state)
			var data []byte
			switch format {
			case "svg":
				data = []byte(frame.SVG)
			case "png":
				data, err = snapshot.PNG(cmd.Context(), frame.SVG)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want svg or png)", format)
			}
			return writeOutput(cmd.OutOrStdout(), out, data)
		},
	}
	cmd.Flags().Float64Var(&state.Angle, "angle", 0, "Rotation angle in degrees")
	cmd.Flags().Float64Var(&state.Zoom, "zoom", 1, "Zoom factor, clamped to [0.5, 3]")
	cmd.Flags().Float64Var(&state.Pan.X, "pan-x", 0, "Horizontal pan")
	cmd.Flags().Float64Var(&state.Pan.Y, "pan-y", 0, "Vertical pan")
	cmd.Flags().StringVar(&state.ActiveEntity, "active", "", "Skill to highlight")
	cmd.Flags().StringVar(&state.ActiveCategory, "category", "", "Category to focus")
	cmd.Flags().StringVar(&format, "format", "svg", "Output format: svg or png")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	good.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func termCmd() *cobra.Command {
	var ai bool
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Talk to the portfolio terminal from the shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, in, out := terminal.Terminal(), terminal.RoleCommand, terminal.RoleResponse
			greeting := terminal.BootTranscript()
			if ai {
				r, in, out = terminal.Assistant(), terminal.RoleUser, terminal.RoleAI
				greeting = terminal.GreeterTranscript()
			}
			return repl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), r, in, out, greeting)
		},
	}
	cmd.Flags().BoolVar(&ai, "ai", false, "Use the assistant instead of the command terminal")
	return cmd
}

func repl(ctx context.Context, stdin io.Reader, stdout io.Writer, r *terminal.Responder, in, out terminal.Role, greeting *terminal.Transcript) error {
	for _, line := range greeting.Lines {
		printLine(stdout, line)
	}

	scanner := bufio.NewScanner(stdin)
	var t terminal.Transcript
	for {
		brand.Fprint(stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		reply := t.Exchange(r, in, out, input)
		printLine(stdout, t.Lines[len(t.Lines)-1])
		if reply.Section != "" {
			subtle.Fprintf(stdout, "  [#%s]\n", reply.Section)
		}
	}
}

func printLine(w io.Writer, line terminal.Line) {
	switch line.Role {
	case terminal.RoleAI, terminal.RoleResponse:
		accent.Fprintln(w, line.Content)
	case terminal.RoleSystem, terminal.RoleInfo:
		subtle.Fprintln(w, line.Content)
	default:
		fmt.Fprintln(w, line.Content)
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and convert skill catalogs",
	}
	cmd.AddCommand(catalogCheckCmd(), catalogExportCmd())
	return cmd
}

func catalogCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Validate a catalog and list its skills",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := catalogPath
			if len(args) == 1 {
				path = args[0]
			}
			cat, err := catalog.Load(cmd.Context(), path)
			if err != nil {
				bad.Fprintf(cmd.ErrOrStderr(), "invalid catalog: %v\n", err)
				return err
			}

			w := cmd.OutOrStdout()
			brand.Fprintf(w, "%d skills, %d connections, %d categories\n", len(cat.Entities), len(cat.Connections), len(cat.Categories))
			for _, e := range cat.Entities {
				fmt.Fprintf(w, "  %s  %-12s %s\n", accent.Sprintf("%-8.1f", e.Size), e.Name, subtle.Sprint(e.Color))
			}
			for _, c := range cat.Connections {
				_, okA := cat.Entity(c.From)
				_, okB := cat.Entity(c.To)
				if !okA || !okB {
					subtle.Fprintf(w, "  skipped: %s - %s references an unknown skill\n", c.From, c.To)
				}
			}
			good.Fprintln(w, "ok")
			return nil
		},
	}
}

func catalogExportCmd() *cobra.Command {
	var sqlitePath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as TOML, or to a new SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(cmd.Context(), catalogPath)
			if err != nil {
				return err
			}
			if sqlitePath == "" {
				data, err := catalog.EncodeTOML(cat)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := catalog.ExportSQLite(cmd.Context(), sqlitePath, cat); err != nil {
				return err
			}
			good.Fprintf(cmd.ErrOrStderr(), "exported %d skills to %s\n", len(cat.Entities), filepath.Clean(sqlitePath))
			return nil
		},
	}
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite file to create")
	return cmd
}
