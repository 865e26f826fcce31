package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/clip"
	"github.com/mjarosz/clipdown/fs"
	cliphttp "github.com/mjarosz/clipdown/http"
	"github.com/mjarosz/clipdown/markdown"
	"github.com/mjarosz/clipdown/readability"
	"github.com/mjarosz/clipdown/rod"
	clipslog "github.com/mjarosz/clipdown/slog"
	"github.com/mjarosz/clipdown/sqlite"
	"github.com/mjarosz/clipdown/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when no --db flag is given. Set before calling Run().
	DBPath string

	// Input stream for "convert -". Set before calling Run().
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	ClipService clipdown.ClipService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("clipdown"),
		kong.Description("Clip web pages to clean Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'clipdown --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire command-specific dependencies based on command
	if cmd == "clip" {
		deps.Sitemaps = clipslog.NewLoggingSitemapService(cliphttp.NewSitemapService(nil), deps.Logger)

		httpFetcher := cliphttp.NewFetcher(cliphttp.WithTimeout(cli.Clip.Timeout))

		var fetcher clipdown.Fetcher = httpFetcher
		var renderer clipdown.Fetcher

		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Clip.Timeout))
		if err != nil {
			if cli.Clip.Render {
				fmt.Fprintln(stderr, "Hint: rendering needs a local Chrome or Chromium install")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			deps.Logger.Warn("browser unavailable, clipping without rendering", "err", err)
		} else {
			defer rodFetcher.Close()
			if cli.Clip.Render {
				fetcher = rodFetcher
			} else {
				renderer = rodFetcher
			}
		}

		var extractor clipdown.Extractor
		switch cli.Clip.Extractor {
		case "readability":
			extractor = readability.NewExtractor()
		default:
			extractor = trafilatura.NewExtractor()
		}

		writers := multiWriter{fs.NewClipWriter(cli.Clip.Out)}
		if cli.Clip.DB != "" {
			m.DB = sqlite.NewDB(cli.Clip.DB)
			if err := m.DB.Open(); err != nil {
				return fmt.Errorf("open database at %q: %w", cli.Clip.DB, err)
			}
			defer m.Close()
			m.ClipService = sqlite.NewClipService(m.DB)
			writers = append(writers, m.ClipService)
		}

		deps.Clipper = &clip.Clipper{
			Fetcher:     fetcher,
			Renderer:    renderer,
			Extractor:   clipslog.NewLoggingExtractor(extractor, deps.Logger),
			Converter:   clipslog.NewLoggingConverter(markdown.NewConverter(), deps.Logger),
			Clips:       writers,
			Limiter:     clip.NewDomainLimiter(1.0),
			Logger:      deps.Logger,
			Concurrency: cli.Clip.Concurrency,
		}
	}

	if cmd == "history" {
		path := cli.History.DB
		if path == "" {
			path = m.DBPath
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CLIPDOWN_DB to use a different database path\n")
			return fmt.Errorf("open database at %q: %w", path, err)
		}
		defer m.Close()
		m.ClipService = sqlite.NewClipService(m.DB)
		deps.Clips = m.ClipService
	}

	return kongCtx.Run(deps)
}

// multiWriter fans each clip out to every writer in order.
type multiWriter []clipdown.ClipWriter

var _ clipdown.ClipWriter = (multiWriter)(nil)

// CreateClip implements clipdown.ClipWriter.
func (w multiWriter) CreateClip(ctx context.Context, c *clipdown.Clip) error {
	for _, cw := range w {
		if err := cw.CreateClip(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("CLIPDOWN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "clipdown.db"
	}
	dir := filepath.Join(home, ".clipdown")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "clipdown.db")
}
