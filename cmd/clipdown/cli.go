package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/clip"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Sitemaps clipdown.SitemapService
	Clipper  *clip.Clipper
	Clips    clipdown.ClipService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Convert ConvertCmd `cmd:"" help:"Convert an HTML file or stdin to Markdown"`
	Clip    ClipCmd    `cmd:"" help:"Clip web pages to Markdown files"`
	History HistoryCmd `cmd:"" help:"List archived clips"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	File string `arg:"" optional:"" default:"-" help:"HTML file to read, or - for stdin"`

	BaseURL        string `help:"Resolve relative links against this URL"`
	HeadingStyle   string `default:"atx" enum:"atx,setext" help:"Heading syntax"`
	Bullet         string `default:"-" enum:"-,+,*" help:"Unordered list marker"`
	CodeBlockStyle string `default:"fenced" enum:"fenced,indented" help:"Code block syntax"`
	EmDelimiter    string `default:"*" enum:"*,_" help:"Emphasis delimiter"`
	Hr             string `default:"---" help:"Horizontal rule marker"`
	TOC            bool   `help:"Prepend a linked table of contents"`
}

// ClipCmd is the "clip" subcommand.
type ClipCmd struct {
	URLs []string `arg:"" name:"url" help:"Page URLs to clip"`

	Out         string        `short:"o" default:"." help:"Directory for Markdown files"`
	DB          string        `help:"Also archive clips in this SQLite database"`
	Render      bool          `short:"r" help:"Always render pages in a headless browser"`
	Extractor   string        `default:"trafilatura" enum:"trafilatura,readability" help:"Content extractor"`
	Sitemap     bool          `help:"Treat each URL as a site root and clip the pages its sitemaps list"`
	Concurrency int           `short:"c" default:"10" help:"Concurrent clip limit"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	DB     string `help:"SQLite database to read"`
	Domain string `short:"d" help:"Only clips from this domain"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of clips to show"`
	Long   bool   `short:"l" help:"Show each clip as a block instead of one line"`
}
