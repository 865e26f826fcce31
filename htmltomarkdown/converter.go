package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/markdown"
)

// Ensure Converter implements clipdown.Converter at compile time.
var _ clipdown.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown as a plain-prose conversion
// engine. It produces clean CommonMark but knows nothing about math,
// callouts, footnotes or embeds; markdown.Converter is the richer
// default wiring.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert transforms HTML content into Markdown. Code blocks are
// always fenced; the underlying library has no indented style.
func (c *Converter) Convert(html string, opts clipdown.Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	opts = opts.Normalize()

	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	if opts.BaseURL != "" {
		if resolved, err := markdown.ResolveURLs(html, opts.BaseURL); err == nil {
			html = resolved
		} else {
			opts.Logger.Warn("skipping URL resolution", "base", opts.BaseURL, "err", err)
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmarkPlugin(opts),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)

	result, err := conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

func commonmarkPlugin(opts clipdown.Options) converter.Plugin {
	if opts.HeadingStyle == clipdown.HeadingSetext {
		return commonmark.NewCommonmarkPlugin(
			commonmark.WithHeadingStyle("setext"),
			commonmark.WithBulletListMarker(opts.BulletListMarker),
			commonmark.WithEmDelimiter(opts.EmDelimiter),
			commonmark.WithStrongDelimiter(opts.EmDelimiter+opts.EmDelimiter),
			commonmark.WithHorizontalRule(opts.HorizontalRule),
		)
	}
	return commonmark.NewCommonmarkPlugin(
		commonmark.WithHeadingStyle("atx"),
		commonmark.WithBulletListMarker(opts.BulletListMarker),
		commonmark.WithEmDelimiter(opts.EmDelimiter),
		commonmark.WithStrongDelimiter(opts.EmDelimiter+opts.EmDelimiter),
		commonmark.WithHorizontalRule(opts.HorizontalRule),
	)
}
