package clipdown

import "log/slog"

// HeadingStyle selects the markdown heading syntax.
type HeadingStyle string

// HeadingStyle values.
const (
	// HeadingATX renders headings as "# Heading".
	HeadingATX HeadingStyle = "atx"

	// HeadingSetext underlines level 1 and 2 headings with = and -.
	// Deeper levels fall back to atx.
	HeadingSetext HeadingStyle = "setext"
)

// CodeBlockStyle selects the markdown code block syntax.
type CodeBlockStyle string

// CodeBlockStyle values.
const (
	// CodeBlockFenced renders code blocks between ``` fences.
	CodeBlockFenced CodeBlockStyle = "fenced"

	// CodeBlockIndented renders code blocks indented by four spaces.
	// Indented blocks cannot carry a language tag.
	CodeBlockIndented CodeBlockStyle = "indented"
)

// Options configures a single HTML to Markdown conversion. The zero
// value is usable; Normalize fills in defaults. An Options value is
// never mutated mid-conversion, so the same value may be shared by
// concurrent conversions.
type Options struct {
	// BaseURL is the address of the page the HTML came from. When
	// set, relative src, href and srcset attributes are rewritten
	// against it before conversion. When empty, URL resolution is
	// skipped.
	BaseURL string

	// HeadingStyle is "atx" (default) or "setext".
	HeadingStyle HeadingStyle

	// BulletListMarker is the unordered list marker: "-" (default),
	// "+" or "*".
	BulletListMarker string

	// CodeBlockStyle is "fenced" (default) or "indented".
	CodeBlockStyle CodeBlockStyle

	// EmDelimiter is the emphasis delimiter: "*" (default) or "_".
	// Strong emphasis doubles it.
	EmDelimiter string

	// HorizontalRule is the token emitted for hr elements.
	// Defaults to "---".
	HorizontalRule string

	// Logger receives warnings about recoverable failures such as
	// unresolvable URLs or unparseable math. Nil discards them.
	Logger *slog.Logger
}

// Normalize returns a copy of o with empty fields replaced by defaults.
func (o Options) Normalize() Options {
	if o.HeadingStyle == "" {
		o.HeadingStyle = HeadingATX
	}
	if o.BulletListMarker == "" {
		o.BulletListMarker = "-"
	}
	if o.CodeBlockStyle == "" {
		o.CodeBlockStyle = CodeBlockFenced
	}
	if o.EmDelimiter == "" {
		o.EmDelimiter = "*"
	}
	if o.HorizontalRule == "" {
		o.HorizontalRule = "---"
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Validate returns an error if any option is set to an unsupported value.
func (o Options) Validate() error {
	switch o.HeadingStyle {
	case "", HeadingATX, HeadingSetext:
	default:
		return Errorf(EINVALID, "unsupported heading style %q", o.HeadingStyle)
	}
	switch o.BulletListMarker {
	case "", "-", "+", "*":
	default:
		return Errorf(EINVALID, "unsupported bullet list marker %q", o.BulletListMarker)
	}
	switch o.CodeBlockStyle {
	case "", CodeBlockFenced, CodeBlockIndented:
	default:
		return Errorf(EINVALID, "unsupported code block style %q", o.CodeBlockStyle)
	}
	switch o.EmDelimiter {
	case "", "*", "_":
	default:
		return Errorf(EINVALID, "unsupported emphasis delimiter %q", o.EmDelimiter)
	}
	return nil
}
