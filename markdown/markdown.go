// Package markdown implements a rule-based HTML to Markdown converter.
//
// The converter walks the parsed tree bottom-up and applies an ordered
// catalog of rules: for each element the first rule whose predicate
// matches renders it, receiving the already-converted content of its
// children. Elements no rule claims fall back to generic inline/block
// handling. The catalog preserves constructs plain converters lose:
// pipe and raw tables, nested and task lists, math in MathJax, MathML
// and KaTeX notation, callouts, footnotes and citations, and video or
// social embeds. Relative URLs are resolved against the source page
// before conversion and a final string pass cleans up the output.
package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mjarosz/clipdown"
)

// Ensure Converter implements clipdown.Converter at compile time.
var _ clipdown.Converter = (*Converter)(nil)

// Converter is the rule-based clipdown.Converter implementation.
// The zero value is ready to use and safe for concurrent calls: all
// conversion state lives on the call stack.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert implements clipdown.Converter.
func (c *Converter) Convert(html string, opts clipdown.Options) (string, error) {
	return Convert(html, opts)
}

// Convert transforms an HTML fragment into Markdown. When
// opts.BaseURL is set, relative URLs are resolved against it first.
// Recoverable failures (bad URLs, unparseable math) degrade locally
// and are logged on opts.Logger; an unexpected failure during the
// tree walk yields a marked partial result embedding the resolved
// HTML instead of an error, so content is never lost.
func Convert(html string, opts clipdown.Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	opts = opts.Normalize()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", clipdown.Errorf(clipdown.EINVALID, "parse html: %s", err)
	}
	if opts.BaseURL != "" {
		resolveDocument(doc, opts.BaseURL, opts.Logger)
	}

	c := &conversion{opts: opts, logger: opts.Logger}
	md, ok := c.run(doc)
	if !ok {
		// Degrade to the post-resolution HTML rather than losing
		// the page.
		html, _ = doc.Find("body").Html()
		return partialResult(html), nil
	}
	return postprocess(md), nil
}

// partialResult marks a failed conversion and carries the source HTML
// through so the caller still has the content.
func partialResult(html string) string {
	return "<!-- clipdown: conversion failed, original content below -->\n\n" + strings.TrimSpace(html)
}
