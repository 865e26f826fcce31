package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/markdown"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	var html []byte
	var err error
	if c.File == "-" {
		html, err = io.ReadAll(deps.Stdin)
	} else {
		html, err = os.ReadFile(c.File)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	opts := clipdown.Options{
		BaseURL:          c.BaseURL,
		HeadingStyle:     clipdown.HeadingStyle(c.HeadingStyle),
		BulletListMarker: c.Bullet,
		CodeBlockStyle:   clipdown.CodeBlockStyle(c.CodeBlockStyle),
		EmDelimiter:      c.EmDelimiter,
		HorizontalRule:   c.Hr,
		Logger:           deps.Logger,
	}

	md, err := markdown.Convert(string(html), opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipdown.ErrorMessage(err))
		return err
	}

	if c.TOC {
		for _, s := range clipdown.ExtractSections(md) {
			indent := strings.Repeat("  ", s.Level-1)
			fmt.Fprintf(deps.Stdout, "%s- [%s](#%s)\n", indent, s.Title, s.Anchor)
		}
		fmt.Fprintln(deps.Stdout)
	}

	fmt.Fprintln(deps.Stdout, md)
	return nil
}
