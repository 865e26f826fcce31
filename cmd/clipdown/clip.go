package main

import (
	"fmt"

	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/clip"
)

// Run executes the clip command.
func (c *ClipCmd) Run(deps *Dependencies) error {
	urls := c.URLs

	// Sitemap mode: each argument is a site root whose sitemap lists
	// the pages to clip.
	if c.Sitemap {
		var expanded []string
		for _, siteURL := range c.URLs {
			found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, siteURL)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", clipdown.ErrorMessage(err))
				return err
			}
			if len(found) == 0 {
				fmt.Fprintf(deps.Stderr, "no sitemap found for %s\n", siteURL)
				continue
			}
			expanded = append(expanded, found...)
		}
		if len(expanded) == 0 {
			return clipdown.Errorf(clipdown.ENOTFOUND, "no URLs discovered")
		}
		urls = expanded
		fmt.Fprintf(deps.Stdout, "Found %d URLs\n", len(urls))
	}

	if c.Concurrency > 0 {
		deps.Clipper.Concurrency = c.Concurrency
	}

	progress := func(p clipdown.ClipProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", clip.TruncateURL(p.URL, 60), p.Error)
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", p.Completed, p.Total, clip.TruncateURL(p.URL, 60))
	}

	result, err := deps.Clipper.ClipAll(deps.Ctx, urls, clipdown.Options{Logger: deps.Logger}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipdown.ErrorMessage(err))
		return err
	}

	if len(result.Clips) == 0 {
		return clipdown.Errorf(clipdown.EINTERNAL, "all %d pages failed", result.Failed)
	}

	fmt.Fprintf(deps.Stdout, "Clipped %d of %d pages (%s)\n",
		len(result.Clips), len(urls), clip.FormatBytes(result.Bytes))
	return nil
}
