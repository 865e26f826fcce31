package readability

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/mjarosz/clipdown"
)

// Ensure Extractor implements clipdown.Extractor at compile time.
var _ clipdown.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// It handles article-shaped pages that trafilatura parses poorly.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content fragment
// plus page metadata.
func (e *Extractor) Extract(rawHTML, pageURL string) (*clipdown.ExtractResult, error) {
	if rawHTML == "" {
		return nil, clipdown.Errorf(clipdown.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
			base = u
		}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, fmt.Errorf("readability extract: %w", err)
	}

	meta := clipdown.PageMetadata{
		Title:       article.Title,
		Author:      article.Byline,
		Description: article.Excerpt,
		Site:        article.SiteName,
		URL:         pageURL,
		Favicon:     article.Favicon,
		Image:       article.Image,
		Published:   article.PublishedTime,
		WordCount:   len(strings.Fields(article.TextContent)),
	}
	if base != nil {
		meta.Domain = base.Hostname()
	}

	return &clipdown.ExtractResult{
		HTML:     article.Content,
		Metadata: meta,
	}, nil
}
