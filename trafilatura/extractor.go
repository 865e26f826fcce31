package trafilatura

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/mjarosz/clipdown"
)

// Ensure Extractor implements clipdown.Extractor at compile time.
var _ clipdown.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content fragment
// plus page metadata. Images and links are kept in the fragment; the
// conversion engine decides how to render them.
func (e *Extractor) Extract(rawHTML, pageURL string) (*clipdown.ExtractResult, error) {
	if rawHTML == "" {
		return nil, clipdown.Errorf(clipdown.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
	}

	var base *url.URL
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
			base = u
			opts.OriginalURL = u
		}
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura extract: %w", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	meta := clipdown.PageMetadata{
		Title:       result.Metadata.Title,
		Author:      result.Metadata.Author,
		Description: result.Metadata.Description,
		Site:        result.Metadata.Sitename,
		Domain:      result.Metadata.Hostname,
		URL:         result.Metadata.URL,
		Image:       result.Metadata.Image,
		Favicon:     findFavicon(rawHTML, base),
		WordCount:   len(strings.Fields(result.ContentText)),
	}
	if meta.URL == "" {
		meta.URL = pageURL
	}
	if meta.Domain == "" && base != nil {
		meta.Domain = base.Hostname()
	}
	if !result.Metadata.Date.IsZero() {
		date := result.Metadata.Date
		meta.Published = &date
	}

	return &clipdown.ExtractResult{
		HTML:     contentHTML,
		Metadata: meta,
	}, nil
}

// findFavicon locates the page favicon in the full document head.
// Trafilatura discards the head, so this runs on the raw input. The
// returned URL is absolute when a base is available.
func findFavicon(rawHTML string, base *url.URL) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	href, _ := doc.Find(`link[rel*='icon']`).First().Attr("href")
	href = strings.TrimSpace(href)
	if href == "" {
		if base == nil {
			return ""
		}
		return base.Scheme + "://" + base.Host + "/favicon.ico"
	}
	if base == nil {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(u).String()
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
