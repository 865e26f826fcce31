package clipdown

import "time"

// PageMetadata describes the page a content fragment was extracted
// from. It passes through the pipeline unmodified; only the content
// fragment feeds the conversion engine.
type PageMetadata struct {
	Title       string     `json:"title"`
	Author      string     `json:"author,omitempty"`
	Description string     `json:"description,omitempty"`
	Site        string     `json:"site,omitempty"`
	Domain      string     `json:"domain,omitempty"`
	URL         string     `json:"url,omitempty"`
	Favicon     string     `json:"favicon,omitempty"`
	Image       string     `json:"image,omitempty"`
	Published   *time.Time `json:"published,omitempty"`
	WordCount   int        `json:"wordCount,omitempty"`
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// HTML is the main content fragment as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	HTML string

	// Metadata describes the source page.
	Metadata PageMetadata
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content
	// fragment plus page metadata. The page URL, when known, lets
	// the implementation resolve metadata references such as the
	// favicon; pass an empty string otherwise.
	Extract(html, pageURL string) (*ExtractResult, error)
}
