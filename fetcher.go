package clipdown

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle
// JavaScript-rendered content; math markup in particular often exists
// only in the rendered DOM.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources such as browser processes.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting for fetches.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers page URLs from a site's sitemaps, for
// clipping a site section in one batch.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the sitemaps of
	// the site at siteURL. When siteURL carries a path, only URLs
	// under that path are returned. An empty (non-nil) slice means
	// no sitemap was found.
	DiscoverURLs(ctx context.Context, siteURL string) ([]string, error)
}
