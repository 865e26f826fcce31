// Package clip orchestrates the clipping pipeline. It coordinates
// fetching, content extraction, markdown conversion, and storage of
// web pages.
package clip

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/mjarosz/clipdown"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds ClipAll workers when Concurrency is unset.
const defaultConcurrency = 10

// Clipper turns web pages into stored clips.
//
// Fetcher, Extractor, and Converter are required. Renderer, Clips,
// Limiter, and Logger are optional: a nil Renderer disables the
// browser-rendering fallback, a nil Clips skips persistence, a nil
// Limiter disables rate limiting, and a nil Logger discards warnings.
type Clipper struct {
	Fetcher   clipdown.Fetcher
	Renderer  clipdown.Fetcher
	Extractor clipdown.Extractor
	Converter clipdown.Converter
	Clips     clipdown.ClipWriter
	Limiter   clipdown.DomainLimiter
	Logger    *slog.Logger

	Concurrency int
	RetryDelays []time.Duration
}

// Result summarizes a batch clip run.
type Result struct {
	// Clips holds the successfully clipped pages in input order.
	Clips []*clipdown.Clip

	// Failed counts URLs that could not be clipped.
	Failed int

	// Bytes is the total markdown size across Clips.
	Bytes int
}

// clipResult holds the outcome of processing a single URL.
type clipResult struct {
	position int
	url      string
	clip     *clipdown.Clip
	err      error
}

// ClipHTML converts already-fetched HTML into a clip and stores it
// when a writer is configured. The page URL anchors relative links in
// the markdown output and identifies the clip.
func (c *Clipper) ClipHTML(ctx context.Context, html, pageURL string, opts clipdown.Options) (*clipdown.Clip, error) {
	clip, err := c.buildClip(html, pageURL, opts)
	if err != nil {
		return nil, err
	}
	if c.Clips != nil {
		if err := c.Clips.CreateClip(ctx, clip); err != nil {
			return nil, err
		}
	}
	return clip, nil
}

// Clip fetches the page at pageURL and converts it into a clip.
// The plain fetcher is tried first; when a renderer is configured and
// script execution appears to add content, the rendered HTML is used
// instead.
func (c *Clipper) Clip(ctx context.Context, pageURL string, opts clipdown.Options) (*clipdown.Clip, error) {
	result := c.clipURL(ctx, 0, pageURL, opts)
	return result.clip, result.err
}

// ClipAll clips every URL with bounded concurrency. The progress
// callback, if provided, receives one event per URL as processing
// completes. Individual failures are reported through progress events
// and the result's Failed count rather than aborting the batch.
func (c *Clipper) ClipAll(ctx context.Context, urls []string, opts clipdown.Options, progress clipdown.ClipProgressFunc) (*Result, error) {
	if len(urls) == 0 {
		return &Result{}, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	total := len(urls)
	resultCh := make(chan clipResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			g.Go(func() error {
				resultCh <- c.clipURL(gctx, i, pageURL, opts)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect in completion order, report progress, then assemble the
	// result in input order.
	results := make([]clipResult, total)
	result := &Result{}
	completed := 0
	for r := range resultCh {
		completed++
		results[r.position] = r

		if r.err != nil {
			result.Failed++
		}
		if progress != nil {
			progress(clipdown.ClipProgress{
				URL:       r.url,
				Completed: completed,
				Total:     total,
				Error:     r.err,
			})
		}
	}

	for _, r := range results {
		if r.err != nil {
			continue
		}
		result.Clips = append(result.Clips, r.clip)
		result.Bytes += len(r.clip.Markdown)
	}

	return result, nil
}

// clipURL rate-limits, fetches, and clips a single URL.
func (c *Clipper) clipURL(ctx context.Context, position int, pageURL string, opts clipdown.Options) clipResult {
	result := clipResult{
		position: position,
		url:      pageURL,
	}

	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		result.err = clipdown.Errorf(clipdown.EINVALID, "invalid clip URL %q", pageURL)
		return result
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}

	clip, err := c.ClipHTML(ctx, html, pageURL, opts)
	if err != nil {
		result.err = err
		return result
	}

	result.clip = clip
	return result
}

// fetchPage retrieves page HTML, preferring the plain fetcher. When a
// renderer is configured the rendered DOM is fetched as well and used
// whenever it carries meaningfully more content, which is the case for
// script-driven pages and for math markup that typesetters inject
// after load.
func (c *Clipper) fetchPage(ctx context.Context, pageURL string) (string, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, c.Logger, delays)
	if err != nil {
		// A missing page stays missing in a browser; everything else
		// is worth one rendered attempt since some sites only answer
		// real browsers.
		if c.Renderer == nil || clipdown.ErrorCode(err) == clipdown.ENOTFOUND {
			return "", err
		}
		return FetchWithRetryDelays(ctx, pageURL, c.Renderer.Fetch, c.Logger, delays)
	}

	if c.Renderer == nil {
		return html, nil
	}

	rendered, err := c.Renderer.Fetch(ctx, pageURL)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Debug("rendered fetch failed, keeping plain HTML", "url", pageURL, "err", err)
		}
		return html, nil
	}

	if ContentDiffers(html, rendered, pageURL, c.Extractor) {
		return rendered, nil
	}
	return html, nil
}

// buildClip extracts, converts, and assembles a clip from page HTML.
func (c *Clipper) buildClip(html, pageURL string, opts clipdown.Options) (*clipdown.Clip, error) {
	extracted, err := c.Extractor.Extract(html, pageURL)
	if err != nil {
		return nil, err
	}

	if opts.BaseURL == "" {
		opts.BaseURL = pageURL
	}

	markdown, err := c.Converter.Convert(extracted.HTML, opts)
	if err != nil {
		return nil, err
	}

	clip := &clipdown.Clip{
		URL:         pageURL,
		Title:       extracted.Metadata.Title,
		Markdown:    markdown,
		Filename:    clipdown.SafeFilename(extracted.Metadata.Title),
		ContentHash: ContentHash(markdown),
		Metadata:    extracted.Metadata,
		CreatedAt:   time.Now().UTC(),
	}
	if err := clip.Validate(); err != nil {
		return nil, err
	}
	return clip, nil
}
