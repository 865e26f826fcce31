// Package rod provides a clipdown.Fetcher backed by headless Chrome.
// It returns the rendered DOM, which is required for pages whose
// content exists only after script execution; KaTeX and MathJax
// markup in particular is absent from the raw HTML.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/mjarosz/clipdown"
)

// DefaultFetchTimeout is the default per-fetch timeout.
const DefaultFetchTimeout = 10 * time.Second

// domStableWindow is how long the DOM must stay unchanged after load
// before the page is considered rendered. Math typesetters mutate the
// tree shortly after the load event fires.
const domStableWindow = 300 * time.Millisecond

// Ensure Fetcher implements clipdown.Fetcher at compile time.
var _ clipdown.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. The underlying browser is recycled periodically to keep
// memory bounded. Fetcher is safe for concurrent use by multiple
// goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML, waiting
// for the DOM to settle so client-side rendering has finished.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", clipdown.Errorf(clipdown.EINVALID, "fetcher closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := page.WaitStable(domStableWindow); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple
// times; fetches after Close fail with EINVALID.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher, or 0
// after Close. It exists so tests can verify process cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
