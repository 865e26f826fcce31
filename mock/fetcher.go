package mock

import (
	"context"
	"sync/atomic"

	"github.com/mjarosz/clipdown"
)

var _ clipdown.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of clipdown.Fetcher. It counts
// Fetch calls so tests can assert on retry traffic.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error

	calls atomic.Int64
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls.Add(1)
	return f.FetchFn(ctx, url)
}

// Calls reports how many times Fetch has run.
func (f *Fetcher) Calls() int {
	return int(f.calls.Load())
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
