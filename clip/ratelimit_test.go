package clip_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/clip"
)

var _ clipdown.DomainLimiter = (*clip.DomainLimiter)(nil)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request passes straight through", func(t *testing.T) {
		t.Parallel()

		limiter := clip.NewDomainLimiter(10)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("same domain is paced", func(t *testing.T) {
		t.Parallel()

		// 10 rps puts roughly 100ms between consecutive requests.
		limiter := clip.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("domains do not share a bucket", func(t *testing.T) {
		t.Parallel()

		limiter := clip.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "other.org"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("gives up when the context does", func(t *testing.T) {
		t.Parallel()

		limiter := clip.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})

	t.Run("handles contention from many goroutines", func(t *testing.T) {
		t.Parallel()

		limiter := clip.NewDomainLimiter(100)

		var wg sync.WaitGroup
		errs := make(chan error, 5)
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- limiter.Wait(context.Background(), "example.com")
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
	})
}
