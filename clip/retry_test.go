package clip_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/clip"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns the first successful fetch", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "<html></html>", nil
		}

		html, err := clip.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries transient errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			if attempts < 3 {
				return "", assert.AnError
			}
			return "<html></html>", nil
		}

		html, err := clip.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns the last error when retries are exhausted", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "", assert.AnError
		}

		_, err := clip.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{0})

		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 2, attempts) // 1 initial + 1 retry
	})

	t.Run("does not retry coded errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, url string) (string, error) {
			attempts++
			return "", clipdown.Errorf(clipdown.ENOTFOUND, "page not found: %s", url)
		}

		_, err := clip.FetchWithRetryDelays(context.Background(), "https://example.com/gone", fetch, nil, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, clipdown.ENOTFOUND, clipdown.ErrorCode(err))
		assert.Equal(t, 1, attempts, "permanent errors should fail fast")
	})

	t.Run("stops waiting when the context expires", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		fetch := func(_ context.Context, _ string) (string, error) {
			return "", assert.AnError
		}

		_, err := clip.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{5 * time.Second})

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
