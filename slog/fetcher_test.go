package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjarosz/clipdown/mock"
	clipslog "github.com/mjarosz/clipdown/slog"
)

func TestLoggingFetcher_LogsSuccessAtDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html>content</html>", nil
		},
	}

	fetcher := clipslog.NewLoggingFetcher(inner, logger)
	html, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

	require.NoError(t, err)
	assert.Equal(t, "<html>content</html>", html)
	output := buf.String()
	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, "msg=fetch")
	assert.Contains(t, output, "url=https://example.com/docs")
	assert.Contains(t, output, "bytes=20")
	assert.Contains(t, output, "duration=")
}

func TestLoggingFetcher_LogsFailureAtError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	innerErr := errors.New("network error")
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", innerErr
		},
	}

	fetcher := clipslog.NewLoggingFetcher(inner, logger)
	_, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

	// The decorator logs but never rewrites the error.
	require.ErrorIs(t, err, innerErr)
	output := buf.String()
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, `msg="fetch failed"`)
	assert.Contains(t, output, `err="network error"`)
	assert.NotContains(t, output, "bytes=")
}

func TestLoggingFetcher_CloseDelegatesSilently(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	fetcher := clipslog.NewLoggingFetcher(inner, logger)
	require.NoError(t, fetcher.Close())
	assert.True(t, closed)
	assert.Zero(t, buf.Len())
}
