package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mjarosz/clipdown"
	main "github.com/mjarosz/clipdown/cmd/clipdown"
	"github.com/mjarosz/clipdown/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists clips with date, title, and URL", func(t *testing.T) {
		t.Parallel()

		var gotFilter clipdown.ClipFilter
		clips := &mock.ClipService{
			FindClipsFn: func(_ context.Context, filter clipdown.ClipFilter) ([]*clipdown.Clip, error) {
				gotFilter = filter
				return []*clipdown.Clip{
					{
						ID:        "clip-123",
						URL:       "https://example.com/a",
						Title:     "Alpha Guide",
						CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:        "clip-456",
						URL:       "https://example.org/b",
						Title:     "Bravo Notes",
						CreatedAt: time.Date(2025, 1, 16, 11, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Clips:  clips,
		}

		cmd := &main.HistoryCmd{Limit: 20}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 20, gotFilter.Limit)

		output := stdout.String()
		assert.Contains(t, output, "2025-01-15")
		assert.Contains(t, output, "Alpha Guide")
		assert.Contains(t, output, "https://example.com/a")
		assert.Contains(t, output, "2025-01-16")
		assert.Contains(t, output, "Bravo Notes")
		assert.Contains(t, output, "https://example.org/b")
	})

	t.Run("falls back to the URL when a clip has no title", func(t *testing.T) {
		t.Parallel()

		clips := &mock.ClipService{
			FindClipsFn: func(_ context.Context, _ clipdown.ClipFilter) ([]*clipdown.Clip, error) {
				return []*clipdown.Clip{
					{URL: "https://example.com/untitled", CreatedAt: time.Now()},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Clips:  clips,
		}

		cmd := &main.HistoryCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://example.com/untitled")
	})

	t.Run("prints block format with --long", func(t *testing.T) {
		t.Parallel()

		clips := &mock.ClipService{
			FindClipsFn: func(_ context.Context, _ clipdown.ClipFilter) ([]*clipdown.Clip, error) {
				return []*clipdown.Clip{
					{
						URL:       "https://example.com/a",
						Title:     "Alpha Guide",
						CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Clips:  clips,
		}

		cmd := &main.HistoryCmd{Long: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Alpha Guide\n  https://example.com/a  (2025-01-15)\n", stdout.String())
	})

	t.Run("filters by domain", func(t *testing.T) {
		t.Parallel()

		var gotFilter clipdown.ClipFilter
		clips := &mock.ClipService{
			FindClipsFn: func(_ context.Context, filter clipdown.ClipFilter) ([]*clipdown.Clip, error) {
				gotFilter = filter
				return []*clipdown.Clip{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Clips:  clips,
		}

		cmd := &main.HistoryCmd{Domain: "example.com"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.Domain)
		assert.Equal(t, "example.com", *gotFilter.Domain)
	})

	t.Run("shows helpful message when no clips exist", func(t *testing.T) {
		t.Parallel()

		clips := &mock.ClipService{
			FindClipsFn: func(_ context.Context, _ clipdown.ClipFilter) ([]*clipdown.Clip, error) {
				return []*clipdown.Clip{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Clips:  clips,
		}

		cmd := &main.HistoryCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No clips")
	})

	t.Run("returns error when FindClips fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")

		clips := &mock.ClipService{
			FindClipsFn: func(_ context.Context, _ clipdown.ClipFilter) ([]*clipdown.Clip, error) {
				return nil, dbErr
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Clips:  clips,
		}

		cmd := &main.HistoryCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
