package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mjarosz/clipdown"
	"github.com/mjarosz/clipdown/clip"
	main "github.com/mjarosz/clipdown/cmd/clipdown"
	"github.com/mjarosz/clipdown/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClipper(fetcher *mock.Fetcher, writer *mock.ClipWriter) *clip.Clipper {
	return &clip.Clipper{
		Fetcher: fetcher,
		Extractor: &mock.Extractor{
			ExtractFn: func(html, pageURL string) (*clipdown.ExtractResult, error) {
				return &clipdown.ExtractResult{
					HTML:     html,
					Metadata: clipdown.PageMetadata{Title: "Doc", Domain: "example.com"},
				}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string, opts clipdown.Options) (string, error) {
				return "# Doc", nil
			},
		},
		Clips: writer,
	}
}

func TestClipCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("clips a page and prints a summary", func(t *testing.T) {
		t.Parallel()

		writer := &mock.ClipWriter{}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<article>body</article>", nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Clipper: newTestClipper(fetcher, writer),
		}

		cmd := &main.ClipCmd{URLs: []string{"https://example.com/a"}}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "[1/1] https://example.com/a")
		assert.Contains(t, output, "Clipped 1 of 1 pages")
		stored := writer.Created()
		require.Len(t, stored, 1)
		assert.Equal(t, "https://example.com/a", stored[0].URL)
		assert.Equal(t, "# Doc", stored[0].Markdown)
	})

	t.Run("expands site roots through their sitemaps", func(t *testing.T) {
		t.Parallel()

		var discovered string
		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, siteURL string) ([]string, error) {
				discovered = siteURL
				return []string{"https://example.com/a", "https://example.com/b"}, nil
			},
		}

		writer := &mock.ClipWriter{}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<article>body</article>", nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Sitemaps: sitemaps,
			Clipper:  newTestClipper(fetcher, writer),
		}

		cmd := &main.ClipCmd{
			URLs:        []string{"https://example.com"},
			Sitemap:     true,
			Concurrency: 1,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", discovered)
		output := stdout.String()
		assert.Contains(t, output, "Found 2 URLs")
		assert.Contains(t, output, "Clipped 2 of 2 pages")
		assert.Len(t, writer.Created(), 2)
	})

	t.Run("reports failed pages and clips the rest", func(t *testing.T) {
		t.Parallel()

		writer := &mock.ClipWriter{}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/broken" {
					return "", clipdown.Errorf(clipdown.ENOTFOUND, "page not found")
				}
				return "<article>body</article>", nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Clipper: newTestClipper(fetcher, writer),
		}

		cmd := &main.ClipCmd{
			URLs:        []string{"https://example.com/broken", "https://example.com/fine"},
			Concurrency: 1,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skip https://example.com/broken")
		assert.Contains(t, stdout.String(), "Clipped 1 of 2 pages")
		stored := writer.Created()
		require.Len(t, stored, 1)
		assert.Equal(t, "https://example.com/fine", stored[0].URL)
	})

	t.Run("fails when every page fails", func(t *testing.T) {
		t.Parallel()

		writer := &mock.ClipWriter{}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", clipdown.Errorf(clipdown.ENOTFOUND, "page not found")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Clipper: newTestClipper(fetcher, writer),
		}

		cmd := &main.ClipCmd{URLs: []string{"https://example.com/broken"}}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, clipdown.EINTERNAL, clipdown.ErrorCode(err))
	})

	t.Run("fails when no sitemap is found", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, siteURL string) ([]string, error) {
				return []string{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Sitemaps: sitemaps,
		}

		cmd := &main.ClipCmd{
			URLs:    []string{"https://example.com"},
			Sitemap: true,
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, clipdown.ENOTFOUND, clipdown.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no sitemap found for https://example.com")
	})
}
