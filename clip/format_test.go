package clip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mjarosz/clipdown/clip"
)

func TestContentHash(t *testing.T) {
	t.Parallel()

	t.Run("stable across calls", func(t *testing.T) {
		t.Parallel()
		body := "## Notes\n\nA page worth keeping."
		assert.Equal(t, clip.ContentHash(body), clip.ContentHash(body))
	})

	t.Run("distinguishes bodies", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, clip.ContentHash("first draft"), clip.ContentHash("second draft"))
	})

	t.Run("hex encoded", func(t *testing.T) {
		t.Parallel()
		assert.Regexp(t, `^[0-9a-f]+$`, clip.ContentHash("draft"))
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"short URL passes through", "https://x.com", 50, "https://x.com"},
		{"long URL keeps the tail", "https://example.com/essays/index.html", 20, "...essays/index.html"},
		{"exact fit is not touched", "https://example.com", 19, "https://example.com"},
		{"zero width yields nothing", "https://example.com", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := clip.TruncateURL(tt.url, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.maxLen, 0))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bytes int
		want  string
	}{
		{"bytes", 512, "512 B"},
		{"kilobytes", 1536, "1.5 KB"},
		{"megabytes", 2 * 1024 * 1024, "2.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clip.FormatBytes(tt.bytes))
		})
	}
}
