package clipdown_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mjarosz/clipdown"
)

func TestFormatClips(t *testing.T) {
	t.Parallel()

	march14 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		clips []*clipdown.Clip
		want  string
	}{
		{
			name:  "titled clip",
			clips: []*clipdown.Clip{{Title: "Getting Started", URL: "https://example.com/docs"}},
			want:  "Getting Started\n  https://example.com/docs",
		},
		{
			name:  "untitled clip falls back to the URL",
			clips: []*clipdown.Clip{{URL: "https://example.com/docs"}},
			want:  "https://example.com/docs\n  https://example.com/docs",
		},
		{
			name: "clip date follows the URL",
			clips: []*clipdown.Clip{
				{Title: "Dated", URL: "https://example.com", CreatedAt: march14},
			},
			want: "Dated\n  https://example.com  (2025-03-14)",
		},
		{
			name: "clips separated by blank lines",
			clips: []*clipdown.Clip{
				{Title: "One", URL: "https://example.com/1"},
				{Title: "Two", URL: "https://example.com/2"},
			},
			want: "One\n  https://example.com/1\n\nTwo\n  https://example.com/2",
		},
		{
			name:  "no clips",
			clips: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clipdown.FormatClips(tt.clips))
		})
	}
}
