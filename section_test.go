package clipdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mjarosz/clipdown"
)

func TestExtractSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     []clipdown.Section
	}{
		{
			name:     "single atx heading",
			markdown: "# Weekend Reading\n\nLinks worth keeping.",
			want: []clipdown.Section{
				{Level: 1, Title: "Weekend Reading", Anchor: "weekend-reading"},
			},
		},
		{
			name:     "all six atx levels",
			markdown: "# Notes\n## Sources\n### Primary\n#### Letters\n##### Drafts\n###### Scraps",
			want: []clipdown.Section{
				{Level: 1, Title: "Notes", Anchor: "notes"},
				{Level: 2, Title: "Sources", Anchor: "sources"},
				{Level: 3, Title: "Primary", Anchor: "primary"},
				{Level: 4, Title: "Letters", Anchor: "letters"},
				{Level: 5, Title: "Drafts", Anchor: "drafts"},
				{Level: 6, Title: "Scraps", Anchor: "scraps"},
			},
		},
		{
			name:     "setext headings",
			markdown: "Page Title\n==========\n\nintro text\n\nFirst Part\n----------\n\nbody",
			want: []clipdown.Section{
				{Level: 1, Title: "Page Title", Anchor: "page-title"},
				{Level: 2, Title: "First Part", Anchor: "first-part"},
			},
		},
		{
			name:     "mixed atx and setext keep document order",
			markdown: "Top\n===\n\n### Deep\n\nMiddle\n------\n",
			want: []clipdown.Section{
				{Level: 1, Title: "Top", Anchor: "top"},
				{Level: 3, Title: "Deep", Anchor: "deep"},
				{Level: 2, Title: "Middle", Anchor: "middle"},
			},
		},
		{
			name:     "anchor drops punctuation",
			markdown: "# What's New in v2.0?",
			want: []clipdown.Section{
				{Level: 1, Title: "What's New in v2.0?", Anchor: "whats-new-in-v20"},
			},
		},
		{
			name:     "anchor collapses runs of spaces",
			markdown: "#   Spaced   Out  ",
			want: []clipdown.Section{
				{Level: 1, Title: "Spaced   Out", Anchor: "spaced-out"},
			},
		},
		{
			name:     "repeated titles get numbered anchors",
			markdown: "## Usage\n### Usage\n## Usage",
			want: []clipdown.Section{
				{Level: 2, Title: "Usage", Anchor: "usage"},
				{Level: 3, Title: "Usage", Anchor: "usage-1"},
				{Level: 2, Title: "Usage", Anchor: "usage-2"},
			},
		},
		{
			name:     "hash comments inside fences are not headings",
			markdown: "# Install\n\n```sh\n# run as root\nmake install\n```\n\n## Verify",
			want: []clipdown.Section{
				{Level: 1, Title: "Install", Anchor: "install"},
				{Level: 2, Title: "Verify", Anchor: "verify"},
			},
		},
		{
			name:     "table separator is not a setext underline",
			markdown: "| A | B |\n| --- | --- |\n| 1 | 2 |",
			want:     nil,
		},
		{
			name:     "atx requires a space after the hashes",
			markdown: "#NoSpace",
			want:     nil,
		},
		{
			name:     "prose without headings",
			markdown: "Just some text.\n\nWith paragraphs but no structure.",
			want:     nil,
		},
		{
			name:     "empty input",
			markdown: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clipdown.ExtractSections(tt.markdown))
		})
	}
}
