package clipdown

import "strings"

// FormatClips formats clips for terminal display.
// Uses title if available, falls back to the clip URL.
// Clips are separated by blank lines.
func FormatClips(clips []*Clip) string {
	if len(clips) == 0 {
		return ""
	}

	parts := make([]string, 0, len(clips))
	for _, clip := range clips {
		header := clip.Title
		if header == "" {
			header = clip.URL
		}
		lines := []string{header, "  " + clip.URL}
		if !clip.CreatedAt.IsZero() {
			lines[1] += "  (" + clip.CreatedAt.Format("2006-01-02") + ")"
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}
