package clipdown

import (
	"strings"
	"unicode"
)

// maxFilenameRunes bounds generated filenames so they stay under
// common filesystem limits with room for an extension.
const maxFilenameRunes = 120

// SafeFilename derives a filesystem-safe filename (without extension)
// from a page title. Characters that are illegal on common filesystems
// are dropped, whitespace runs collapse to single spaces, and leading
// or trailing dots and spaces are trimmed. Empty input yields
// "Untitled".
func SafeFilename(title string) string {
	var b strings.Builder
	space := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			space = true
		case strings.ContainsRune(`/\:*?"<>|`, r) || unicode.IsControl(r):
			// dropped
		default:
			if space && b.Len() > 0 {
				b.WriteRune(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}

	name := strings.Trim(b.String(), ". ")
	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = strings.Trim(string(runes[:maxFilenameRunes]), ". ")
	}
	if name == "" {
		return "Untitled"
	}
	return name
}
