package clip

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes a hex-encoded xxhash of the content. Identical
// markdown always yields the same hash, so stored clips can be
// deduplicated by comparing hashes.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for one-line display. The tail of a URL
// names the page, so truncation eats the front.
func TruncateURL(url string, maxLen int) string {
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		// No room for the "..." prefix.
		return url[:maxLen]
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes renders a byte count for humans.
func FormatBytes(bytes int) string {
	const kb = 1024
	switch {
	case bytes >= kb*kb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(kb*kb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	}
	return fmt.Sprintf("%d B", bytes)
}
