package clipdown

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

var (
	// Match atx headings: # through ######.
	atxHeadingRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

	// Match setext headings: a text line underlined with = or -.
	// The converter emits these for H1/H2 when the setext heading
	// style is selected.
	setextHeadingRe = regexp.MustCompile(`(?m)^([^\s#>|][^\n]*)\n(=+|-+)[ \t]*$`)
)

// ExtractSections parses markdown and returns all headings (H1-H6) in
// document order, recognizing both atx and setext forms. It generates
// URL-safe anchors and handles duplicates with numeric suffixes.
func ExtractSections(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	// Remove code blocks to avoid matching heading syntax in code
	cleaned := removeCodeBlocks(markdown)

	type heading struct {
		pos   int
		level int
		title string
	}
	var headings []heading

	for _, m := range atxHeadingRe.FindAllStringSubmatchIndex(cleaned, -1) {
		headings = append(headings, heading{
			pos:   m[0],
			level: m[3] - m[2],
			title: strings.TrimSpace(cleaned[m[4]:m[5]]),
		})
	}
	for _, m := range setextHeadingRe.FindAllStringSubmatchIndex(cleaned, -1) {
		level := 1
		if cleaned[m[4]] == '-' {
			level = 2
		}
		headings = append(headings, heading{
			pos:   m[0],
			level: level,
			title: strings.TrimSpace(cleaned[m[2]:m[3]]),
		})
	}
	if len(headings) == 0 {
		return nil
	}
	sort.Slice(headings, func(i, j int) bool { return headings[i].pos < headings[j].pos })

	sections := make([]Section, 0, len(headings))
	anchorCounts := make(map[string]int)

	for _, h := range headings {
		baseAnchor := generateAnchor(h.title)

		// Handle duplicates
		anchor := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			anchor = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		sections = append(sections, Section{
			Level:  h.level,
			Title:  h.title,
			Anchor: anchor,
		})
	}

	return sections
}

// removeCodeBlocks removes fenced code blocks from markdown.
func removeCodeBlocks(s string) string {
	codeBlockRe := regexp.MustCompile("(?s)```.*?```")
	return codeBlockRe.ReplaceAllString(s, "")
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	result := sb.String()
	// Trim trailing hyphen
	return strings.TrimSuffix(result, "-")
}
