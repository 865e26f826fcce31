package markdown

import (
	"regexp"
	"strings"
)

var (
	leadingTitleRe  = regexp.MustCompile(`^# [^\n]*\n{2,}`)
	emptyLinkRe     = regexp.MustCompile(`(^|[^!])\[\]\([^)]*\)`)
	extraNewlinesRe = regexp.MustCompile(`\n{3,}`)
)

// postprocess is the final string pass: drop a leading level-1
// heading that duplicates the document title, remove empty non-image
// links, and collapse runs of blank lines.
func postprocess(md string) string {
	md = strings.TrimSpace(md)
	md = leadingTitleRe.ReplaceAllString(md, "")
	md = emptyLinkRe.ReplaceAllString(md, "$1")
	md = extraNewlinesRe.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}
