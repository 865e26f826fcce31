package markdown

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mjarosz/clipdown"
	"golang.org/x/net/html"
)

// maxWalkDepth bounds the recursion so a pathologically deep tree
// flattens to text instead of exhausting the stack.
const maxWalkDepth = 512

// conversion carries the per-call state of one Convert invocation.
// Nothing here is shared between calls, so concurrent conversions
// need no locking.
type conversion struct {
	opts   clipdown.Options
	logger *slog.Logger
	depth  int
}

// run walks the document body and returns the raw markdown. A panic
// anywhere in the walk is contained here; ok reports whether the walk
// completed.
func (c *conversion) run(doc *goquery.Document) (md string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("conversion failed", "panic", r)
			ok = false
		}
	}()
	return c.convertChildren(doc.Find("body")), true
}

// convertChildren converts every child node of s and joins the
// results. It is the re-entry point rules use to convert a subtree
// (table cells, figure captions, footnote bodies).
func (c *conversion) convertChildren(s *goquery.Selection) string {
	var out string
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		piece := c.convertNode(child)
		if piece == "" {
			return
		}
		out = joinMarkdown(out, piece)
	})
	return out
}

// convertNode converts a single node. Elements are converted
// bottom-up: children first, then the first matching catalog rule (or
// the generic fallback) renders the element around its converted
// content.
func (c *conversion) convertNode(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	switch s.Nodes[0].Type {
	case html.TextNode:
		return c.convertText(s)
	case html.ElementNode:
		if c.depth >= maxWalkDepth {
			return escapeText(collapseWhitespaceRe.ReplaceAllString(s.Text(), " "))
		}
		c.depth++
		defer func() { c.depth-- }()
		content := c.convertChildren(s)
		for _, r := range rules {
			if r.match(c, s) {
				return r.render(c, content, s)
			}
		}
		return c.fallback(content, s)
	default:
		// comments, doctype
		return ""
	}
}

// joinMarkdown concatenates two converted fragments, collapsing the
// newlines at the seam to at most one blank line. The separator width
// is the larger of a's trailing and b's leading newline runs.
func joinMarkdown(a, b string) string {
	s1 := strings.TrimRight(a, "\n")
	s2 := strings.TrimLeft(b, "\n")
	n := max(len(a)-len(s1), len(b)-len(s2))
	n = min(n, 2)
	return s1 + "\n\n"[:n] + s2
}

var collapseWhitespaceRe = regexp.MustCompile(`[ \t\r\n\f]+`)

// convertText converts a text node: whitespace collapses outside pre,
// markdown-significant characters are escaped outside code, and
// whitespace-only nodes survive as a single space only between inline
// siblings.
func (c *conversion) convertText(s *goquery.Selection) string {
	n := s.Nodes[0]
	if c.insidePre(s) {
		return n.Data
	}
	text := collapseWhitespaceRe.ReplaceAllString(n.Data, " ")
	if strings.TrimSpace(text) == "" {
		if isInlineNode(n.PrevSibling) && isInlineNode(n.NextSibling) {
			return " "
		}
		return ""
	}
	if isBlockBoundary(n.PrevSibling) {
		text = strings.TrimLeft(text, " ")
	}
	if isBlockBoundary(n.NextSibling) {
		text = strings.TrimRight(text, " ")
	}
	if !c.insideCode(s) {
		text = escapeText(text)
	}
	return text
}

// isBlockBoundary reports whether n ends or begins a line, making
// adjacent spaces insignificant.
func isBlockBoundary(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return n.Data == "br" || isBlockName(n.Data)
}

func (c *conversion) insidePre(s *goquery.Selection) bool {
	return s.ParentsFiltered("pre").Length() > 0
}

func (c *conversion) insideCode(s *goquery.Selection) bool {
	return s.ParentsFiltered("code, kbd, samp, pre").Length() > 0
}

// textEscapes mirrors the classic turndown escape table: characters
// that would otherwise be read as markdown syntax get a backslash.
// Patterns anchored at ^ apply to text that could open a line.
var textEscapes = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\\`), `\\`},
	{regexp.MustCompile(`\*`), `\*`},
	{regexp.MustCompile(`^-`), `\-`},
	{regexp.MustCompile(`^\+ `), `\+ `},
	{regexp.MustCompile(`^(=+)`), `\$1`},
	{regexp.MustCompile(`^(#{1,6}) `), `\$1 `},
	{regexp.MustCompile("`"), "\\`"},
	{regexp.MustCompile(`^~~~`), `\~~~`},
	{regexp.MustCompile(`\[`), `\[`},
	{regexp.MustCompile(`\]`), `\]`},
	{regexp.MustCompile(`^>`), `\>`},
	{regexp.MustCompile(`_`), `\_`},
	{regexp.MustCompile(`^(\d+)\. `), `$1\. `},
}

func escapeText(text string) string {
	for _, e := range textEscapes {
		text = e.re.ReplaceAllString(text, e.repl)
	}
	return text
}
