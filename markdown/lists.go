package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	leadingNewlinesRe  = regexp.MustCompile(`^\n+`)
	trailingNewlinesRe = regexp.MustCompile(`\n+$`)
)

// listRule wraps ul/ol content. Top-level lists get surrounding blank
// lines; a list nested inside another list joins it with a single
// newline. Footnote reference lists are left for footnoteListRule.
var listRule = rule{
	name: "list",
	match: func(c *conversion, s *goquery.Selection) bool {
		switch goquery.NodeName(s) {
		case "ul", "ol":
			return !isFootnoteContainer(s)
		}
		return false
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		parent := s.Parent()
		switch goquery.NodeName(parent) {
		case "li":
			if isLastElementChild(parent, s) {
				return "\n" + content
			}
		case "ul", "ol":
			return "\n" + content
		}
		return "\n\n" + content + "\n\n"
	},
}

func isLastElementChild(parent, s *goquery.Selection) bool {
	last := parent.Children().Last()
	return len(last.Nodes) == 1 && last.Nodes[0] == s.Nodes[0]
}

// listItemRule renders li content behind its marker. Continuation
// lines are re-indented with a tab, which is what puts a nested list
// one tab deeper per level. Empty items are dropped; numbering stays
// correct because it derives from the item's position among its
// element siblings, not from the rendered output.
var listItemRule = rule{
	name: "listItem",
	match: func(c *conversion, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "li"
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		if strings.TrimSpace(content) == "" {
			return ""
		}
		content = leadingNewlinesRe.ReplaceAllString(content, "")
		content = trailingNewlinesRe.ReplaceAllString(content, "\n")
		content = strings.ReplaceAll(content, "\n", "\n\t")
		content = normalizeTaskMarker(content)

		prefix := c.opts.BulletListMarker + " "
		parent := s.Parent()
		if goquery.NodeName(parent) == "ol" {
			n := s.Index() + 1
			if start, ok := listStart(parent); ok {
				n = start + s.Index()
			}
			prefix = strconv.Itoa(n) + ". "
		}
		out := prefix + content
		if s.Nodes[0].NextSibling != nil && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		return out
	},
}

func listStart(list *goquery.Selection) (int, bool) {
	attr, ok := list.Attr("start")
	if !ok {
		return 0, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(attr))
	if err != nil {
		return 0, false
	}
	return start, true
}

// normalizeTaskMarker collapses the spaces between a task checkbox
// marker and the item text that follows it.
func normalizeTaskMarker(content string) string {
	for _, marker := range []string{"[x] ", "[ ] "} {
		if rest, ok := strings.CutPrefix(content, marker); ok {
			return marker + strings.TrimLeft(rest, " ")
		}
	}
	return content
}

// taskCheckboxRule renders a task list checkbox as its markdown
// marker, which listItemRule then keeps at the head of the item.
var taskCheckboxRule = rule{
	name: "taskCheckbox",
	match: func(c *conversion, s *goquery.Selection) bool {
		if goquery.NodeName(s) != "input" || s.AttrOr("type", "") != "checkbox" {
			return false
		}
		return s.ParentsFiltered("li").Length() > 0
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		if _, checked := s.Attr("checked"); checked {
			return "[x] "
		}
		return "[ ] "
	},
}
