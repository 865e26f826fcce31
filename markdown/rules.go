package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// rule converts one kind of element to markdown. match decides
// whether the rule claims the element; render receives the already
// converted content of the element's children. Rules may re-enter the
// engine through conversion.convertChildren to convert a subtree
// themselves.
type rule struct {
	name   string
	match  func(c *conversion, s *goquery.Selection) bool
	render func(c *conversion, content string, s *goquery.Selection) string
}

// rules is the catalog, in priority order: the first match wins.
// Exactly one rule (or the generic fallback) applies per element.
var rules = []rule{
	tableRule,
	listRule,
	listItemRule,
	taskCheckboxRule,
	figureRule,
	embedRule,
	highlightRule,
	strikethroughRule,
	mathJaxRule,
	mathMLRule,
	katexRule,
	calloutRule,
	codeBlockRule,
	citationRule,
	footnoteListRule,
	removalRule,
}

// classContains reports whether any whitespace-separated class token
// of s contains substr.
func classContains(s *goquery.Selection, substr string) bool {
	class, ok := s.Attr("class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(class) {
		if strings.Contains(token, substr) {
			return true
		}
	}
	return false
}

// insideTableCell reports whether s sits inside a td or th. Math in
// table cells is always rendered inline so pipe rows stay on one
// line.
func insideTableCell(s *goquery.Selection) bool {
	return s.ParentsFiltered("td, th").Length() > 0
}
