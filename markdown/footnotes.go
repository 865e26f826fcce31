package markdown

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// citationRule converts superscript footnote references to markdown
// citation markers. The id keeps its first dash-delimited segment, so
// repeated references like fnref-2-3 all point at footnote 2.
var citationRule = rule{
	name: "citation",
	match: func(c *conversion, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "sup" && strings.HasPrefix(s.AttrOr("id", ""), "fnref")
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		id := strings.TrimPrefix(s.AttrOr("id", ""), "fnref")
		id = strings.TrimLeft(id, "-:")
		id, _, _ = strings.Cut(id, "-")
		if id == "" {
			return content
		}
		return "[^" + strings.ToLower(id) + "]"
	},
}

// isFootnoteContainer reports whether an element is a footnote
// reference list or its wrapper.
func isFootnoteContainer(s *goquery.Selection) bool {
	if classContains(s, "footnote") {
		return true
	}
	return strings.Contains(strings.ToLower(s.AttrOr("id", "")), "footnote")
}

// footnoteListRule converts a footnote container into [^id]: body
// definitions, one per list item.
var footnoteListRule = rule{
	name: "footnoteList",
	match: func(c *conversion, s *goquery.Selection) bool {
		switch goquery.NodeName(s) {
		case "ol", "ul", "div", "section", "aside":
			return isFootnoteContainer(s)
		}
		return false
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		var defs []string
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			id := normalizeFootnoteID(li.AttrOr("id", ""))
			if id == "" {
				return
			}
			defs = append(defs, "[^"+id+"]: "+c.footnoteBody(li, id))
		})
		if len(defs) == 0 {
			return content
		}
		return "\n\n" + strings.Join(defs, "\n") + "\n\n"
	},
}

// normalizeFootnoteID strips library prefixes from a footnote id and
// lower-cases it.
func normalizeFootnoteID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.TrimPrefix(id, "user-content-")
	for _, prefix := range []string{"footnote-", "fn-", "fn:", "fn"} {
		if rest, ok := strings.CutPrefix(id, prefix); ok {
			id = rest
			break
		}
	}
	return id
}

// footnoteBody converts a footnote item to a single line, dropping
// the backreference glyph and any marker referencing the item itself.
func (c *conversion) footnoteBody(li *goquery.Selection, id string) string {
	body := c.convertChildren(li)
	body = strings.ReplaceAll(body, "[^"+id+"]", "")
	body = strings.Join(strings.Fields(body), " ")
	body = strings.TrimSuffix(body, "↩︎")
	body = strings.TrimSuffix(body, "↩")
	return strings.TrimSpace(body)
}

var hiddenStyleRe = regexp.MustCompile(`display\s*:\s*none`)

// removalRule deletes elements that carry nothing into markdown:
// footnote backreference links and inline-hidden elements.
var removalRule = rule{
	name: "removal",
	match: func(c *conversion, s *goquery.Selection) bool {
		if classContains(s, "footnote-back") {
			return true
		}
		if goquery.NodeName(s) == "a" {
			href := strings.ToLower(s.AttrOr("href", ""))
			if strings.HasPrefix(href, "#") && strings.Contains(href, "fnref") {
				return true
			}
		}
		return hiddenStyleRe.MatchString(strings.ToLower(s.AttrOr("style", "")))
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		return ""
	},
}
