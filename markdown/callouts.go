package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// calloutTypes are admonition words recognized as bare class tokens.
var calloutTypes = []string{
	"note", "abstract", "summary", "info", "tip", "hint", "success",
	"question", "warning", "caution", "attention", "failure", "danger",
	"error", "bug", "example", "quote", "important",
}

// calloutRule renders admonition containers as callout blockquotes.
// The type word moves into the [!TYPE] marker and a title child is
// dropped from the body.
var calloutRule = rule{
	name: "callout",
	match: func(c *conversion, s *goquery.Selection) bool {
		switch goquery.NodeName(s) {
		case "div", "aside", "section":
		default:
			return false
		}
		return classContains(s, "callout") || classContains(s, "admonition") || classContains(s, "alert")
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		body := strings.TrimSpace(c.calloutBody(s))
		lines := []string{"[!" + calloutType(s) + "]"}
		if body != "" {
			lines = append(lines, strings.Split(body, "\n")...)
		}
		return "\n\n" + strings.Join(quoteLines(lines), "\n") + "\n\n"
	},
}

// calloutType extracts the admonition type: an explicit data-callout
// attribute, then a type-carrying class token, then NOTE.
func calloutType(s *goquery.Selection) string {
	if t := strings.TrimSpace(s.AttrOr("data-callout", "")); t != "" {
		return strings.ToUpper(t)
	}
	class, _ := s.Attr("class")
	tokens := strings.Fields(strings.ToLower(class))
	for _, token := range tokens {
		for _, prefix := range []string{"callout-", "admonition-", "markdown-alert-", "alert-"} {
			if t, ok := strings.CutPrefix(token, prefix); ok && t != "" {
				return strings.ToUpper(t)
			}
		}
	}
	for _, token := range tokens {
		for _, t := range calloutTypes {
			if token == t {
				return strings.ToUpper(t)
			}
		}
	}
	return "NOTE"
}

// calloutBody converts the container's children, skipping any child
// element that carries a title class.
func (c *conversion) calloutBody(s *goquery.Selection) string {
	var out string
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		if len(child.Nodes) > 0 && child.Nodes[0].Type == html.ElementNode && classContains(child, "title") {
			return
		}
		piece := c.convertNode(child)
		if piece == "" {
			return
		}
		out = joinMarkdown(out, piece)
	})
	return out
}
