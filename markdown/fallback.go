package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mjarosz/clipdown"
	"golang.org/x/net/html"
)

// blockNames are elements rendered as blocks (blank line above and
// below) by the generic fallback.
var blockNames = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "center": true, "dd": true, "details": true,
	"dialog": true, "dir": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hgroup": true, "hr": true,
	"html": true, "li": true, "main": true, "menu": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "summary": true,
	"table": true, "tbody": true, "td": true, "tfoot": true, "th": true,
	"thead": true, "tr": true, "ul": true, "video": true,
}

// inlineNames are elements whose surrounding whitespace is
// significant.
var inlineNames = map[string]bool{
	"a": true, "abbr": true, "acronym": true, "b": true, "bdo": true,
	"big": true, "br": true, "button": true, "cite": true, "code": true,
	"del": true, "dfn": true, "em": true, "i": true, "iframe": true,
	"img": true, "input": true, "ins": true, "kbd": true, "label": true,
	"map": true, "mark": true, "math": true, "object": true, "q": true,
	"s": true, "samp": true, "select": true, "small": true, "span": true,
	"strike": true, "strong": true, "sub": true, "sup": true,
	"textarea": true, "time": true, "tt": true, "u": true, "var": true,
	"wbr": true,
}

func isBlockName(name string) bool { return blockNames[name] }

func isInlineNode(n *html.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return inlineNames[n.Data]
	}
	return false
}

// fallback applies generic inline/block markdown semantics to
// elements no catalog rule claimed.
func (c *conversion) fallback(content string, s *goquery.Selection) string {
	switch name := goquery.NodeName(s); name {
	case "p":
		return renderBlock(content)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return c.renderHeading(int(name[1]-'0'), content)
	case "strong", "b":
		return renderEmphasis(c.opts.EmDelimiter+c.opts.EmDelimiter, content)
	case "em", "i":
		return renderEmphasis(c.opts.EmDelimiter, content)
	case "blockquote":
		return renderBlockquote(content)
	case "hr":
		return "\n\n" + c.opts.HorizontalRule + "\n\n"
	case "br":
		return "  \n"
	case "a":
		return renderLink(content, s)
	case "img":
		return renderImage(s)
	case "code", "kbd", "samp", "tt":
		if s.ParentsFiltered("pre").Length() > 0 {
			return content
		}
		return renderInlineCode(content)
	case "pre":
		// pre without a nested code element
		return renderBlock(content)
	case "script", "style", "noscript", "template", "head", "title", "meta", "link", "base":
		return ""
	default:
		if isBlockName(name) {
			return renderBlock(content)
		}
		return content
	}
}

func renderBlock(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	return "\n\n" + trimmed + "\n\n"
}

func (c *conversion) renderHeading(level int, content string) string {
	text := strings.TrimSpace(content)
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if c.opts.HeadingStyle == clipdown.HeadingSetext && level < 3 {
		underline := "="
		if level == 2 {
			underline = "-"
		}
		return "\n\n" + text + "\n" + strings.Repeat(underline, utf8.RuneCountInString(text)) + "\n\n"
	}
	return "\n\n" + strings.Repeat("#", level) + " " + text + "\n\n"
}

// renderEmphasis wraps content in the delimiter, moving flanking
// spaces outside so the markers stay attached to the text.
func renderEmphasis(delim, content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	var lead, trail string
	if strings.HasPrefix(content, " ") {
		lead = " "
	}
	if strings.HasSuffix(content, " ") {
		trail = " "
	}
	return lead + delim + trimmed + delim + trail
}

func renderBlockquote(content string) string {
	content = strings.Trim(content, "\n")
	if strings.TrimSpace(content) == "" {
		return ""
	}
	lines := quoteLines(strings.Split(content, "\n"))
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

// quoteLines prefixes each line with a blockquote marker, leaving
// blank lines as a bare marker.
func quoteLines(lines []string) []string {
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return lines
}

var linkParenEscaper = strings.NewReplacer("(", `\(`, ")", `\)`)

func renderLink(content string, s *goquery.Selection) string {
	href := strings.TrimSpace(s.AttrOr("href", ""))
	if href == "" {
		return content
	}
	href = linkParenEscaper.Replace(href)
	var title string
	if t, ok := s.Attr("title"); ok && t != "" {
		title = ` "` + strings.ReplaceAll(cleanAttribute(t), `"`, `\"`) + `"`
	}
	return "[" + content + "](" + href + title + ")"
}

func renderImage(s *goquery.Selection) string {
	src := strings.TrimSpace(s.AttrOr("src", ""))
	if src == "" {
		return ""
	}
	alt := cleanAttribute(s.AttrOr("alt", ""))
	var title string
	if t, ok := s.Attr("title"); ok && t != "" {
		title = ` "` + strings.ReplaceAll(cleanAttribute(t), `"`, `\"`) + `"`
	}
	return "![" + alt + "](" + src + title + ")"
}

var attributeNewlinesRe = regexp.MustCompile(`(\n+\s*)+`)

func cleanAttribute(val string) string {
	return attributeNewlinesRe.ReplaceAllString(val, "\n")
}

// renderInlineCode wraps content in backticks, widening the fence
// while the content contains it and padding with spaces when the
// content starts or ends with a backtick or space.
func renderInlineCode(content string) string {
	if content == "" {
		return ""
	}
	delim := "`"
	for strings.Contains(content, delim) {
		delim += "`"
	}
	var pad string
	if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") ||
		(strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ") && strings.TrimSpace(content) != "") {
		pad = " "
	}
	return delim + pad + content + pad + delim
}
