package markdown

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mjarosz/clipdown"
)

var languageClassRe = regexp.MustCompile(`(?:^|\s)(?:language|lang)-(\S+)`)

// codeBlockRule converts pre blocks that contain a code element. The
// language is read from a data-language attribute when present,
// otherwise from a language-* class on the code or pre element.
var codeBlockRule = rule{
	name: "codeBlock",
	match: func(c *conversion, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "pre" && s.Find("code").Length() > 0
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		code := s.Find("code").First()
		text := code.Text()
		if c.opts.CodeBlockStyle == clipdown.CodeBlockIndented {
			return renderIndentedCode(text)
		}
		return renderFencedCode(text, codeLanguage(s, code))
	},
}

func codeLanguage(pre, code *goquery.Selection) string {
	if lang := strings.TrimSpace(code.AttrOr("data-language", "")); lang != "" {
		return lang
	}
	if lang := strings.TrimSpace(pre.AttrOr("data-language", "")); lang != "" {
		return lang
	}
	for _, s := range []*goquery.Selection{code, pre} {
		if m := languageClassRe.FindStringSubmatch(s.AttrOr("class", "")); m != nil {
			return m[1]
		}
	}
	return ""
}

func renderFencedCode(text, lang string) string {
	text = strings.TrimRight(text, "\n")
	text = strings.ReplaceAll(text, "`", "\\`")
	return "\n\n```" + lang + "\n" + text + "\n```\n\n"
}

func renderIndentedCode(text string) string {
	text = strings.TrimRight(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}
