package markdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
)

// figureRule renders a figure's image with its caption below. When a
// srcset is present the first candidate's URL is preferred over src.
var figureRule = rule{
	name: "figure",
	match: func(c *conversion, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "figure"
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		img := s.Find("img").First()
		if img.Length() == 0 {
			return content
		}
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if srcset := img.AttrOr("srcset", ""); srcset != "" {
			if first := firstSrcsetURL(srcset); first != "" {
				src = first
			}
		}
		alt := cleanAttribute(img.AttrOr("alt", ""))
		out := "\n\n![" + alt + "](" + src + ")\n\n"
		caption := strings.TrimSpace(c.convertChildren(s.Find("figcaption").First()))
		if caption != "" {
			out += caption + "\n\n"
		}
		return out
	},
}

// firstSrcsetURL returns the URL of the first srcset candidate,
// dropping its width or density descriptor.
func firstSrcsetURL(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

var (
	youtubeEmbedRe = regexp.MustCompile(`(?:youtube\.com/embed/|youtu\.be/)([a-zA-Z0-9_-]+)`)
	tweetEmbedRe   = regexp.MustCompile(`(?:twitter\.com|x\.com)/embed/Tweet\.html\?id=(\d+)`)
)

// embedRule rewrites known video and social iframes to their
// canonical page URL as a bare image placeholder. Unrecognized
// iframes fall through unconverted.
var embedRule = rule{
	name: "embed",
	match: func(c *conversion, s *goquery.Selection) bool {
		if goquery.NodeName(s) != "iframe" {
			return false
		}
		src := iframeSrc(s)
		return strings.Contains(src, "youtube.com") || strings.Contains(src, "youtu.be") ||
			strings.Contains(src, "twitter.com") || strings.Contains(src, "x.com")
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		src := iframeSrc(s)
		if m := youtubeEmbedRe.FindStringSubmatch(src); m != nil {
			return "\n\n![](https://www.youtube.com/watch?v=" + m[1] + ")\n\n"
		}
		if m := tweetEmbedRe.FindStringSubmatch(src); m != nil {
			return "\n\n![](https://twitter.com/i/status/" + m[1] + ")\n\n"
		}
		return content
	},
}

func iframeSrc(s *goquery.Selection) string {
	return dom.GetAttributeOr(s.Nodes[0], "src", "")
}

// highlightRule renders mark elements as Obsidian highlights.
var highlightRule = rule{
	name: "highlight",
	match: func(c *conversion, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "mark"
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		return "==" + content + "=="
	},
}

var strikethroughRule = rule{
	name: "strikethrough",
	match: func(c *conversion, s *goquery.Selection) bool {
		switch goquery.NodeName(s) {
		case "del", "s", "strike":
			return true
		}
		return false
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		return "~~" + content + "~~"
	},
}
