package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mathExtractor pulls a LaTeX source out of a math-bearing element,
// returning "" when its source is absent.
type mathExtractor func(c *conversion, s *goquery.Selection) string

// Extractor chains per notation, in priority order. The first
// non-empty result wins.
var (
	mathJaxExtractors = []mathExtractor{extractAssistiveMathML}
	mathMLExtractors  = []mathExtractor{extractDataLatex, extractAltLatex, extractAnnotationLatex, extractMathMLLatex}
	katexExtractors   = []mathExtractor{extractDataLatex, extractAnnotationLatex, extractVisibleLatex}
)

func extractMath(c *conversion, s *goquery.Selection, chain []mathExtractor) string {
	for _, extract := range chain {
		if latex := extract(c, s); latex != "" {
			return latex
		}
	}
	return ""
}

func extractDataLatex(_ *conversion, s *goquery.Selection) string {
	return strings.TrimSpace(s.AttrOr("data-latex", ""))
}

func extractAltLatex(_ *conversion, s *goquery.Selection) string {
	return strings.TrimSpace(s.AttrOr("alt", ""))
}

func extractAnnotationLatex(_ *conversion, s *goquery.Selection) string {
	return strings.TrimSpace(s.Find(`annotation[encoding="application/x-tex"]`).First().Text())
}

func extractMathMLLatex(c *conversion, s *goquery.Selection) string {
	if goquery.NodeName(s) != "math" {
		return ""
	}
	latex, err := mathmlToLatex(s)
	if err != nil {
		c.logger.Warn("could not convert mathml", "err", err)
		return ""
	}
	return latex
}

func extractAssistiveMathML(c *conversion, s *goquery.Selection) string {
	m := s.Find("math").First()
	if m.Length() == 0 {
		return ""
	}
	latex, err := mathmlToLatex(m)
	if err != nil {
		c.logger.Warn("could not convert mathml", "err", err)
		return ""
	}
	return latex
}

func extractVisibleLatex(_ *conversion, s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// wrapMath renders a math entity. Block math gets its own lines;
// spaced pads inline math so it does not fuse with adjacent words.
func wrapMath(latex string, block, spaced bool) string {
	if block {
		return "\n$$\n" + latex + "\n$$\n"
	}
	if spaced {
		return " $" + latex + "$ "
	}
	return "$" + latex + "$"
}

// mathJaxRule handles MathJax containers by converting the assistive
// MathML embedded for screen readers.
var mathJaxRule = rule{
	name: "mathJax",
	match: func(c *conversion, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "mjx-container"
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		latex := extractMath(c, s, mathJaxExtractors)
		if latex == "" {
			c.logger.Warn("no latex source in mathjax container, keeping content")
			return content
		}
		block := mathJaxDisplay(s) && !insideTableCell(s)
		return wrapMath(latex, block, false)
	},
}

func mathJaxDisplay(s *goquery.Selection) bool {
	switch strings.ToLower(s.AttrOr("display", "")) {
	case "true", "block":
		return true
	}
	return strings.ToLower(s.Find("math").First().AttrOr("display", "")) == "block"
}

// mathMLRule handles raw MathML and its image fallbacks. The latex
// source is taken from a data attribute, the image alt text, an
// embedded TeX annotation, or the markup itself, in that order.
var mathMLRule = rule{
	name: "mathML",
	match: func(c *conversion, s *goquery.Selection) bool {
		switch goquery.NodeName(s) {
		case "math":
			return true
		case "img":
			return classContains(s, "math") || classContains(s, "tex")
		}
		return false
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		latex := extractMath(c, s, mathMLExtractors)
		if latex == "" {
			c.logger.Warn("no latex source in math element, keeping content")
			return content
		}
		block := mathMLDisplay(s) && !insideTableCell(s)
		return wrapMath(latex, block, true)
	},
}

func mathMLDisplay(s *goquery.Selection) bool {
	if strings.ToLower(s.AttrOr("display", "")) == "block" {
		return true
	}
	// Wikipedia-style image fallbacks mark display math by class.
	return classContains(s, "display")
}

// katexRule handles pre-rendered KaTeX containers. The rule also
// matches the inner katex-mathml and katex-html spans, but the
// outermost container re-extracts the source, so their output never
// survives.
var katexRule = rule{
	name: "katex",
	match: func(c *conversion, s *goquery.Selection) bool {
		return classContains(s, "katex")
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		latex := extractMath(c, s, katexExtractors)
		if latex == "" {
			c.logger.Warn("no latex source in katex container, keeping content")
			return content
		}
		block := classContains(s, "katex-display") && !insideTableCell(s)
		return wrapMath(latex, block, false)
	},
}
