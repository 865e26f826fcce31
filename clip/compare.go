package clip

import "github.com/mjarosz/clipdown"

// renderGainThreshold is the growth factor above which the rendered
// page is considered to carry content the plain fetch missed.
const renderGainThreshold = 1.5

// ContentDiffers reports whether browser rendering uncovered meaningful
// content beyond what the plain fetch returned. It extracts both
// documents and compares content sizes; a failed extraction on either
// side counts as a difference.
func ContentDiffers(plainHTML, renderedHTML, pageURL string, extractor clipdown.Extractor) bool {
	plain, err := extractor.Extract(plainHTML, pageURL)
	if err != nil {
		return true
	}
	rendered, err := extractor.Extract(renderedHTML, pageURL)
	if err != nil {
		return true
	}
	if len(plain.HTML) == 0 {
		return len(rendered.HTML) > 0
	}
	return float64(len(rendered.HTML)) > float64(len(plain.HTML))*renderGainThreshold
}
