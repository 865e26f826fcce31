package mock

import "github.com/mjarosz/clipdown"

var _ clipdown.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of clipdown.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*clipdown.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*clipdown.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
