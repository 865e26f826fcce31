package mock

import "github.com/mjarosz/clipdown"

var _ clipdown.Converter = (*Converter)(nil)

// Converter is a mock implementation of clipdown.Converter.
type Converter struct {
	ConvertFn func(html string, opts clipdown.Options) (string, error)
}

func (c *Converter) Convert(html string, opts clipdown.Options) (string, error) {
	return c.ConvertFn(html, opts)
}
