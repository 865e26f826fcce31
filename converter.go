package clipdown

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Options control output style and URL resolution; zero fields
	// take their defaults.
	Convert(html string, opts Options) (string, error)
}
