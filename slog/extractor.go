package slog

import (
	"log/slog"
	"time"

	"github.com/mjarosz/clipdown"
)

// Ensure LoggingExtractor implements clipdown.Extractor.
var _ clipdown.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   clipdown.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next clipdown.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html, pageURL string) (res *clipdown.ExtractResult, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Error("extract failed", "url", pageURL, "duration", time.Since(begin), "err", err)
			return
		}
		e.logger.Debug("extract",
			"url", pageURL,
			"title", res.Metadata.Title,
			"content_bytes", len(res.HTML),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
