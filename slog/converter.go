package slog

import (
	"log/slog"
	"time"

	"github.com/mjarosz/clipdown"
)

// Ensure LoggingConverter implements clipdown.Converter.
var _ clipdown.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   clipdown.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next clipdown.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the operation.
func (c *LoggingConverter) Convert(html string, opts clipdown.Options) (markdown string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			c.logger.Error("convert failed", "html_bytes", len(html), "duration", time.Since(begin), "err", err)
			return
		}
		c.logger.Debug("convert",
			"html_bytes", len(html),
			"markdown_bytes", len(markdown),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Convert(html, opts)
}
