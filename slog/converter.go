package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagecopy"
)

// Ensure LoggingConverter implements pagecopy.Converter.
var _ pagecopy.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   pagecopy.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next pagecopy.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the output size.
func (c *LoggingConverter) Convert(root pagecopy.ContentNode) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("convert",
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(root)
}
