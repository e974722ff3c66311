package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagecopy"
)

// Ensure LoggingDetector implements pagecopy.FrameworkDetector.
var _ pagecopy.FrameworkDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a FrameworkDetector and logs each detection.
type LoggingDetector struct {
	next   pagecopy.FrameworkDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next pagecopy.FrameworkDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the result.
func (d *LoggingDetector) Detect(tree pagecopy.Tree) pagecopy.Framework {
	begin := time.Now()
	framework := d.next.Detect(tree)
	name := string(framework)
	if framework == pagecopy.FrameworkUnknown {
		name = "(unknown)"
	}
	d.logger.Info("framework detection",
		"framework", name,
		"duration", time.Since(begin),
	)
	return framework
}
