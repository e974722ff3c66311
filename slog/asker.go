package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagecopy"
)

// Ensure LoggingAsker implements pagecopy.Asker.
var _ pagecopy.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging.
type LoggingAsker struct {
	next   pagecopy.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next pagecopy.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask logs the page and answer size and delegates to the wrapped asker.
func (a *LoggingAsker) Ask(ctx context.Context, doc *pagecopy.Document, question string) (answer string, err error) {
	var source string
	if doc != nil {
		source = doc.SourceURL
	}
	defer func(begin time.Time) {
		a.logger.Info("ask",
			"source", source,
			"answer_bytes", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, doc, question)
}
