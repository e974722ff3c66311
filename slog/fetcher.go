package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagecopy"
)

// Ensure LoggingFetcher implements pagecopy.Fetcher.
var _ pagecopy.Fetcher = (*LoggingFetcher)(nil)

// TreeParser builds a page tree from fetched HTML.
type TreeParser func(html, location string) (pagecopy.Tree, error)

// LoggingFetcher wraps a Fetcher and logs one record per page load.
// Successful loads are logged at info, failures at warn with their error
// code.
type LoggingFetcher struct {
	next     pagecopy.Fetcher
	logger   *slog.Logger
	parse    TreeParser
	detector pagecopy.FrameworkDetector
}

// FetcherOption configures a LoggingFetcher.
type FetcherOption func(*LoggingFetcher)

// WithFramework adds the detected documentation framework to successful
// fetch records. Detection only runs when debug logging is enabled.
func WithFramework(parse TreeParser, d pagecopy.FrameworkDetector) FetcherOption {
	return func(f *LoggingFetcher) {
		f.parse = parse
		f.detector = d
	}
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagecopy.Fetcher, logger *slog.Logger, opts ...FetcherOption) *LoggingFetcher {
	f := &LoggingFetcher{next: next, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch delegates to the wrapped fetcher and logs the page it loaded.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (html string, err error) {
	begin := time.Now()
	html, err = f.next.Fetch(ctx, rawURL)

	attrs := []any{
		"page", pagecopy.LogicalPath(rawURL),
		"duration", time.Since(begin),
	}
	if err != nil {
		attrs = append(attrs, "code", pagecopy.ErrorCode(err), "err", err)
		f.logger.Warn("fetch failed", attrs...)
		return html, err
	}

	attrs = append(attrs, "bytes", len(html))
	if f.detector != nil && f.logger.Enabled(ctx, slog.LevelDebug) {
		attrs = append(attrs, "framework", f.framework(html, rawURL))
	}
	f.logger.Info("fetch", attrs...)
	return html, nil
}

func (f *LoggingFetcher) framework(html, location string) string {
	tree, err := f.parse(html, location)
	if err != nil {
		return "(unparsable)"
	}
	if fw := f.detector.Detect(tree); fw != pagecopy.FrameworkUnknown {
		return string(fw)
	}
	return "(unknown)"
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
