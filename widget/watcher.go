package widget

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagecopy"
)

// Watcher turns location observations from any number of channels into
// navigation events. Only a change of logical page counts; hash and query
// changes are ignored, and repeated reports of one change collapse into a
// single event.
//
// Watcher methods must be called from the loop.
type Watcher struct {
	last        string
	subscribers []func(location string)
	logger      *slog.Logger
}

// NewWatcher creates a Watcher that considers initial the current page.
func NewWatcher(initial string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{last: initial, logger: logger}
}

// Location returns the last recorded location.
func (w *Watcher) Location() string {
	return w.last
}

// Subscribe registers fn to be called once per navigation.
func (w *Watcher) Subscribe(fn func(location string)) {
	w.subscribers = append(w.subscribers, fn)
}

// Observe records a location reported by source. It returns true and
// notifies subscribers when the logical page changed.
func (w *Watcher) Observe(source, location string) bool {
	if location == "" || pagecopy.SamePage(w.last, location) {
		return false
	}
	from := w.last
	w.last = location
	w.logger.Info("navigation", "from", from, "to", location, "source", source)
	for _, fn := range w.subscribers {
		fn(location)
	}
	return true
}

// Ensure PollingSource implements pagecopy.EventSource at compile time.
var _ pagecopy.EventSource = (*PollingSource)(nil)

// PollingSource reports the host location on a fixed interval. It is the
// catch-all channel for navigations no hook reports.
type PollingSource struct {
	// Location reads the current location. It is called from the
	// source's goroutine.
	Location func(ctx context.Context) (string, error)

	// Interval defaults to DefaultPollInterval.
	Interval time.Duration

	Logger *slog.Logger
}

// Name identifies the channel.
func (s *PollingSource) Name() string {
	return "poll"
}

// Run polls until ctx is done. Only changed raw locations are emitted.
func (s *PollingSource) Run(ctx context.Context, emit func(pagecopy.Event)) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		loc, err := s.Location(ctx)
		if err != nil {
			logger.Debug("poll: location unavailable", "err", err)
			continue
		}
		if loc == last {
			continue
		}
		last = loc
		emit(pagecopy.Event{Kind: pagecopy.EventLocation, Source: s.Name(), Location: loc})
	}
}
