// Package widget runs the page-copy widget against a host page: it keeps a
// single mount attached across navigation and viewport changes, re-extracts
// the page after each navigation and dispatches user actions.
//
// All widget state is owned by one event loop. Host event sources run in
// their own goroutines and only post events to the loop.
package widget

import (
	"time"

	"github.com/fwojciec/pagecopy"
)

// Default timings.
const (
	// DefaultExtractDelay lets the host finish rendering a new route
	// before extraction samples it.
	DefaultExtractDelay = 300 * time.Millisecond

	// DefaultResizeDelay coalesces resize storms before re-evaluating
	// mount visibility.
	DefaultResizeDelay = 300 * time.Millisecond

	// DefaultNarrowDelay postpones attachment after navigation on narrow
	// viewports, where the sidebar re-renders late.
	DefaultNarrowDelay = 100 * time.Millisecond

	// DefaultNarrowWidth is the widest viewport treated as narrow.
	DefaultNarrowWidth = 996

	// DefaultPollInterval is the location polling period.
	DefaultPollInterval = 100 * time.Millisecond
)

// DefaultRetryDelays returns the backoff between attachment attempts while
// no mount region exists: 100ms doubling up to 2s, 8 retries.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		2 * time.Second,
		2 * time.Second,
		2 * time.Second,
	}
}

// Config controls widget behaviour. Zero values take defaults.
type Config struct {
	// Profile supplies the selectors. Defaults to pagecopy.DocusaurusProfile.
	Profile *pagecopy.Profile

	// Options configures the rendered chrome and enabled actions.
	Options *pagecopy.Options

	ExtractDelay time.Duration
	ResizeDelay  time.Duration
	NarrowDelay  time.Duration
	NarrowWidth  int

	// RetryDelays bounds attachment retries. A nil slice takes
	// DefaultRetryDelays; use NoRetry to disable retries.
	RetryDelays []time.Duration

	// OffloadExtraction runs extraction off the loop. Only enable it for
	// hosts that are safe for concurrent reads.
	OffloadExtraction bool
}

// NoRetry disables attachment retries when used as Config.RetryDelays.
var NoRetry = []time.Duration{}

func (c *Config) defaults() {
	if c.Profile == nil {
		p := pagecopy.DocusaurusProfile
		c.Profile = &p
	}
	if c.Options == nil {
		c.Options = &pagecopy.Options{}
	}
	if c.ExtractDelay <= 0 {
		c.ExtractDelay = DefaultExtractDelay
	}
	if c.ResizeDelay <= 0 {
		c.ResizeDelay = DefaultResizeDelay
	}
	if c.NarrowDelay <= 0 {
		c.NarrowDelay = DefaultNarrowDelay
	}
	if c.NarrowWidth <= 0 {
		c.NarrowWidth = DefaultNarrowWidth
	}
	if c.RetryDelays == nil {
		c.RetryDelays = DefaultRetryDelays()
	}
}
