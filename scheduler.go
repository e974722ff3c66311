package pagecopy

import "time"

// Timer is a pending callback created by a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay on the widget's event loop.
// Callbacks never run concurrently with each other.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}
