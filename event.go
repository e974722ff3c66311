package pagecopy

import "context"

// EventKind identifies what a host signal reports.
type EventKind int

// Event kinds.
const (
	// EventLocation reports the location currently shown by the host.
	// Sources may repeat locations; the watcher drops non-changes.
	EventLocation EventKind = iota + 1

	// EventResize reports a viewport resize.
	EventResize

	// EventVisibility reports a document visibility change.
	EventVisibility

	// EventAction reports a user action invoked from the widget chrome.
	EventAction
)

// String returns the event kind name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventLocation:
		return "location"
	case EventResize:
		return "resize"
	case EventVisibility:
		return "visibility"
	case EventAction:
		return "action"
	}
	return "unknown"
}

// Event is a signal from the host environment.
type Event struct {
	Kind     EventKind
	Source   string
	Location string
	Action   Action
}

// EventSource produces host events from one channel (polling, history
// interception, back/forward, viewport listeners). Sources run
// independently and only report; they never react to what they observe.
type EventSource interface {
	// Name identifies the channel in logs.
	Name() string

	// Run emits events until ctx is canceled or the channel fails.
	Run(ctx context.Context, emit func(Event)) error
}
