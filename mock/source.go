package mock

import (
	"context"

	"github.com/fwojciec/pagecopy"
)

var _ pagecopy.EventSource = (*EventSource)(nil)

// EventSource is a mock implementation of pagecopy.EventSource.
type EventSource struct {
	NameFn func() string
	RunFn  func(ctx context.Context, emit func(pagecopy.Event)) error
}

func (s *EventSource) Name() string {
	return s.NameFn()
}

func (s *EventSource) Run(ctx context.Context, emit func(pagecopy.Event)) error {
	return s.RunFn(ctx, emit)
}
