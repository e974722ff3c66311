package widget

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagecopy"
)

// Ensure Loop implements pagecopy.Scheduler at compile time.
var _ pagecopy.Scheduler = (*Loop)(nil)

// Loop serializes every widget task on a single goroutine.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	logger *slog.Logger
}

// NewLoop creates a Loop. Tasks posted before Run are queued.
func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		tasks:  make(chan func(), 256),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Post queues fn to run on the loop. It returns false once the loop has
// stopped. Post is safe for concurrent use.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// After runs fn on the loop once d has elapsed. The returned Timer must
// only be stopped from the loop; a stopped timer never runs fn, even when
// its deadline passed while the callback was already queued.
func (l *Loop) After(d time.Duration, fn func()) pagecopy.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped {
				return
			}
			t.fired = true
			fn()
		})
	})
	return t
}

// Run executes queued tasks until ctx is done. Run must be called once.
// A panicking task is logged and the loop keeps going.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop: task panicked", "panic", r)
		}
	}()
	fn()
}

// loopTimer state is only read and written on the loop.
type loopTimer struct {
	timer   *time.Timer
	stopped bool
	fired   bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
