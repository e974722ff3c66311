package widget

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fwojciec/pagecopy"
	"golang.org/x/sync/errgroup"
)

// Widget wires the Watcher, Controller and Extractor to one host page.
type Widget struct {
	host       pagecopy.MountHost
	loop       *Loop
	sched      pagecopy.Scheduler
	dispatcher *Dispatcher
	logger     *slog.Logger

	watcher    *Watcher
	controller *Controller
	extractor  *Extractor

	// ctx is the Run context, used for actions dispatched off the loop.
	ctx context.Context
}

// Option configures a Widget.
type Option func(*Widget)

// WithScheduler replaces the loop as the timer source. Used by tests that
// drive the widget through Start and Handle without running the loop.
func WithScheduler(s pagecopy.Scheduler) Option {
	return func(w *Widget) {
		w.sched = s
	}
}

// WithDispatcher sets the action dispatcher.
func WithDispatcher(d *Dispatcher) Option {
	return func(w *Widget) {
		w.dispatcher = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		w.logger = logger
	}
}

// New creates a Widget for host. A nil conv uses pagecopy.TextConverter.
func New(host pagecopy.MountHost, conv pagecopy.Converter, cfg Config, opts ...Option) *Widget {
	w := &Widget{host: host, logger: slog.Default(), ctx: context.Background()}
	for _, opt := range opts {
		opt(w)
	}
	w.loop = NewLoop(w.logger)
	if w.sched == nil {
		w.sched = w.loop
	}
	if w.dispatcher == nil {
		w.dispatcher = &Dispatcher{Options: cfg.Options, Logger: w.logger}
	}

	w.watcher = NewWatcher(host.Location(), w.logger)
	w.controller = NewController(host, w.sched, cfg, w.logger)
	w.extractor = NewExtractor(host, conv, w.sched, cfg, w.logger)
	if cfg.OffloadExtraction {
		w.extractor.offload = func(fn func()) { go fn() }
		w.extractor.post = func(fn func()) { w.loop.Post(fn) }
	}

	w.watcher.Subscribe(func(string) {
		w.controller.OnNavigate()
		w.extractor.Schedule()
	})
	w.extractor.Subscribe(func(doc *pagecopy.Document) {
		w.logger.Info("extracted", "url", doc.SourceURL, "title", doc.Title, "bytes", len(doc.Body))
	})
	return w
}

// Watcher returns the navigation watcher.
func (w *Widget) Watcher() *Watcher { return w.watcher }

// Controller returns the attachment controller.
func (w *Widget) Controller() *Controller { return w.controller }

// Extractor returns the extraction orchestrator.
func (w *Widget) Extractor() *Extractor { return w.extractor }

// Start performs the initial attachment and schedules the first
// extraction. It must run on the loop.
func (w *Widget) Start() {
	w.controller.ResolveAndAttach()
	w.extractor.Schedule()
}

// Handle reacts to one host event. It must run on the loop.
func (w *Widget) Handle(ev pagecopy.Event) {
	switch ev.Kind {
	case pagecopy.EventLocation:
		w.watcher.Observe(ev.Source, ev.Location)
	case pagecopy.EventResize:
		w.controller.OnResize()
	case pagecopy.EventVisibility:
		w.controller.Reevaluate()
	case pagecopy.EventAction:
		w.dispatch(ev.Action)
	default:
		w.logger.Debug("ignoring event", "kind", ev.Kind, "source", ev.Source)
	}
}

// dispatch hands the current snapshot to the dispatcher off the loop so
// slow host calls never stall navigation handling.
func (w *Widget) dispatch(action pagecopy.Action) {
	doc := w.extractor.Latest()
	ctx := w.ctx
	go func() {
		if err := w.dispatcher.Dispatch(ctx, action, doc); err != nil {
			w.logger.Warn("action failed", "action", action, "err", err)
		}
	}()
}

// Run starts the loop and every event source and blocks until ctx is
// done. Source failures are logged and never stop the widget. On return
// the mount has been removed.
func (w *Widget) Run(ctx context.Context, sources ...pagecopy.EventSource) error {
	g, ctx := errgroup.WithContext(ctx)
	w.ctx = ctx

	g.Go(func() error {
		return w.loop.Run(ctx)
	})
	w.loop.Post(w.Start)

	for _, src := range sources {
		g.Go(func() error {
			err := src.Run(ctx, func(ev pagecopy.Event) {
				w.loop.Post(func() { w.Handle(ev) })
			})
			if err != nil && ctx.Err() == nil {
				w.logger.Warn("event source stopped", "source", src.Name(), "err", err)
			}
			return nil
		})
	}

	err := g.Wait()
	// The loop has exited; nothing else touches the controller now.
	w.controller.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
