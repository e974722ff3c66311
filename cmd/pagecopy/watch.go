package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/rod"
	"github.com/fwojciec/pagecopy/widget"
)

// Run executes the watch command. It blocks until interrupted.
func (c *WatchCmd) Run(deps *Dependencies) error {
	opts, err := c.loadOptions()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecopy.ErrorMessage(err))
		return err
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt)
	defer stop()

	browser := deps.Browser.Browser()
	if browser == nil {
		return pagecopy.Errorf(pagecopy.EINVALID, "browser is closed")
	}
	page, err := rod.Open(ctx, browser, c.URL, deps.Logger)
	if err != nil {
		return err
	}
	defer page.Close()

	profile := pagecopy.ProfileFor(deps.Detector.Detect(page))
	cfg := widget.Config{
		Profile:           &profile,
		Options:           opts,
		OffloadExtraction: true,
	}
	dispatcher := &widget.Dispatcher{
		Options:   opts,
		Clipboard: &rod.Clipboard{Page: page},
		Fallback:  &rod.FallbackClipboard{Page: page},
		Viewer:    &rod.Viewer{Page: page},
		Opener:    &rod.Opener{Page: page},
		Logger:    deps.Logger,
	}
	w := widget.New(page, deps.Converter, cfg,
		widget.WithDispatcher(dispatcher),
		widget.WithLogger(deps.Logger),
	)

	fmt.Fprintf(deps.Stderr, "Watching %s (%s). Press Ctrl+C to stop.\n", c.URL, profile.Framework)
	return w.Run(ctx,
		&rod.HookSource{Page: page, Logger: deps.Logger},
		&rod.NavigationSource{Page: page},
		&widget.PollingSource{Location: page.PollLocation, Logger: deps.Logger},
	)
}

// loadOptions reads the widget options file, if one was given.
func (c *WatchCmd) loadOptions() (*pagecopy.Options, error) {
	if c.Options == "" {
		return &pagecopy.Options{}, nil
	}
	f, err := os.Open(c.Options)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pagecopy.ParseOptions(f)
}
