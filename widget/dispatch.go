package widget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/pagecopy"
)

// Dispatcher carries out user actions on a document snapshot.
type Dispatcher struct {
	Options *pagecopy.Options

	// Clipboard is tried first; Fallback achieves the same effect through
	// another path when Clipboard fails.
	Clipboard pagecopy.Clipboard
	Fallback  pagecopy.Clipboard

	Viewer pagecopy.Viewer
	Opener pagecopy.Opener

	Logger *slog.Logger
}

// Dispatch performs action on doc.
//
// It returns EINVALID for disabled or unknown actions, ENOTFOUND when no
// document has been extracted and ENOTIMPLEMENTED when the host lacks the
// needed capability. Clipboard failures are recovered through the
// fallback and otherwise only logged.
func (d *Dispatcher) Dispatch(ctx context.Context, action pagecopy.Action, doc *pagecopy.Document) error {
	if !action.Valid() {
		return pagecopy.Errorf(pagecopy.EINVALID, "unknown action %q", action)
	}
	if !d.Options.Enabled(action) {
		return pagecopy.Errorf(pagecopy.EINVALID, "action %q is disabled", action)
	}
	if doc == nil {
		return pagecopy.Errorf(pagecopy.ENOTFOUND, "no page content extracted yet")
	}

	switch action {
	case pagecopy.ActionCopy:
		d.copy(ctx, doc.Body)
		return nil
	case pagecopy.ActionViewMarkdown:
		if d.Viewer == nil {
			return pagecopy.Errorf(pagecopy.ENOTIMPLEMENTED, "viewing is not supported by this host")
		}
		return d.Viewer.View(ctx, doc)
	}

	assistant, _ := pagecopy.AssistantFor(action)
	if d.Opener == nil {
		return pagecopy.Errorf(pagecopy.ENOTIMPLEMENTED, "opening %s is not supported by this host", assistant.Name)
	}
	u, err := pagecopy.AssistantURL(assistant, doc)
	if err != nil {
		return err
	}
	if err := d.Opener.Open(ctx, u); err != nil {
		return fmt.Errorf("open %s: %w", assistant.Name, err)
	}
	return nil
}

func (d *Dispatcher) copy(ctx context.Context, text string) {
	logger := d.logger()
	if d.Clipboard != nil {
		err := d.Clipboard.WriteText(ctx, text)
		if err == nil {
			logger.Info("content copied to clipboard", "bytes", len(text))
			return
		}
		logger.Warn("clipboard write failed, using fallback", "err", err)
	}
	if d.Fallback == nil {
		logger.Error("copy failed: no fallback clipboard")
		return
	}
	if err := d.Fallback.WriteText(ctx, text); err != nil {
		logger.Error("copy failed", "err", err)
		return
	}
	logger.Info("content copied to clipboard", "bytes", len(text), "fallback", true)
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
