package rod

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fwojciec/pagecopy"
	"github.com/go-rod/rod/lib/proto"
)

// bindingName is the page binding through which injected scripts report
// events. It must match hooks.js.
const bindingName = "__pagecopy"

// hooksJS reports history changes, back/forward, route updates, resizes
// and visibility changes through the binding.
//
//go:embed hooks.js
var hooksJS string

// InstallHooks registers the binding and injects the hooks into the
// current document and every document loaded later. It is idempotent.
func (p *Page) InstallHooks() error {
	p.hooksOnce.Do(func() {
		if err := (proto.RuntimeAddBinding{Name: bindingName}).Call(p.page); err != nil {
			p.hooksErr = fmt.Errorf("adding binding: %w", err)
			return
		}
		if _, err := p.page.EvalOnNewDocument(hooksJS); err != nil {
			p.hooksErr = fmt.Errorf("installing hooks: %w", err)
			return
		}
		if _, err := p.page.Eval(`() => ` + hooksJS); err != nil {
			p.hooksErr = fmt.Errorf("installing hooks: %w", err)
		}
	})
	return p.hooksErr
}

// bindingPayload is what injected scripts send through the binding.
type bindingPayload struct {
	Kind     string          `json:"kind"`
	Source   string          `json:"source"`
	Location string          `json:"location"`
	Action   pagecopy.Action `json:"action"`
}

var bindingKinds = map[string]pagecopy.EventKind{
	"location":   pagecopy.EventLocation,
	"resize":     pagecopy.EventResize,
	"visibility": pagecopy.EventVisibility,
	"action":     pagecopy.EventAction,
}

// parseBinding decodes a binding payload into an event.
func parseBinding(payload string) (pagecopy.Event, error) {
	var msg bindingPayload
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return pagecopy.Event{}, pagecopy.Errorf(pagecopy.EINVALID, "invalid binding payload: %v", err)
	}
	kind, ok := bindingKinds[msg.Kind]
	if !ok {
		return pagecopy.Event{}, pagecopy.Errorf(pagecopy.EINVALID, "unknown event kind %q", msg.Kind)
	}
	return pagecopy.Event{Kind: kind, Source: msg.Source, Location: msg.Location, Action: msg.Action}, nil
}

// Ensure HookSource implements pagecopy.EventSource at compile time.
var _ pagecopy.EventSource = (*HookSource)(nil)

// HookSource relays events reported by the injected page scripts: history
// interception, popstate, route updates, viewport changes and clicks on
// the widget chrome.
type HookSource struct {
	Page   *Page
	Logger *slog.Logger
}

// Name identifies the channel.
func (s *HookSource) Name() string {
	return "hooks"
}

// Run installs the hooks and relays binding calls until ctx is done.
func (s *HookSource) Run(ctx context.Context, emit func(pagecopy.Event)) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := s.Page.InstallHooks(); err != nil {
		return err
	}

	wait := s.Page.page.Context(ctx).EachEvent(func(e *proto.RuntimeBindingCalled) {
		if e.Name != bindingName {
			return
		}
		ev, err := parseBinding(e.Payload)
		if err != nil {
			logger.Warn("hooks: dropping payload", "err", err)
			return
		}
		emit(ev)
	})
	wait()
	return ctx.Err()
}

// Ensure NavigationSource implements pagecopy.EventSource at compile time.
var _ pagecopy.EventSource = (*NavigationSource)(nil)

// NavigationSource reports main-frame navigations seen by the browser,
// including same-document ones that scripts may not announce.
type NavigationSource struct {
	Page *Page
}

// Name identifies the channel.
func (s *NavigationSource) Name() string {
	return "cdp"
}

// Run relays navigation events until ctx is done.
func (s *NavigationSource) Run(ctx context.Context, emit func(pagecopy.Event)) error {
	wait := s.Page.page.Context(ctx).EachEvent(
		func(e *proto.PageNavigatedWithinDocument) {
			emit(pagecopy.Event{Kind: pagecopy.EventLocation, Source: s.Name(), Location: e.URL})
		},
		func(e *proto.PageFrameNavigated) {
			if e.Frame == nil || e.Frame.ParentID != "" {
				return
			}
			emit(pagecopy.Event{Kind: pagecopy.EventLocation, Source: s.Name(), Location: e.Frame.URL})
		},
	)
	wait()
	return ctx.Err()
}

// PollLocation reads the location for widget.PollingSource.
func (p *Page) PollLocation(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(`() => location.href`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}
