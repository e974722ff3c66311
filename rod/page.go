package rod

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// mountJS builds the widget container and inserts it as the first child
// of the element it runs on.
//
//go:embed mount.js
var mountJS string

// Ensure Page implements pagecopy.MountHost at compile time.
var _ pagecopy.MountHost = (*Page)(nil)

// Page is a live Chrome tab hosting the widget. Reads go through the
// DevTools protocol, so Page is safe for concurrent use and extraction may
// be offloaded from the widget loop.
type Page struct {
	page   *rod.Page
	logger *slog.Logger

	hooksOnce sync.Once
	hooksErr  error
}

// Open creates a tab in browser, loads url and waits for the load event.
func Open(ctx context.Context, browser *rod.Browser, url string, logger *slog.Logger) (*Page, error) {
	p, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	page := NewPage(p.Context(ctx), logger)
	if err := page.page.Navigate(url); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.page.WaitLoad(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}
	return page, nil
}

// NewPage wraps an existing rod page.
func NewPage(p *rod.Page, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.Default()
	}
	return &Page{page: p, logger: logger}
}

// Rod returns the underlying rod page.
func (p *Page) Rod() *rod.Page {
	return p.page
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}

// Location returns location.href, or "" when the page cannot be read.
func (p *Page) Location() string {
	loc, err := p.PollLocation(p.page.GetContext())
	if err != nil {
		p.logger.Debug("page: location unavailable", "err", err)
		return ""
	}
	return loc
}

// Find returns the first element matching selector below scope, or in the
// whole document when scope is nil. It never waits for the element.
func (p *Page) Find(scope pagecopy.ContentNode, selector string) pagecopy.ContentNode {
	var (
		ok  bool
		el  *rod.Element
		err error
	)
	if scope == nil {
		ok, el, err = p.page.Has(selector)
	} else {
		s := element(scope)
		if s == nil {
			return nil
		}
		ok, el, err = s.Has(selector)
	}
	if err != nil {
		p.logger.Debug("page: find failed", "selector", selector, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &Element{el: el, logger: p.logger}
}

// Clone serializes n and parses the copy locally.
func (p *Page) Clone(n pagecopy.ContentNode) (pagecopy.Fragment, error) {
	el := element(n)
	if el == nil {
		return nil, pagecopy.Errorf(pagecopy.EINVALID, "cannot clone foreign node")
	}
	outer, err := el.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading element HTML: %w", err)
	}
	return goquery.ParseFragment(outer)
}

// Contains reports whether n is ancestor or one of its descendants.
func (p *Page) Contains(ancestor, n pagecopy.ContentNode) bool {
	a, c := element(ancestor), element(n)
	if a == nil || c == nil {
		return false
	}
	res, err := a.Eval(`(n) => this.isConnected && this.contains(n)`, c.Object)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}

// Visible reports whether n is laid out with a non-zero size and is not
// display-suppressed.
func (p *Page) Visible(n pagecopy.ContentNode) bool {
	el := element(n)
	if el == nil {
		return false
	}
	res, err := el.Eval(`() => this.isConnected &&
		this.offsetWidth > 0 && this.offsetHeight > 0 &&
		getComputedStyle(this).display !== 'none'`)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}

// ViewportWidth returns window.innerWidth.
func (p *Page) ViewportWidth() int {
	res, err := p.page.Eval(`() => window.innerWidth`)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

// mountItem is one chrome menu entry passed to mount.js.
type mountItem struct {
	Action      pagecopy.Action `json:"action"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
}

// Mount inserts the widget container as the first child of region.
// Clicking an entry calls the page binding with an action event.
func (p *Page) Mount(region pagecopy.ContentNode, spec pagecopy.MountSpec) (pagecopy.ContentNode, error) {
	r := element(region)
	if r == nil {
		return nil, pagecopy.Errorf(pagecopy.EINVALID, "cannot mount into foreign node")
	}

	items := make([]mountItem, 0, len(spec.Actions))
	for _, a := range spec.Actions {
		items = append(items, mountItem{Action: a, Label: a.Label(), Description: a.Description()})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	obj, err := r.Evaluate(rod.Eval(mountJS,
		spec.ID, pagecopy.InstanceAttr, spec.InstanceID, spec.Style.CSS(), string(itemsJSON), bindingName,
	).ByObject())
	if err != nil {
		return nil, fmt.Errorf("mounting widget: %w", err)
	}
	container, err := p.page.ElementFromObject(obj)
	if err != nil {
		return nil, fmt.Errorf("resolving widget container: %w", err)
	}
	return &Element{el: container, logger: p.logger}, nil
}

// Unmount removes a container created by Mount.
func (p *Page) Unmount(owned pagecopy.ContentNode) error {
	el := element(owned)
	if el == nil {
		return pagecopy.Errorf(pagecopy.EINVALID, "cannot unmount foreign node")
	}
	// A container from a discarded document is already gone.
	if err := el.Remove(); err != nil {
		p.logger.Debug("page: unmount of stale container", "err", err)
	}
	return nil
}
