package rod

import (
	"log/slog"
	"sync"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/goquery"
	"github.com/go-rod/rod"
)

// Ensure Element implements pagecopy.ContentNode at compile time.
var _ pagecopy.ContentNode = (*Element)(nil)

// Element is a handle on a live DOM element. Attributes are read live;
// children and text come from a snapshot of the element taken on first
// use, since walking the DOM over the protocol one node at a time would
// cost a round trip per node.
type Element struct {
	el     *rod.Element
	logger *slog.Logger

	once     sync.Once
	snapshot pagecopy.ContentNode
}

// Rod returns the underlying rod element.
func (e *Element) Rod() *rod.Element {
	return e.el
}

// Kind always reports an element.
func (e *Element) Kind() pagecopy.NodeKind {
	return pagecopy.ElementNode
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	if s := e.snap(); s != nil {
		return s.Tag()
	}
	return ""
}

// Attr reads an attribute from the live element.
func (e *Element) Attr(name string) (string, bool) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

// Children returns the children of the snapshot.
func (e *Element) Children() []pagecopy.ContentNode {
	if s := e.snap(); s != nil {
		return s.Children()
	}
	return nil
}

// Text is always empty for elements.
func (e *Element) Text() string {
	return ""
}

func (e *Element) snap() pagecopy.ContentNode {
	e.once.Do(func() {
		outer, err := e.el.HTML()
		if err != nil {
			e.logger.Debug("element: snapshot failed", "err", err)
			return
		}
		frag, err := goquery.ParseFragment(outer)
		if err != nil {
			e.logger.Debug("element: snapshot failed", "err", err)
			return
		}
		e.snapshot = frag.Root()
	})
	return e.snapshot
}

// element returns the rod element behind n, or nil for foreign nodes.
func element(n pagecopy.ContentNode) *rod.Element {
	if e, ok := n.(*Element); ok && e != nil {
		return e.el
	}
	return nil
}
