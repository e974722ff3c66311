package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagecopy"
	"golang.org/x/net/html"
)

// Ensure Page implements pagecopy.MountHost at compile time.
var _ pagecopy.MountHost = (*Page)(nil)

// Page is an in-memory page tree. It serves as the host for one-shot
// conversion of fetched HTML and as a scriptable host in tests: Navigate
// swaps in a new rendering the way a single-page application would.
//
// Page is not safe for concurrent use; the widget event loop serializes
// access to it.
type Page struct {
	doc      *goquery.Document
	location string
	width    int
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithViewportWidth sets the width reported by ViewportWidth.
func WithViewportWidth(w int) PageOption {
	return func(p *Page) {
		p.width = w
	}
}

// NewPage parses HTML into a Page shown at location.
func NewPage(r io.Reader, location string, opts ...PageOption) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pagecopy.Errorf(pagecopy.EINVALID, "failed to parse HTML: %v", err)
	}
	p := &Page{doc: doc, location: location}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ParsePage is NewPage for an HTML string.
func ParsePage(htmlStr, location string, opts ...PageOption) (*Page, error) {
	return NewPage(strings.NewReader(htmlStr), location, opts...)
}

// Navigate replaces the rendered tree and location, discarding every node
// of the previous rendering including any mount.
func (p *Page) Navigate(htmlStr, location string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return pagecopy.Errorf(pagecopy.EINVALID, "failed to parse HTML: %v", err)
	}
	p.doc = doc
	p.location = location
	return nil
}

// SetLocation changes the location without re-rendering, as a hash or
// query change does.
func (p *Page) SetLocation(location string) {
	p.location = location
}

// SetViewportWidth changes the width reported by ViewportWidth.
func (p *Page) SetViewportWidth(w int) {
	p.width = w
}

// Update lets the host mutate its own tree, e.g. to hide a sidebar.
func (p *Page) Update(fn func(doc *goquery.Document)) {
	fn(p.doc)
}

// Document returns the underlying goquery document.
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// HTML renders the whole page.
func (p *Page) HTML() (string, error) {
	return p.doc.Html()
}

// Location returns the current location.
func (p *Page) Location() string {
	return p.location
}

// Find returns the first match of selector below scope, or in the whole
// page when scope is nil.
func (p *Page) Find(scope pagecopy.ContentNode, selector string) pagecopy.ContentNode {
	sel := p.doc.Selection
	if scope != nil {
		n := unwrap(scope)
		if n == nil || !p.attached(n) {
			return nil
		}
		sel = p.doc.FindNodes(n)
	}
	match := sel.Find(selector)
	if match.Length() == 0 {
		return nil
	}
	return Wrap(match.Get(0))
}

// Clone deep-copies n into an owned Fragment.
func (p *Page) Clone(cn pagecopy.ContentNode) (pagecopy.Fragment, error) {
	n := unwrap(cn)
	if n == nil {
		return nil, pagecopy.Errorf(pagecopy.EINVALID, "cannot clone foreign node")
	}
	return NewFragment(cloneTree(n)), nil
}

// Contains reports whether n is ancestor or below it.
func (p *Page) Contains(ancestor, n pagecopy.ContentNode) bool {
	a, c := unwrap(ancestor), unwrap(n)
	if a == nil || c == nil {
		return false
	}
	for ; c != nil; c = c.Parent {
		if c == a {
			return true
		}
	}
	return false
}

// Visible reports whether n is attached to the page and neither n nor any
// ancestor is hidden by a hidden attribute or an inline display:none.
// Static pages have no layout, so size is not considered.
func (p *Page) Visible(cn pagecopy.ContentNode) bool {
	n := unwrap(cn)
	if n == nil || !p.attached(n) {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if hasAttr(n, "hidden") {
			return false
		}
		if style, ok := attr(n, "style"); ok && displayNone(style) {
			return false
		}
	}
	return true
}

// ViewportWidth returns the configured viewport width.
func (p *Page) ViewportWidth() int {
	return p.width
}

// Mount inserts the widget container as the first child of region.
func (p *Page) Mount(region pagecopy.ContentNode, spec pagecopy.MountSpec) (pagecopy.ContentNode, error) {
	r := unwrap(region)
	if r == nil || !p.attached(r) {
		return nil, pagecopy.Errorf(pagecopy.ENOTFOUND, "mount region is not in the page")
	}

	container := &html.Node{Type: html.ElementNode, Data: "div"}
	container.Attr = append(container.Attr,
		html.Attribute{Key: "id", Val: spec.ID},
		html.Attribute{Key: pagecopy.InstanceAttr, Val: spec.InstanceID},
	)
	if css := spec.Style.CSS(); css != "" {
		container.Attr = append(container.Attr, html.Attribute{Key: "style", Val: css})
	}
	r.InsertBefore(container, r.FirstChild)
	return Wrap(container), nil
}

// Unmount detaches a container created by Mount.
func (p *Page) Unmount(owned pagecopy.ContentNode) error {
	n := unwrap(owned)
	if n == nil {
		return pagecopy.Errorf(pagecopy.EINVALID, "cannot unmount foreign node")
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return nil
}

// attached reports whether n belongs to the current rendering.
func (p *Page) attached(n *html.Node) bool {
	root := p.doc.Get(0)
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// render serializes n for debugging and the CommonMark engine.
func render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}

// displayNone reports whether an inline style suppresses display.
func displayNone(style string) bool {
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "display") &&
			strings.EqualFold(strings.TrimSpace(value), "none") {
			return true
		}
	}
	return false
}
