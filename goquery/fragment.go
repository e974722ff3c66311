package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagecopy"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Fragment implements pagecopy.Fragment at compile time.
var _ pagecopy.Fragment = (*Fragment)(nil)

// Fragment is an owned, detached copy of a subtree.
type Fragment struct {
	root *html.Node
	doc  *goquery.Document
}

// NewFragment takes ownership of root, which must not be attached to
// any other tree.
func NewFragment(root *html.Node) *Fragment {
	return &Fragment{root: root, doc: goquery.NewDocumentFromNode(root)}
}

// Root returns the copied subtree root.
func (f *Fragment) Root() pagecopy.ContentNode {
	return Wrap(f.root)
}

// Remove deletes every descendant matching any selector. Matches nested
// inside another removed node are counted once, with their ancestor.
func (f *Fragment) Remove(selectors ...string) int {
	removed := 0
	for _, sel := range selectors {
		s := f.doc.Find(sel)
		matched := make(map[*html.Node]bool, s.Length())
		for _, n := range s.Nodes {
			matched[n] = true
		}
		for _, n := range s.Nodes {
			if !hasAncestorIn(n, matched) {
				removed++
			}
		}
		s.Remove()
	}
	return removed
}

func hasAncestorIn(n *html.Node, set map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if set[p] {
			return true
		}
	}
	return false
}

// HTML renders the fragment.
func (f *Fragment) HTML() (string, error) {
	return render(f.root)
}

// ParseFragment parses the outer HTML of a single element, as serialized by
// a live browser, into a Fragment rooted at that element.
func ParseFragment(outerHTML string) (*Fragment, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(outerHTML), body)
	if err != nil {
		return nil, pagecopy.Errorf(pagecopy.EINVALID, "failed to parse HTML: %v", err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return NewFragment(n), nil
		}
	}
	return nil, pagecopy.Errorf(pagecopy.EINVALID, "no element in fragment")
}
