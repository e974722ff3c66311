// Package goquery implements the pagecopy tree interfaces over parsed HTML
// using goquery and golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/fwojciec/pagecopy"
	"golang.org/x/net/html"
)

// Ensure Node implements pagecopy.ContentNode at compile time.
var _ pagecopy.ContentNode = (*Node)(nil)

// Node adapts an *html.Node to pagecopy.ContentNode.
type Node struct {
	n *html.Node
}

// Wrap returns n as a ContentNode. A nil n yields a nil interface so that
// callers can compare the result against nil.
func Wrap(n *html.Node) pagecopy.ContentNode {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

// HTMLNode returns the underlying node.
func (n *Node) HTMLNode() *html.Node {
	return n.n
}

// Kind reports the node kind.
func (n *Node) Kind() pagecopy.NodeKind {
	switch n.n.Type {
	case html.TextNode:
		return pagecopy.TextNode
	case html.ElementNode:
		return pagecopy.ElementNode
	}
	return pagecopy.OtherNode
}

// Tag returns the lower-case tag name of an element.
func (n *Node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.n.Data)
}

// Attr looks up an attribute by name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Children returns the child nodes in document order.
func (n *Node) Children() []pagecopy.ContentNode {
	var children []pagecopy.ContentNode
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, &Node{n: c})
	}
	return children
}

// Text returns the payload of a text node.
func (n *Node) Text() string {
	if n.n.Type != html.TextNode {
		return ""
	}
	return n.n.Data
}

// unwrap extracts the *html.Node behind a ContentNode produced by this
// package. Returns nil for foreign or nil nodes.
func unwrap(cn pagecopy.ContentNode) *html.Node {
	if n, ok := cn.(*Node); ok && n != nil {
		return n.n
	}
	return nil
}

// cloneTree deep-copies n and its descendants. The copy has no parent.
func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneTree(child))
	}
	return c
}
