package mock

import "github.com/fwojciec/pagecopy"

var _ pagecopy.ContentNode = (*Node)(nil)

// Node is an in-memory pagecopy.ContentNode for building trees in tests.
type Node struct {
	NodeKind pagecopy.NodeKind
	TagName  string
	Attrs    map[string]string
	Nodes    []*Node
	Data     string
}

// Element builds an element node.
func Element(tag string, attrs map[string]string, children ...*Node) *Node {
	return &Node{NodeKind: pagecopy.ElementNode, TagName: tag, Attrs: attrs, Nodes: children}
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{NodeKind: pagecopy.TextNode, Data: s}
}

// Comment builds a node that is neither text nor element.
func Comment(s string) *Node {
	return &Node{NodeKind: pagecopy.OtherNode, Data: s}
}

func (n *Node) Kind() pagecopy.NodeKind { return n.NodeKind }

func (n *Node) Tag() string {
	if n.NodeKind != pagecopy.ElementNode {
		return ""
	}
	return n.TagName
}

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

func (n *Node) Children() []pagecopy.ContentNode {
	children := make([]pagecopy.ContentNode, len(n.Nodes))
	for i, c := range n.Nodes {
		children[i] = c
	}
	return children
}

func (n *Node) Text() string {
	if n.NodeKind != pagecopy.TextNode {
		return ""
	}
	return n.Data
}
