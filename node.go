package pagecopy

import "strings"

// NodeKind distinguishes text from element nodes in a content tree.
type NodeKind int

// Node kinds. OtherNode covers comments, doctypes and anything else that
// carries no renderable content.
const (
	OtherNode NodeKind = iota
	TextNode
	ElementNode
)

// ContentNode is a read-only view of a node in a rendered content tree.
type ContentNode interface {
	// Kind reports whether the node is text, an element or something else.
	Kind() NodeKind

	// Tag returns the lower-case tag name for elements, "" otherwise.
	Tag() string

	// Attr looks up an attribute on an element.
	Attr(name string) (string, bool)

	// Children returns the ordered child nodes. May be empty.
	Children() []ContentNode

	// Text returns the payload of a text node, "" otherwise.
	Text() string
}

// Fragment is an exclusively owned deep copy of a subtree.
// Unlike the live tree it was cloned from, a Fragment may be mutated.
type Fragment interface {
	// Root returns the copied subtree root.
	Root() ContentNode

	// Remove deletes every node matching any of the CSS selectors and
	// returns the number of nodes removed.
	Remove(selectors ...string) int
}

// TextContent returns the concatenated text of n and all its descendants,
// in document order.
func TextContent(n ContentNode) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	writeText(&sb, n)
	return sb.String()
}

func writeText(sb *strings.Builder, n ContentNode) {
	switch n.Kind() {
	case TextNode:
		sb.WriteString(n.Text())
	case ElementNode:
		for _, c := range n.Children() {
			writeText(sb, c)
		}
	}
}
