package pagecopy

// Converter renders a content subtree as portable text.
type Converter interface {
	// Convert transforms the subtree rooted at root into Markdown-flavoured
	// text. The input should be an owned Fragment root when chrome
	// elements have been stripped from it.
	Convert(root ContentNode) (string, error)
}

// Ensure TextConverter implements Converter at compile time.
var _ Converter = TextConverter{}

// TextConverter adapts Convert to the Converter interface.
type TextConverter struct{}

// Convert renders root with Convert. It never fails.
func (TextConverter) Convert(root ContentNode) (string, error) {
	return Convert(root), nil
}
