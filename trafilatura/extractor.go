// Package trafilatura finds the main content of pages that match no
// documentation framework, using go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements pagecopy.ArticleExtractor at compile time.
var _ pagecopy.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pagecopy.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagecopy.Errorf(pagecopy.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, pagecopy.Errorf(pagecopy.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, pagecopy.Errorf(pagecopy.ENOTFOUND, "no main content")
	}

	// The content node belongs to trafilatura's own parse; detach it so
	// the fragment owns it outright.
	root := result.ContentNode
	if root.Parent != nil {
		root.Parent.RemoveChild(root)
	}

	return &pagecopy.Article{
		Title:   result.Metadata.Title,
		Content: goquery.NewFragment(root),
	}, nil
}
