// Package readability finds the main content of pages that match no
// documentation framework, using go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagecopy.ArticleExtractor at compile time.
var _ pagecopy.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, pagecopy.Errorf(pagecopy.ENOTFOUND, "no main content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, pagecopy.Errorf(pagecopy.ENOTFOUND, "no main content")
	}

	frag, err := goquery.ParseFragment("<div>" + article.Content + "</div>")
	if err != nil {
		return nil, err
	}
	return &pagecopy.Article{Title: article.Title, Content: frag}, nil
}
