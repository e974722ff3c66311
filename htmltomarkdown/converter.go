// Package htmltomarkdown implements pagecopy.Converter with the CommonMark
// engine from html-to-markdown, for callers that want escaped, CommonMark-compliant
// Markdown rather than the plain-text rendering of pagecopy.Convert.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagecopy"
	"golang.org/x/net/html"
)

// Ensure Converter implements pagecopy.Converter at compile time.
var _ pagecopy.Converter = (*Converter)(nil)

// htmlNode is implemented by content nodes backed by a parsed HTML tree,
// such as those from the goquery package.
type htmlNode interface {
	HTMLNode() *html.Node
}

// Converter wraps html-to-markdown to convert content trees to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and images against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert renders root back to HTML and converts it. Only nodes backed by
// an HTML tree are supported.
func (c *Converter) Convert(root pagecopy.ContentNode) (string, error) {
	n, ok := root.(htmlNode)
	if !ok || n.HTMLNode() == nil {
		return "", pagecopy.Errorf(pagecopy.EINVALID, "content node is not backed by HTML")
	}

	var sb strings.Builder
	if err := html.Render(&sb, n.HTMLNode()); err != nil {
		return "", err
	}
	return c.ConvertHTML(sb.String())
}

// ConvertHTML transforms HTML content into Markdown.
func (c *Converter) ConvertHTML(htmlStr string) (string, error) {
	if strings.TrimSpace(htmlStr) == "" {
		return "", pagecopy.Errorf(pagecopy.EINVALID, "empty HTML input")
	}

	var (
		result string
		err    error
	)
	if c.domain != "" {
		result, err = c.conv.ConvertString(htmlStr, converter.WithDomain(c.domain))
	} else {
		result, err = c.conv.ConvertString(htmlStr)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
