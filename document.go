package pagecopy

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DefaultTitle is used in the document header when no title is found.
const DefaultTitle = "Documentation Page"

// Document is the result of one extraction pass over a page.
// Documents are immutable; a new extraction produces a new Document.
type Document struct {
	Title     string `json:"title"`
	SourceURL string `json:"sourceUrl"`
	Body      string `json:"body"`
	Hash      uint64 `json:"hash"`
}

// NewDocument builds a Document whose body is the converted content
// prefixed with a title and URL header. An empty title falls back to
// DefaultTitle in the header.
func NewDocument(title, sourceURL, content string) *Document {
	title = strings.TrimSpace(title)
	heading := title
	if heading == "" {
		heading = DefaultTitle
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(heading)
	b.WriteString("\n\nURL: ")
	b.WriteString(sourceURL)
	b.WriteString("\n\n")
	b.WriteString(content)
	body := Normalize(b.String())

	return &Document{
		Title:     title,
		SourceURL: sourceURL,
		Body:      body,
		Hash:      xxhash.Sum64String(body),
	}
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Body == "" {
		return Errorf(EINVALID, "document body required")
	}
	return nil
}

// Same reports whether two documents carry identical bodies.
func (d *Document) Same(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Hash == other.Hash && d.Body == other.Body
}
