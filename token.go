package pagecopy

import "context"

// TokenCounter sizes a page for a model context window.
type TokenCounter interface {
	// CountDocument counts the tokens of the document's Markdown body, the
	// text a copy action places on the clipboard.
	CountDocument(ctx context.Context, doc *Document) (int, error)

	// CountPrompt counts the tokens of a complete request asking question
	// about doc, including any instructions the asker adds.
	CountPrompt(ctx context.Context, doc *Document, question string) (int, error)
}
