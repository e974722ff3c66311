package mock

import (
	"context"

	"github.com/fwojciec/pagecopy"
)

var _ pagecopy.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of pagecopy.TokenCounter.
type TokenCounter struct {
	CountDocumentFn func(ctx context.Context, doc *pagecopy.Document) (int, error)
	CountPromptFn   func(ctx context.Context, doc *pagecopy.Document, question string) (int, error)
}

func (tc *TokenCounter) CountDocument(ctx context.Context, doc *pagecopy.Document) (int, error) {
	return tc.CountDocumentFn(ctx, doc)
}

func (tc *TokenCounter) CountPrompt(ctx context.Context, doc *pagecopy.Document, question string) (int, error) {
	return tc.CountPromptFn(ctx, doc, question)
}
