package mock

import (
	"context"

	"github.com/fwojciec/pagecopy"
)

var _ pagecopy.Asker = (*Asker)(nil)

// Asker is a mock implementation of pagecopy.Asker.
type Asker struct {
	AskFn func(ctx context.Context, doc *pagecopy.Document, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, doc *pagecopy.Document, question string) (string, error) {
	return a.AskFn(ctx, doc, question)
}
