package mock

import (
	"context"

	"github.com/fwojciec/pagecopy"
)

var _ pagecopy.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of pagecopy.Clipboard.
type Clipboard struct {
	WriteTextFn func(ctx context.Context, text string) error
}

func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	return c.WriteTextFn(ctx, text)
}

var _ pagecopy.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of pagecopy.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, doc *pagecopy.Document) error
}

func (v *Viewer) View(ctx context.Context, doc *pagecopy.Document) error {
	return v.ViewFn(ctx, doc)
}

var _ pagecopy.Opener = (*Opener)(nil)

// Opener is a mock implementation of pagecopy.Opener.
type Opener struct {
	OpenFn func(ctx context.Context, rawURL string) error
}

func (o *Opener) Open(ctx context.Context, rawURL string) error {
	return o.OpenFn(ctx, rawURL)
}
