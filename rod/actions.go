package rod

import (
	"context"
	"errors"

	"github.com/fwojciec/pagecopy"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure the action types implement their interfaces at compile time.
var (
	_ pagecopy.Clipboard = (*Clipboard)(nil)
	_ pagecopy.Clipboard = (*FallbackClipboard)(nil)
	_ pagecopy.Viewer    = (*Viewer)(nil)
	_ pagecopy.Opener    = (*Opener)(nil)
)

// Clipboard writes through the asynchronous Clipboard API of the page.
type Clipboard struct {
	Page *Page
}

// WriteText writes text to the clipboard.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	_, err := c.Page.page.Context(ctx).Eval(`async (t) => {
		if (!navigator.clipboard || !window.isSecureContext) {
			throw new Error('clipboard API unavailable');
		}
		await navigator.clipboard.writeText(t);
	}`, text)
	return err
}

// FallbackClipboard copies through a temporary off-screen text area and
// the legacy copy command, for pages where the Clipboard API is denied.
type FallbackClipboard struct {
	Page *Page
}

// WriteText writes text to the clipboard.
func (c *FallbackClipboard) WriteText(ctx context.Context, text string) error {
	res, err := c.Page.page.Context(ctx).Eval(`(t) => {
		const area = document.createElement('textarea');
		area.value = t;
		area.style.position = 'fixed';
		area.style.left = '-999999px';
		area.style.top = '-999999px';
		document.body.appendChild(area);
		area.focus();
		area.select();
		try {
			return document.execCommand('copy');
		} finally {
			area.remove();
		}
	}`, text)
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return errors.New("copy command was rejected")
	}
	return nil
}

// Viewer shows the document as plain text in a new tab.
type Viewer struct {
	Page *Page
}

// View opens a text/plain blob of the document body.
func (v *Viewer) View(ctx context.Context, doc *pagecopy.Document) error {
	_, err := v.Page.page.Context(ctx).Eval(`(t) => {
		const blob = new Blob([t], { type: 'text/plain;charset=utf-8' });
		const url = URL.createObjectURL(blob);
		window.open(url, '_blank');
		setTimeout(() => URL.revokeObjectURL(url), 60000);
	}`, doc.Body)
	return err
}

// Opener opens URLs in new tabs of the page's browser. Opening from the
// browser side is not subject to popup blocking.
type Opener struct {
	Page *Page
}

// Open creates a tab showing rawURL.
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	_, err := o.Page.page.Context(ctx).Browser().Page(proto.TargetCreateTarget{URL: rawURL})
	return err
}
