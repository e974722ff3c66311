package rod

import (
	"context"

	"github.com/fwojciec/pagecopy"
)

// Ensure Fetcher implements pagecopy.Fetcher at compile time.
var _ pagecopy.Fetcher = (*Fetcher)(nil)

// Fetcher renders pages in Chrome so that client-side documentation sites
// yield their content. Fetcher is safe for concurrent use.
type Fetcher struct {
	bm *BrowserManager
}

// NewFetcher creates a Fetcher with its own headless BrowserManager.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	bm, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{bm: bm}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.bm.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	f.bm.IncrementPageCount()
	return html, nil
}

// LauncherPID returns the Chrome launcher process id.
func (f *Fetcher) LauncherPID() int {
	return f.bm.LauncherPID()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.bm.Close()
}
