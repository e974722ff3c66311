package widget_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/goquery"
	"github.com/fwojciec/pagecopy/mock"
	"github.com/fwojciec/pagecopy/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// docsPage renders a Docusaurus-shaped page with chrome around the content.
func docsPage(title, para string) string {
	return fmt.Sprintf(`<html><body>
<nav class="navbar"><a href="/">Home</a></nav>
<main><div class="row">
<div class="col"><article>
<nav class="theme-doc-breadcrumbs"><a href="/">Docs</a></nav>
<div class="theme-doc-markdown markdown"><header><h1>%s</h1></header>
<p>%s</p>
<pre><code class="language-bash">npm install<button class="copy-code-button">Copy</button></code></pre>
</div>
<footer class="theme-doc-footer"><a class="theme-edit-this-page" href="#">Edit this page</a></footer>
</article></div>
<div class="col col--3"><div class="theme-doc-toc-desktop"><ul class="table-of-contents"><li><a href="#a">A</a></li></ul></div></div>
</div></main></body></html>`, title, para)
}

func newPage(t *testing.T, html, location string, opts ...goquery.PageOption) *goquery.Page {
	t.Helper()

	page, err := goquery.ParsePage(html, location, opts...)
	require.NoError(t, err)
	return page
}

// mounts counts widget containers in the page.
func mounts(page *goquery.Page) int {
	return page.Document().Find("#" + pagecopy.MountID).Length()
}

func TestWidget_EndToEnd(t *testing.T) {
	t.Parallel()

	page := newPage(t, `<html><body><main><article><h1>Title</h1><p>Hello <strong>world</strong></p></article></main></body></html>`, "https://x/y")
	sched := &mock.Scheduler{}
	w := widget.New(page, nil, widget.Config{}, widget.WithScheduler(sched), widget.WithLogger(testLogger()))

	w.Start()
	sched.Advance(widget.DefaultExtractDelay)

	doc := w.Extractor().Latest()
	require.NotNil(t, doc)
	assert.Equal(t, "# Title\n\nURL: https://x/y\n\n# Title\n\nHello **world**", doc.Body)
	assert.Equal(t, "ATTACHED(main article)", w.Controller().State().String())
	assert.Equal(t, 1, mounts(page))
}

func TestWidget_Navigation(t *testing.T) {
	t.Parallel()

	// Story: a reader follows an in-page anchor, then navigates to another
	// page. Only the second move re-attaches and re-extracts, once, even
	// though several channels report it.

	page := newPage(t, docsPage("A", "first"), "https://example.com/docs/a", goquery.WithViewportWidth(1280))
	sched := &mock.Scheduler{}
	w := widget.New(page, nil, widget.Config{}, widget.WithScheduler(sched), widget.WithLogger(testLogger()))

	var published []*pagecopy.Document
	w.Extractor().Subscribe(func(doc *pagecopy.Document) {
		published = append(published, doc)
	})

	w.Start()
	sched.Advance(widget.DefaultExtractDelay)
	require.Len(t, published, 1)
	require.Equal(t, 1, w.Controller().Created())

	// Hash change.
	page.SetLocation("https://example.com/docs/a#section")
	w.Handle(pagecopy.Event{Kind: pagecopy.EventLocation, Source: "popstate", Location: page.Location()})
	sched.Advance(time.Second)

	assert.Equal(t, 1, w.Controller().Created())
	assert.Equal(t, uint64(1), w.Extractor().Generation())
	assert.Equal(t, "https://example.com/docs/a", w.Watcher().Location())

	// Real navigation reported by every channel.
	require.NoError(t, page.Navigate(docsPage("B", "second"), "https://example.com/docs/b"))
	for _, source := range []string{"history", "popstate", "route-update", "poll"} {
		w.Handle(pagecopy.Event{Kind: pagecopy.EventLocation, Source: source, Location: page.Location()})
	}
	sched.Advance(widget.DefaultExtractDelay)

	assert.Equal(t, 2, w.Controller().Created())
	assert.Equal(t, uint64(2), w.Extractor().Generation())
	assert.Equal(t, 1, mounts(page))
	require.Len(t, published, 2)
	assert.Equal(t, "B", published[1].Title)
	assert.Equal(t, "https://example.com/docs/b", published[1].SourceURL)
	assert.Contains(t, published[1].Body, "second")
}

func TestWidget_HandleResize(t *testing.T) {
	t.Parallel()

	page := newPage(t, docsPage("A", "first"), "https://example.com/docs/a")
	sched := &mock.Scheduler{}
	w := widget.New(page, nil, widget.Config{}, widget.WithScheduler(sched), widget.WithLogger(testLogger()))
	w.Start()

	hideArticle(page)
	w.Handle(pagecopy.Event{Kind: pagecopy.EventResize, Source: "resize"})
	sched.Advance(widget.DefaultResizeDelay)

	assert.False(t, w.Controller().State().Attached)
}

func TestWidget_HandleAction(t *testing.T) {
	t.Parallel()

	page := newPage(t, docsPage("A", "first"), "https://example.com/docs/a")
	sched := &mock.Scheduler{}
	copied := make(chan string, 1)
	dispatcher := &widget.Dispatcher{
		Clipboard: &mock.Clipboard{
			WriteTextFn: func(_ context.Context, text string) error {
				copied <- text
				return nil
			},
		},
		Logger: testLogger(),
	}
	w := widget.New(page, nil, widget.Config{},
		widget.WithScheduler(sched),
		widget.WithDispatcher(dispatcher),
		widget.WithLogger(testLogger()),
	)
	w.Start()
	sched.Advance(widget.DefaultExtractDelay)

	w.Handle(pagecopy.Event{Kind: pagecopy.EventAction, Source: "chrome", Action: pagecopy.ActionCopy})

	select {
	case text := <-copied:
		assert.Equal(t, w.Extractor().Latest().Body, text)
	case <-time.After(time.Second):
		t.Fatal("clipboard was not written")
	}
}

func TestWidget_Run(t *testing.T) {
	t.Parallel()

	page := newPage(t, docsPage("A", "first"), "https://example.com/docs/a")
	copied := make(chan string, 1)
	dispatcher := &widget.Dispatcher{
		Clipboard: &mock.Clipboard{
			WriteTextFn: func(_ context.Context, text string) error {
				select {
				case copied <- text:
				default:
				}
				return nil
			},
		},
		Logger: testLogger(),
	}
	w := widget.New(page, nil, widget.Config{ExtractDelay: time.Millisecond},
		widget.WithDispatcher(dispatcher),
		widget.WithLogger(testLogger()),
	)

	// The source keeps clicking copy until a document is available.
	clicker := &mock.EventSource{
		NameFn: func() string { return "clicker" },
		RunFn: func(ctx context.Context, emit func(pagecopy.Event)) error {
			ticker := time.NewTicker(5 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					emit(pagecopy.Event{Kind: pagecopy.EventAction, Source: "clicker", Action: pagecopy.ActionCopy})
				}
			}
		},
	}
	failing := &mock.EventSource{
		NameFn: func() string { return "failing" },
		RunFn: func(context.Context, func(pagecopy.Event)) error {
			return pagecopy.Errorf(pagecopy.EINTERNAL, "channel unavailable")
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, clicker, failing)
	}()

	select {
	case text := <-copied:
		assert.Contains(t, text, "URL: https://example.com/docs/a")
	case <-time.After(5 * time.Second):
		t.Fatal("clipboard was not written")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, 0, mounts(page))
}
