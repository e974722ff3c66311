package widget

import (
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagecopy/goquery"
	"github.com/fwojciec/pagecopy/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_StaleResultDiscarded(t *testing.T) {
	t.Parallel()

	page, err := goquery.ParsePage(`<html><body><main><article><h1>A</h1><p>first</p></article></main></body></html>`, "https://example.com/docs/a")
	require.NoError(t, err)
	sched := &mock.Scheduler{}
	e := NewExtractor(page, nil, sched, Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Hold finished extractions so they can complete out of order.
	var pending []func()
	e.post = func(fn func()) { pending = append(pending, fn) }

	e.Schedule()
	sched.Advance(DefaultExtractDelay)
	require.NoError(t, page.Navigate(`<html><body><main><article><h1>B</h1><p>second</p></article></main></body></html>`, "https://example.com/docs/b"))
	e.Schedule()
	sched.Advance(DefaultExtractDelay)
	require.Len(t, pending, 2)

	// The newer pass completes first; the older one must not overwrite it.
	pending[1]()
	pending[0]()

	require.NotNil(t, e.Latest())
	assert.Equal(t, "B", e.Latest().Title)
	assert.Equal(t, "https://example.com/docs/b", e.Latest().SourceURL)
}
