package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/goquery"
	"github.com/fwojciec/pagecopy/mock"
	pcslog "github.com/fwojciec/pagecopy/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docusaurusHTML = `<html><head><meta name="generator" content="Docusaurus v3.1.0"></head><body><main><article><h1>Intro</h1></article></main></body></html>`

func parseTree(html, location string) (pagecopy.Tree, error) {
	return goquery.ParsePage(html, location)
}

func staticFetcher(html string, err error) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return html, err
		},
	}
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs the logical page without query or fragment", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		fetcher := pcslog.NewLoggingFetcher(staticFetcher(docusaurusHTML, nil), logger)

		html, err := fetcher.Fetch(context.Background(), "https://docs.example.com/docs/intro?v=2#install")

		require.NoError(t, err)
		assert.Equal(t, docusaurusHTML, html)
		output := buf.String()
		assert.Contains(t, output, "level=INFO msg=fetch")
		assert.Contains(t, output, "page=https://docs.example.com/docs/intro ")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "framework=")
	})

	t.Run("adds the framework at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		fetcher := pcslog.NewLoggingFetcher(staticFetcher(docusaurusHTML, nil), logger,
			pcslog.WithFramework(parseTree, goquery.NewDetector()))

		_, err := fetcher.Fetch(context.Background(), "https://docs.example.com/docs/intro")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "framework=docusaurus")
	})

	t.Run("unknown framework", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		detector := &mock.FrameworkDetector{
			DetectFn: func(pagecopy.Tree) pagecopy.Framework { return pagecopy.FrameworkUnknown },
		}
		fetcher := pcslog.NewLoggingFetcher(staticFetcher("<html><body><p>x</p></body></html>", nil), logger,
			pcslog.WithFramework(parseTree, detector))

		_, err := fetcher.Fetch(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), `framework=(unknown)`)
	})

	t.Run("skips detection above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		detector := &mock.FrameworkDetector{
			DetectFn: func(pagecopy.Tree) pagecopy.Framework {
				t.Fatal("detector must not run")
				return pagecopy.FrameworkUnknown
			},
		}
		fetcher := pcslog.NewLoggingFetcher(staticFetcher(docusaurusHTML, nil), logger,
			pcslog.WithFramework(parseTree, detector))

		_, err := fetcher.Fetch(context.Background(), "https://docs.example.com/docs/intro")

		require.NoError(t, err)
	})

	t.Run("warns with the error code on a missing page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		notFound := pagecopy.Errorf(pagecopy.ENOTFOUND, "page not found: https://docs.example.com/gone")
		fetcher := pcslog.NewLoggingFetcher(staticFetcher("", notFound), logger)

		_, err := fetcher.Fetch(context.Background(), "https://docs.example.com/gone")

		assert.Equal(t, pagecopy.ENOTFOUND, pagecopy.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, `level=WARN msg="fetch failed"`)
		assert.Contains(t, output, "code=not_found")
		assert.NotContains(t, output, "bytes=")
	})

	t.Run("infrastructure errors are internal", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		fetcher := pcslog.NewLoggingFetcher(staticFetcher("", errors.New("connection reset")), logger)

		_, err := fetcher.Fetch(context.Background(), "https://docs.example.com/docs/intro")

		require.EqualError(t, err, "connection reset")
		output := buf.String()
		assert.Contains(t, output, "code=internal")
		assert.Contains(t, output, `err="connection reset"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return errors.New("browser already gone")
		},
	}

	err := pcslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Close()

	require.EqualError(t, err, "browser already gone")
	assert.True(t, closed)
}
