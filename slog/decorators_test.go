package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/mock"
	pcslog "github.com/fwojciec/pagecopy/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("logs detected framework", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FrameworkDetector{
			DetectFn: func(pagecopy.Tree) pagecopy.Framework {
				return pagecopy.FrameworkDocusaurus
			},
		}

		got := pcslog.NewLoggingDetector(inner, logger).Detect(nil)

		assert.Equal(t, pagecopy.FrameworkDocusaurus, got)
		assert.Contains(t, buf.String(), "framework detection")
		assert.Contains(t, buf.String(), "framework=docusaurus")
	})

	t.Run("names unknown framework", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FrameworkDetector{
			DetectFn: func(pagecopy.Tree) pagecopy.Framework {
				return pagecopy.FrameworkUnknown
			},
		}

		got := pcslog.NewLoggingDetector(inner, logger).Detect(nil)

		assert.Equal(t, pagecopy.FrameworkUnknown, got)
		assert.Contains(t, buf.String(), "framework=(unknown)")
	})
}

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("logs at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Converter{
			ConvertFn: func(pagecopy.ContentNode) (string, error) {
				return "# Hi", nil
			},
		}

		got, err := pcslog.NewLoggingConverter(inner, logger).Convert(mock.Text("Hi"))

		require.NoError(t, err)
		assert.Equal(t, "# Hi", got)
		assert.Contains(t, buf.String(), "msg=convert")
		assert.Contains(t, buf.String(), "bytes=4")
	})

	t.Run("silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Converter{
			ConvertFn: func(pagecopy.ContentNode) (string, error) {
				return "", errors.New("boom")
			},
		}

		_, err := pcslog.NewLoggingConverter(inner, logger).Convert(mock.Text("Hi"))

		require.EqualError(t, err, "boom")
		assert.Empty(t, buf.String())
	})
}

func TestLoggingAsker_Ask(t *testing.T) {
	t.Parallel()

	t.Run("logs source and answer size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Asker{
			AskFn: func(_ context.Context, _ *pagecopy.Document, q string) (string, error) {
				return "answer to " + q, nil
			},
		}
		doc := pagecopy.NewDocument("Intro", "https://docs.example.com/intro", "Hello")

		got, err := pcslog.NewLoggingAsker(inner, logger).Ask(context.Background(), doc, "why")

		require.NoError(t, err)
		assert.Equal(t, "answer to why", got)
		assert.Contains(t, buf.String(), "msg=ask")
		assert.Contains(t, buf.String(), "source=https://docs.example.com/intro")
		assert.Contains(t, buf.String(), "answer_bytes=13")
	})

	t.Run("tolerates nil document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Asker{
			AskFn: func(context.Context, *pagecopy.Document, string) (string, error) {
				return "", pagecopy.Errorf(pagecopy.ENOTFOUND, "no document")
			},
		}

		_, err := pcslog.NewLoggingAsker(inner, logger).Ask(context.Background(), nil, "why")

		assert.Equal(t, pagecopy.ENOTFOUND, pagecopy.ErrorCode(err))
		assert.Contains(t, buf.String(), "err=")
	})
}
