package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/gemini"
	"github.com/fwojciec/pagecopy/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *pagecopy.Document {
	return pagecopy.NewDocument("Getting Started", "https://docs.example.com/start", "HTMX is a library.")
}

func TestAsker_Ask_ReturnsErrorWhenNoDocument(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil) // nil client ok for this test

	_, err := asker.Ask(context.Background(), nil, "what is this?")

	require.Error(t, err)
	assert.Equal(t, pagecopy.ENOTFOUND, pagecopy.ErrorCode(err))
	assert.Contains(t, pagecopy.ErrorMessage(err), "no document")
}

func TestAsker_Ask_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil)

	_, err := asker.Ask(context.Background(), testDoc(), "  ")

	require.Error(t, err)
	assert.Equal(t, pagecopy.EINVALID, pagecopy.ErrorCode(err))
	assert.Contains(t, pagecopy.ErrorMessage(err), "question required")
}

func TestAsker_Ask_RejectsPromptOverTokenLimit(t *testing.T) {
	t.Parallel()

	var counted *pagecopy.Document
	var question string
	counter := &mock.TokenCounter{
		CountPromptFn: func(_ context.Context, doc *pagecopy.Document, q string) (int, error) {
			counted, question = doc, q
			return 5000, nil
		},
	}
	doc := testDoc()
	asker := gemini.NewAsker(nil, gemini.WithTokenLimit(counter, 1000))

	_, err := asker.Ask(context.Background(), doc, "what is this?")

	require.Error(t, err)
	assert.Equal(t, pagecopy.EINVALID, pagecopy.ErrorCode(err))
	assert.Equal(t, "prompt has 5000 tokens, limit is 1000", pagecopy.ErrorMessage(err))
	assert.Same(t, doc, counted)
	assert.Equal(t, "what is this?", question)
}

func TestAsker_Ask_PropagatesTokenCounterError(t *testing.T) {
	t.Parallel()

	counter := &mock.TokenCounter{
		CountPromptFn: func(context.Context, *pagecopy.Document, string) (int, error) {
			return 0, errors.New("tokenizer failed")
		},
	}
	asker := gemini.NewAsker(nil, gemini.WithTokenLimit(counter, 1000))

	_, err := asker.Ask(context.Background(), testDoc(), "what is this?")

	require.EqualError(t, err, "tokenizer failed")
}

func TestAsker_Ask_ReturnsErrorWithoutClient(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil)

	_, err := asker.Ask(context.Background(), testDoc(), "what is this?")

	assert.Equal(t, pagecopy.EINVALID, pagecopy.ErrorCode(err))
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "helpful assistant")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt(testDoc(), "What is HTMX?")

	assert.Contains(t, prompt, "<title>Getting Started</title>")
	assert.Contains(t, prompt, "<source>https://docs.example.com/start</source>")
	assert.Contains(t, prompt, "HTMX is a library.")
	assert.Contains(t, prompt, "Question: What is HTMX?")
	assert.NotContains(t, prompt, "You are a helpful assistant")
}
