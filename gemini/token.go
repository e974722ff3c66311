package gemini

import (
	"context"

	"github.com/fwojciec/pagecopy"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ pagecopy.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes pages and ask prompts with the local Gemini tokenizer,
// so no API key is needed.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, pagecopy.Errorf(pagecopy.EINVALID, "no tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountDocument counts the tokens of doc's body. A nil or empty document
// counts as zero.
func (tc *TokenCounter) CountDocument(ctx context.Context, doc *pagecopy.Document) (int, error) {
	if doc == nil || doc.Body == "" {
		return 0, nil
	}
	return tc.count([]*genai.Content{genai.NewContentFromText(doc.Body, "user")}, nil)
}

// CountPrompt counts exactly what Asker sends for question: the system
// instruction plus the wrapped page and question.
func (tc *TokenCounter) CountPrompt(ctx context.Context, doc *pagecopy.Document, question string) (int, error) {
	if doc == nil {
		return 0, pagecopy.Errorf(pagecopy.ENOTFOUND, "no document to count")
	}
	contents := []*genai.Content{genai.NewContentFromText(BuildUserPrompt(doc, question), "user")}
	cfg := &genai.CountTokensConfig{SystemInstruction: BuildConfig().SystemInstruction}
	return tc.count(contents, cfg)
}

func (tc *TokenCounter) count(contents []*genai.Content, cfg *genai.CountTokensConfig) (int, error) {
	result, err := tc.tok.CountTokens(contents, cfg)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
