// Package gemini answers questions about a copied page with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/pagecopy"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements pagecopy.Asker at compile time.
var _ pagecopy.Asker = (*Asker)(nil)

// Asker implements pagecopy.Asker using Google Gemini.
type Asker struct {
	client    *genai.Client
	model     string
	counter   pagecopy.TokenCounter
	maxTokens int
}

// Option configures an Asker.
type Option func(*Asker)

// WithModel overrides the Gemini model.
func WithModel(model string) Option {
	return func(a *Asker) {
		a.model = model
	}
}

// WithTokenLimit rejects questions whose full prompt, page included,
// exceeds max tokens as counted by counter.
func WithTokenLimit(counter pagecopy.TokenCounter, max int) Option {
	return func(a *Asker) {
		a.counter = counter
		a.maxTokens = max
	}
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, opts ...Option) *Asker {
	a := &Asker{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask answers a natural language question about a single page.
func (a *Asker) Ask(ctx context.Context, doc *pagecopy.Document, question string) (string, error) {
	if doc == nil || doc.Body == "" {
		return "", pagecopy.Errorf(pagecopy.ENOTFOUND, "no document to ask about")
	}
	if strings.TrimSpace(question) == "" {
		return "", pagecopy.Errorf(pagecopy.EINVALID, "question required")
	}

	if a.counter != nil && a.maxTokens > 0 {
		n, err := a.counter.CountPrompt(ctx, doc, question)
		if err != nil {
			return "", err
		}
		if n > a.maxTokens {
			return "", pagecopy.Errorf(pagecopy.EINVALID, "prompt has %d tokens, limit is %d", n, a.maxTokens)
		}
	}
	if a.client == nil {
		return "", pagecopy.Errorf(pagecopy.EINVALID, "gemini client not configured")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(doc, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", pagecopy.Errorf(pagecopy.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a documentation page. Answer based only on the page provided. If the answer is not on the page, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the page and question.
func BuildUserPrompt(doc *pagecopy.Document, question string) string {
	var sb strings.Builder
	sb.WriteString("<document>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", doc.Title)
	fmt.Fprintf(&sb, "<source>%s</source>\n", doc.SourceURL)
	fmt.Fprintf(&sb, "<content>%s</content>\n", doc.Body)
	sb.WriteString("</document>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
