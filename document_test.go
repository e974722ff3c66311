package pagecopy_test

import (
	"testing"

	"github.com/fwojciec/pagecopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	t.Parallel()

	t.Run("prefixes title and URL header", func(t *testing.T) {
		t.Parallel()

		doc := pagecopy.NewDocument("Intro", "https://example.com/docs/intro", "Hello **world**")

		assert.Equal(t, "# Intro\n\nURL: https://example.com/docs/intro\n\nHello **world**", doc.Body)
		assert.Equal(t, "Intro", doc.Title)
		assert.Equal(t, "https://example.com/docs/intro", doc.SourceURL)
		assert.NotZero(t, doc.Hash)
	})

	t.Run("empty title falls back to default heading", func(t *testing.T) {
		t.Parallel()

		doc := pagecopy.NewDocument("  ", "https://example.com/x", "body")

		assert.Equal(t, "# Documentation Page\n\nURL: https://example.com/x\n\nbody", doc.Body)
		assert.Empty(t, doc.Title)
	})

	t.Run("body is normalized", func(t *testing.T) {
		t.Parallel()

		doc := pagecopy.NewDocument("T", "u", "\n\n\na\n\n\n\nb\n\n")

		assert.Equal(t, "# T\n\nURL: u\n\na\n\nb", doc.Body)
	})
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, pagecopy.NewDocument("T", "https://example.com", "x").Validate())
	})

	t.Run("missing source URL", func(t *testing.T) {
		t.Parallel()

		err := (&pagecopy.Document{Body: "x"}).Validate()

		assert.Equal(t, pagecopy.EINVALID, pagecopy.ErrorCode(err))
	})

	t.Run("missing body", func(t *testing.T) {
		t.Parallel()

		err := (&pagecopy.Document{SourceURL: "https://example.com"}).Validate()

		assert.Equal(t, pagecopy.EINVALID, pagecopy.ErrorCode(err))
	})
}

func TestDocument_Same(t *testing.T) {
	t.Parallel()

	a := pagecopy.NewDocument("T", "https://example.com", "x")
	b := pagecopy.NewDocument("T", "https://example.com", "x")
	c := pagecopy.NewDocument("T", "https://example.com", "y")

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
	assert.False(t, a.Same(nil))

	var none *pagecopy.Document
	assert.True(t, none.Same(nil))
}
