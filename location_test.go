package pagecopy_test

import (
	"testing"

	"github.com/fwojciec/pagecopy"
	"github.com/stretchr/testify/assert"
)

func TestLogicalPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"plain path", "https://example.com/docs/intro", "https://example.com/docs/intro"},
		{"drops fragment", "https://example.com/docs/intro#setup", "https://example.com/docs/intro"},
		{"drops query", "https://example.com/docs/intro?tab=npm", "https://example.com/docs/intro"},
		{"drops both", "https://example.com/docs/intro?tab=npm#setup", "https://example.com/docs/intro"},
		{"relative path", "/docs/intro#x", "/docs/intro"},
		{"unparseable falls back to cut", "http://[::1/x#frag", "http://[::1/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, pagecopy.LogicalPath(tt.location))
		})
	}
}

func TestSamePage(t *testing.T) {
	t.Parallel()

	assert.True(t, pagecopy.SamePage("https://example.com/a", "https://example.com/a#b"))
	assert.True(t, pagecopy.SamePage("https://example.com/a?x=1", "https://example.com/a?x=2"))
	assert.False(t, pagecopy.SamePage("https://example.com/a", "https://example.com/b"))
	assert.False(t, pagecopy.SamePage("https://example.com/a", "https://other.com/a"))
}
