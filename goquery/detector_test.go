package goquery_test

import (
	"testing"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Detector implements pagecopy.FrameworkDetector at compile time.
var _ pagecopy.FrameworkDetector = (*goquery.Detector)(nil)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want pagecopy.Framework
	}{
		{
			name: "Docusaurus from skip link",
			html: `<html data-theme="light"><body><a id="__docusaurus_skipToContent_fallback" href="#__docusaurus_skipToContent_fallback">Skip</a></body></html>`,
			want: pagecopy.FrameworkDocusaurus,
		},
		{
			name: "Docusaurus from sidebar container",
			html: `<html><body><div class="theme-doc-sidebar-container"><nav class="menu"></nav></div></body></html>`,
			want: pagecopy.FrameworkDocusaurus,
		},
		{
			name: "Docusaurus from doc markdown",
			html: `<html><body><main><article><div class="theme-doc-markdown markdown"><h1>x</h1></div></article></main></body></html>`,
			want: pagecopy.FrameworkDocusaurus,
		},
		{
			name: "MkDocs from color scheme",
			html: `<html><body data-md-color-scheme="default"><nav class="md-nav"></nav></body></html>`,
			want: pagecopy.FrameworkMkDocs,
		},
		{
			name: "MkDocs from component attribute",
			html: `<html><body><div data-md-component="container"></div></body></html>`,
			want: pagecopy.FrameworkMkDocs,
		},
		{
			name: "Sphinx from toctree",
			html: `<html><body><div class="toctree-wrapper compound"></div></body></html>`,
			want: pagecopy.FrameworkSphinx,
		},
		{
			name: "Sphinx from ReadTheDocs sidebar",
			html: `<html><body><nav class="wy-nav-side"></nav></body></html>`,
			want: pagecopy.FrameworkSphinx,
		},
		{
			name: "VitePress from content id",
			html: `<html><body><div id="VPContent"></div></body></html>`,
			want: pagecopy.FrameworkVitePress,
		},
		{
			name: "VitePress wins over VuePress markers",
			html: `<html><body><div class="vp-doc theme-default-content"></div></body></html>`,
			want: pagecopy.FrameworkVitePress,
		},
		{
			name: "VuePress from default theme content",
			html: `<html><body><div class="theme-default-content"></div></body></html>`,
			want: pagecopy.FrameworkVuePress,
		},
		{
			name: "GitBook from test id",
			html: `<html><body><aside data-testid="space.sidebar"></aside></body></html>`,
			want: pagecopy.FrameworkGitBook,
		},
		{
			name: "GitBook from html classes",
			html: `<html class="circular-corners theme-clean tint"><body></body></html>`,
			want: pagecopy.FrameworkGitBook,
		},
		{
			name: "single GitBook class is not enough",
			html: `<html class="tint"><body></body></html>`,
			want: pagecopy.FrameworkUnknown,
		},
		{
			name: "Nextra from sidebar",
			html: `<html><body><aside class="nextra-sidebar"></aside></body></html>`,
			want: pagecopy.FrameworkNextra,
		},
		{
			name: "meta generator wins over markup",
			html: `<html><head><meta name="generator" content="Sphinx 7.2.6"></head><body><div class="theme-doc-markdown"></div></body></html>`,
			want: pagecopy.FrameworkSphinx,
		},
		{
			name: "meta generator is case insensitive",
			html: `<html><head><meta name="generator" content="Docusaurus v3.1.0"></head><body></body></html>`,
			want: pagecopy.FrameworkDocusaurus,
		},
		{
			name: "unknown generator falls through to markup",
			html: `<html><head><meta name="generator" content="Hugo 0.120"></head><body><div class="md-content"></div></body></html>`,
			want: pagecopy.FrameworkMkDocs,
		},
		{
			name: "plain page",
			html: `<html><body><p>hello</p></body></html>`,
			want: pagecopy.FrameworkUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := goquery.ParsePage(tt.html, "https://example.com/")
			require.NoError(t, err)

			assert.Equal(t, tt.want, goquery.NewDetector().Detect(page))
		})
	}
}
