package pagecopy

// Article is the main content of a page found by boilerplate removal.
type Article struct {
	// Title comes from page metadata (meta tags, JSON+LD, <title>).
	Title string

	// Content is the main content with navigation, sidebars and footers
	// removed. It is owned by the caller.
	Content Fragment
}

// ArticleExtractor finds the main content of an arbitrary HTML page. It is
// the fallback for pages no framework profile can read.
type ArticleExtractor interface {
	// Extract returns ENOTFOUND when the page has no recognisable content.
	Extract(html string) (*Article, error)
}
