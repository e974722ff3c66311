package goquery

import (
	"strings"

	"github.com/fwojciec/pagecopy"
)

// Ensure Detector implements pagecopy.FrameworkDetector at compile time.
var _ pagecopy.FrameworkDetector = (*Detector)(nil)

// Detector identifies documentation frameworks from a page tree.
// It checks for framework-specific CSS classes, data attributes, meta tags,
// and structural markers that are unique to each documentation generator.
// It only reads through pagecopy.Tree, so it also works on live pages.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes the tree and returns the identified framework.
// Returns FrameworkUnknown if the framework cannot be determined.
func (d *Detector) Detect(tree pagecopy.Tree) pagecopy.Framework {
	// Meta generator tags are the most reliable signal when present
	if framework := d.detectFromMetaGenerator(tree); framework != pagecopy.FrameworkUnknown {
		return framework
	}

	// __docusaurus_skipToContent_fallback is highly specific
	if d.has(tree, "#__docusaurus_skipToContent_fallback") ||
		d.has(tree, ".theme-doc-sidebar-container") ||
		d.has(tree, ".theme-doc-markdown") {
		return pagecopy.FrameworkDocusaurus
	}

	// data-md-* attributes are unique to MkDocs Material
	if d.has(tree, "[data-md-color-scheme]") ||
		d.has(tree, "[data-md-component]") ||
		d.has(tree, ".md-content") {
		return pagecopy.FrameworkMkDocs
	}

	// Sphinx, including the ReadTheDocs theme
	if d.has(tree, ".toctree-wrapper") ||
		d.has(tree, ".wy-nav-side") ||
		d.has(tree, ".sphinxsidebar") {
		return pagecopy.FrameworkSphinx
	}

	// VitePress before VuePress since VitePress is a VuePress successor
	if d.has(tree, "#VPContent") ||
		d.has(tree, ".VPDoc") ||
		d.has(tree, ".vp-doc") {
		return pagecopy.FrameworkVitePress
	}

	if d.has(tree, ".theme-default-content") ||
		d.has(tree, ".vuepress-navbar") {
		return pagecopy.FrameworkVuePress
	}

	if d.has(tree, "[data-testid='space.sidebar']") ||
		d.has(tree, "[data-testid='page.desktopTableOfContents']") ||
		d.hasGitBookClasses(tree) {
		return pagecopy.FrameworkGitBook
	}

	if d.has(tree, ".nextra-sidebar") ||
		d.has(tree, ".nextra-toc") {
		return pagecopy.FrameworkNextra
	}

	return pagecopy.FrameworkUnknown
}

// detectFromMetaGenerator checks the meta generator tag.
func (d *Detector) detectFromMetaGenerator(tree pagecopy.Tree) pagecopy.Framework {
	meta := tree.Find(nil, "meta[name='generator']")
	if meta == nil {
		return pagecopy.FrameworkUnknown
	}
	content, _ := meta.Attr("content")
	generator := strings.ToLower(content)

	switch {
	case strings.Contains(generator, "sphinx"):
		return pagecopy.FrameworkSphinx
	case strings.Contains(generator, "gitbook"):
		return pagecopy.FrameworkGitBook
	case strings.Contains(generator, "docusaurus"):
		return pagecopy.FrameworkDocusaurus
	case strings.Contains(generator, "mkdocs"):
		return pagecopy.FrameworkMkDocs
	case strings.Contains(generator, "vitepress"):
		return pagecopy.FrameworkVitePress
	case strings.Contains(generator, "vuepress"):
		return pagecopy.FrameworkVuePress
	case strings.Contains(generator, "nextra"):
		return pagecopy.FrameworkNextra
	}

	return pagecopy.FrameworkUnknown
}

func (d *Detector) has(tree pagecopy.Tree, selector string) bool {
	return tree.Find(nil, selector) != nil
}

// hasGitBookClasses requires at least two of GitBook's html classes:
// circular-corners, theme-clean, tint.
func (d *Detector) hasGitBookClasses(tree pagecopy.Tree) bool {
	root := tree.Find(nil, "html")
	if root == nil {
		return false
	}
	class, _ := root.Attr("class")
	if class == "" {
		return false
	}

	count := 0
	for _, marker := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, marker) {
			count++
		}
	}
	return count >= 2
}
