package pagecopy

// Framework identifies a documentation framework.
type Framework string

// Supported documentation frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// FrameworkDetector identifies documentation frameworks from a page tree.
type FrameworkDetector interface {
	// Detect returns the identified framework, or FrameworkUnknown.
	Detect(tree Tree) Framework
}

// MountID is the element id of the widget container.
const MountID = "copy-page-button-container"

// Profile holds the ordered selector lists used to find things on a page.
// Every list is tried in order and the first match wins.
type Profile struct {
	Framework Framework

	// Content locates the primary content region.
	Content []string

	// Heading locates the title inside the content region.
	Heading string

	// Title locates the page title across the whole page when the
	// content region has no Heading.
	Title []string

	// Chrome lists UI elements stripped from the copied content region.
	Chrome []string

	// Mount locates the region the widget attaches to. Content-region
	// candidates come first, sidebar candidates are the fallback.
	Mount []string
}

// chrome is shared by every profile: the widget's own container and any
// button never belong in the extracted text.
var chrome = []string{
	"#" + MountID,
	"[" + InstanceAttr + "]",
	"button",
	".copy-code-button",
}

// DocusaurusProfile is the default profile.
var DocusaurusProfile = Profile{
	Framework: FrameworkDocusaurus,
	Content:   []string{"main article", "main .markdown"},
	Heading:   "h1",
	Title:     []string{".theme-doc-markdown h1", "article h1", "h1"},
	Chrome: append([]string{
		".theme-edit-this-page",
		".theme-last-updated",
		".pagination-nav",
		".theme-doc-breadcrumbs",
		".theme-doc-footer",
	}, chrome...),
	Mount: []string{
		".theme-doc-markdown header",
		"main article",
		".theme-doc-toc-desktop",
		".table-of-contents",
		`[class*="tableOfContents"]`,
		`[class*="toc"]`,
	},
}

var profiles = map[Framework]Profile{
	FrameworkDocusaurus: DocusaurusProfile,
	FrameworkMkDocs: {
		Framework: FrameworkMkDocs,
		Content:   []string{"article.md-content__inner", ".md-content"},
		Heading:   "h1",
		Title:     []string{"h1"},
		Chrome:    append([]string{".md-source-file", ".md-footer", ".md-content__button", ".headerlink"}, chrome...),
		Mount:     []string{"article.md-content__inner", ".md-sidebar--secondary .md-sidebar__inner"},
	},
	FrameworkSphinx: {
		Framework: FrameworkSphinx,
		Content:   []string{`[role="main"]`, ".body", ".document"},
		Heading:   "h1",
		Title:     []string{"h1"},
		Chrome:    append([]string{".headerlink", ".rst-footer-buttons", "footer", ".wy-breadcrumbs"}, chrome...),
		Mount:     []string{`[role="main"]`, ".sphinxsidebar"},
	},
	FrameworkVitePress: {
		Framework: FrameworkVitePress,
		Content:   []string{".vp-doc", "main"},
		Heading:   "h1",
		Title:     []string{"h1"},
		Chrome:    append([]string{".header-anchor", ".edit-info", ".prev-next", ".VPDocFooter"}, chrome...),
		Mount:     []string{".vp-doc", ".VPDocAsideOutline"},
	},
	FrameworkVuePress: {
		Framework: FrameworkVuePress,
		Content:   []string{".theme-default-content", "main"},
		Heading:   "h1",
		Title:     []string{"h1"},
		Chrome:    append([]string{".header-anchor", ".page-edit", ".page-nav"}, chrome...),
		Mount:     []string{".theme-default-content", ".sidebar"},
	},
	FrameworkGitBook: {
		Framework: FrameworkGitBook,
		Content:   []string{"main"},
		Heading:   "h1",
		Title:     []string{"h1"},
		Chrome:    append([]string{"[data-testid='page.desktopTableOfContents']"}, chrome...),
		Mount:     []string{"main header", "[data-testid='page.desktopTableOfContents']"},
	},
	FrameworkNextra: {
		Framework: FrameworkNextra,
		Content:   []string{"main article", "main"},
		Heading:   "h1",
		Title:     []string{"h1"},
		Chrome:    append([]string{".nextra-breadcrumb", "footer"}, chrome...),
		Mount:     []string{"main article", ".nextra-toc"},
	},
}

// ProfileFor returns the selector profile for a framework, falling back
// to DocusaurusProfile for unknown frameworks.
func ProfileFor(f Framework) Profile {
	if p, ok := profiles[f]; ok {
		return p
	}
	return DocusaurusProfile
}
