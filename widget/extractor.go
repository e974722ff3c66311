package widget

import (
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/pagecopy"
)

// Extractor turns the host page into a pagecopy.Document and republishes
// it after every navigation.
//
// Extract may be called from anywhere the tree may be read. Schedule,
// Latest and Subscribe must be called from the loop.
type Extractor struct {
	tree    pagecopy.Tree
	conv    pagecopy.Converter
	sched   pagecopy.Scheduler
	profile *pagecopy.Profile
	delay   time.Duration
	logger  *slog.Logger

	// offload runs fn away from the loop; post brings a result back.
	offload func(fn func())
	post    func(fn func())

	latest      *pagecopy.Document
	generation  uint64
	timer       pagecopy.Timer
	subscribers []func(*pagecopy.Document)
}

// NewExtractor creates an Extractor. A nil conv uses pagecopy.TextConverter.
func NewExtractor(tree pagecopy.Tree, conv pagecopy.Converter, sched pagecopy.Scheduler, cfg Config, logger *slog.Logger) *Extractor {
	cfg.defaults()
	if conv == nil {
		conv = pagecopy.TextConverter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	inline := func(fn func()) { fn() }
	return &Extractor{
		tree:    tree,
		conv:    conv,
		sched:   sched,
		profile: cfg.Profile,
		delay:   cfg.ExtractDelay,
		logger:  logger,
		offload: inline,
		post:    inline,
	}
}

// Extract reads the page once. It returns ENOTFOUND when the page has no
// content region or the region converts to nothing.
func (e *Extractor) Extract() (*pagecopy.Document, error) {
	region, selector := e.contentRegion()
	if region == nil {
		return nil, pagecopy.Errorf(pagecopy.ENOTFOUND, "no content region on %s", e.tree.Location())
	}
	title := e.title(region)

	frag, err := e.tree.Clone(region)
	if err != nil {
		return nil, err
	}
	removed := frag.Remove(e.profile.Chrome...)

	content, err := e.conv.Convert(frag.Root())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, pagecopy.Errorf(pagecopy.ENOTFOUND, "content region %q is empty", selector)
	}

	e.logger.Debug("extract", "region", selector, "chrome", removed, "bytes", len(content))
	return pagecopy.NewDocument(title, e.tree.Location(), content), nil
}

func (e *Extractor) contentRegion() (pagecopy.ContentNode, string) {
	for _, sel := range e.profile.Content {
		if n := e.tree.Find(nil, sel); n != nil {
			return n, sel
		}
	}
	return nil, ""
}

// title prefers a heading inside the content region, then the profile's
// page-wide title selectors.
func (e *Extractor) title(region pagecopy.ContentNode) string {
	if e.profile.Heading != "" {
		if h := e.tree.Find(region, e.profile.Heading); h != nil {
			if t := strings.TrimSpace(pagecopy.TextContent(h)); t != "" {
				return t
			}
		}
	}
	for _, sel := range e.profile.Title {
		if h := e.tree.Find(nil, sel); h != nil {
			if t := strings.TrimSpace(pagecopy.TextContent(h)); t != "" {
				return t
			}
		}
	}
	return ""
}

// Schedule supersedes any pending or in-flight extraction and samples the
// page again after the extraction delay.
func (e *Extractor) Schedule() {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.generation++
	gen := e.generation
	e.timer = e.sched.After(e.delay, func() {
		e.timer = nil
		e.run(gen)
	})
}

func (e *Extractor) run(gen uint64) {
	e.offload(func() {
		doc, err := e.Extract()
		e.post(func() {
			e.complete(gen, doc, err)
		})
	})
}

func (e *Extractor) complete(gen uint64, doc *pagecopy.Document, err error) {
	if gen != e.generation {
		e.logger.Debug("extract: superseded result discarded", "generation", gen)
		return
	}
	if err != nil {
		// The previous document stays published.
		if pagecopy.ErrorCode(err) == pagecopy.ENOTFOUND {
			e.logger.Debug("extract: nothing to extract", "err", pagecopy.ErrorMessage(err))
		} else {
			e.logger.Warn("extract: failed", "err", err)
		}
		return
	}
	if doc.Same(e.latest) {
		return
	}
	e.latest = doc
	for _, fn := range e.subscribers {
		fn(doc)
	}
}

// Latest returns the most recently published document, or nil.
func (e *Extractor) Latest() *pagecopy.Document {
	return e.latest
}

// Generation returns the number of extraction passes scheduled so far.
func (e *Extractor) Generation() uint64 {
	return e.generation
}

// Subscribe registers fn to receive every newly published document.
func (e *Extractor) Subscribe(fn func(*pagecopy.Document)) {
	e.subscribers = append(e.subscribers, fn)
}
