package main

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/goquery"
	"github.com/fwojciec/pagecopy/htmltomarkdown"
	"github.com/fwojciec/pagecopy/readability"
	"github.com/fwojciec/pagecopy/trafilatura"
	"github.com/fwojciec/pagecopy/widget"
)

// loadDocument fetches rawURL and extracts its content region as a
// Document, using the selectors of the detected (or forced) framework.
func loadDocument(deps *Dependencies, flags PageFlags, rawURL string) (*pagecopy.Document, error) {
	ctx := deps.Ctx
	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}

	html, err := deps.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	page, err := goquery.ParsePage(html, rawURL)
	if err != nil {
		return nil, err
	}

	framework := pagecopy.Framework(flags.Framework)
	if framework == pagecopy.FrameworkUnknown {
		framework = deps.Detector.Detect(page)
	}
	profile := pagecopy.ProfileFor(framework)

	ex := widget.NewExtractor(page, deps.Converter, nil, widget.Config{Profile: &profile}, deps.Logger)
	doc, err := ex.Extract()
	if pagecopy.ErrorCode(err) == pagecopy.ENOTFOUND && deps.Articles != nil {
		deps.Logger.Info("no content region, removing boilerplate instead", "url", rawURL, "err", err)
		return articleDocument(deps, profile, html, rawURL)
	}
	return doc, err
}

// articleDocument builds a Document from the main content found by the
// boilerplate remover.
func articleDocument(deps *Dependencies, profile pagecopy.Profile, html, rawURL string) (*pagecopy.Document, error) {
	article, err := deps.Articles.Extract(html)
	if err != nil {
		return nil, err
	}
	article.Content.Remove(profile.Chrome...)

	content, err := deps.Converter.Convert(article.Content.Root())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, pagecopy.Errorf(pagecopy.ENOTFOUND, "no main content on %s", rawURL)
	}
	return pagecopy.NewDocument(article.Title, rawURL, content), nil
}

// articleExtractor returns the boilerplate remover named by a --fallback
// flag, or nil.
func articleExtractor(name string) pagecopy.ArticleExtractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	}
	return nil
}

// converterFor returns the converter for a Markdown engine. The
// commonmark engine resolves relative links against the page origin.
func converterFor(engine, rawURL string) pagecopy.Converter {
	if engine != "commonmark" {
		return pagecopy.TextConverter{}
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return htmltomarkdown.NewConverter()
	}
	return htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(u.Scheme + "://" + u.Host))
}
