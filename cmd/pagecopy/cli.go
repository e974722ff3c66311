package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/rod"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Fetcher      pagecopy.Fetcher
	Detector     pagecopy.FrameworkDetector
	Converter    pagecopy.Converter
	Articles     pagecopy.ArticleExtractor
	TokenCounter pagecopy.TokenCounter
	Asker        pagecopy.Asker
	Browser      *rod.BrowserManager
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	Copy    CopyCmd    `cmd:"" help:"Print a documentation page as Markdown"`
	Forward ForwardCmd `cmd:"" help:"Print the URL that opens a page in an AI assistant"`
	Ask     AskCmd     `cmd:"" help:"Ask Gemini a question about a documentation page"`
	Watch   WatchCmd   `cmd:"" help:"Open a page in Chrome with the copy widget attached"`
}

// PageFlags control how a page is fetched and converted.
type PageFlags struct {
	Render    bool          `short:"r" help:"Render the page in headless Chrome before extracting"`
	Stealth   bool          `help:"Hide headless browser fingerprints when rendering"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Fetch timeout"`
	Engine    string        `short:"e" enum:"text,commonmark" default:"text" help:"Markdown engine (text, commonmark)"`
	Framework string        `short:"f" help:"Use this framework's selectors instead of detecting it"`
	Fallback  string        `enum:"none,trafilatura,readability" default:"none" help:"Boilerplate remover for pages without a known content region (none, trafilatura, readability)"`
}

// CopyCmd is the "copy" subcommand.
type CopyCmd struct {
	PageFlags `embed:""`

	URL    string `arg:"" help:"Documentation page URL"`
	Tokens bool   `help:"Report the Gemini token count of the page on stderr"`
}

// ForwardCmd is the "forward" subcommand.
type ForwardCmd struct {
	PageFlags `embed:""`

	Assistant string `arg:"" enum:"chatgpt,claude" help:"Assistant to forward to (chatgpt, claude)"`
	URL       string `arg:"" help:"Documentation page URL"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	PageFlags `embed:""`

	URL      string `arg:"" help:"Documentation page URL"`
	Question string `arg:"" help:"Question to ask about the page"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Engine  string `short:"e" enum:"text,commonmark" default:"text" help:"Markdown engine (text, commonmark)"`
	Options string `type:"existingfile" help:"JSON file with widget options"`

	URL string `arg:"" help:"Documentation site URL"`
}
