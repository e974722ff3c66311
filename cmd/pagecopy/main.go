package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagecopy"
	"github.com/fwojciec/pagecopy/gemini"
	"github.com/fwojciec/pagecopy/goquery"
	pchttp "github.com/fwojciec/pagecopy/http"
	"github.com/fwojciec/pagecopy/rod"
	pcslog "github.com/fwojciec/pagecopy/slog"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. When set, they replace the real
	// implementations wired by Run.
	Fetcher      pagecopy.Fetcher
	TokenCounter pagecopy.TokenCounter
	Asker        pagecopy.Asker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagecopy"),
		kong.Description("Copy documentation pages as Markdown for AI assistants"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagecopy --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Detector = pcslog.NewLoggingDetector(goquery.NewDetector(), deps.Logger)

	var flags PageFlags
	var pageURL string
	cmd := kongCtx.Command()
	switch {
	case cmd == "copy <url>":
		flags, pageURL = cli.Copy.PageFlags, cli.Copy.URL
	case cmd == "forward <assistant> <url>":
		flags, pageURL = cli.Forward.PageFlags, cli.Forward.URL
	case cmd == "ask <url> <question>":
		flags, pageURL = cli.Ask.PageFlags, cli.Ask.URL
	case cmd == "watch <url>":
		flags, pageURL = PageFlags{Engine: cli.Watch.Engine}, cli.Watch.URL
	}
	deps.Converter = pcslog.NewLoggingConverter(converterFor(flags.Engine, pageURL), deps.Logger)
	deps.Articles = articleExtractor(flags.Fallback)

	if cmd == "watch <url>" {
		bm, err := rod.NewBrowserManager(rod.WithHeadless(false))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer bm.Close()
		deps.Browser = bm
		return kongCtx.Run(deps)
	}

	fetcher, err := m.fetcher(flags)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer fetcher.Close()
	deps.Fetcher = pcslog.NewLoggingFetcher(fetcher, deps.Logger, pcslog.WithFramework(parseTree, goquery.NewDetector()))

	if cmd == "copy <url>" && cli.Copy.Tokens {
		deps.TokenCounter = m.TokenCounter
		if deps.TokenCounter == nil {
			tc, err := gemini.NewTokenCounter(tokenizerModel)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.TokenCounter = tc
		}
	}

	if cmd == "ask <url> <question>" {
		asker, err := m.asker(ctx, stderr)
		if err != nil {
			return err
		}
		deps.Asker = pcslog.NewLoggingAsker(asker, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func parseTree(html, location string) (pagecopy.Tree, error) {
	return goquery.ParsePage(html, location)
}

func (m *Main) fetcher(flags PageFlags) (pagecopy.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if flags.Render {
		return rod.NewFetcher(rod.WithStealth(flags.Stealth))
	}
	return pchttp.NewFetcher(pchttp.WithTimeout(flags.Timeout)), nil
}

func (m *Main) asker(ctx context.Context, stderr io.Writer) (pagecopy.Asker, error) {
	if m.Asker != nil {
		return m.Asker, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	tc, err := gemini.NewTokenCounter(tokenizerModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}
	return gemini.NewAsker(client, gemini.WithTokenLimit(tc, maxAskTokens)), nil
}

// tokenizerModel is used for token counting. google.golang.org/genai/tokenizer
// does not know every model that can answer questions.
const tokenizerModel = "gemini-2.5-flash"

// maxAskTokens keeps a page and its prompt inside the model context.
const maxAskTokens = 900_000
