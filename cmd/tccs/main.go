package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/crawl"
	"github.com/Trantu1102/NB-TCCS/docx"
	"github.com/Trantu1102/NB-TCCS/excelize"
	"github.com/Trantu1102/NB-TCCS/gofpdf"
	"github.com/Trantu1102/NB-TCCS/goquery"
	"github.com/Trantu1102/NB-TCCS/htmltomarkdown"
	tccshttp "github.com/Trantu1102/NB-TCCS/http"
	"github.com/Trantu1102/NB-TCCS/printview"
	"github.com/Trantu1102/NB-TCCS/readability"
	"github.com/Trantu1102/NB-TCCS/rod"
	tccsslog "github.com/Trantu1102/NB-TCCS/slog"
	"github.com/Trantu1102/NB-TCCS/sqlite"
	"github.com/Trantu1102/NB-TCCS/trafilatura"
	"github.com/alecthomas/kong"
)

// siteURL resolves relative links left in archived Markdown.
const siteURL = "https://xaydungdang.org.vn"

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
	// Session database path. Set before calling Run().
	DBPath string

	// SQLite database holding the imported article list.
	DB *sqlite.DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Now:    time.Now,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tccs"),
		kong.Description("Extract, count images in and export articles of xaydungdang.org.vn"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tccs --help' to see available commands")
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

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TCCS_DB to use a different session database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Articles = sqlite.NewArticleService(m.DB)
	deps.Reader = excelize.NewReader()
	deps.Report = excelize.NewWriter()
	deps.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(siteURL))
	deps.HTML = printview.NewRenderer()

	var pdfOpts []gofpdf.Option
	if cli.FontDir != "" {
		pdfOpts = append(pdfOpts, gofpdf.WithUTF8Font(gofpdf.DejaVuSans(cli.FontDir)))
	}
	deps.PDF = gofpdf.NewRenderer(pdfOpts...)

	var docxOpts []docx.Option
	switch len(cli.Reviewers) {
	case 0:
	case 2:
		docxOpts = append(docxOpts, docx.WithReviewers(cli.Reviewers[0], cli.Reviewers[1]))
	default:
		return tccs.Errorf(tccs.EINVALID, "--reviewers takes exactly two names")
	}
	deps.Checklist = docx.NewWriter(docxOpts...)

	// Report rewrites the imported list and never fetches.
	if kongCtx.Selected().Name != "report" {
		fetcher, err := newFetcher(cli)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		deps.Fetcher = tccsslog.NewLoggingFetcher(fetcher, deps.Logger)
		deps.Extractor = tccsslog.NewLoggingArticleExtractor(
			goquery.NewExtractor(newGenericExtractor(cli)), deps.Logger)
		deps.Counter = tccsslog.NewLoggingImageCounter(
			goquery.NewImageCounter(goquery.WithDisallowedAuthorTypes(cli.NoAuthorTypes...)), deps.Logger)

		deps.Batch = &crawl.Batch{
			Fetcher:    deps.Fetcher,
			Extractor:  deps.Extractor,
			Counter:    deps.Counter,
			Articles:   deps.Articles,
			RetryDelay: cli.RetryDelay,
			Logger:     deps.Logger,
		}
		if cli.Rate > 0 {
			deps.Batch.RateLimiter = crawl.NewDomainLimiter(cli.Rate, 1)
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher races direct fetches against the configured proxies and,
// optionally, a headless browser. With --direct alone pages are fetched
// plainly.
func newFetcher(cli *CLI) (tccs.Fetcher, error) {
	if cli.Direct && !cli.Browser {
		return tccshttp.NewFetcher(tccshttp.WithTimeout(cli.Timeout)), nil
	}

	strategies := []tccshttp.Strategy{tccshttp.Direct()}
	switch {
	case cli.Direct:
	case len(cli.Proxy) > 0:
		for i, p := range cli.Proxy {
			strategies = append(strategies, tccshttp.TemplateStrategy(fmt.Sprintf("Proxy %d", i+1), p))
		}
	default:
		strategies = append(strategies, tccshttp.DefaultStrategies()...)
	}

	if cli.Browser {
		browser, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithRecycleAfter(cli.RecycleAfter),
		)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, tccshttp.StrategyFromFetcher("Browser", browser))
	}

	return tccshttp.NewProxyFetcher(
		tccshttp.WithStrategies(strategies...),
		tccshttp.WithAttemptTimeout(cli.Timeout),
		tccshttp.WithMinBodyLength(cli.MinBody),
	), nil
}

func newGenericExtractor(cli *CLI) tccs.Extractor {
	if cli.Extractor != "trafilatura" {
		return readability.NewExtractor()
	}
	var opts []trafilatura.Option
	if cli.Language != "" {
		opts = append(opts, trafilatura.WithTargetLanguage(cli.Language))
	}
	return trafilatura.NewExtractor(opts...)
}

// defaultDBPath keeps the session in memory unless TCCS_DB names a file.
func defaultDBPath() string {
	if path := os.Getenv("TCCS_DB"); path != "" {
		return path
	}
	return ":memory:"
}
