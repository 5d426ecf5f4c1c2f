package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Now stamps default output names and the error log.
	Now func() time.Time

	Articles tccs.ArticleService
	Reader   tccs.ArticleReader
	Report   tccs.ReportWriter

	Fetcher   tccs.Fetcher
	Extractor tccs.ArticleExtractor
	Counter   tccs.ImageCounter
	Converter tccs.Converter
	Batch     *crawl.Batch

	// Renderers by output file extension.
	HTML tccs.ArticleRenderer
	PDF  tccs.ArticleRenderer

	// Checklist writes .docx exports.
	Checklist tccs.ChecklistWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" env:"TCCS_VERBOSE" help:"Log every fetch, extraction and count"`

	Timeout       time.Duration `default:"8s" env:"TCCS_TIMEOUT" help:"Timeout per fetch attempt"`
	Direct        bool          `help:"Fetch pages directly without proxies"`
	Proxy         []string      `name:"proxy" help:"Proxy URL template with a {url} placeholder (repeatable); replaces the public proxies"`
	Browser       bool          `help:"Also fetch through a headless browser (Chrome or Chromium must be installed)"`
	MinBody       int           `default:"500" env:"TCCS_MIN_BODY" help:"Shortest page accepted from a proxy, in characters"`
	RecycleAfter  int64         `default:"75" env:"TCCS_RECYCLE_AFTER" help:"With --browser, pages rendered before the browser is restarted"`
	Extractor     string        `enum:"readability,trafilatura" default:"readability" env:"TCCS_EXTRACTOR" help:"Generic extractor used when the page layout is not recognized (${enum})"`
	Language      string        `env:"TCCS_LANGUAGE" help:"With --extractor=trafilatura, only accept pages in this language (e.g. vi)"`
	NoAuthorTypes []string      `name:"no-author-types" default:"Tin tổng hợp,KT + biên tập" env:"TCCS_NO_AUTHOR_TYPES" help:"Article types whose images are never credited to an author"`
	RetryDelay    time.Duration `default:"1s" env:"TCCS_RETRY_DELAY" help:"Base delay between attempts; attempt n waits n times this"`
	Rate          float64       `default:"0" env:"TCCS_RATE" help:"Requests per second per domain (0 for unlimited)"`
	FontDir       string        `type:"existingdir" env:"TCCS_FONT_DIR" help:"Directory with DejaVu Sans TTF files for PDF output"`
	Reviewers     []string      `env:"TCCS_REVIEWERS" help:"First and second copy editors printed on .docx checklists"`

	Extract ExtractCmd `cmd:"" help:"Extract a single article"`
	Images  ImagesCmd  `cmd:"" help:"Count the images of a single article by provenance"`
	Count   CountCmd   `cmd:"" help:"Count article images by provenance"`
	Export  ExportCmd  `cmd:"" help:"Export articles to one printable document"`
	Report  ReportCmd  `cmd:"" help:"Write the article report without fetching"`
}

// Input selects which imported articles a batch command processes.
type Input struct {
	File     string `arg:"" type:"existingfile" help:"Article list exported from the CMS (.xlsx)"`
	Sort     bool   `help:"Process articles newest first"`
	Category string `help:"Only articles in this category"`
	Type     string `help:"Only articles of this type"`
	Offset   int    `help:"Skip this many articles"`
	Limit    int    `help:"Process at most this many articles"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Article URL"`
	Format string `short:"f" enum:"markdown,html,json,pdf" default:"markdown" help:"Output format (${enum})"`
	Output string `short:"o" type:"path" help:"Output file (default: stdout)"`
}

// ImagesCmd is the "images" subcommand.
type ImagesCmd struct {
	URL  string `arg:"" help:"Article URL"`
	Type string `short:"t" help:"Article type from the CMS (decides whether photo credits count as tác giả)"`
}

// CountCmd is the "count" subcommand.
type CountCmd struct {
	Input `embed:""`

	Concurrency int    `short:"c" default:"5" env:"TCCS_CONCURRENCY" help:"Articles fetched per wave"`
	Output      string `short:"o" type:"path" help:"Write the image-count report to this .xlsx file"`
	ErrorLog    string `type:"path" help:"Write failures to this file"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Input `embed:""`

	Concurrency int    `short:"c" default:"10" env:"TCCS_CONCURRENCY" help:"Articles fetched per wave"`
	Output      string `short:"o" required:"" type:"path" help:"Output document (.html, .pdf, or .docx for the editorial checklists)"`
	Archive     string `type:"path" help:"Also archive each article as Markdown under this directory"`
	ErrorLog    string `type:"path" help:"Write failures to this file (default: next to the output)"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Input `embed:""`

	Output string `short:"o" type:"path" help:"Report file (default: BaoCao_DDMMYYYY.xlsx)"`
}
