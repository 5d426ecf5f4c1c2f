package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/fs"
	"github.com/Trantu1102/NB-TCCS/goquery"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	article, err := deps.Extractor.ExtractArticle(html, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}
	article.URL = c.URL
	article.PublishDate = goquery.PublishDate(html)

	write := func(w io.Writer) error { return c.write(w, deps, article) }
	if c.Output == "" {
		return write(deps.Stdout)
	}
	if err := fs.WriteFile(c.Output, write); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Đã lưu: %s\n", c.Output)
	return nil
}

func (c *ExtractCmd) write(w io.Writer, deps *Dependencies, article *tccs.Article) error {
	switch c.Format {
	case "html":
		return deps.HTML.Render(w, []*tccs.Article{article})
	case "pdf":
		return deps.PDF.Render(w, []*tccs.Article{article})
	case "json":
		buf, err := json.MarshalIndent(article, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", buf)
		return err
	default:
		content, err := deps.Converter.Convert(article.Content)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, formatMarkdown(article, content))
		return err
	}
}

// formatMarkdown lays out an article as a Markdown document.
func formatMarkdown(a *tccs.Article, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	if a.Author != "" {
		fmt.Fprintf(&b, "**%s**\n\n", a.Author)
	}
	if a.PublishDate != "" {
		fmt.Fprintf(&b, "*%s*\n\n", a.PublishDate)
	}
	if a.Summary != "" {
		fmt.Fprintf(&b, "> %s\n\n", a.Summary)
	}
	if a.MainImage != "" {
		fmt.Fprintf(&b, "![](%s)\n\n", a.MainImage)
	}
	if content != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(content))
	}
	fmt.Fprintf(&b, "Nguồn: %s\n", a.URL)
	return b.String()
}
