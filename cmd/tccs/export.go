package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/crawl"
	"github.com/Trantu1102/NB-TCCS/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	renderer, err := c.renderer(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	articles, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	// Checklists are filled from the spreadsheet rows alone.
	if renderer == nil {
		return c.writeChecklists(deps, articles)
	}

	if c.Concurrency > 0 {
		deps.Batch.Concurrency = c.Concurrency
	}
	if c.Archive != "" {
		name := strings.TrimSuffix(filepath.Base(c.Output), filepath.Ext(c.Output))
		deps.Batch.Converter = deps.Converter
		deps.Batch.Pages = fs.NewFileStore(c.Archive, name)
	}

	res, err := deps.Batch.ExportArticles(deps.Ctx, articles, printProgress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	errorLog := c.ErrorLog
	if errorLog == "" {
		errorLog = filepath.Join(filepath.Dir(c.Output), crawl.ErrorLogName(deps.Now()))
	}
	if err := writeErrorLog(deps, errorLog, &res.BatchResult); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	if len(res.Articles) == 0 {
		err := tccs.Errorf(tccs.EFETCH, "no article could be exported")
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	if err := fs.WriteFile(c.Output, func(w io.Writer) error {
		return renderer.Render(w, res.Articles)
	}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Đã xuất %d/%d bài: %s\n", res.SuccessCount, res.TotalArticles, c.Output)
	return nil
}

func (c *ExportCmd) writeChecklists(deps *Dependencies, articles []*tccs.ExcelArticle) error {
	if err := fs.WriteFile(c.Output, func(w io.Writer) error {
		return deps.Checklist.WriteChecklists(w, articles)
	}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Đã xuất %d phiếu kiểm tra: %s\n", len(articles), c.Output)
	return nil
}

// renderer picks the document renderer from the output extension. A .docx
// output has no renderer since it holds the checklists instead.
func (c *ExportCmd) renderer(deps *Dependencies) (tccs.ArticleRenderer, error) {
	switch strings.ToLower(filepath.Ext(c.Output)) {
	case ".pdf":
		return deps.PDF, nil
	case ".html", ".htm":
		return deps.HTML, nil
	case ".docx":
		return nil, nil
	default:
		return nil, tccs.Errorf(tccs.EINVALID, "unsupported output format %q: use .html, .pdf or .docx", filepath.Ext(c.Output))
	}
}
