package main

import (
	"fmt"
	"io"
	"os"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/crawl"
	"github.com/Trantu1102/NB-TCCS/fs"
)

// load imports the spreadsheet into the session and returns the articles
// selected by the input filters.
func (in *Input) load(deps *Dependencies) ([]*tccs.ExcelArticle, error) {
	f, err := os.Open(in.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	articles, err := deps.Reader.ReadArticles(f)
	if err != nil {
		return nil, err
	}
	if in.Sort {
		tccs.SortByPublishDateDesc(articles)
	}

	if err := deps.Articles.CreateArticles(deps.Ctx, articles); err != nil {
		return nil, err
	}

	filter := tccs.ArticleFilter{Offset: in.Offset, Limit: in.Limit}
	if in.Category != "" {
		filter.Category = &in.Category
	}
	if in.Type != "" {
		filter.Type = &in.Type
	}
	selected, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, tccs.Errorf(tccs.ENOTFOUND, "no articles match the given filters")
	}
	return selected, nil
}

// printProgress returns a progress callback that rewrites one status line.
func printProgress(deps *Dependencies) tccs.BatchProgressFunc {
	return func(p tccs.BatchProgress) {
		fmt.Fprintf(deps.Stderr, "\r\033[K%s", p.Title)
		if p.Status == tccs.BatchDone || p.Status == tccs.BatchError {
			fmt.Fprintln(deps.Stderr)
		}
	}
}

// writeErrorLog writes the batch failures to path, if any occurred.
func writeErrorLog(deps *Dependencies, path string, res *tccs.BatchResult) error {
	if len(res.FailedArticles) == 0 || path == "" {
		return nil
	}
	if err := fs.WriteFile(path, func(w io.Writer) error {
		return crawl.WriteErrorLog(w, res, deps.Now())
	}); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "Danh sách lỗi: %s\n", path)
	return nil
}
