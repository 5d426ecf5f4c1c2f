package crawl

import (
	"context"
	"fmt"

	tccs "github.com/Trantu1102/NB-TCCS"
)

// ExportResult holds the articles extracted by ExportArticles.
type ExportResult struct {
	tccs.BatchResult

	// Articles holds the successful extractions in input order. Failed
	// articles are left out.
	Articles []*tccs.Article
}

// ExportArticles fetches and extracts every article. Progress is reported
// as items complete, then once with BatchProcessing while archiving and
// once with BatchDone.
func (b *Batch) ExportArticles(ctx context.Context, items []*tccs.ExcelArticle, progress tccs.BatchProgressFunc) (*ExportResult, error) {
	extracted := make([]*tccs.Article, len(items))

	errs, err := b.run(ctx, items, progress, func(ctx context.Context, i int, a *tccs.ExcelArticle) error {
		html, err := b.fetch(ctx, a.URL)
		if err != nil {
			return err
		}
		article, err := b.Extractor.ExtractArticle(html, a.URL)
		if err != nil {
			return err
		}
		article.URL = a.URL
		if article.Author == "" {
			article.Author = a.Author
		}
		if article.PublishDate == "" {
			article.PublishDate = publishDate(a)
		}
		extracted[i] = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &ExportResult{BatchResult: *result(items, errs)}
	for i, article := range extracted {
		if errs[i] == nil && article != nil {
			res.Articles = append(res.Articles, article)
		}
	}

	failed := len(res.FailedArticles)
	notify(progress, len(items), "Đang tạo tài liệu...", tccs.BatchProcessing, failed)

	if b.Converter != nil && b.Pages != nil {
		if err := b.archive(ctx, res.Articles); err != nil {
			notify(progress, len(items), "Lỗi lưu trữ", tccs.BatchError, failed)
			return nil, err
		}
	}

	notify(progress, len(items), "Hoàn tất!", tccs.BatchDone, failed)
	return res, nil
}

// archive saves every article to Pages as Markdown and commits them
// together. Nothing is committed if any article fails.
func (b *Batch) archive(ctx context.Context, articles []*tccs.Article) error {
	for _, a := range articles {
		markdown, err := b.Converter.Convert(a.Content)
		if err != nil {
			_ = b.Pages.Abort()
			return fmt.Errorf("convert %s: %w", a.URL, err)
		}
		page := &tccs.Page{
			URL:     a.URL,
			Title:   a.Title,
			Author:  a.Author,
			Content: markdown,
			Hash:    ComputeHash(markdown),
		}
		if err := b.Pages.Save(ctx, page); err != nil {
			_ = b.Pages.Abort()
			return fmt.Errorf("save %s: %w", a.URL, err)
		}
	}
	return b.Pages.Commit()
}

func publishDate(a *tccs.ExcelArticle) string {
	if a.PublishDateFull != "" {
		return a.PublishDateFull
	}
	return a.PublishDate
}
