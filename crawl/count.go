package crawl

import (
	"context"

	tccs "github.com/Trantu1102/NB-TCCS"
)

// CountImages fetches every article and records its image provenance
// counts. Unlike CountImagesAt, which yields a zero count when the page
// cannot be fetched, articles whose page cannot be fetched are reported as
// failures here and keep their previous counts, so an unreachable page is
// not mistaken for one without images.
func (b *Batch) CountImages(ctx context.Context, items []*tccs.ExcelArticle, progress tccs.BatchProgressFunc) (*tccs.BatchResult, error) {
	errs, err := b.run(ctx, items, progress, func(ctx context.Context, _ int, a *tccs.ExcelArticle) error {
		html, err := b.fetch(ctx, a.URL)
		if err != nil {
			return err
		}
		count := b.Counter.CountImages(html, a.Type)

		if b.Articles == nil || a.ID == "" {
			a.SetImageCount(count)
			return nil
		}
		updated, err := b.Articles.UpdateArticle(ctx, a.ID, tccs.ArticleUpdate{ImageCount: &count})
		if err != nil {
			return err
		}
		*a = *updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := result(items, errs)
	notify(progress, len(items), "Hoàn tất!", tccs.BatchDone, len(res.FailedArticles))
	return res, nil
}

// CountImagesAt fetches the page at url and counts its images. A fetch
// failure yields a zero count rather than an error.
func CountImagesAt(ctx context.Context, fetcher tccs.Fetcher, counter tccs.ImageCounter, url, articleType string) tccs.ImageCount {
	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return tccs.ImageCount{}
	}
	return counter.CountImages(html, articleType)
}
