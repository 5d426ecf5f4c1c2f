// Package crawl orchestrates batch runs over the editorial article list.
// It coordinates fetching, extraction, image counting and archiving of
// articles in bounded concurrent waves.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"golang.org/x/sync/errgroup"
)

// Batch defaults.
const (
	DefaultConcurrency = 10
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = time.Second
)

// Batch runs fetch+extract or fetch+count over many articles.
//
// Articles are processed in waves of Concurrency items; a wave finishes
// before the next one starts. Each item is tried up to MaxAttempts times,
// waiting attempt*RetryDelay between attempts. A failed item never fails
// the batch.
type Batch struct {
	Fetcher   tccs.Fetcher
	Extractor tccs.ArticleExtractor
	Counter   tccs.ImageCounter

	// Articles, when set, receives image counts through UpdateArticle.
	// Otherwise counts are written to the articles in place.
	Articles tccs.ArticleService

	// Converter and Pages, when both set, archive every exported article
	// as Markdown.
	Converter tccs.Converter
	Pages     tccs.PageStore

	// RateLimiter, when set, is waited on before every fetch.
	RateLimiter tccs.DomainLimiter

	Concurrency int
	MaxAttempts int
	RetryDelay  time.Duration

	// Logger receives retry warnings. Nil disables logging.
	Logger *slog.Logger
}

// itemFunc processes the article at index i.
type itemFunc func(ctx context.Context, i int, a *tccs.ExcelArticle) error

// run processes every article and returns the per-index errors.
// It fails only when items is empty or ctx is canceled.
func (b *Batch) run(ctx context.Context, items []*tccs.ExcelArticle, progress tccs.BatchProgressFunc, fn itemFunc) ([]error, error) {
	if len(items) == 0 {
		return nil, tccs.Errorf(tccs.EINVALID, "no articles to process")
	}

	size := b.Concurrency
	if size <= 0 {
		size = DefaultConcurrency
	}

	errs := make([]error, len(items))
	t := &tracker{total: len(items), progress: progress}

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				errs[i] = b.retry(gctx, items[i].URL, func(ctx context.Context) error {
					return fn(ctx, i, items[i])
				})
				t.done(errs[i] != nil)
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return errs, nil
}

// fetch waits for the rate limiter and retrieves the page at rawURL.
func (b *Batch) fetch(ctx context.Context, rawURL string) (string, error) {
	if b.RateLimiter != nil {
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			if err := b.RateLimiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
	}
	return b.Fetcher.Fetch(ctx, rawURL)
}

// result assembles the batch summary, listing failures in input order.
func result(items []*tccs.ExcelArticle, errs []error) *tccs.BatchResult {
	res := &tccs.BatchResult{
		TotalArticles:  len(items),
		FailedArticles: []tccs.BatchFailure{},
	}
	for i, err := range errs {
		if err == nil {
			res.SuccessCount++
			continue
		}
		res.FailedArticles = append(res.FailedArticles, tccs.BatchFailure{
			Title: items[i].Title,
			URL:   items[i].URL,
			Error: failureMessage(err),
		})
	}
	return res
}

// failureMessage returns the user-facing text of err.
func failureMessage(err error) string {
	if tccs.ErrorCode(err) == tccs.EINTERNAL {
		return err.Error()
	}
	return tccs.ErrorMessage(err)
}

// tracker reports monotonically increasing progress from concurrent items.
type tracker struct {
	mu        sync.Mutex
	completed int
	failed    int
	total     int
	progress  tccs.BatchProgressFunc
}

func (t *tracker) done(failed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	if failed {
		t.failed++
	}
	if t.progress == nil {
		return
	}

	title := fmt.Sprintf("Đang tải %d/%d...", t.completed, t.total)
	if t.failed > 0 {
		title += fmt.Sprintf(" (%d lỗi)", t.failed)
	}
	t.progress(tccs.BatchProgress{
		Current: t.completed,
		Total:   t.total,
		Title:   title,
		Status:  tccs.BatchLoading,
		Failed:  t.failed,
	})
}

func notify(progress tccs.BatchProgressFunc, total int, title string, status tccs.BatchStatus, failed int) {
	if progress == nil {
		return
	}
	progress(tccs.BatchProgress{
		Current: total,
		Total:   total,
		Title:   title,
		Status:  status,
		Failed:  failed,
	})
}
