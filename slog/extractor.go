package slog

import (
	"log/slog"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
)

// Ensure LoggingArticleExtractor implements tccs.ArticleExtractor.
var _ tccs.ArticleExtractor = (*LoggingArticleExtractor)(nil)

// LoggingArticleExtractor wraps an ArticleExtractor with logging.
type LoggingArticleExtractor struct {
	next   tccs.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingArticleExtractor creates a new LoggingArticleExtractor.
func NewLoggingArticleExtractor(next tccs.ArticleExtractor, logger *slog.Logger) *LoggingArticleExtractor {
	return &LoggingArticleExtractor{next: next, logger: logger}
}

// ExtractArticle delegates to the wrapped extractor and logs the title and
// content size of the result.
func (e *LoggingArticleExtractor) ExtractArticle(html string, sourceURL string) (article *tccs.Article, err error) {
	defer func(begin time.Time) {
		var title string
		var size int
		if article != nil {
			title, size = article.Title, len(article.Content)
		}
		e.logger.Info("extract",
			"url", sourceURL,
			"title", title,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractArticle(html, sourceURL)
}
