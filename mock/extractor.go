package mock

import tccs "github.com/Trantu1102/NB-TCCS"

var (
	_ tccs.Extractor        = (*Extractor)(nil)
	_ tccs.ArticleExtractor = (*ArticleExtractor)(nil)
	_ tccs.ImageCounter     = (*ImageCounter)(nil)
)

// Extractor is a mock implementation of tccs.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*tccs.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*tccs.ExtractResult, error) {
	return e.ExtractFn(html)
}

// ArticleExtractor is a mock implementation of tccs.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html string, sourceURL string) (*tccs.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(html string, sourceURL string) (*tccs.Article, error) {
	return e.ExtractArticleFn(html, sourceURL)
}

// ImageCounter is a mock implementation of tccs.ImageCounter.
type ImageCounter struct {
	CountImagesFn func(html string, articleType string) tccs.ImageCount
}

func (c *ImageCounter) CountImages(html string, articleType string) tccs.ImageCount {
	return c.CountImagesFn(html, articleType)
}
