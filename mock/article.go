package mock

import (
	"context"
	"io"

	tccs "github.com/Trantu1102/NB-TCCS"
)

var (
	_ tccs.ArticleService  = (*ArticleService)(nil)
	_ tccs.ArticleRenderer = (*ArticleRenderer)(nil)
	_ tccs.ReportWriter    = (*ReportWriter)(nil)
	_ tccs.ChecklistWriter = (*ChecklistWriter)(nil)
	_ tccs.ArticleReader   = (*ArticleReader)(nil)
)

// ArticleService is a mock implementation of tccs.ArticleService.
type ArticleService struct {
	CreateArticlesFn  func(ctx context.Context, articles []*tccs.ExcelArticle) error
	FindArticleByIDFn func(ctx context.Context, id string) (*tccs.ExcelArticle, error)
	FindArticlesFn    func(ctx context.Context, filter tccs.ArticleFilter) ([]*tccs.ExcelArticle, error)
	UpdateArticleFn   func(ctx context.Context, id string, upd tccs.ArticleUpdate) (*tccs.ExcelArticle, error)
}

func (s *ArticleService) CreateArticles(ctx context.Context, articles []*tccs.ExcelArticle) error {
	return s.CreateArticlesFn(ctx, articles)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*tccs.ExcelArticle, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter tccs.ArticleFilter) ([]*tccs.ExcelArticle, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) UpdateArticle(ctx context.Context, id string, upd tccs.ArticleUpdate) (*tccs.ExcelArticle, error) {
	return s.UpdateArticleFn(ctx, id, upd)
}

// ArticleRenderer is a mock implementation of tccs.ArticleRenderer.
type ArticleRenderer struct {
	RenderFn func(w io.Writer, articles []*tccs.Article) error
}

func (r *ArticleRenderer) Render(w io.Writer, articles []*tccs.Article) error {
	return r.RenderFn(w, articles)
}

// ReportWriter is a mock implementation of tccs.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(w io.Writer, articles []*tccs.ExcelArticle) error
}

func (r *ReportWriter) WriteReport(w io.Writer, articles []*tccs.ExcelArticle) error {
	return r.WriteReportFn(w, articles)
}

// ChecklistWriter is a mock implementation of tccs.ChecklistWriter.
type ChecklistWriter struct {
	WriteChecklistsFn func(w io.Writer, articles []*tccs.ExcelArticle) error
}

func (c *ChecklistWriter) WriteChecklists(w io.Writer, articles []*tccs.ExcelArticle) error {
	return c.WriteChecklistsFn(w, articles)
}

// ArticleReader is a mock implementation of tccs.ArticleReader.
type ArticleReader struct {
	ReadArticlesFn func(r io.Reader) ([]*tccs.ExcelArticle, error)
}

func (r *ArticleReader) ReadArticles(rd io.Reader) ([]*tccs.ExcelArticle, error) {
	return r.ReadArticlesFn(rd)
}
