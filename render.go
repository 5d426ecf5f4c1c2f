package tccs

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// SiteHeader heads every rendered article.
const SiteHeader = "Chuyên trang của Tạp chí Cộng sản nghiên cứu, tuyên truyền nghiệp vụ công tác Đảng"

// ArticleRenderer writes extracted articles to a print-ready document.
// Articles are rendered in slice order, one per page.
type ArticleRenderer interface {
	Render(w io.Writer, articles []*Article) error
}

// ReportWriter writes the editorial article list as a styled report.
type ReportWriter interface {
	WriteReport(w io.Writer, articles []*ExcelArticle) error
}

// ChecklistWriter writes the editorial checklist of every article, one
// per page, for the copy editors to fill in and sign.
type ChecklistWriter interface {
	WriteChecklists(w io.Writer, articles []*ExcelArticle) error
}

// ArticleReader imports the editorial article list from a spreadsheet.
type ArticleReader interface {
	ReadArticles(r io.Reader) ([]*ExcelArticle, error)
}

// HeadlineSize is the size step of a rendered article title.
type HeadlineSize int

// Headlines step down as titles grow so they stay within a few lines.
const (
	HeadlineLarge HeadlineSize = iota
	HeadlineMedium
	HeadlineSmall
)

// HeadlineSizeOf returns the size step for title: small above 150
// characters, medium above 100.
func HeadlineSizeOf(title string) HeadlineSize {
	switch n := utf8.RuneCountInString(title); {
	case n > 150:
		return HeadlineSmall
	case n > 100:
		return HeadlineMedium
	default:
		return HeadlineLarge
	}
}

// DocumentTitle names a document of n rendered articles created at t,
// e.g. "Xuất 12 bài viết - 19/11/2025".
func DocumentTitle(n int, t time.Time) string {
	return fmt.Sprintf("Xuất %d bài viết - %s", n, shortDate(t))
}
