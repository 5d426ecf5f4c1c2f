package crawl

import (
	"fmt"
	"io"
	"strings"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/cespare/xxhash/v2"
)

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// WriteErrorLog writes the plain-text failure report of a batch run.
func WriteErrorLog(w io.Writer, res *tccs.BatchResult, at time.Time) error {
	_, err := io.WriteString(w, FormatErrorLog(res, at))
	return err
}

// FormatErrorLog renders the failure report of a batch run: a header with
// totals followed by one numbered entry per failed article.
func FormatErrorLog(res *tccs.BatchResult, at time.Time) string {
	var b strings.Builder
	fmt.Fprintln(&b, "=== BÁO CÁO LỖI XUẤT PDF ===")
	fmt.Fprintf(&b, "Thời gian: %s\n", at.Format("15:04:05 2/1/2006"))
	fmt.Fprintf(&b, "Tổng số bài: %d\n", res.TotalArticles)
	fmt.Fprintf(&b, "Thành công: %d\n", res.TotalArticles-len(res.FailedArticles))
	fmt.Fprintf(&b, "Thất bại: %d\n", len(res.FailedArticles))
	fmt.Fprintln(&b)
	fmt.Fprint(&b, "=== DANH SÁCH BÀI LỖI ===")
	for i, f := range res.FailedArticles {
		fmt.Fprintf(&b, "\n%d. %s\n   URL: %s\n   Lỗi: %s\n", i+1, f.Title, f.URL, f.Error)
	}
	return b.String()
}

// ErrorLogName returns the file name of the error log for a run at t.
func ErrorLogName(t time.Time) string {
	return "loi_xuat_pdf_" + t.Format("2006-01-02") + ".txt"
}
