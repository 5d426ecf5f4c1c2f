package main

import (
	"fmt"
	"io"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/fs"
)

// Run executes the count command.
func (c *CountCmd) Run(deps *Dependencies) error {
	articles, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	if c.Concurrency > 0 {
		deps.Batch.Concurrency = c.Concurrency
	}

	res, err := deps.Batch.CountImages(deps.Ctx, articles, printProgress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
		return err
	}

	var total tccs.ImageCount
	for _, a := range articles {
		count, ok := a.ImageCount()
		if !ok {
			fmt.Fprintf(deps.Stdout, "%4d  %-40s  lỗi\n", a.STT, truncate(a.Title, 40))
			continue
		}
		total.KhaiThac += count.KhaiThac
		total.TuLieu += count.TuLieu
		total.TacGia += count.TacGia
		fmt.Fprintf(deps.Stdout, "%4d  %-40s  KT %d  TL %d  TG %d\n",
			a.STT, truncate(a.Title, 40), count.KhaiThac, count.TuLieu, count.TacGia)
	}
	fmt.Fprintf(deps.Stdout, "Tổng: KT %d  TL %d  TG %d (%d/%d bài)\n",
		total.KhaiThac, total.TuLieu, total.TacGia, res.SuccessCount, res.TotalArticles)

	for _, f := range res.FailedArticles {
		fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", f.URL, f.Error)
	}

	if c.Output != "" {
		if err := fs.WriteFile(c.Output, func(w io.Writer) error {
			return deps.Report.WriteReport(w, articles)
		}); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tccs.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Đã lưu báo cáo: %s\n", c.Output)
	}

	return writeErrorLog(deps, c.ErrorLog, res)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
