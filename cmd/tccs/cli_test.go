package main_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	main "github.com/Trantu1102/NB-TCCS/cmd/tccs"
	"github.com/Trantu1102/NB-TCCS/mock"
	"github.com/alecthomas/kong"
	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2025, 11, 19, 9, 30, 0, 0, time.UTC)

// inputFile returns the path of an existing placeholder spreadsheet.
func inputFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("xlsx"), 0644))
	return path
}

// sessionDeps returns dependencies whose reader yields articles and whose
// article service stores them in memory.
func sessionDeps(articles []*tccs.ExcelArticle, filter *tccs.ArticleFilter) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stored []*tccs.ExcelArticle
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Now:    func() time.Time { return testNow },
		Reader: &mock.ArticleReader{
			ReadArticlesFn: func(_ io.Reader) ([]*tccs.ExcelArticle, error) {
				return articles, nil
			},
		},
		Articles: &mock.ArticleService{
			CreateArticlesFn: func(_ context.Context, list []*tccs.ExcelArticle) error {
				for i, a := range list {
					a.ID = strings.Repeat("a", i+1)
				}
				stored = append(stored, list...)
				return nil
			},
			FindArticlesFn: func(_ context.Context, f tccs.ArticleFilter) ([]*tccs.ExcelArticle, error) {
				if filter != nil {
					*filter = f
				}
				return stored, nil
			},
		},
	}
	return deps, stdout, stderr
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"extract", "images", "count", "export", "report"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

// cmsExport writes a one-article CMS spreadsheet export into dir.
func cmsExport(t *testing.T, dir string) string {
	t.Helper()

	input := filepath.Join(dir, "export.xlsx")
	f := excelize.NewFile()
	rows := [][]any{
		{"DANH SÁCH BÀI VIẾT"},
		{"Xuất lúc 08:00 19/11/2025"},
		{"STT", "Tiêu đề", "Trạng thái", "URL", "Loại", "Chuyên mục", "Ngày", "Ngày đầy đủ", "Người tạo", "Lượt xem", "Hiển thị"},
		{1, "Đổi mới công tác cán bộ", "Đã xuất bản", "https://xaydungdang.org.vn/a-1", "Tin mới", "Tin tức", "19/11/2025", "", "Nguyễn Văn A", 120, "Hiển thị"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())
	return input
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
		require.NoError(t, err)

		helpOutput := stdout.String()
		for _, cmd := range []string{"extract", "images", "count", "export", "report"} {
			assert.Contains(t, helpOutput, cmd)
		}
		assert.Contains(t, helpOutput, "Usage:")
		assert.Contains(t, helpOutput, "Flags:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), nil, stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("unknown command is an error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"frobnicate"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("report rewrites a CMS export without fetching", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := cmsExport(t, dir)
		output := filepath.Join(dir, "report.xlsx")

		m := main.NewMain()
		m.DBPath = filepath.Join(dir, "session.db")
		m.Now = func() time.Time { return testNow }
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"report", input, "-o", output}, stdout, stderr)
		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Đã lưu báo cáo 1 bài")

		report, err := excelize.OpenFile(output)
		require.NoError(t, err)
		defer report.Close()

		got, err := report.GetRows(report.GetSheetName(0))
		require.NoError(t, err)
		var cells []string
		for _, r := range got {
			cells = append(cells, r...)
		}
		assert.Contains(t, cells, "Đổi mới công tác cán bộ")
		assert.Contains(t, cells, "Tin tức")
		assert.Contains(t, cells, "Nguyễn Văn A")
	})

	t.Run("export writes checklists with the given reviewers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := cmsExport(t, dir)
		output := filepath.Join(dir, "phieu.docx")

		m := main.NewMain()
		m.DBPath = filepath.Join(dir, "session.db")
		m.Now = func() time.Time { return testNow }
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(),
			[]string{"--reviewers", "Hoàng An,Trần Bình", "export", input, "-o", output}, stdout, stderr)
		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Đã xuất 1 phiếu kiểm tra")

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		var lines []string
		for _, item := range doc.Document.Body.Items {
			if p, ok := item.(*docx.Paragraph); ok {
				lines = append(lines, p.String())
			}
		}
		assert.Contains(t, lines, "Tin mới: Đổi mới công tác cán bộ")
		assert.Contains(t, lines, "Người thực hiện: Nguyễn Văn A")
		assert.Contains(t, lines, "Người chữa lần 2: Trần Bình")
	})

	t.Run("rejects a single reviewer", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := cmsExport(t, dir)

		m := main.NewMain()
		m.DBPath = filepath.Join(dir, "session.db")
		err := m.Run(context.Background(),
			[]string{"--reviewers", "Hoàng An", "report", input}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, tccs.EINVALID, tccs.ErrorCode(err))
	})
}
