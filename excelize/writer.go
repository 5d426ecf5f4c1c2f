package excelize

import (
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/xuri/excelize/v2"
)

// Compile-time interface verification.
var _ tccs.ReportWriter = (*Writer)(nil)

const (
	// SheetName is the name of the report sheet.
	SheetName = "Danh sách bài viết"

	// ReportTitle heads every report.
	ReportTitle = "TẠP CHÍ XÂY DỰNG ĐẢNG"

	// Uncategorized groups articles without a category.
	Uncategorized = "Chưa phân loại"

	// headerRow is the first of the two header rows.
	headerRow = 5

	// categoryCharsPerLine estimates how many characters of a category name
	// fit on one line of the merged B:L range.
	categoryCharsPerLine = 50
)

var columnWidths = []struct {
	col   string
	width float64
}{
	{"A", 4},
	{"B", 18},
	{"C", 55},
	{"D", 14},
	{"E", 12},
	{"F", 8},
	{"G", 8},
	{"H", 8},
	{"I", 8},
	{"J", 8},
	{"K", 10},
	{"L", 15},
}

var headerRows = [][]string{
	{"TT", "Tác giả", "Tiêu đề", "Loại bài viết", "Ngày xuất bản", "Xếp loại bài", "", "Ảnh", "", "", "Xếp loại ảnh", "Ghi chú"},
	{"", "", "", "", "", "Tác giả", "Biên tập", "Khai thác", "Tư liệu", "Tác giả", "", ""},
}

// Writer writes the image-count report grouped by category.
type Writer struct {
	// Now returns the current time; the date range falls back to it when no
	// article date parses.
	Now func() time.Time
}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{Now: time.Now}
}

// ReportName returns the default file name of a report created at t.
func ReportName(t time.Time) string {
	return "BaoCao_" + t.Format("02012006") + ".xlsx"
}

type styles struct {
	title, dateRange, header, category, text, number int
}

// WriteReport writes articles as an xlsx workbook to w.
func (rw *Writer) WriteReport(w io.Writer, articles []*tccs.ExcelArticle) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := writeHeader(f, st, tccs.DateRange(articles, rw.Now())); err != nil {
		return err
	}

	row := headerRow + 2
	seq := 1
	for _, g := range groupByCategory(articles) {
		if err := writeCategory(f, st, row, g.name); err != nil {
			return err
		}
		row++
		for _, a := range g.articles {
			if err := writeArticle(f, st, row, seq, a); err != nil {
				return err
			}
			row++
			seq++
		}
	}

	for _, c := range columnWidths {
		if err := f.SetColWidth(SheetName, c.col, c.col, c.width); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		},
		{
			Font:      &excelize.Font{Italic: true},
			Alignment: &excelize.Alignment{Horizontal: "left"},
		},
		{
			Border:    border,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF99"}},
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		},
		{
			Border:    border,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFFCC"}},
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		},
		{
			Border:    border,
			Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		},
		{
			Border:    border,
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
	}

	var st styles
	ids := []*int{&st.title, &st.dateRange, &st.header, &st.category, &st.text, &st.number}
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return styles{}, err
		}
		*ids[i] = id
	}
	return st, nil
}

func writeHeader(f *excelize.File, st styles, dateRange string) error {
	cells := []struct {
		cell, value string
		style       int
	}{
		{"B2", ReportTitle, st.title},
		{"B3", dateRange, st.dateRange},
	}
	for _, c := range cells {
		if err := f.SetCellValue(SheetName, c.cell, c.value); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, c.cell, c.cell, c.style); err != nil {
			return err
		}
	}

	for i, values := range headerRows {
		row := headerRow + i
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(SheetName, cellName("A", row), cellName("L", row), st.header); err != nil {
			return err
		}
	}

	merges := [][2]string{
		{"B2", "F2"},
		{"B3", "F3"},
		{cellName("F", headerRow), cellName("G", headerRow)},
		{cellName("H", headerRow), cellName("J", headerRow)},
	}
	for _, m := range merges {
		if err := f.MergeCell(SheetName, m[0], m[1]); err != nil {
			return err
		}
	}

	heights := []float64{15, 25, 20, 15, 35, 25}
	for i, h := range heights {
		if err := f.SetRowHeight(SheetName, i+1, h); err != nil {
			return err
		}
	}
	return nil
}

func writeCategory(f *excelize.File, st styles, row int, name string) error {
	if err := f.SetCellValue(SheetName, cellName("B", row), name); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, cellName("A", row), cellName("L", row), st.category); err != nil {
		return err
	}
	if err := f.MergeCell(SheetName, cellName("B", row), cellName("L", row)); err != nil {
		return err
	}
	return f.SetRowHeight(SheetName, row, categoryRowHeight(name))
}

// categoryRowHeight grows the row by one text line per categoryCharsPerLine
// characters of the category name.
func categoryRowHeight(name string) float64 {
	lines := (utf8.RuneCountInString(name) + categoryCharsPerLine - 1) / categoryCharsPerLine
	if lines < 1 {
		lines = 1
	}
	return float64(30 + (lines-1)*18)
}

func writeArticle(f *excelize.File, st styles, row, seq int, a *tccs.ExcelArticle) error {
	date := a.PublishDateFull
	if date == "" {
		date = a.PublishDate
	}
	values := []any{
		seq, a.DisplayAuthor(), a.Title, a.Type, date, "", "",
		countCell(a.ImageKhaiThac), countCell(a.ImageTuLieu), countCell(a.ImageTacGia), "", "",
	}
	if err := f.SetSheetRow(SheetName, cellName("A", row), &values); err != nil {
		return err
	}

	ranges := []struct {
		from, to string
		style    int
	}{
		{"A", "A", st.number},
		{"B", "D", st.text},
		{"E", "K", st.number},
		{"L", "L", st.text},
	}
	for _, r := range ranges {
		if err := f.SetCellStyle(SheetName, cellName(r.from, row), cellName(r.to, row), r.style); err != nil {
			return err
		}
	}
	return f.SetRowHeight(SheetName, row, 36)
}

// countCell leaves zero counts blank.
func countCell(n int) any {
	if n == 0 {
		return ""
	}
	return n
}

func cellName(col string, row int) string {
	return col + strconv.Itoa(row)
}

type categoryGroup struct {
	name     string
	articles []*tccs.ExcelArticle
}

// groupByCategory groups articles in order of first appearance.
func groupByCategory(articles []*tccs.ExcelArticle) []categoryGroup {
	var groups []categoryGroup
	index := make(map[string]int)
	for _, a := range articles {
		name := a.Category
		if name == "" {
			name = Uncategorized
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, categoryGroup{name: name})
		}
		groups[i].articles = append(groups[i].articles, a)
	}
	return groups
}
