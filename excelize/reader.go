// Package excelize reads the editorial article list from spreadsheets and
// writes the styled image-count report.
package excelize

import (
	"io"
	"strconv"
	"strings"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// Compile-time interface verification.
var _ tccs.ArticleReader = (*Reader)(nil)

// DefaultHeaderRows is the number of rows above the article rows in the CMS
// export: title, timestamp and column headers.
const DefaultHeaderRows = 3

// Columns maps article fields to zero-based column indexes.
type Columns struct {
	STT             int
	Title           int
	Status          int
	URL             int
	Type            int
	Category        int
	PublishDate     int
	PublishDateFull int
	Creator         int
	Views           int
	DisplayStatus   int
}

// DefaultColumns is the column layout of the CMS article export.
var DefaultColumns = Columns{
	STT:             0,
	Title:           1,
	Status:          2,
	URL:             3,
	Type:            4,
	Category:        5,
	PublishDate:     6,
	PublishDateFull: 7,
	Creator:         8,
	Views:           9,
	DisplayStatus:   10,
}

// Reader imports articles from the first sheet of a workbook.
type Reader struct {
	headerRows int
	columns    Columns
	sortByDate bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithHeaderRows sets how many leading rows are skipped.
func WithHeaderRows(n int) ReaderOption {
	return func(r *Reader) {
		if n >= 0 {
			r.headerRows = n
		}
	}
}

// WithColumns overrides the column layout.
func WithColumns(c Columns) ReaderOption {
	return func(r *Reader) {
		r.columns = c
	}
}

// WithSortByDate sorts imported articles newest first.
func WithSortByDate() ReaderOption {
	return func(r *Reader) {
		r.sortByDate = true
	}
}

// NewReader creates a Reader for the CMS export layout.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		headerRows: DefaultHeaderRows,
		columns:    DefaultColumns,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadArticles reads the article rows of the workbook in rd.
// Rows without a URL, or without both a sequence number and a title, are
// skipped. Returns EINVALID if the workbook cannot be read or has no
// article rows.
func (r *Reader) ReadArticles(rd io.Reader) ([]*tccs.ExcelArticle, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, tccs.Errorf(tccs.EINVALID, "cannot read spreadsheet: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, tccs.Errorf(tccs.EINVALID, "cannot read spreadsheet: %v", err)
	}

	var articles []*tccs.ExcelArticle
	for i := r.headerRows; i < len(rows); i++ {
		if a := r.parseRow(rows[i], i-r.headerRows+1); a != nil {
			articles = append(articles, a)
		}
	}
	if len(articles) == 0 {
		return nil, tccs.Errorf(tccs.EINVALID, "no articles found in spreadsheet")
	}

	if r.sortByDate {
		tccs.SortByPublishDateDesc(articles)
	}
	return articles, nil
}

// parseRow returns nil for rows that do not describe an article.
// fallbackSTT numbers rows whose sequence cell is not numeric.
func (r *Reader) parseRow(row []string, fallbackSTT int) *tccs.ExcelArticle {
	c := r.columns
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	a := &tccs.ExcelArticle{
		Title:           cell(c.Title),
		Status:          cell(c.Status),
		URL:             cleanURL(cell(c.URL)),
		Type:            cell(c.Type),
		Category:        cell(c.Category),
		PublishDate:     normalizeDate(cell(c.PublishDate)),
		PublishDateFull: normalizeDate(cell(c.PublishDateFull)),
		Creator:         cell(c.Creator),
		Views:           parseInt(cell(c.Views)),
		DisplayStatus:   cell(c.DisplayStatus),
	}
	if stt := cell(c.STT); stt != "" {
		if a.STT = parseInt(stt); a.STT == 0 {
			a.STT = fallbackSTT
		}
	}

	if a.Validate() != nil {
		return nil
	}
	return a
}

// cleanURL drops the CMS preview flag from article links.
func cleanURL(u string) string {
	u = strings.Replace(u, "&preview=1", "", 1)
	return strings.Replace(u, "?preview=1", "", 1)
}

func parseInt(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// normalizeDate converts date cells to day/month/year text. Text already in
// that form is kept as is, including any time of day.
func normalizeDate(s string) string {
	if s == "" {
		return ""
	}
	if _, ok := tccs.ParseDayMonthYear(s); ok {
		return s
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return s
		}
		return t.Format("02/01/2006")
	}
	t, err := dateparse.ParseIn(s, time.Local, dateparse.PreferMonthFirst(false))
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}
