// Package docx writes the editorial checklist ("phiếu kiểm tra") of every
// article as a Word document.
package docx

import (
	"fmt"
	"io"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/fumiama/go-docx"
)

var _ tccs.ChecklistWriter = (*Writer)(nil)

// Font sizes are in half-points.
const (
	sizeMasthead = "26"
	sizeHeading  = "32"
	sizeBody     = "28"
)

const (
	font        = "Times New Roman"
	placeholder = "……………………"
	defaultType = "Tin tổng hợp"
)

// Page margins in twips.
const (
	marginVertical   = 720
	marginHorizontal = 1134
)

// Writer writes one checklist per article, separated by page breaks.
type Writer struct {
	masthead  string
	reviewers [2]string
	signer    string
}

// Option configures a Writer.
type Option func(*Writer)

// WithMasthead sets the publication name printed on top of every checklist.
func WithMasthead(name string) Option {
	return func(w *Writer) {
		w.masthead = name
	}
}

// WithReviewers sets the first and second copy editors.
func WithReviewers(first, second string) Option {
	return func(w *Writer) {
		w.reviewers = [2]string{first, second}
	}
}

// WithSigner sets the title of the head who signs off the checklist.
func WithSigner(title string) Option {
	return func(w *Writer) {
		w.signer = title
	}
}

// NewWriter creates a checklist writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		masthead:  "TẠP CHÍ CỘNG SẢN",
		reviewers: [2]string{"Vũ Trung Duy", "Lê Hải"},
		signer:    "Trưởng Ban TCCS Điện tử",
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ChecklistName returns the default file name for n checklists created at t.
func ChecklistName(n int, t time.Time) string {
	return fmt.Sprintf("Phieu_Kiem_Tra_%d_bai_%d-%d-%d.docx", n, t.Day(), int(t.Month()), t.Year())
}

// WriteChecklists writes the checklists of articles as a single document.
func (w *Writer) WriteChecklists(out io.Writer, articles []*tccs.ExcelArticle) error {
	if len(articles) == 0 {
		return tccs.Errorf(tccs.EINVALID, "no articles to write")
	}

	doc := docx.New().WithDefaultTheme()
	for i, a := range articles {
		w.writeChecklist(doc, a)
		if i < len(articles)-1 {
			doc.AddParagraph().AddPageBreaks()
		}
	}
	doc.Document.Body.Items = append(doc.Document.Body.Items, &docx.SectPr{
		PgSz: &docx.PgSz{W: 11906, H: 16838},
		PgMar: &docx.PgMar{
			Top:    marginVertical,
			Bottom: marginVertical,
			Left:   marginHorizontal,
			Right:  marginHorizontal,
		},
	})

	if _, err := doc.WriteTo(out); err != nil {
		return tccs.Errorf(tccs.EINTERNAL, "failed to write checklist: %v", err)
	}
	return nil
}

// span is one run of text inside a checklist line.
type span struct {
	text         string
	bold, italic bool
}

// line is one checklist paragraph. Before is the gap above it in twips.
type line struct {
	spans  []span
	align  string
	size   string
	before int
}

func plain(text string) []span {
	return []span{{text: text}}
}

func (w *Writer) lines(a *tccs.ExcelArticle) []line {
	articleType := a.Type
	if articleType == "" {
		articleType = defaultType
	}

	return []line{
		{spans: []span{{text: w.masthead, bold: true}}, align: "start", size: sizeMasthead},
		{spans: []span{{text: "PHIẾU KIỂM TRA", bold: true}}, align: "center", size: sizeHeading, before: 240},
		{spans: []span{{text: articleType + ": "}, {text: a.Title, bold: true, italic: true}}, before: 360},
		{spans: []span{{text: "Tác giả: "}, {text: orPlaceholder(a.DisplayAuthor())}, {text: "\t\t\tBút danh: ……………… "}}, before: 120},
		{spans: plain("Chức danh, địa chỉ:"), before: 120},
		{spans: plain("Số CCCD:"), before: 120},
		{spans: plain("Số tài khoản tác giả:"), before: 120},
		{spans: plain("Ngân hàng:"), before: 120},
		{spans: plain("Chi nhánh:"), before: 120},
		{spans: plain("Loại bài: ☐ Viết ☐ Viết chung ☐ Chấp bút ☐ Phỏng vấn ☐ Đặt  ☐ Khai thác"), before: 120},
		{spans: []span{{text: "Người thực hiện: "}, {text: orPlaceholder(a.Creator)}}, before: 120},
		{spans: plain("Người chữa lần 1: " + w.reviewers[0]), before: 120},
		{spans: plain("Người chữa lần 2: " + w.reviewers[1]), before: 120},
		{spans: plain("Ngày nhận bài: ……./………/……..…; Ngày nộp bài: ..…../………/………..…"), before: 120},
		{spans: plain("Đề nghị xếp loại:…………………………. Đăng số:……………………………...")},
		{spans: []span{{text: w.signer, bold: true}}, align: "end", before: 360},
		{spans: []span{{text: "Ngày........../........../..............", italic: true}}, align: "end", before: 40},
		{spans: plain("Phó trưởng ban ấn phẩm: ngày nhận……………………………………………………."), before: 240},
		{spans: plain("Trưởng ban ấn phẩm: ngày nhận…………………………………………………….."), before: 120},
		{spans: plain("Xếp loại: ………………………………………………………………………......"), before: 120},
		{spans: []span{{text: "QUYẾT ĐỊNH", bold: true}}, align: "center", before: 360},
		{spans: []span{{text: "Phó Tổng Biên tập\t|\tTổng Biên tập", bold: true}}, align: "center", before: 240},
		{spans: plain("Đăng số:…………………………….\t|\tĐăng số:…………………………..."), before: 120},
		{spans: plain("Xếp loại: Nhuận bút……Biên tập……\t|\tXếp loại: Nhuận bút……Biên tập……"), before: 120},
	}
}

func (w *Writer) writeChecklist(doc *docx.Docx, a *tccs.ExcelArticle) {
	for _, l := range w.lines(a) {
		p := doc.AddParagraph()
		if l.align != "" {
			p.Justification(l.align)
		}
		if l.before > 0 {
			if p.Properties == nil {
				p.Properties = &docx.ParagraphProperties{}
			}
			p.Properties.Spacing = &docx.Spacing{Before: l.before}
		}
		size := l.size
		if size == "" {
			size = sizeBody
		}
		for _, s := range l.spans {
			r := p.AddText(s.text).Size(size).Font(font, font, font, "")
			preserveSpace(r)
			if s.bold {
				r.Bold()
			}
			if s.italic {
				r.Italic()
			}
		}
	}
}

// preserveSpace keeps the spaces around field labels such as "Tác giả: ".
func preserveSpace(r *docx.Run) {
	for _, c := range r.Children {
		if t, ok := c.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
