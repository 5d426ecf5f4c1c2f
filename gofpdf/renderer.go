// Package gofpdf renders extracted articles to PDF.
//
// Remote images are not downloaded; figure captions are printed in their
// place. Vietnamese text needs a UTF-8 TrueType font, see WithUTF8Font.
// Without one, text is set in Helvetica with diacritics folded away.
package gofpdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/jung-kurt/gofpdf"
)

// Compile-time interface verification.
var _ tccs.ArticleRenderer = (*Renderer)(nil)

// Page geometry in millimetres: A4 with 1.5cm top and bottom and 2.2cm
// side margins.
const (
	marginX    = 22.0
	marginY    = 15.0
	bodyLine   = 6.0
	bodySize   = 11.5
	coreFamily = "Helvetica"
	utf8Family = "Body"
)

var headlinePoints = map[tccs.HeadlineSize]float64{
	tccs.HeadlineLarge:  22.5,
	tccs.HeadlineMedium: 18,
	tccs.HeadlineSmall:  15,
}

// UTF8Font names the TrueType files of one family in a font directory.
type UTF8Font struct {
	Dir     string
	Regular string
	Bold    string
	Italic  string
}

// DejaVuSans returns the DejaVu Sans files as installed in dir.
func DejaVuSans(dir string) UTF8Font {
	return UTF8Font{
		Dir:     dir,
		Regular: "DejaVuSans.ttf",
		Bold:    "DejaVuSans-Bold.ttf",
		Italic:  "DejaVuSans-Oblique.ttf",
	}
}

// Renderer writes articles to a PDF document, one article per page.
type Renderer struct {
	font *UTF8Font

	// Now dates the document title.
	Now func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithUTF8Font sets text in the given TrueType family.
func WithUTF8Font(f UTF8Font) Option {
	return func(r *Renderer) {
		r.font = &f
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{Now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// doc couples a document with the font family and text encoding in use.
type doc struct {
	pdf    *gofpdf.Fpdf
	family string
	text   func(string) string
}

// Render writes articles to w. Returns EINVALID if articles is empty.
func (r *Renderer) Render(w io.Writer, articles []*tccs.Article) error {
	if len(articles) == 0 {
		return tccs.Errorf(tccs.EINVALID, "no articles to render")
	}

	d := r.newDoc()
	d.pdf.SetTitle(tccs.DocumentTitle(len(articles), r.Now()), true)
	d.pdf.SetFooterFunc(func() {
		d.pdf.SetY(-marginY + 5)
		d.pdf.SetFont(d.family, "I", 8)
		d.pdf.SetTextColor(128, 128, 128)
		d.pdf.CellFormat(0, 5, strconv.Itoa(d.pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	for _, a := range articles {
		d.pdf.AddPage()
		d.article(a)
	}

	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func (r *Renderer) newDoc() *doc {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	if r.font != nil {
		pdf.SetFontLocation(r.font.Dir)
		pdf.AddUTF8Font(utf8Family, "", r.font.Regular)
		pdf.AddUTF8Font(utf8Family, "B", r.font.Bold)
		pdf.AddUTF8Font(utf8Family, "I", r.font.Italic)
		return &doc{pdf: pdf, family: utf8Family, text: func(s string) string { return s }}
	}

	encode := pdf.UnicodeTranslatorFromDescriptor("")
	return &doc{pdf: pdf, family: coreFamily, text: func(s string) string {
		return encode(foldDiacritics(s))
	}}
}

func (d *doc) article(a *tccs.Article) {
	pdf := d.pdf

	d.set("B", 10, 75)
	pdf.MultiCell(0, 5, d.text(strings.ToUpper(tccs.SiteHeader)), "", "C", false)
	pdf.SetDrawColor(229, 231, 235)
	y := pdf.GetY() + 2
	pdf.Line(marginX+20, y, 210-marginX-20, y)
	pdf.Ln(10)

	size := headlinePoints[tccs.HeadlineSizeOf(a.Title)]
	d.set("B", size, 17)
	pdf.MultiCell(0, size*0.5, d.text(a.Title), "", "C", false)
	pdf.Ln(4)

	if a.Author != "" {
		d.set("B", 11, 31)
		pdf.MultiCell(0, bodyLine, d.text(strings.ToUpper(a.Author)), "", "C", false)
		pdf.Ln(4)
	}
	if a.PublishDate != "" {
		d.set("I", 10, 75)
		pdf.MultiCell(0, bodyLine, d.text(a.PublishDate), "", "C", false)
		pdf.Ln(2)
	}
	if a.Summary != "" {
		d.set("B", 12.5, 17)
		pdf.MultiCell(0, bodyLine+1, d.text(a.Summary), "", "J", false)
		pdf.Ln(6)
	}

	for _, b := range ContentBlocks(a.Content) {
		d.block(b)
	}

	pdf.Ln(12)
	d.set("I", 9, 156)
	pdf.MultiCell(0, 5, d.text("Nguồn: "+a.URL), "", "C", false)
}

func (d *doc) block(b Block) {
	pdf := d.pdf
	switch b.Kind {
	case Heading:
		pdf.Ln(3)
		d.set("B", 12.5, 0)
		pdf.MultiCell(0, bodyLine+1, d.text(b.Text), "", "L", false)
		pdf.Ln(2)
	case Caption:
		d.set("I", 10, 102)
		pdf.MultiCell(0, 5, d.text(b.Text), "", "C", false)
		pdf.Ln(4)
	case Quote:
		d.set("I", bodySize, 0)
		pdf.SetX(marginX + 8)
		pdf.MultiCell(0, bodyLine, d.text(b.Text), "", "J", false)
		pdf.Ln(3)
	case ListItem:
		d.set("", bodySize, 0)
		pdf.SetX(marginX + 5)
		pdf.MultiCell(0, bodyLine, d.text("- "+b.Text), "", "L", false)
		pdf.Ln(1)
	default:
		d.set("", bodySize, 0)
		pdf.MultiCell(0, bodyLine, d.text(b.Text), "", "J", false)
		pdf.Ln(3)
	}
}

// set selects the font style, size and gray level of the following text.
func (d *doc) set(style string, size float64, gray int) {
	d.pdf.SetFont(d.family, style, size)
	d.pdf.SetTextColor(gray, gray, gray)
}
