// Package printview renders articles as a single print-ready HTML document.
// Each article starts on a new page when printed.
package printview

import (
	"fmt"
	"html/template"
	"io"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
)

// Compile-time interface verification.
var _ tccs.ArticleRenderer = (*Renderer)(nil)

var headlineSizes = map[tccs.HeadlineSize]string{
	tccs.HeadlineLarge:  "1.875rem",
	tccs.HeadlineMedium: "1.5rem",
	tccs.HeadlineSmall:  "1.25rem",
}

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"headline": func(title string) string { return headlineSizes[tccs.HeadlineSizeOf(title)] },
}).Parse(pageHTML))

// Renderer writes articles to an HTML document styled for A4 printing.
type Renderer struct {
	autoPrint bool

	// Now dates the document title.
	Now func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithAutoPrint opens the print dialog once all images have loaded.
func WithAutoPrint() Option {
	return func(r *Renderer) {
		r.autoPrint = true
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

type view struct {
	Title      string
	SiteHeader string
	AutoPrint  bool
	Articles   []articleView
}

type articleView struct {
	*tccs.Article

	// Body is the sanitized article content.
	Body template.HTML
}

// Render writes articles to w in slice order.
// Returns EINVALID if articles is empty.
func (r *Renderer) Render(w io.Writer, articles []*tccs.Article) error {
	if len(articles) == 0 {
		return tccs.Errorf(tccs.EINVALID, "no articles to render")
	}

	v := view{
		Title:      tccs.DocumentTitle(len(articles), r.Now()),
		SiteHeader: tccs.SiteHeader,
		AutoPrint:  r.autoPrint,
		Articles:   make([]articleView, len(articles)),
	}
	for i, a := range articles {
		v.Articles[i] = articleView{Article: a, Body: template.HTML(a.Content)}
	}

	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("render print view: %w", err)
	}
	return nil
}

const pageHTML = `<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: 'Merriweather', Georgia, serif; line-height: 1.8; font-size: 11.5pt; color: #000; background: white; padding: 2rem; }
.container { max-width: 56rem; margin: 0 auto; }
.article-item { margin-bottom: 2rem; page-break-after: always; }
.site-header { text-align: center; margin-bottom: 3rem; }
.site-header div { font-size: 12pt; font-weight: bold; color: #4b5563; text-transform: uppercase; letter-spacing: 0.1em; border-top: 1px solid #e5e7eb; padding-top: 1rem; max-width: 42rem; margin: 0 auto; font-family: 'Open Sans', sans-serif; }
h1 { font-weight: 900; line-height: 1.25; margin-bottom: 1.5rem; color: #111827; text-align: center; }
.author { text-align: center; margin-bottom: 1.5rem; font-size: 1rem; font-weight: bold; color: #1f2937; text-transform: uppercase; letter-spacing: 0.05em; }
.publish-date { text-align: center; margin-bottom: 1.5rem; font-style: italic; color: #4b5563; }
.summary-box { font-weight: 700; font-size: 12.5pt; margin-bottom: 2.5rem; text-align: justify; line-height: 1.6; color: #111827; }
.main-image { margin-bottom: 3rem; }
.main-image img { max-width: 100%; height: auto; display: block; margin: 0 auto; }
.article-content-body { text-align: justify; font-size: 11.5pt; }
.article-content-body p { margin-bottom: 1.4em; text-align: justify; text-indent: 2.5em; }
.article-content-body img { max-width: 100%; height: auto; display: block; margin: 25px auto; border-radius: 4px; }
.article-content-body h2, .article-content-body h3 { font-weight: 900; margin-top: 1.5em; margin-bottom: 0.8em; }
.article-content-body figure { margin: 25px 0; }
.article-content-body figcaption { text-align: center; font-size: 10pt; color: #666; margin-top: 8px; }
.source { margin-top: 6rem; padding-top: 2.5rem; border-top: 1px solid #f3f4f6; text-align: center; font-size: 12px; color: #d1d5db; font-style: italic; }
@media print {
  @page { margin: 1.5cm 2.2cm; size: A4; }
  body { -webkit-print-color-adjust: exact; print-color-adjust: exact; padding: 0; }
  .article-item:last-child { page-break-after: auto; }
  h1 { page-break-after: avoid; }
  .summary-box { page-break-inside: avoid; }
  .article-content-body img { page-break-inside: avoid; }
}
</style>
</head>
<body>
<div class="container">
{{- range .Articles}}
<article class="article-item">
<div class="site-header"><div>{{$.SiteHeader}}</div></div>
<h1 style="font-size: {{headline .Title}}">{{.Title}}</h1>
{{- if .Author}}
<div class="author">{{.Author}}</div>
{{- end}}
{{- if .PublishDate}}
<div class="publish-date">{{.PublishDate}}</div>
{{- end}}
{{- if .Summary}}
<div class="summary-box">{{.Summary}}</div>
{{- end}}
{{- if .MainImage}}
<div class="main-image"><img src="{{.MainImage}}" alt=""></div>
{{- end}}
<div class="article-content-body">{{.Body}}</div>
<p class="source">Nguồn: {{.URL}}</p>
</article>
{{- end}}
</div>
{{- if .AutoPrint}}
<script>
window.addEventListener('load', function () { setTimeout(function () { window.print(); }, 500); });
</script>
{{- end}}
</body>
</html>
`
