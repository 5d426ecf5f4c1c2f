// Package goquery implements article extraction and image classification on
// a mutable goquery DOM.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	tccs "github.com/Trantu1102/NB-TCCS"
)

// Ensure Extractor implements tccs.ArticleExtractor at compile time.
var _ tccs.ArticleExtractor = (*Extractor)(nil)

// imageURLAttrs lists lazy-loading attributes in priority order.
var imageURLAttrs = []string{
	"data-src", "data-lazy-src", "data-original", "data-fallback-src",
	"data-actualsrc", "data-srcset", "data-img-src", "data-url",
	"original", "lazy-src", "srcset", "data-src-full", "data-hi-res",
}

var (
	briefSelectors   = []string{".brief-video", ".brief-audio", ".brief", ".sapo-video"}
	mediaSelectors   = []string{".content-video", ".content-audio", ".video-content", ".audio-content", ".content-news", ".content-magazine"}
	contentSelectors = []string{
		".detail-content", ".article-content", ".post-content", ".entry-content",
		".content-detail", ".news-content", ".content-news", ".article-body", ".main-content",
	}
	summarySelectors = []string{".sapo", ".summary", ".excerpt", ".lead"}
	headingSelector  = "h1, h2, .title, .post-title, .entry-title"

	titleSuffixRe = regexp.MustCompile(`\s+[-|]\s+.*$`)
	chromeClassRe = regexp.MustCompile(`(?i)related|share|social|comment|sidebar|\bads?\b`)
)

// Body extraction thresholds, in characters of trimmed text.
const (
	minBriefText     = 20
	minMediaText     = 50
	minCombinedText  = 200
	minSelectorText  = 100
	maxSiblingText   = 10000
	minParagraphText = 30
	minCollectedText = 200
)

// Extractor extracts article records from publisher HTML.
//
// The generic tier, typically a readability extractor, is optional; without
// it only the publisher-specific tiers run.
type Extractor struct {
	generic      tccs.Extractor
	sitePrefixes []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSitePrefixes sets the normalized tokens that open a lead paragraph
// echoed by the publisher, e.g. "xdđ".
func WithSitePrefixes(prefixes ...string) Option {
	return func(e *Extractor) {
		e.sitePrefixes = make([]string, 0, len(prefixes))
		for _, p := range prefixes {
			if p = NormalizeText(p); p != "" {
				e.sitePrefixes = append(e.sitePrefixes, p)
			}
		}
	}
}

// NewExtractor creates an Extractor using generic as the readability tier.
func NewExtractor(generic tccs.Extractor, opts ...Option) *Extractor {
	e := &Extractor{
		generic:      generic,
		sitePrefixes: DefaultSitePrefixes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// candidate is a body extraction result from one tier.
type candidate struct {
	html    string
	textLen int
}

func (c candidate) better(o candidate) bool {
	return o.textLen > c.textLen
}

// ExtractArticle parses rawHTML fetched from sourceURL into an Article.
func (e *Extractor) ExtractArticle(rawHTML string, sourceURL string) (*tccs.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, tccs.Errorf(tccs.EINVALID, "empty HTML input")
	}
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, tccs.Errorf(tccs.EINVALID, "invalid source URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, tccs.Errorf(tccs.EINVALID, "failed to parse HTML: %v", err)
	}

	recoverNoscriptImages(doc)
	resolveLazyImages(doc)
	resolvePaths(doc, base)

	title := recoverTitle(doc)

	body, generic := e.extractBody(doc)
	if strings.TrimSpace(body.html) == "" {
		return nil, tccs.Errorf(tccs.ENOCONTENT, "no content")
	}

	article := &tccs.Article{
		SiteName: metaContent(doc, `meta[property="og:site_name"]`),
		URL:      sourceURL,
	}
	summary := body.summary
	if generic != nil {
		if generic.Title != "" && runeLen(generic.Title) > runeLen(title) && !isTruncated(generic.Title) {
			title = generic.Title
		}
		if generic.SiteName != "" {
			article.SiteName = generic.SiteName
		}
		article.Author = strings.TrimSpace(generic.Byline)
		if summary == "" {
			summary = strings.TrimSpace(generic.Excerpt)
		}
	}
	article.Title = strings.Join(strings.Fields(title), " ")

	contentDoc, err := goquery.NewDocumentFromReader(strings.NewReader(body.html))
	if err != nil {
		return nil, tccs.Errorf(tccs.EINTERNAL, "failed to parse body: %v", err)
	}
	container := contentDoc.Find("body")
	cleanContent(container, article.Title, summary, e.sitePrefixes)

	// A hero image is kept only when the body has none.
	if container.Find("img").Length() == 0 {
		article.MainImage = metaContent(doc, `meta[property="og:image"]`)
	}

	article.Summary = dedupeSummary(summary, NormalizeText(container.Text()))

	if article.Content, err = container.Html(); err != nil {
		return nil, tccs.Errorf(tccs.EINTERNAL, "failed to render body: %v", err)
	}
	return article, nil
}

// bodyResult is the winning body tier plus the lead text found on the way.
type bodyResult struct {
	candidate
	summary string
}

// extractBody runs the body tiers in order, adopting a later candidate only
// when it is strictly longer than the current best.
func (e *Extractor) extractBody(doc *goquery.Document) (bodyResult, *tccs.ExtractResult) {
	var res bodyResult

	if brief := firstWithText(doc, briefSelectors, minBriefText); brief != nil {
		res.summary = strings.TrimSpace(brief.Text())
	}
	if media := firstWithText(doc, mediaSelectors, minMediaText); media != nil {
		res.candidate = selectionCandidate(media)
	}

	var generic *tccs.ExtractResult
	if e.generic != nil {
		if page, err := goquery.OuterHtml(doc.Selection); err == nil {
			if r, err := e.generic.Extract(page); err == nil && r != nil {
				generic = r
				c := candidate{html: r.ContentHTML, textLen: genericTextLen(r)}
				if res.better(c) {
					res.candidate = c
				}
			}
		}
	}

	short := func() bool {
		return res.textLen+runeLen(res.summary) < minCombinedText
	}

	if short() {
		if s := firstWithText(doc, contentSelectors, minSelectorText+1); s != nil {
			if c := selectionCandidate(s); res.better(c) {
				res.candidate = c
			}
		}
	}

	if short() {
		if anchor := firstWithText(doc, summarySelectors, 1); anchor != nil {
			if res.summary == "" {
				res.summary = strings.TrimSpace(anchor.Text())
			}
			if c := collectSiblings(anchor); res.better(c) {
				res.candidate = c
			}
		}
	}

	if short() {
		if c := collectParagraphs(doc); c.textLen > minCollectedText && res.better(c) {
			res.candidate = c
		}
	}

	return res, generic
}

// firstWithText returns the first element matching one of selectors, in
// selector order, whose trimmed text has at least min characters.
func firstWithText(doc *goquery.Document, selectors []string, min int) *goquery.Selection {
	for _, sel := range selectors {
		s := doc.Find(sel).First()
		if s.Length() > 0 && runeLen(strings.TrimSpace(s.Text())) >= min {
			return s
		}
	}
	return nil
}

func selectionCandidate(s *goquery.Selection) candidate {
	html, err := s.Html()
	if err != nil {
		return candidate{}
	}
	return candidate{html: html, textLen: runeLen(strings.TrimSpace(s.Text()))}
}

func genericTextLen(r *tccs.ExtractResult) int {
	if text := strings.TrimSpace(r.TextContent); text != "" {
		return runeLen(text)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.ContentHTML))
	if err != nil {
		return 0
	}
	return runeLen(strings.TrimSpace(doc.Text()))
}

// collectSiblings gathers the content following a lead paragraph.
func collectSiblings(anchor *goquery.Selection) candidate {
	var b strings.Builder
	total := 0
	anchor.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if total >= maxSiblingText {
			return false
		}
		switch goquery.NodeName(s) {
		case "script", "style":
			return true
		}
		if chromeClassRe.MatchString(s.AttrOr("class", "")) {
			return true
		}
		html, err := goquery.OuterHtml(s)
		if err != nil {
			return true
		}
		b.WriteString(html)
		total += runeLen(strings.TrimSpace(s.Text()))
		return true
	})
	return candidate{html: b.String(), textLen: total}
}

// collectParagraphs gathers substantial paragraphs inside main containers.
func collectParagraphs(doc *goquery.Document) candidate {
	var b strings.Builder
	total := 0
	doc.Find("main, article, [role=main]").Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if runeLen(text) <= minParagraphText {
			return
		}
		html, err := goquery.OuterHtml(s)
		if err != nil {
			return
		}
		b.WriteString(html)
		total += runeLen(text)
	})
	return candidate{html: b.String(), textLen: total}
}

// dedupeSummary clears summary when its opening is already in contentText.
func dedupeSummary(summary, contentText string) string {
	norm := NormalizeText(summary)
	if norm == "" {
		return ""
	}
	start := prefix(norm, 100)
	if strings.Contains(contentText, start) || strings.HasPrefix(contentText, prefix(start, 50)) {
		return ""
	}
	return strings.TrimSpace(summary)
}

// recoverNoscriptImages hoists images hidden in noscript fallbacks.
func recoverNoscriptImages(doc *goquery.Document) {
	doc.Find("noscript").Each(func(_ int, s *goquery.Selection) {
		content := s.Text()
		if !strings.Contains(content, "<img") {
			return
		}
		frag, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err != nil {
			return
		}
		img := frag.Find("img").First()
		if img.Length() == 0 {
			return
		}
		if html, err := goquery.OuterHtml(img); err == nil {
			s.BeforeHtml(html)
		}
	})
}

// resolveLazyImages promotes the first usable lazy-loading attribute to src.
func resolveLazyImages(doc *goquery.Document) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range imageURLAttrs {
			value, ok := s.Attr(attr)
			if !ok || value == "" {
				continue
			}
			actual := strings.TrimSpace(value)
			if strings.Contains(attr, "srcset") {
				actual = lastSrcsetCandidate(value, actual)
			}
			if actual != "" && (strings.Contains(actual, "/") || strings.HasPrefix(actual, "data:")) {
				s.SetAttr("src", actual)
				return
			}
		}
	})
}

// lastSrcsetCandidate returns the URL of the last srcset entry without its
// size descriptor, or fallback when there is none.
func lastSrcsetCandidate(srcset, fallback string) string {
	parts := strings.Split(srcset, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	if u, _, _ := strings.Cut(last, " "); u != "" {
		return u
	}
	return fallback
}

// resolvePaths makes relative links and sources absolute against base.
func resolvePaths(doc *goquery.Document, base *url.URL) {
	doc.Find("img, a, source, image").Each(func(_ int, s *goquery.Selection) {
		attr := "src"
		if goquery.NodeName(s) == "a" {
			attr = "href"
		}
		val, ok := s.Attr(attr)
		if !ok || val == "" ||
			strings.HasPrefix(val, "http") || strings.HasPrefix(val, "data:") || strings.HasPrefix(val, "#") {
			return
		}
		ref, err := url.Parse(val)
		if err != nil {
			return
		}
		s.SetAttr(attr, base.ResolveReference(ref).String())
	})
}

// recoverTitle returns the meta title with the site suffix stripped, or the
// longest heading that contains its ellipsis-free prefix.
func recoverTitle(doc *goquery.Document) string {
	meta := metaContent(doc, `meta[property="og:title"]`)
	if meta == "" {
		meta = doc.Find("title").First().Text()
	}
	meta = strings.TrimSpace(titleSuffixRe.ReplaceAllString(meta, ""))

	title := meta
	needle := strings.ToLower(strings.TrimSpace(strings.NewReplacer("...", "", "…", "").Replace(meta)))
	doc.Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if strings.Contains(strings.ToLower(text), needle) && runeLen(text) > runeLen(title) {
			title = text
		}
	})
	return title
}

func metaContent(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}
