package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	tccs "github.com/Trantu1102/NB-TCCS"
)

// chromeSelectors are removed anywhere in a cleaned body.
var chromeSelectors = []string{
	".related", ".ads", ".social-share", "script", "style", "button",
	".nav", ".footer", ".sidebar", ".breadcrumb", ".tags",
}

var (
	leadingTimestampRe = regexp.MustCompile(`(?i)^\d{1,2}[:h]\d{2}.*?\d{1,2}[-/]\d{1,2}[-/]\d{4}`)

	metadataPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^thứ\s+(hai|ba|tư|năm|sáu|bảy|chủ nhật)`),                  // "Thứ tư, 19/11/2025"
		regexp.MustCompile(`(?i)^\d{1,2}:\d{2},?\s*(ngày)?\s*\d{1,2}[-/]\d{1,2}[-/]\d{4}`), // "18:45, ngày 19-11-2025"
		regexp.MustCompile(`(?i)^(báo|tin|nguồn:?)\s+[a-zA-ZÀ-ỹ\s]+$`),                     // "Báo Bắc Ninh"
		regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}[-/]\d{4}$`),                                // "19/11/2025"
	}

	schemeRe = regexp.MustCompile(`(?i)^https?://`)
)

const (
	// maxLeadingChildren bounds the scan for echoed title, summary and metadata.
	maxLeadingChildren = 15

	iframeStyle = "width: 100%; height: 600px; border: none; margin: 20px 0;"
	imageStyle  = "max-width: 100%; height: auto; display: block; margin: 20px auto;"
)

// DefaultSitePrefixes are the publisher tokens that open echoed lead paragraphs.
var DefaultSitePrefixes = []string{"xdđ", "xdd"}

// NormalizeText lowercases s, collapses whitespace runs and trims it.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeImageKey returns the comparison key of an image URL: lowercased
// host and path without query, fragment or trailing slash, percent-decoded.
// Values that are not absolute URLs get the same treatment on the raw string.
func NormalizeImageKey(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}

	u, err := url.Parse(src)
	if err == nil && u.Scheme != "" && u.Host != "" {
		p := strings.TrimSuffix(u.EscapedPath(), "/")
		return unescape(strings.ToLower(u.Hostname() + p))
	}

	raw := schemeRe.ReplaceAllString(src, "")
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimRight(raw, "/")
	return unescape(strings.ToLower(raw))
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}

// CleanContent applies body cleanup to an HTML fragment and returns the
// cleaned fragment. title and summary are the recovered title and lead used
// to detect echoed paragraphs.
func CleanContent(fragment, title, summary string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", tccs.Errorf(tccs.EINVALID, "failed to parse HTML: %v", err)
	}
	body := doc.Find("body")
	cleanContent(body, title, summary, DefaultSitePrefixes)
	return body.Html()
}

// cleanContent mutates container in place.
func cleanContent(container *goquery.Selection, title, summary string, sitePrefixes []string) {
	removeLeadingEchoes(scanRoot(container), title, summary, sitePrefixes)

	for _, sel := range chromeSelectors {
		container.Find(sel).Remove()
	}

	container.Find("p, div, span").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if runeLen(text) >= 100 {
			return
		}
		for _, re := range metadataPatterns {
			if re.MatchString(text) {
				s.Remove()
				return
			}
		}
	})

	container.Find("iframe").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if !keepIframe(src) {
			s.Remove()
			return
		}
		s.SetAttr("style", iframeStyle)
	})

	seen := make(map[string]bool)
	container.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		key := NormalizeImageKey(src)
		if !ok || runeLen(src) < 10 || seen[key] {
			s.Remove()
			return
		}
		seen[key] = true
		s.SetAttr("style", imageStyle)
	})
}

// scanRoot descends through single-child wrappers, such as the page div a
// readability pass adds, to the element whose children are the paragraphs.
func scanRoot(container *goquery.Selection) *goquery.Selection {
	root := container
	for {
		children := root.Children()
		if children.Length() != 1 || ownText(root) != "" {
			return root
		}
		switch goquery.NodeName(children) {
		case "div", "article", "section", "main":
			root = children
		default:
			return root
		}
	}
}

// removeLeadingEchoes drops leading children that repeat the title, the
// summary or publication metadata. Children holding an image keep only
// their media.
func removeLeadingEchoes(root *goquery.Selection, title, summary string, sitePrefixes []string) {
	normTitle := NormalizeText(title)
	normSummary := NormalizeText(summary)
	titleTruncated := isTruncated(title)

	node := root.Children().First()
	count := 0
	for node.Length() > 0 && count < maxLeadingChildren {
		next := node.Next()
		rawText := strings.TrimSpace(node.Text())
		text := NormalizeText(rawText)

		if text == "" && !hasMedia(node) {
			node.Remove()
			node = next
			continue
		}

		if text != "" && isEcho(rawText, text, normTitle, normSummary, titleTruncated, sitePrefixes) {
			if hasImage(node) {
				stripText(node)
			} else {
				node.Remove()
			}
		}

		node = next
		count++
	}
}

func isEcho(rawText, text, normTitle, normSummary string, titleTruncated bool, sitePrefixes []string) bool {
	textLen := runeLen(text)
	summaryLen := runeLen(normSummary)

	if runeLen(rawText) < 80 && leadingTimestampRe.MatchString(rawText) {
		return true
	}

	if !titleTruncated && runeLen(normTitle) > 10 &&
		(normTitle == text || strings.Contains(text, normTitle) || strings.Contains(normTitle, text)) {
		return true
	}

	for _, p := range sitePrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}

	if summaryLen > 20 && textLen > 20 {
		if strings.Contains(normSummary, text) || strings.Contains(text, normSummary) {
			return true
		}
		summaryStart := prefix(normSummary, 80)
		textStart := prefix(text, 80)
		if strings.Contains(summaryStart, textStart) || strings.Contains(textStart, summaryStart) {
			return true
		}
	}

	if textLen > 10 && runeLen(rawText) < 300 {
		if strings.Contains(normTitle, text) || strings.Contains(normSummary, text) {
			return true
		}
	}

	return false
}

// stripText removes the text of an image holder, leaving its media and
// captions in place.
func stripText(s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text", "#comment":
			c.Remove()
		case "figcaption", "source":
		default:
			if hasMedia(c) {
				stripText(c)
			} else {
				c.Remove()
			}
		}
	})
}

func keepIframe(src string) bool {
	lower := strings.ToLower(src)
	isPDF := strings.Contains(lower, ".pdf") ||
		strings.Contains(lower, "google.com/viewer") ||
		strings.Contains(lower, "microsoft.com/en-us/office/type/pdf")
	return isPDF || strings.Contains(src, "youtube.com") || strings.Contains(src, "vimeo.com")
}

func hasImage(s *goquery.Selection) bool {
	return goquery.NodeName(s) == "img" || s.Find("img").Length() > 0
}

// hasMedia reports whether s is or holds embedded media.
func hasMedia(s *goquery.Selection) bool {
	if hasImage(s) {
		return true
	}
	switch goquery.NodeName(s) {
	case "iframe", "video", "audio":
		return true
	}
	return s.Find("iframe, video, audio").Length() > 0
}

// ownText returns the trimmed text of s's direct text children.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return strings.TrimSpace(b.String())
}

func isTruncated(title string) bool {
	return strings.Contains(title, "...") || strings.Contains(title, "…")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}
