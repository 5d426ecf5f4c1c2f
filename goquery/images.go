package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	tccs "github.com/Trantu1102/NB-TCCS"
)

// Ensure ImageCounter implements tccs.ImageCounter at compile time.
var _ tccs.ImageCounter = (*ImageCounter)(nil)

// regionSelectors locate the article body; the first match wins.
var regionSelectors = []string{
	".article-content",
	".content-video",
	".content-news",
	".content-magazine",
	".detail-content",
	".post-content",
	".entry-content",
}

// chromeImageTokens mark icons, logos and buttons by their src.
var chromeImageTokens = []string{"icon", "logo", "_logo", "share", "avatar", "print"}

var (
	photoCreditRe = regexp.MustCompile(`(?i)[Ảả]nh[\s\p{Z}]*:[\s\p{Z}]*(.+)$`)
	urlTokens     = []string{"http", "www.", ".com", ".vn", ".org", ".net"}
)

// maxAuthorName is the longest credit still treated as a person's name.
const maxAuthorName = 50

// ImageCounter classifies captioned article images by provenance.
type ImageCounter struct {
	noAuthorTypes []string
}

// ImageCounterOption configures an ImageCounter.
type ImageCounterOption func(*ImageCounter)

// WithDisallowedAuthorTypes sets the article types whose photo credits are
// downgraded from tác giả to tư liệu.
func WithDisallowedAuthorTypes(types ...string) ImageCounterOption {
	return func(c *ImageCounter) {
		c.noAuthorTypes = types
	}
}

// NewImageCounter creates an ImageCounter using tccs.DefaultNoAuthorTypes
// unless overridden.
func NewImageCounter(opts ...ImageCounterOption) *ImageCounter {
	c := &ImageCounter{noAuthorTypes: tccs.DefaultNoAuthorTypes}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CountImages counts the de-duplicated, figure-captioned images in the
// article region of rawHTML. Unparseable input counts nothing.
func (c *ImageCounter) CountImages(rawHTML string, articleType string) tccs.ImageCount {
	var count tccs.ImageCount

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return count
	}
	allowAuthor := tccs.AllowsAuthorCredit(articleType, c.noAuthorTypes)

	region := doc.Selection
	for _, sel := range regionSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			region = found
			break
		}
	}

	seen := make(map[string]bool)
	region.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if isChromeImage(src) || seen[src] {
			return
		}
		seen[src] = true

		figure := img.Closest("figure")
		if figure.Length() == 0 {
			return
		}
		count.Add(ClassifyCaption(innermostCaption(figure), allowAuthor))
	})

	return count
}

func isChromeImage(src string) bool {
	if runeLen(src) < 10 {
		return true
	}
	for _, t := range chromeImageTokens {
		if strings.Contains(src, t) {
			return true
		}
	}
	return false
}

// innermostCaption returns the trimmed text of the deepest figcaption in
// figure. Walking in document order, a caption replaces the current best
// only when the best contains it; sibling captions never replace the first.
func innermostCaption(figure *goquery.Selection) string {
	var best *goquery.Selection
	figure.Find("figcaption").Each(func(_ int, c *goquery.Selection) {
		if best == nil || best.Contains(c.Get(0)) {
			best = c
		}
	})
	if best == nil {
		return ""
	}
	return strings.TrimSpace(best.Text())
}

// ClassifyCaption maps a figure caption to an image provenance class.
// allowAuthor reports whether the article type may credit a photographer;
// when it may not, named credits count as tư liệu.
func ClassifyCaption(caption string, allowAuthor bool) tccs.ImageClass {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return tccs.ImageKhaiThac
	}

	lower := strings.ToLower(caption)
	if strings.Contains(lower, "ảnh: tư liệu") || strings.Contains(lower, "ảnh:tư liệu") {
		return tccs.ImageTuLieu
	}
	if strings.Contains(lower, "ttxvn") {
		return tccs.ImageKhaiThac
	}

	m := photoCreditRe.FindStringSubmatch(caption)
	if m == nil {
		return tccs.ImageKhaiThac
	}
	credit := strings.TrimSpace(m[1])
	lowerCredit := strings.ToLower(credit)
	for _, t := range urlTokens {
		if strings.Contains(lowerCredit, t) {
			return tccs.ImageKhaiThac
		}
	}
	if n := runeLen(credit); n > 0 && n <= maxAuthorName && !strings.Contains(lowerCredit, "tư liệu") {
		if allowAuthor {
			return tccs.ImageTacGia
		}
		return tccs.ImageTuLieu
	}
	return tccs.ImageKhaiThac
}
