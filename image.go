package tccs

import "strings"

// ImageClass is the provenance category of an article image.
type ImageClass int

const (
	// ImageKhaiThac is an exploited image without a clear individual credit.
	ImageKhaiThac ImageClass = iota
	// ImageTuLieu is an archival image, or one downgraded from authorship by policy.
	ImageTuLieu
	// ImageTacGia is an image credited to a named photographer.
	ImageTacGia
)

// String returns the editorial label of the class.
func (c ImageClass) String() string {
	switch c {
	case ImageTuLieu:
		return "tư liệu"
	case ImageTacGia:
		return "tác giả"
	default:
		return "khai thác"
	}
}

// ImageCount holds per-provenance image totals for one article.
type ImageCount struct {
	KhaiThac int `json:"khaiThac"`
	TuLieu   int `json:"tuLieu"`
	TacGia   int `json:"tacGia"`
}

// Add increments the counter for class c.
func (c *ImageCount) Add(class ImageClass) {
	switch class {
	case ImageTuLieu:
		c.TuLieu++
	case ImageTacGia:
		c.TacGia++
	default:
		c.KhaiThac++
	}
}

// Total returns the number of counted images.
func (c ImageCount) Total() int {
	return c.KhaiThac + c.TuLieu + c.TacGia
}

// ImageCounter classifies the captioned images of an article page.
type ImageCounter interface {
	// CountImages never fails; ambiguous captions count as khai thác.
	CountImages(html string, articleType string) ImageCount
}

// DefaultNoAuthorTypes lists article types that by policy cannot credit an
// individual photo author.
var DefaultNoAuthorTypes = []string{"Tin tổng hợp", "KT + biên tập"}

// AllowsAuthorCredit reports whether images of articleType may be credited
// to a photographer. Types are compared case-insensitively after trimming.
func AllowsAuthorCredit(articleType string, noAuthorTypes []string) bool {
	t := strings.ToLower(strings.TrimSpace(articleType))
	for _, d := range noAuthorTypes {
		if t == strings.ToLower(strings.TrimSpace(d)) {
			return false
		}
	}
	return true
}
