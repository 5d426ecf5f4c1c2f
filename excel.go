package tccs

import (
	"context"
	"strings"
)

// ExcelArticle is an editorial tracking row imported from a spreadsheet.
type ExcelArticle struct {
	ID              string `json:"id"`
	STT             int    `json:"stt"`
	Title           string `json:"title"`
	Status          string `json:"status"`
	URL             string `json:"url"`
	Type            string `json:"type"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	PublishDate     string `json:"publishDate"`
	PublishDateFull string `json:"publishDateFull"`
	Creator         string `json:"creator"`
	Views           int    `json:"views"`
	DisplayStatus   string `json:"displayStatus"`

	// Image counters are meaningful only while ImageCountLoaded is set.
	ImageKhaiThac    int  `json:"imageKhaiThac,omitempty"`
	ImageTuLieu      int  `json:"imageTuLieu,omitempty"`
	ImageTacGia      int  `json:"imageTacGia,omitempty"`
	ImageCountLoaded bool `json:"imageCountLoaded"`
}

// Validate returns an error if the article contains invalid fields.
func (a *ExcelArticle) Validate() error {
	if a.STT == 0 && strings.TrimSpace(a.Title) == "" {
		return Errorf(EINVALID, "article sequence number or title required")
	}
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	return nil
}

// SetType changes the article type. Image counts depend on the type, so
// they are invalidated when it changes.
func (a *ExcelArticle) SetType(t string) {
	if t == a.Type {
		return
	}
	a.Type = t
	a.ImageKhaiThac, a.ImageTuLieu, a.ImageTacGia = 0, 0, 0
	a.ImageCountLoaded = false
}

// SetImageCount records the result of an image count.
func (a *ExcelArticle) SetImageCount(c ImageCount) {
	a.ImageKhaiThac = c.KhaiThac
	a.ImageTuLieu = c.TuLieu
	a.ImageTacGia = c.TacGia
	a.ImageCountLoaded = true
}

// ImageCount returns the recorded counts and whether they are loaded.
func (a *ExcelArticle) ImageCount() (ImageCount, bool) {
	if !a.ImageCountLoaded {
		return ImageCount{}, false
	}
	return ImageCount{KhaiThac: a.ImageKhaiThac, TuLieu: a.ImageTuLieu, TacGia: a.ImageTacGia}, true
}

// DisplayAuthor returns the byline used on rendered documents.
func (a *ExcelArticle) DisplayAuthor() string {
	if a.Author != "" {
		return a.Author
	}
	return a.Creator
}

// ArticleService holds the editorial article list for a session.
type ArticleService interface {
	// CreateArticles adds imported articles, assigning IDs.
	CreateArticles(ctx context.Context, articles []*ExcelArticle) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*ExcelArticle, error)

	// FindArticles retrieves articles matching the filter in import order.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*ExcelArticle, error)

	// UpdateArticle applies upd to an existing article.
	// Returns ENOTFOUND if the article does not exist.
	UpdateArticle(ctx context.Context, id string, upd ArticleUpdate) (*ExcelArticle, error)
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID       *string `json:"id"`
	Category *string `json:"category"`
	Type     *string `json:"type"`

	// CountLoaded filters on whether image counts have been loaded.
	CountLoaded *bool `json:"countLoaded"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArticleUpdate represents fields that can be updated on an article.
// Changing Type invalidates image counts unless ImageCount is also set.
type ArticleUpdate struct {
	Type       *string     `json:"type"`
	Author     *string     `json:"author"`
	ImageCount *ImageCount `json:"imageCount"`
}

// Apply applies the update to a.
func (upd ArticleUpdate) Apply(a *ExcelArticle) {
	if upd.Type != nil {
		a.SetType(*upd.Type)
	}
	if upd.Author != nil {
		a.Author = *upd.Author
	}
	if upd.ImageCount != nil {
		a.SetImageCount(*upd.ImageCount)
	}
}
