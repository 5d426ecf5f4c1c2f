package tccs

// Article is a clean article record produced from a publisher page.
//
// Content never holds two images with the same normalized URL. MainImage is
// empty whenever Content already contains an image, and Summary is empty
// whenever its opening is already visible in Content.
type Article struct {
	SiteName string `json:"siteName"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`

	// PublishDate is filled by callers; extraction leaves it empty.
	PublishDate string `json:"publishDate,omitempty"`

	// Content is a sanitized HTML fragment of the article body.
	Content string `json:"content"`

	Summary   string `json:"summary,omitempty"`
	MainImage string `json:"mainImage,omitempty"`
	URL       string `json:"url"`
}

// ArticleExtractor turns raw publisher HTML into an Article.
type ArticleExtractor interface {
	// ExtractArticle parses html fetched from sourceURL.
	// Returns ENOCONTENT if no article body could be located.
	ExtractArticle(html string, sourceURL string) (*Article, error)
}
