package tccs

// ExtractResult holds the output of a generic main-content extractor.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Byline is the author line, if the extractor found one.
	Byline string

	// Excerpt is the lead paragraph or meta description.
	Excerpt string

	// SiteName is the publisher name from metadata.
	SiteName string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// TextContent is the plain text of ContentHTML.
	TextContent string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// It is the generic tier of article extraction; publisher-specific
// heuristics are layered on top by an ArticleExtractor.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	// The content HTML has boilerplate removed but preserves structure.
	Extract(html string) (*ExtractResult, error)
}
