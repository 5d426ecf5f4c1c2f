package tccs

import "context"

// Page is an exported article archived as Markdown.
type Page struct {
	URL     string
	Title   string
	Author  string
	Content string

	// Hash fingerprints Content so re-archived articles can be compared.
	Hash string
}

// PageStore archives the pages of one export run. Saved pages become
// visible only on Commit; Abort discards everything saved since the store
// was created.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
