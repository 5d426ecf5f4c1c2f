package tccs

// Converter turns sanitized article HTML (Article.Content) into Markdown
// for the archive and the extract command.
type Converter interface {
	Convert(html string) (string, error)
}
