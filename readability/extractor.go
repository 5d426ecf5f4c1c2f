package readability

import (
	"strings"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements tccs.Extractor at compile time.
var _ tccs.Extractor = (*Extractor)(nil)

// DefaultCharThreshold accepts the short news items the publisher runs.
const DefaultCharThreshold = 20

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	charThreshold int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCharThreshold sets the minimum text length readability requires
// before it accepts a candidate.
func WithCharThreshold(n int) Option {
	return func(e *Extractor) {
		e.charThreshold = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{charThreshold: DefaultCharThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*tccs.ExtractResult, error) {
	if rawHTML == "" {
		return nil, tccs.Errorf(tccs.EINVALID, "empty HTML input")
	}

	parser := readability.NewParser()
	parser.CharThresholds = e.charThreshold

	article, err := parser.Parse(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &tccs.ExtractResult{
		Title:       article.Title,
		Byline:      article.Byline,
		Excerpt:     article.Excerpt,
		SiteName:    article.SiteName,
		ContentHTML: article.Content,
		TextContent: article.TextContent,
	}, nil
}
