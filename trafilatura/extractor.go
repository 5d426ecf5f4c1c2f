// Package trafilatura provides the alternative generic extraction tier,
// backed by go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ tccs.Extractor = (*Extractor)(nil)

// Extractor extracts the main content of a page with go-trafilatura.
// Images and links stay in the content because captions and PDF links are
// part of the publisher's articles; reader comments are dropped.
type Extractor struct {
	language string
	fallback bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTargetLanguage rejects pages not written in lang (ISO 639-1, e.g.
// "vi").
func WithTargetLanguage(lang string) Option {
	return func(e *Extractor) {
		e.language = lang
	}
}

// WithoutFallback disables the readability and dom-distiller fallbacks
// trafilatura runs when its own heuristics find too little text.
func WithoutFallback() Option {
	return func(e *Extractor) {
		e.fallback = false
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the main content of rawHTML. Returns ENOCONTENT when
// trafilatura finds no content node.
func (e *Extractor) Extract(rawHTML string) (*tccs.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, tccs.Errorf(tccs.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		TargetLanguage:  e.language,
		EnableFallback:  e.fallback,
		ExcludeComments: true,
		IncludeImages:   true,
		IncludeLinks:    true,
	})
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, tccs.Errorf(tccs.ENOCONTENT, "no main content found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &tccs.ExtractResult{
		Title:       result.Metadata.Title,
		Byline:      result.Metadata.Author,
		Excerpt:     result.Metadata.Description,
		SiteName:    result.Metadata.Sitename,
		ContentHTML: buf.String(),
		TextContent: result.ContentText,
	}, nil
}
