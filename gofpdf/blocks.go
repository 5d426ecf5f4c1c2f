package gofpdf

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BlockKind identifies how a content block is typeset.
type BlockKind int

// Block kinds.
const (
	Paragraph BlockKind = iota
	Heading
	ListItem
	Quote
	Caption
)

// Block is one typeset unit of article content.
type Block struct {
	Kind BlockKind
	Text string
}

// skipped elements carry no printable text.
var skipped = map[string]bool{
	"img":     true,
	"picture": true,
	"video":   true,
	"audio":   true,
	"iframe":  true,
	"script":  true,
	"style":   true,
	"br":      true,
	"hr":      true,
}

// containers are descended into rather than printed whole.
var containers = map[string]bool{
	"div":     true,
	"section": true,
	"article": true,
	"figure":  true,
	"ul":      true,
	"ol":      true,
	"header":  true,
	"footer":  true,
	"main":    true,
	"body":    true,
}

// ContentBlocks splits sanitized article HTML into typeset blocks in
// document order. Media elements are dropped and their captions kept.
func ContentBlocks(contentHTML string) []Block {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return nil
	}
	var blocks []Block
	walk(doc.Find("body").Children(), &blocks)
	return blocks
}

func walk(s *goquery.Selection, out *[]Block) {
	s.Each(func(_ int, el *goquery.Selection) {
		name := goquery.NodeName(el)
		switch {
		case skipped[name]:
		case name == "figcaption":
			appendBlock(out, Caption, el.Text())
		case len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6':
			appendBlock(out, Heading, el.Text())
		case name == "li":
			appendBlock(out, ListItem, el.Text())
		case name == "blockquote":
			appendBlock(out, Quote, el.Text())
		case name == "table":
			el.Find("tr").Each(func(_ int, tr *goquery.Selection) {
				var cells []string
				tr.Find("th, td").Each(func(_ int, td *goquery.Selection) {
					if t := collapse(td.Text()); t != "" {
						cells = append(cells, t)
					}
				})
				appendBlock(out, Paragraph, strings.Join(cells, " | "))
			})
		case containers[name] && hasBlockChildren(el):
			walk(el.Children(), out)
		default:
			appendBlock(out, Paragraph, el.Text())
		}
	})
}

// hasBlockChildren reports whether el holds anything other than inline
// text, so that a plain text div prints as one paragraph.
func hasBlockChildren(el *goquery.Selection) bool {
	found := false
	el.Children().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		name := goquery.NodeName(c)
		if name == "p" || name == "figcaption" || name == "li" || name == "table" ||
			name == "blockquote" || skipped[name] || containers[name] ||
			(len(name) == 2 && name[0] == 'h') {
			found = true
		}
		return !found
	})
	return found
}

func appendBlock(out *[]Block, kind BlockKind, text string) {
	if text = collapse(text); text != "" {
		*out = append(*out, Block{Kind: kind, Text: text})
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
