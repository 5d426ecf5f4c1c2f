package gofpdf_test

import (
	"testing"

	"github.com/Trantu1102/NB-TCCS/gofpdf"
	"github.com/stretchr/testify/assert"
)

func TestContentBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []gofpdf.Block
	}{
		{
			name: "paragraphs collapse whitespace",
			html: "<p>Đại hội   Đảng\n bộ</p><p>Lần thứ XIV</p>",
			want: []gofpdf.Block{
				{Kind: gofpdf.Paragraph, Text: "Đại hội Đảng bộ"},
				{Kind: gofpdf.Paragraph, Text: "Lần thứ XIV"},
			},
		},
		{
			name: "headings and list items",
			html: "<h2>Kết quả</h2><ul><li>Một</li><li>Hai</li></ul>",
			want: []gofpdf.Block{
				{Kind: gofpdf.Heading, Text: "Kết quả"},
				{Kind: gofpdf.ListItem, Text: "Một"},
				{Kind: gofpdf.ListItem, Text: "Hai"},
			},
		},
		{
			name: "figures keep only the caption",
			html: `<figure><img src="a.jpg"><figcaption>Ảnh: TTXVN</figcaption></figure><p>Sau ảnh</p>`,
			want: []gofpdf.Block{
				{Kind: gofpdf.Caption, Text: "Ảnh: TTXVN"},
				{Kind: gofpdf.Paragraph, Text: "Sau ảnh"},
			},
		},
		{
			name: "media without text is dropped",
			html: `<p><img src="a.jpg"></p><video src="v.mp4"></video><iframe src="x"></iframe>`,
			want: nil,
		},
		{
			name: "nested wrappers are descended",
			html: "<div><section><p>Trong</p><blockquote>Trích dẫn</blockquote></section></div>",
			want: []gofpdf.Block{
				{Kind: gofpdf.Paragraph, Text: "Trong"},
				{Kind: gofpdf.Quote, Text: "Trích dẫn"},
			},
		},
		{
			name: "text-only div is one paragraph",
			html: "<div>Chỉ có <strong>chữ</strong></div>",
			want: []gofpdf.Block{
				{Kind: gofpdf.Paragraph, Text: "Chỉ có chữ"},
			},
		},
		{
			name: "table rows join cells",
			html: "<table><tr><th>Năm</th><th>Số</th></tr><tr><td>2025</td><td>12</td></tr></table>",
			want: []gofpdf.Block{
				{Kind: gofpdf.Paragraph, Text: "Năm | Số"},
				{Kind: gofpdf.Paragraph, Text: "2025 | 12"},
			},
		},
		{
			name: "empty content",
			html: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, gofpdf.ContentBlocks(tt.html))
		})
	}
}
