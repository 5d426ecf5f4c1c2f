package goquery_test

import (
	"errors"
	"strings"
	"testing"

	tccs "github.com/Trantu1102/NB-TCCS"
	tccsgoquery "github.com/Trantu1102/NB-TCCS/goquery"
	"github.com/Trantu1102/NB-TCCS/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceURL = "https://xaydungdang.org.vn/nhan-su/hoi-nghi-ban-giao-12345.html"

// page wraps body markup in a publisher-like document.
func page(head, body string) string {
	return "<!DOCTYPE html><html><head>" + head + "</head><body>" + body + "</body></html>"
}

func staticGeneric(r *tccs.ExtractResult) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(string) (*tccs.ExtractResult, error) { return r, nil },
	}
}

func failingGeneric() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(string) (*tccs.ExtractResult, error) { return nil, errors.New("no article") },
	}
}

func detailContent(inner string) string {
	return `<div class="detail-content">` + inner + `</div>`
}

func TestExtractor_ExtractArticle(t *testing.T) {
	t.Parallel()

	longBody := "<p>" + bodyParagraph + "</p><p>" + bodyParagraph + "</p>"

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := tccsgoquery.NewExtractor(nil).ExtractArticle("  ", sourceURL)

		require.Error(t, err)
		assert.Equal(t, tccs.EINVALID, tccs.ErrorCode(err))
	})

	t.Run("fails with no content when no tier yields a body", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Trang chủ</title>", `<nav><a href="/">Trang chủ</a></nav>`)

		_, err := tccsgoquery.NewExtractor(failingGeneric()).ExtractArticle(html, sourceURL)

		require.Error(t, err)
		assert.Equal(t, tccs.ENOCONTENT, tccs.ErrorCode(err))
		assert.Equal(t, "no content", tccs.ErrorMessage(err))
	})

	t.Run("recovers the full title from a heading", func(t *testing.T) {
		t.Parallel()

		html := page(`<meta property="og:title" content="Hội nghị..."><title>Hội nghị... - Xây dựng Đảng</title>`,
			`<h1>Hội nghị bàn giao công tác tuyên giáo</h1>`+detailContent(longBody))

		article, err := tccsgoquery.NewExtractor(nil).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, "Hội nghị bàn giao công tác tuyên giáo", article.Title)
		assert.Equal(t, sourceURL, article.URL)
	})

	t.Run("strips the site suffix from the document title", func(t *testing.T) {
		t.Parallel()

		html := page(`<title>Đổi mới công tác cán bộ - Xây dựng Đảng</title>`, detailContent(longBody))

		article, err := tccsgoquery.NewExtractor(nil).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, "Đổi mới công tác cán bộ", article.Title)
	})

	t.Run("adopts a longer untruncated readability title only", func(t *testing.T) {
		t.Parallel()

		head := `<meta property="og:title" content="Đổi mới công tác cán bộ">`
		html := page(head, detailContent(longBody))

		longer, err := tccsgoquery.NewExtractor(staticGeneric(&tccs.ExtractResult{
			Title:       "Đổi mới   công tác cán bộ trong giai đoạn mới",
			ContentHTML: "<p>x</p>",
		})).ExtractArticle(html, sourceURL)
		require.NoError(t, err)

		truncated, err := tccsgoquery.NewExtractor(staticGeneric(&tccs.ExtractResult{
			Title:       "Đổi mới công tác cán bộ trong giai...",
			ContentHTML: "<p>x</p>",
		})).ExtractArticle(html, sourceURL)
		require.NoError(t, err)

		assert.Equal(t, "Đổi mới công tác cán bộ trong giai đoạn mới", longer.Title)
		assert.Equal(t, "Đổi mới công tác cán bộ", truncated.Title)
	})

	t.Run("recovered title is never shorter than the meta title", func(t *testing.T) {
		t.Parallel()

		for _, meta := range []string{
			"Phát huy vai trò của tổ chức cơ sở đảng",
			"Tin  mới   hôm nay rất dài",
		} {
			html := page(`<meta property="og:title" content="`+meta+`">`,
				`<h2>Phát huy</h2><h1>Tin khác</h1>`+detailContent(longBody))

			article, err := tccsgoquery.NewExtractor(staticGeneric(&tccs.ExtractResult{
				Title: "Ngắn", ContentHTML: "<p>x</p>",
			})).ExtractArticle(html, sourceURL)

			require.NoError(t, err)
			collapsed := strings.Join(strings.Fields(meta), " ")
			assert.GreaterOrEqual(t, len([]rune(article.Title)), len([]rune(collapsed)), meta)
		}
	})

	t.Run("prefers the longer generic body over a structural match", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Video</title>",
			`<div class="content-video"><p>Đoạn mô tả video ngắn gọn nhưng đủ năm mươi ký tự để khớp.</p></div>`)
		generic := staticGeneric(&tccs.ExtractResult{
			ContentHTML: `<div id="readability-page-1" class="page">` + longBody + `</div>`,
			TextContent: bodyParagraph + bodyParagraph,
			Byline:      "Minh Anh",
			SiteName:    "Tạp chí Xây dựng Đảng",
		})

		article, err := tccsgoquery.NewExtractor(generic).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Contains(t, article.Content, bodyParagraph)
		assert.NotContains(t, article.Content, "Đoạn mô tả video")
		assert.Equal(t, "Minh Anh", article.Author)
		assert.Equal(t, "Tạp chí Xây dựng Đảng", article.SiteName)
	})

	t.Run("keeps the structural match when it is longer", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Audio</title>",
			`<div class="brief-audio">Tóm tắt nội dung bản tin phát thanh hôm nay.</div>`+
				`<div class="content-audio">`+longBody+`</div>`)
		generic := staticGeneric(&tccs.ExtractResult{ContentHTML: "<p>Ngắn</p>", TextContent: "Ngắn"})

		article, err := tccsgoquery.NewExtractor(generic).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Contains(t, article.Content, bodyParagraph)
		assert.Equal(t, "Tóm tắt nội dung bản tin phát thanh hôm nay.", article.Summary)
	})

	t.Run("falls back to the lead paragraph siblings", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Bài viết</title>", `<div class="wrap">
<div class="sapo">Tóm tắt bài viết về công tác cán bộ.</div>
<div class="share-tools">Chia sẻ bài viết</div>
<script>var x = 1;</script>
<p>`+bodyParagraph+`</p>
<p>`+bodyParagraph+`</p>
</div>`)

		article, err := tccsgoquery.NewExtractor(failingGeneric()).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Contains(t, article.Content, bodyParagraph)
		assert.NotContains(t, article.Content, "Chia sẻ bài viết")
		assert.NotContains(t, article.Content, "var x")
		assert.Equal(t, "Tóm tắt bài viết về công tác cán bộ.", article.Summary)
	})

	t.Run("collects paragraphs inside main containers as a last resort", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Bài viết</title>", `<main>
<p>Ngắn.</p>
<p>`+bodyParagraph+`</p>
<p>`+bodyParagraph+`</p>
</main>`)

		article, err := tccsgoquery.NewExtractor(nil).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Contains(t, article.Content, bodyParagraph)
		assert.NotContains(t, article.Content, "Ngắn.")
	})

	t.Run("recovers lazy and noscript images and resolves paths", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Ảnh</title>", detailContent(longBody+`
<figure><img src="/images/placeholder.gif" data-src="/uploads/2025/11/a.jpg"></figure>
<figure><img src="data:image/gif;base64,R0lGOD" srcset="/uploads/b-300.jpg 300w, /uploads/b-900.jpg 900w"></figure>
<noscript><img src="https://xaydungdang.org.vn/uploads/c.jpg"></noscript>
<p><a href="/nhan-su/bai-khac.html">Bài khác</a> trong chuyên mục nhân sự của tạp chí</p>`))

		article, err := tccsgoquery.NewExtractor(nil).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://xaydungdang.org.vn/uploads/2025/11/a.jpg",
			"https://xaydungdang.org.vn/uploads/b-900.jpg",
			"https://xaydungdang.org.vn/uploads/c.jpg",
		}, imageSources(t, article.Content))
		assert.Contains(t, article.Content, `href="https://xaydungdang.org.vn/nhan-su/bai-khac.html"`)
	})

	t.Run("keeps one image when lazy variants share a path", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Ảnh</title>", detailContent(longBody+`
<img src="/images/blank.gif" data-src="https://x/a.jpg?w=600">
<img src="/images/blank.gif" data-lazy-src="https://X/a.jpg/">`))

		article, err := tccsgoquery.NewExtractor(nil).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Len(t, imageSources(t, article.Content), 1)
	})

	t.Run("drops the hero image when the body has images", func(t *testing.T) {
		t.Parallel()

		head := `<meta property="og:image" content="https://xaydungdang.org.vn/uploads/hero.jpg">`
		withImage := page(head, detailContent(longBody+`<figure><img src="https://xaydungdang.org.vn/uploads/hero.jpg"></figure>`))
		withoutImage := page(head, detailContent(longBody))

		a, err := tccsgoquery.NewExtractor(nil).ExtractArticle(withImage, sourceURL)
		require.NoError(t, err)
		b, err := tccsgoquery.NewExtractor(nil).ExtractArticle(withoutImage, sourceURL)
		require.NoError(t, err)

		assert.Empty(t, a.MainImage)
		assert.Equal(t, "https://xaydungdang.org.vn/uploads/hero.jpg", b.MainImage)
	})

	t.Run("clears a summary already visible in the body", func(t *testing.T) {
		t.Parallel()

		summary := "Sáng 19/11, tại Hà Nội, Ban Tuyên giáo Trung ương tổ chức hội nghị bàn giao công tác tuyên giáo."
		html := page("<title>Hội nghị</title>", "<article>x</article>")
		generic := staticGeneric(&tccs.ExtractResult{
			Excerpt: summary,
			ContentHTML: `<figure><img src="https://xaydungdang.org.vn/uploads/a.jpg"><figcaption>` + summary + `</figcaption></figure>` +
				longBody,
		})

		article, err := tccsgoquery.NewExtractor(generic).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Empty(t, article.Summary)
	})

	t.Run("keeps a summary whose echo was removed from the body", func(t *testing.T) {
		t.Parallel()

		summary := "Sáng 19/11, tại Hà Nội, Ban Tuyên giáo Trung ương tổ chức hội nghị bàn giao công tác tuyên giáo."
		html := page("<title>Hội nghị</title>", "<article>x</article>")
		generic := staticGeneric(&tccs.ExtractResult{
			Excerpt:     summary,
			ContentHTML: "<p>" + summary + "</p>" + longBody,
		})

		article, err := tccsgoquery.NewExtractor(generic).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, summary, article.Summary)
		opening := string([]rune(tccsgoquery.NormalizeText(article.Summary))[:50])
		assert.NotContains(t, tccsgoquery.NormalizeText(textOf(t, article.Content)), opening)
	})

	t.Run("removes echoes of the site prefix lead", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Bài viết</title>", detailContent(`<p>XDĐ - Chiều 20/11, đoàn công tác làm việc với tỉnh.</p>`+longBody))

		article, err := tccsgoquery.NewExtractor(nil).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.NotContains(t, article.Content, "XDĐ")
	})

	t.Run("uses configured site prefixes", func(t *testing.T) {
		t.Parallel()

		html := page("<title>Bài viết</title>", detailContent(`<p>TCCS - Chiều 20/11, đoàn công tác làm việc với tỉnh.</p>`+longBody))

		article, err := tccsgoquery.NewExtractor(nil, tccsgoquery.WithSitePrefixes("TCCS")).ExtractArticle(html, sourceURL)

		require.NoError(t, err)
		assert.NotContains(t, article.Content, "TCCS -")
	})
}
