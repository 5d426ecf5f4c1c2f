package trafilatura_test

import (
	"testing"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html lang="vi">
<head>
<title>Đổi mới công tác cán bộ - Xây dựng Đảng</title>
<meta property="og:title" content="Đổi mới công tác cán bộ">
<meta property="og:site_name" content="Tạp chí Xây dựng Đảng">
</head>
<body>
<nav><a href="/">Trang chủ</a><a href="/nhan-su">Nhân sự</a></nav>
<article>
<h1>Đổi mới công tác cán bộ</h1>
<p>Công tác cán bộ là khâu then chốt của công tác xây dựng Đảng, quyết định sự thành bại của cách mạng.</p>
<figure><img src="https://xaydungdang.org.vn/uploads/hoi-nghi.jpg" alt="Hội nghị"><figcaption>Quang cảnh hội nghị. Ảnh: TTXVN</figcaption></figure>
<p>Trong nhiệm kỳ qua, nhiều địa phương đã chủ động đổi mới quy trình đánh giá, quy hoạch cán bộ, gắn với kết quả thực hiện nhiệm vụ.</p>
<p>Việc lấy phiếu tín nhiệm được thực hiện công khai, dân chủ, tạo sự đồng thuận cao trong đội ngũ cán bộ, đảng viên.</p>
</article>
<aside>Tin đọc nhiều</aside>
<footer>Bản quyền thuộc Tạp chí Cộng sản</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts metadata and main content", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(articlePage)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "khâu then chốt")
		assert.Contains(t, result.TextContent, "khâu then chốt")
		assert.NotContains(t, result.ContentHTML, "Bản quyền thuộc Tạp chí Cộng sản")
	})

	t.Run("extracts without fallback", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor(trafilatura.WithoutFallback()).Extract(articlePage)

		require.NoError(t, err)
		assert.Contains(t, result.TextContent, "quy hoạch cán bộ")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		for _, html := range []string{"", "  \n "} {
			_, err := trafilatura.NewExtractor().Extract(html)

			require.Error(t, err)
			assert.Equal(t, tccs.EINVALID, tccs.ErrorCode(err))
		}
	})
}
