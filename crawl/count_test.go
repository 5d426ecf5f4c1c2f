package crawl_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/crawl"
	"github.com/Trantu1102/NB-TCCS/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typeCounter counts one khai thác image, or one tác giả image when the
// article type allows author credit.
func typeCounter() *mock.ImageCounter {
	return &mock.ImageCounter{
		CountImagesFn: func(_ string, articleType string) tccs.ImageCount {
			if tccs.AllowsAuthorCredit(articleType, tccs.DefaultNoAuthorTypes) {
				return tccs.ImageCount{TacGia: 1}
			}
			return tccs.ImageCount{KhaiThac: 1}
		},
	}
}

func TestBatch_CountImages(t *testing.T) {
	t.Parallel()

	t.Run("records counts in place", func(t *testing.T) {
		t.Parallel()

		items := rows(2)
		items[1].Type = "Tin tổng hợp"
		b := &crawl.Batch{Fetcher: echoFetcher(), Counter: typeCounter(), Concurrency: 5}

		res, err := b.CountImages(context.Background(), items, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, res.SuccessCount)
		c, ok := items[0].ImageCount()
		require.True(t, ok)
		assert.Equal(t, tccs.ImageCount{TacGia: 1}, c)
		c, ok = items[1].ImageCount()
		require.True(t, ok)
		assert.Equal(t, tccs.ImageCount{KhaiThac: 1}, c)
	})

	t.Run("updates the session store when articles have IDs", func(t *testing.T) {
		t.Parallel()

		items := rows(1)
		items[0].ID = "a1"
		var gotID string
		var gotUpdate tccs.ArticleUpdate
		b := &crawl.Batch{
			Fetcher: echoFetcher(),
			Counter: typeCounter(),
			Articles: &mock.ArticleService{
				UpdateArticleFn: func(_ context.Context, id string, upd tccs.ArticleUpdate) (*tccs.ExcelArticle, error) {
					gotID, gotUpdate = id, upd
					updated := *items[0]
					upd.Apply(&updated)
					return &updated, nil
				},
			},
		}

		_, err := b.CountImages(context.Background(), items, nil)

		require.NoError(t, err)
		assert.Equal(t, "a1", gotID)
		require.NotNil(t, gotUpdate.ImageCount)
		assert.Equal(t, tccs.ImageCount{TacGia: 1}, *gotUpdate.ImageCount)
		assert.True(t, items[0].ImageCountLoaded)
	})

	t.Run("reports unreachable pages and leaves their counts unloaded", func(t *testing.T) {
		t.Parallel()

		items := rows(3)
		b := &crawl.Batch{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if strings.HasSuffix(url, "/3.html") {
						return "", errors.New("dial tcp: i/o timeout")
					}
					return url, nil
				},
			},
			Counter:     typeCounter(),
			MaxAttempts: 1,
		}

		var last tccs.BatchProgress
		res, err := b.CountImages(context.Background(), items, func(p tccs.BatchProgress) { last = p })

		require.NoError(t, err)
		assert.Equal(t, 2, res.SuccessCount)
		require.Len(t, res.FailedArticles, 1)
		assert.Equal(t, "dial tcp: i/o timeout", res.FailedArticles[0].Error)
		assert.False(t, items[2].ImageCountLoaded)
		assert.Equal(t, tccs.BatchDone, last.Status)
		assert.Equal(t, 1, last.Failed)
	})

	t.Run("rejects an empty article list", func(t *testing.T) {
		t.Parallel()

		b := &crawl.Batch{Fetcher: echoFetcher(), Counter: typeCounter()}

		_, err := b.CountImages(context.Background(), []*tccs.ExcelArticle{}, nil)

		assert.Equal(t, tccs.EINVALID, tccs.ErrorCode(err))
	})
}

func TestCountImagesAt(t *testing.T) {
	t.Parallel()

	t.Run("counts the fetched page", func(t *testing.T) {
		t.Parallel()

		c := crawl.CountImagesAt(context.Background(), echoFetcher(), typeCounter(), "https://xaydungdang.org.vn/1.html", "Tin mới")

		assert.Equal(t, tccs.ImageCount{TacGia: 1}, c)
	})

	t.Run("returns zero counts when the page cannot be fetched", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", tccs.Errorf(tccs.EFETCH, "cannot reach page")
			},
		}

		c := crawl.CountImagesAt(context.Background(), fetcher, typeCounter(), "https://xaydungdang.org.vn/1.html", "Tin mới")

		assert.Equal(t, tccs.ImageCount{}, c)
	})
}
