package sqlite_test

import (
	"context"
	"testing"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/Trantu1102/NB-TCCS/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func sampleArticles() []*tccs.ExcelArticle {
	return []*tccs.ExcelArticle{
		{STT: 1, Title: "Hội nghị tổng kết", URL: "https://xaydungdang.org.vn/1.html", Type: "Tin mới", Category: "Tin tức", PublishDate: "19/11/2025", Views: 120},
		{STT: 2, Title: "Tọa đàm khoa học", URL: "https://xaydungdang.org.vn/2.html", Type: "Tin tổng hợp", Category: "Nghiên cứu", Creator: "Lan"},
		{STT: 3, Title: "Gương sáng", URL: "https://xaydungdang.org.vn/3.html", Type: "Tin mới", Category: "Tin tức"},
	}
}

func TestArticleService_CreateArticles(t *testing.T) {
	t.Parallel()

	t.Run("assigns IDs and round-trips fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(setupTestDB(t))
		ctx := context.Background()
		articles := sampleArticles()

		require.NoError(t, svc.CreateArticles(ctx, articles))

		for _, a := range articles {
			assert.NotEmpty(t, a.ID)
		}
		got, err := svc.FindArticleByID(ctx, articles[1].ID)
		require.NoError(t, err)
		assert.Equal(t, articles[1], got)
	})

	t.Run("rejects the whole list when one article is invalid", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(setupTestDB(t))
		ctx := context.Background()
		articles := sampleArticles()
		articles[2].URL = ""

		err := svc.CreateArticles(ctx, articles)

		require.Error(t, err)
		assert.Equal(t, tccs.EINVALID, tccs.ErrorCode(err))
		all, err := svc.FindArticles(ctx, tccs.ArticleFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("appends later imports after earlier ones", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(setupTestDB(t))
		ctx := context.Background()
		first := sampleArticles()
		second := []*tccs.ExcelArticle{{STT: 1, Title: "Bài bổ sung", URL: "https://xaydungdang.org.vn/4.html"}}

		require.NoError(t, svc.CreateArticles(ctx, first))
		require.NoError(t, svc.CreateArticles(ctx, second))

		all, err := svc.FindArticles(ctx, tccs.ArticleFilter{})
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "Bài bổ sung", all[3].Title)
	})
}

func TestArticleService_FindArticleByID(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewArticleService(setupTestDB(t))

	_, err := svc.FindArticleByID(context.Background(), "missing")

	assert.Equal(t, tccs.ENOTFOUND, tccs.ErrorCode(err))
}

func TestArticleService_FindArticles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := sqlite.NewArticleService(setupTestDB(t))
	articles := sampleArticles()
	require.NoError(t, svc.CreateArticles(ctx, articles))
	_, err := svc.UpdateArticle(ctx, articles[2].ID, tccs.ArticleUpdate{ImageCount: &tccs.ImageCount{TacGia: 1}})
	require.NoError(t, err)

	stts := func(as []*tccs.ExcelArticle) []int {
		out := make([]int, len(as))
		for i, a := range as {
			out[i] = a.STT
		}
		return out
	}

	tests := []struct {
		name   string
		filter tccs.ArticleFilter
		want   []int
	}{
		{"all in import order", tccs.ArticleFilter{}, []int{1, 2, 3}},
		{"by ID", tccs.ArticleFilter{ID: ptr(articles[1].ID)}, []int{2}},
		{"by category", tccs.ArticleFilter{Category: ptr("Tin tức")}, []int{1, 3}},
		{"by type", tccs.ArticleFilter{Type: ptr("Tin tổng hợp")}, []int{2}},
		{"counts loaded", tccs.ArticleFilter{CountLoaded: ptr(true)}, []int{3}},
		{"counts pending", tccs.ArticleFilter{CountLoaded: ptr(false)}, []int{1, 2}},
		{"limit", tccs.ArticleFilter{Limit: 2}, []int{1, 2}},
		{"offset without limit", tccs.ArticleFilter{Offset: 1}, []int{2, 3}},
		{"limit and offset", tccs.ArticleFilter{Limit: 1, Offset: 1}, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.FindArticles(ctx, tt.filter)

			require.NoError(t, err)
			assert.Equal(t, tt.want, stts(got))
		})
	}
}

func TestArticleService_UpdateArticle(t *testing.T) {
	t.Parallel()

	t.Run("stores image counts", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewArticleService(setupTestDB(t))
		articles := sampleArticles()
		require.NoError(t, svc.CreateArticles(ctx, articles))

		updated, err := svc.UpdateArticle(ctx, articles[0].ID, tccs.ArticleUpdate{
			ImageCount: &tccs.ImageCount{KhaiThac: 2, TuLieu: 1},
		})
		require.NoError(t, err)

		got, err := svc.FindArticleByID(ctx, articles[0].ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
		c, ok := got.ImageCount()
		assert.True(t, ok)
		assert.Equal(t, tccs.ImageCount{KhaiThac: 2, TuLieu: 1}, c)
	})

	t.Run("changing the type clears image counts", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewArticleService(setupTestDB(t))
		articles := sampleArticles()
		require.NoError(t, svc.CreateArticles(ctx, articles))
		_, err := svc.UpdateArticle(ctx, articles[0].ID, tccs.ArticleUpdate{ImageCount: &tccs.ImageCount{TacGia: 3}})
		require.NoError(t, err)

		_, err = svc.UpdateArticle(ctx, articles[0].ID, tccs.ArticleUpdate{Type: ptr("KT + biên tập"), Author: ptr("Minh Anh")})
		require.NoError(t, err)

		got, err := svc.FindArticleByID(ctx, articles[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "KT + biên tập", got.Type)
		assert.Equal(t, "Minh Anh", got.Author)
		_, ok := got.ImageCount()
		assert.False(t, ok)
		assert.Zero(t, got.ImageTacGia)
	})

	t.Run("returns not found for unknown IDs", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(setupTestDB(t))

		_, err := svc.UpdateArticle(context.Background(), "missing", tccs.ArticleUpdate{Author: ptr("x")})

		assert.Equal(t, tccs.ENOTFOUND, tccs.ErrorCode(err))
	})
}
