package sqlite

import (
	"context"
	"database/sql"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tccs.ArticleService = (*ArticleService)(nil)

const articleColumns = `id, stt, title, status, url, type, author, category,
	publish_date, publish_date_full, creator, views, display_status,
	image_khai_thac, image_tu_lieu, image_tac_gia, image_count_loaded`

// ArticleService implements tccs.ArticleService using SQLite.
// Articles are listed in the order they were imported.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// CreateArticles validates and inserts articles after any already stored,
// assigning each a new ID. Either all articles are stored or none.
func (s *ArticleService) CreateArticles(ctx context.Context, articles []*tccs.ExcelArticle) error {
	for _, a := range articles {
		if err := a.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM articles").Scan(&next); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, a := range articles {
		id := uuid.New().String()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO articles (`+articleColumns+`, position, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, a.STT, a.Title, a.Status, a.URL, a.Type, a.Author, a.Category,
			a.PublishDate, a.PublishDateFull, a.Creator, a.Views, a.DisplayStatus,
			a.ImageKhaiThac, a.ImageTuLieu, a.ImageTacGia, a.ImageCountLoaded,
			next+i, now); err != nil {
			return err
		}
		a.ID = id
	}

	return tx.Commit()
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*tccs.ExcelArticle, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, tccs.Errorf(tccs.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindArticles retrieves articles matching the filter in import order.
func (s *ArticleService) FindArticles(ctx context.Context, filter tccs.ArticleFilter) ([]*tccs.ExcelArticle, error) {
	var w where
	if filter.ID != nil {
		w.add("id = ?", *filter.ID)
	}
	if filter.Category != nil {
		w.add("category = ?", *filter.Category)
	}
	if filter.Type != nil {
		w.add("type = ?", *filter.Type)
	}
	if filter.CountLoaded != nil {
		w.add("image_count_loaded = ?", *filter.CountLoaded)
	}

	query := "SELECT " + articleColumns + " FROM articles" + w.String() +
		" ORDER BY position" + pagination(filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*tccs.ExcelArticle{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// UpdateArticle applies upd to an existing article.
func (s *ArticleService) UpdateArticle(ctx context.Context, id string, upd tccs.ArticleUpdate) (*tccs.ExcelArticle, error) {
	a, err := s.FindArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(a)

	_, err = s.db.ExecContext(ctx, `
		UPDATE articles
		SET type = ?, author = ?, image_khai_thac = ?, image_tu_lieu = ?,
			image_tac_gia = ?, image_count_loaded = ?, updated_at = ?
		WHERE id = ?
	`, a.Type, a.Author, a.ImageKhaiThac, a.ImageTuLieu, a.ImageTacGia, a.ImageCountLoaded,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*tccs.ExcelArticle, error) {
	var a tccs.ExcelArticle
	if err := row.Scan(&a.ID, &a.STT, &a.Title, &a.Status, &a.URL, &a.Type, &a.Author, &a.Category,
		&a.PublishDate, &a.PublishDateFull, &a.Creator, &a.Views, &a.DisplayStatus,
		&a.ImageKhaiThac, &a.ImageTuLieu, &a.ImageTacGia, &a.ImageCountLoaded); err != nil {
		return nil, err
	}
	return &a, nil
}
