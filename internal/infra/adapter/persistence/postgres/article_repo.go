// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sports-articles/internal/domain/entity"
	"sports-articles/internal/repository"
)

const articleColumns = `id, title, content, image_url, created_at, deleted_at`

type ArticleRepo struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

func NewArticleRepo(db *sql.DB, opts ...Option) repository.ArticleRepository {
	repo := &ArticleRepo{
		db:    db,
		now:   time.Now,
		newID: defaultID,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		article   entity.Article
		imageURL  sql.NullString
		deletedAt sql.NullTime
	)
	if err := row.Scan(&article.ID, &article.Title, &article.Content,
		&imageURL, &article.CreatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		article.ImageURL = &imageURL.String
	}
	article.CreatedAt = article.CreatedAt.UTC()
	if deletedAt.Valid {
		at := deletedAt.Time.UTC()
		article.Lifecycle = entity.LifecycleFromNullable(&at)
	} else {
		article.Lifecycle = entity.Active{}
	}
	return &article, nil
}

func scanArticles(rows *sql.Rows, capacity int) ([]*entity.Article, error) {
	articles := make([]*entity.Article, 0, capacity)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return articles, nil
}

// validID reports whether id can exist in the uuid column. Anything else
// cannot match a row, so callers answer ErrNotFound without a round trip.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (repo *ArticleRepo) Create(ctx context.Context, draft entity.Draft) (*entity.Article, error) {
	article := &entity.Article{
		ID:        repo.newID(),
		Title:     draft.Title,
		Content:   draft.Content,
		ImageURL:  draft.ImageURL,
		CreatedAt: truncate(repo.now()),
		Lifecycle: entity.Active{},
	}
	if err := repo.insert(ctx, article); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) Insert(ctx context.Context, article *entity.Article) error {
	if err := repo.insert(ctx, article); err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) insert(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (id, title, content, image_url, created_at, deleted_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	var deletedAt sql.NullTime
	if at, ok := article.DeletedAt(); ok {
		deletedAt = sql.NullTime{Time: at, Valid: true}
	}
	_, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content,
		nullString(article.ImageURL), article.CreatedAt, deletedAt,
	)
	return err
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE deleted_at IS NULL
ORDER BY created_at ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles, err := scanArticles(rows, 100)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return articles, nil
}

// FindPage reads the count and the slice inside one read-only snapshot so
// that totalCount always describes the same data as the returned items.
func (repo *ArticleRepo) FindPage(ctx context.Context, offset, limit int) ([]*entity.Article, int64, error) {
	tx, err := repo.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("FindPage: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const countQuery = `SELECT COUNT(*) FROM articles WHERE deleted_at IS NULL`
	var total int64
	if err := tx.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("FindPage: count: %w", err)
	}

	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE deleted_at IS NULL
ORDER BY created_at ASC, id ASC
LIMIT $1 OFFSET $2`
	rows, err := tx.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("FindPage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles, err := scanArticles(rows, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("FindPage: %w", err)
	}
	_ = rows.Close()
	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("FindPage: Commit: %w", err)
	}
	return articles, total, nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	if !validID(article.ID) {
		return entity.ErrNotFound
	}
	const query = `
UPDATE articles SET
       title     = $1,
       content   = $2,
       image_url = $3
WHERE id = $4 AND deleted_at IS NULL`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, nullString(article.ImageURL), article.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *ArticleRepo) SoftDelete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	const query = `UPDATE articles SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	res, err := repo.db.ExecContext(ctx, query, truncate(repo.now()), id)
	if err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("SoftDelete: RowsAffected: %w", err)
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *ArticleRepo) CountAll(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountAll: %w", err)
	}
	return count, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
