// Package sqlite provides SQLite implementations of repository interfaces.
// Timestamps are stored as INTEGER Unix milliseconds.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sports-articles/internal/domain/entity"
	"sports-articles/internal/repository"
)

const articleColumns = `id, title, content, image_url, created_at, deleted_at`

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// NewArticleRepo creates a new SQLite-backed article repository.
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
		createdAt int64
		deletedAt sql.NullInt64
	)
	if err := row.Scan(&article.ID, &article.Title, &article.Content,
		&imageURL, &createdAt, &deletedAt); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		article.ImageURL = &imageURL.String
	}
	article.CreatedAt = fromMillis(createdAt)
	if deletedAt.Valid {
		at := fromMillis(deletedAt.Int64)
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

// Create inserts a new article with a generated id and the current time.
func (repo *ArticleRepo) Create(ctx context.Context, draft entity.Draft) (*entity.Article, error) {
	article := &entity.Article{
		ID:        repo.newID(),
		Title:     draft.Title,
		Content:   draft.Content,
		ImageURL:  draft.ImageURL,
		CreatedAt: fromMillis(toMillis(repo.now())),
		Lifecycle: entity.Active{},
	}
	if err := repo.insert(ctx, article); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return article, nil
}

// Insert stores an article with the id and creation time it already carries.
func (repo *ArticleRepo) Insert(ctx context.Context, article *entity.Article) error {
	if err := repo.insert(ctx, article); err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) insert(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (id, title, content, image_url, created_at, deleted_at)
VALUES (?, ?, ?, ?, ?, ?)`
	var deletedAt sql.NullInt64
	if at, ok := article.DeletedAt(); ok {
		deletedAt = sql.NullInt64{Int64: toMillis(at), Valid: true}
	}
	_, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content,
		nullString(article.ImageURL), toMillis(article.CreatedAt), deletedAt,
	)
	return err
}

// Get retrieves an active article by id.
func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = ? AND deleted_at IS NULL
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return article, nil
}

// List retrieves all active articles, earliest first.
func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE deleted_at IS NULL
ORDER BY created_at ASC, id ASC
`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles, err := scanArticles(rows, 100)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return articles, nil
}

// FindPage returns one page of active articles and the active total, both
// read inside one transaction.
func (repo *ArticleRepo) FindPage(ctx context.Context, offset, limit int) ([]*entity.Article, int64, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
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
LIMIT ? OFFSET ?
`
	rows, err := tx.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("FindPage: QueryContext: %w", err)
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

// Update overwrites the mutable fields of an active article.
func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles
SET title = ?, content = ?, image_url = ?
WHERE id = ? AND deleted_at IS NULL
`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, nullString(article.ImageURL), article.ID)
	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
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

// SoftDelete marks an active article as deleted now.
func (repo *ArticleRepo) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE articles SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`
	res, err := repo.db.ExecContext(ctx, query, toMillis(repo.now()), id)
	if err != nil {
		return fmt.Errorf("SoftDelete: ExecContext: %w", err)
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

// CountAll counts every row, soft-deleted ones included.
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
