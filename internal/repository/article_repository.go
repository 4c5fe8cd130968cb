// Package repository declares the storage ports used by the use cases.
package repository

import (
	"context"

	"sports-articles/internal/domain/entity"
)

// ArticleRepository is the article store. Every read and write except
// Insert and CountAll only sees active (not soft-deleted) articles, and every
// listing is ordered by created_at ascending with id as the tie-breaker.
//
// Lookups that match no active article return entity.ErrNotFound.
type ArticleRepository interface {
	// Create persists a new article with a freshly generated id and the
	// store's current time as CreatedAt.
	Create(ctx context.Context, draft entity.Draft) (*entity.Article, error)
	// Insert persists a fully formed article as is. It is used by the
	// importer, which supplies its own id and CreatedAt.
	Insert(ctx context.Context, article *entity.Article) error
	Get(ctx context.Context, id string) (*entity.Article, error)
	List(ctx context.Context) ([]*entity.Article, error)
	// FindPage returns up to limit articles after skipping offset, together
	// with the total number of active articles.
	FindPage(ctx context.Context, offset, limit int) ([]*entity.Article, int64, error)
	// Update overwrites title, content and image of an active article.
	Update(ctx context.Context, article *entity.Article) error
	// SoftDelete stamps deleted_at with the store's current time.
	// The row is never physically removed.
	SoftDelete(ctx context.Context, id string) error
	// CountAll counts every stored article, soft-deleted ones included.
	CountAll(ctx context.Context) (int64, error)
}
