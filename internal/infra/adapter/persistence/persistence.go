// Package persistence selects the article store implementation for a dialect.
package persistence

import (
	"database/sql"
	"fmt"

	"sports-articles/internal/infra/adapter/persistence/postgres"
	"sports-articles/internal/infra/adapter/persistence/sqlite"
	infradb "sports-articles/internal/infra/db"
	"sports-articles/internal/repository"
)

// NewArticleRepo returns the ArticleRepository for dialect backed by db.
func NewArticleRepo(dialect infradb.Dialect, db *sql.DB) (repository.ArticleRepository, error) {
	switch dialect {
	case infradb.DialectPostgres:
		return postgres.NewArticleRepo(db), nil
	case infradb.DialectSQLite:
		return sqlite.NewArticleRepo(db), nil
	default:
		return nil, fmt.Errorf("no article store for driver %q", string(dialect))
	}
}
