package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schemas = map[Dialect][]string{
	DialectPostgres: {
		`
CREATE TABLE IF NOT EXISTS articles (
    id         UUID PRIMARY KEY,
    title      VARCHAR(255) NOT NULL,
    content    TEXT NOT NULL,
    image_url  VARCHAR(500),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at TIMESTAMPTZ
)`,
		// 一覧・ページングは created_at ASC, id ASC で有効な記事のみを読む
		`CREATE INDEX IF NOT EXISTS idx_articles_active_created_at ON articles(created_at, id) WHERE deleted_at IS NULL`,
	},
	DialectSQLite: {
		`
CREATE TABLE IF NOT EXISTS articles (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    image_url  TEXT,
    created_at INTEGER NOT NULL,
    deleted_at INTEGER
)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_active_created_at ON articles(created_at, id) WHERE deleted_at IS NULL`,
	},
}

// MigrateUp creates the articles table and its indexes. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", string(dialect))
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
