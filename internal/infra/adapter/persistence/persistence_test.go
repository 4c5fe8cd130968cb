package persistence

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-articles/internal/infra/adapter/persistence/postgres"
	"sports-articles/internal/infra/adapter/persistence/sqlite"
	infradb "sports-articles/internal/infra/db"
)

func TestNewArticleRepo(t *testing.T) {
	t.Parallel()
	db := &sql.DB{}

	pg, err := NewArticleRepo(infradb.DialectPostgres, db)
	require.NoError(t, err)
	assert.IsType(t, &postgres.ArticleRepo{}, pg)

	lite, err := NewArticleRepo(infradb.DialectSQLite, db)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.ArticleRepo{}, lite)

	_, err = NewArticleRepo("mysql", db)
	assert.Error(t, err)
}
