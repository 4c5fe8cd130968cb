package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-articles/internal/config"
	"sports-articles/internal/infra/adapter/persistence"
	infradb "sports-articles/internal/infra/db"
	"sports-articles/internal/usecase/importer"
)

const sampleCSV = `id,title,content,createdAt,imageUrl
,Derby day,City edge United 2-1,2025-03-01T15:00:00Z,https://img.example/derby.jpg
,Transfer window,Three signings confirmed,2025-03-02,
,,row without a title,,
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Driver = string(infradb.DialectSQLite)
	cfg.Database.URL = "file:" + filepath.Join(t.TempDir(), "articles.db")
	cfg.Database.MaxOpenConns = 1
	return cfg
}

func TestRun_ImportsIntoEmptyStoreOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := testConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	input := filepath.Join(t.TempDir(), "articles.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleCSV), 0o600))

	require.NoError(t, run(ctx, cfg, input, logger))

	db, err := infradb.Open(ctx, cfg.DBConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo, err := persistence.NewArticleRepo(infradb.DialectSQLite, db)
	require.NoError(t, err)

	articles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Derby day", articles[0].Title)
	assert.Equal(t, "Transfer window", articles[1].Title)
	require.NoError(t, db.Close())

	err = run(ctx, cfg, input, logger)
	assert.ErrorIs(t, err, importer.ErrStoreNotEmpty)
}

func TestRun_MissingFile(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), testConfig(t), filepath.Join(t.TempDir(), "nope.csv"), slog.Default())
	assert.Error(t, err)
}
