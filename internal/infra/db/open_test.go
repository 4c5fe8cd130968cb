package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestConnectionConfigFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want ConnectionConfig
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: DefaultConnectionConfig(),
		},
		{
			name: "all set",
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":     "50",
				"DB_MAX_IDLE_CONNS":     "5",
				"DB_CONN_MAX_LIFETIME":  "2h",
				"DB_CONN_MAX_IDLE_TIME": "10m",
			},
			want: ConnectionConfig{MaxOpenConns: 50, MaxIdleConns: 5, ConnMaxLifetime: 2 * time.Hour, ConnMaxIdleTime: 10 * time.Minute},
		},
		{
			name: "invalid values keep defaults",
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":    "invalid",
				"DB_MAX_IDLE_CONNS":    "-10",
				"DB_CONN_MAX_LIFETIME": "soon",
			},
			want: DefaultConnectionConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME"} {
				t.Setenv(k, tt.env[k])
			}
			assert.Equal(t, tt.want, ConnectionConfigFromEnv())
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, Config{Dialect: "mongodb", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = Open(ctx, Config{Dialect: DialectPostgres})
	assert.ErrorContains(t, err, "DSN not set")
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(context.Background(), Config{
		Dialect: DialectSQLite,
		DSN:     ":memory:",
		Pool:    DefaultConnectionConfig(),
	})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}
