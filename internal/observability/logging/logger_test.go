package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sports-articles/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── レベル / フォーマット ───────── */

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" info ", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONByDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Options{})
	logger.Info("article created", slog.String("id", "a1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "article created", entry["msg"])
	assert.Equal(t, "a1", entry["id"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Options{Format: "text"})
	logger.Info("listing page", slog.Int("page", 2))

	out := buf.String()
	assert.Contains(t, out, `msg="listing page"`)
	assert.Contains(t, out, "page=2")
}

func TestNew_LevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn"})
	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_WritesRotatingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "api.log")
	var buf bytes.Buffer
	logger := New(&buf, Options{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	logger.Error("store unavailable")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "store unavailable")
	assert.Contains(t, buf.String(), "store unavailable")
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_FILE", "")

	opts := OptionsFromEnv()
	assert.Equal(t, "debug", opts.Level)
	assert.Equal(t, "text", opts.Format)
	assert.Empty(t, opts.File)
	assert.Positive(t, opts.MaxSizeMB)
	assert.NotNil(t, NewLogger())
}

/* ───────── コンテキスト伝搬 ───────── */

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := New(&buf, Options{})
	ctx := requestid.WithRequestID(context.Background(), "req-42")

	WithRequestID(ctx, base).Info("deleting article")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
}

func TestWithRequestID_NoID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := New(&buf, Options{})

	logger := WithRequestID(context.Background(), base)
	assert.Same(t, base, logger)

	logger.Info("no id")
	assert.False(t, strings.Contains(buf.String(), "request_id"))
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Same(t, slog.Default(), FromContext(context.Background()))

	custom := New(&bytes.Buffer{}, Options{})
	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}
