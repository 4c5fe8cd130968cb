package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a page request with structured fields.
func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Debug("paginated request",
		slog.String("request_id", requestID),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit))
}

// LogResponse logs a served page with its duration.
func LogResponse(logger *slog.Logger, requestID string, meta Metadata, returnedCount int, duration time.Duration) {
	logger.Info("paginated response",
		slog.String("request_id", requestID),
		slog.Int("page", meta.Page),
		slog.Int("limit", meta.Limit),
		slog.Int64("total_count", meta.TotalCount),
		slog.Int("returned_count", returnedCount),
		slog.Int64("duration_ms", duration.Milliseconds()))
}

// LogError logs a pagination error with structured fields.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("pagination error",
		slog.String("request_id", requestID),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.String("error", err.Error()),
		slog.String("error_type", errorType))
}
