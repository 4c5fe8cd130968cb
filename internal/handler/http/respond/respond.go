// Package respond writes JSON responses for the non-GraphQL endpoints and keeps
// internal error detail out of them.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"not allowed",
	"must be",
	"cannot be",
	"too large",
	"rate limit",
}

// SafeError writes err as a JSON error. Messages that describe a client mistake
// pass through; everything else, and every 5xx, becomes "internal server error"
// with the sanitised cause logged.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isClientFacing(msg) {
		JSON(w, code, ErrorBody{Error: msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: "internal server error"})
}

func isClientFacing(msg string) bool {
	lower := strings.ToLower(msg)
	for _, f := range safeFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
