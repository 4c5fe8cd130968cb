package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestJSON_EncodingErrorKeepsStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSafeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code int
		err  error
		want string
	}{
		{"method", http.StatusMethodNotAllowed, errors.New("method not allowed"), "method not allowed"},
		{"rate limit", http.StatusTooManyRequests, errors.New("rate limit exceeded"), "rate limit exceeded"},
		{"body", http.StatusRequestEntityTooLarge, errors.New("request body too large"), "request body too large"},
		{"unknown 4xx", http.StatusBadRequest, errors.New("pq: syntax error at or near"), "internal server error"},
		{"5xx hides detail", http.StatusInternalServerError, errors.New("title is required"), "internal server error"},
		{"credentials", http.StatusServiceUnavailable, errors.New("postgres://u:pw@h/db refused"), "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			SafeError(rec, tt.code, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			var body ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Error)
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusBadRequest, nil)
	assert.Zero(t, rec.Body.Len())
}
