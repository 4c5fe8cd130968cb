package graphql

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"

	"sports-articles/internal/observability/logging"
	"sports-articles/internal/observability/metrics"
)

// CodeOK and CodeGraphQLError label operations in metrics and logs; the
// latter covers parse and validation failures that carry no service code.
const (
	CodeOK           = "OK"
	CodeGraphQLError = "GRAPHQL_ERROR"
)

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Handler serves POST /graphql with a JSON body and GET /graphql?query=.
type Handler struct {
	Schema *graphql.Schema
	Logger *slog.Logger
}

// NewHandler parses the schema for svc and returns a ready handler.
func NewHandler(svc ArticleService, logger *slog.Logger) (*Handler, error) {
	schema, err := NewSchema(svc)
	if err != nil {
		return nil, err
	}
	return &Handler{Schema: schema, Logger: logger}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, status, err := decodeRequest(r)
	if err != nil {
		writeJSON(w, status, &graphql.Response{
			Errors: []*gqlerrors.QueryError{gqlerrors.Errorf("%s", err.Error())},
		})
		return
	}

	start := time.Now()
	resp := h.Schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	elapsed := time.Since(start)

	code := responseCode(resp)
	op := parseDocument(req.Query).metricLabel(req.OperationName)
	metrics.RecordGraphQLOperation(op, code, elapsed)

	logger := h.Logger
	if logger == nil {
		logger = logging.FromContext(r.Context())
	}
	level := slog.LevelDebug
	switch code {
	case CodeInternalError:
		level = slog.LevelError
	case CodeOK:
	default:
		level = slog.LevelInfo
	}
	logging.WithRequestID(r.Context(), logger).LogAttrs(r.Context(), level, "graphql operation",
		slog.String("operation", op),
		slog.String("operation_name", req.OperationName),
		slog.String("code", code),
		slog.Int("errors", len(resp.Errors)),
		slog.Duration("duration", elapsed),
	)

	writeJSON(w, http.StatusOK, resp)
}

func decodeRequest(r *http.Request) (Request, int, error) {
	var req Request
	switch r.Method {
	case http.MethodPost:
		ct := r.Header.Get("Content-Type")
		if ct != "" && !strings.HasPrefix(ct, "application/json") {
			return req, http.StatusUnsupportedMediaType, errors.New("content type must be application/json")
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return req, http.StatusRequestEntityTooLarge, errors.New("request body too large")
			}
			return req, http.StatusBadRequest, errors.New("invalid JSON request body")
		}
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if vars := q.Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return req, http.StatusBadRequest, errors.New("invalid variables parameter")
			}
		}
		// Mutations over GET would bypass CORS preflight.
		doc := parseDocument(req.Query)
		if doc.malformed {
			return req, http.StatusBadRequest, errors.New("malformed query")
		}
		if doc.hasWrite() {
			return req, http.StatusMethodNotAllowed, errors.New("mutations are not allowed over GET")
		}
	default:
		return req, http.StatusMethodNotAllowed, errors.New("method not allowed")
	}

	if strings.TrimSpace(req.Query) == "" {
		return req, http.StatusBadRequest, errors.New("query is required")
	}
	return req, http.StatusOK, nil
}

// responseCode reports the code of the first error, OK when there is none.
func responseCode(resp *graphql.Response) string {
	if len(resp.Errors) == 0 {
		return CodeOK
	}
	first := resp.Errors[0]
	if code, ok := first.Extensions["code"].(string); ok {
		return code
	}
	var rerr *ResolverError
	if errors.As(first.ResolverError, &rerr) {
		return rerr.Code
	}
	return CodeGraphQLError
}

func writeJSON(w http.ResponseWriter, code int, resp *graphql.Response) {
	w.Header().Set("Content-Type", "application/json")
	if code == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", "GET, POST")
	}
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Default().Error("failed to encode graphql response", slog.Any("error", err))
	}
}
