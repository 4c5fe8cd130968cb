// Package api is a typed client for the articles GraphQL endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"sports-articles/internal/handler/http/requestid"
	"sports-articles/internal/resilience/retry"
)

const maxResponseBytes = 4 << 20

// Config contains client settings.
type Config struct {
	// Endpoint is the absolute URL of the GraphQL endpoint.
	Endpoint string

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// Retry applies to queries only; mutations run once.
	Retry retry.Config
}

// DefaultConfig returns settings for a local API server.
func DefaultConfig() Config {
	return Config{
		Endpoint: "http://localhost:8080/graphql",
		Timeout:  10 * time.Second,
		Retry:    retry.ClientConfig(),
	}
}

// Client talks to the GraphQL endpoint over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	retry      retry.Config
}

// New returns a Client. A nil httpClient gets one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("api endpoint is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{endpoint: cfg.Endpoint, httpClient: httpClient, retry: cfg.Retry}, nil
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code  string `json:"code"`
			Field string `json:"field"`
		} `json:"extensions"`
	} `json:"errors"`
}

// query runs a read operation with retries and decodes data into out.
func (c *Client) query(ctx context.Context, req request, out interface{}) error {
	return retry.WithBackoff(ctx, c.retry, func() error {
		return c.do(ctx, req, out)
	})
}

// mutate runs a write operation exactly once.
func (c *Client) mutate(ctx context.Context, req request, out interface{}) error {
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, gqlReq request, out interface{}) error {
	body, err := json.Marshal(gqlReq)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.RequestIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", gqlReq.OperationName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: statusMessage(resp.StatusCode, raw)}
	}

	var gqlResp response
	if err := json.Unmarshal(raw, &gqlResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		first := gqlResp.Errors[0]
		return &Error{Code: first.Extensions.Code, Field: first.Extensions.Field, Message: first.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// statusMessage prefers the server's JSON error text over the status text.
func statusMessage(code int, raw []byte) string {
	var body struct {
		Error  string `json:"error"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if len(body.Errors) > 0 && body.Errors[0].Message != "" {
			return body.Errors[0].Message
		}
	}
	return http.StatusText(code)
}
