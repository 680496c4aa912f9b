package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"estoque-console/metrics"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrTransport         = errors.New("inventory api unreachable")
	ErrMalformedResponse = errors.New("unexpected response from inventory api")
)

// APIError is a non-2xx answer from the inventory API. Message is the body's
// "message" field when the API sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inventory api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("inventory api returned status %d: %s", e.StatusCode, e.Message)
}

type ClientOptions struct {
	BaseURL          string
	Timeout          time.Duration
	MaxResponseBytes int64
	Transport        http.RoundTripper
	Metrics          *metrics.Registry
}

// APIClient is the single configured client for the inventory API.
type APIClient struct {
	baseURL  string
	http     *http.Client
	maxBytes int64
	metrics  *metrics.Registry
}

func NewAPIClient(opts ClientOptions) *APIClient {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	maxBytes := opts.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = 4 << 20
	}

	return &APIClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		maxBytes: maxBytes,
		metrics:  opts.Metrics,
	}
}

func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a 2xx JSON body into out. An empty 2xx body
// is accepted for writes and leaves out untouched.
func (c *APIClient) do(ctx context.Context, operation, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(operation, 0, time.Since(start))
		return fmt.Errorf("%w: %s: %v", ErrTransport, operation, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(operation, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %s: read body: %v", ErrTransport, operation, err)
	}
	if int64(len(data)) > c.maxBytes {
		return fmt.Errorf("%w: %s: body larger than %d bytes", ErrMalformedResponse, operation, c.maxBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: extractMessage(data)}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if method == http.MethodGet {
			return fmt.Errorf("%w: %s: empty body", ErrMalformedResponse, operation)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, operation, err)
	}
	return nil
}

// extractMessage reads {"message": "..."} from an error body. A short plain
// text body is used as is.
func extractMessage(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
	}
	if json.Valid(trimmed) {
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			return strings.TrimSpace(payload.Message)
		}
		return ""
	}

	text := string(trimmed)
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
