package integrations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/kryptos/pkg/httputil"
	"github.com/matzehuels/kryptos/pkg/observability"
)

const httpTimeout = 10 * time.Second

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 25 << 20

var (
	// ErrNotFound is returned when the requested resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for service requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Client provides shared HTTP functionality for all service clients.
// It handles retry logic, common request headers and request hooks.
type Client struct {
	http     *http.Client
	baseURL  string
	headers  map[string]string
	attempts int
}

// NewClient creates a Client that resolves paths against baseURL and applies
// headers to every request. Pass nil for headers if none are needed.
func NewClient(baseURL string, headers map[string]string) *Client {
	return &Client{
		http:     NewHTTPClient(),
		baseURL:  strings.TrimRight(baseURL, "/"),
		headers:  headers,
		attempts: httputil.DefaultAttempts,
	}
}

// SetHTTPClient replaces the underlying HTTP client (tests, custom transports).
func (c *Client) SetHTTPClient(h *http.Client) {
	c.http = h
}

// SetAttempts sets how many times a transient failure is attempted.
func (c *Client) SetAttempts(n int) {
	c.attempts = max(n, 1)
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

// Put performs a PUT request with body.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body []byte) error {
	_, err := c.Do(ctx, http.MethodPut, path, query, body)
	return err
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// Do performs a request against baseURL+path, retrying transient failures,
// and returns the response body of a 2xx response.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var out []byte
	err := httputil.Retry(ctx, c.attempts, httputil.DefaultDelay, func() error {
		data, err := c.doRequest(ctx, method, target, body)
		if err != nil {
			return err
		}
		out = data
		return nil
	})
	return out, err
}

func (c *Client) doRequest(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusTooManyRequests || code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
