// Package restapi is the HTTP client of the Komunity REST backend.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	"github.com/SscSPs/komunity_app/internal/middleware"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Client calls the backend on behalf of the client core.
type Client struct {
	baseURL    *url.URL
	authScheme string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the API rooted at baseURL. authScheme prefixes
// the token in the Authorization header ("Token" or "Bearer").
func New(baseURL, authScheme string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid API URL %q", apperrors.ErrValidation, baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if authScheme == "" {
		authScheme = "Token"
	}
	c := &Client{
		baseURL:    u,
		authScheme: authScheme,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ ports.BackendAPI = (*Client)(nil)

// Timeout reports the per-request timeout; zero means none.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// errorBody is every error shape the backend is known to return.
type errorBody struct {
	Error          string   `json:"error"`
	Detail         string   `json:"detail"`
	NonFieldErrors []string `json:"non_field_errors"`
}

func (b errorBody) message() string {
	switch {
	case b.Error != "":
		return b.Error
	case b.Detail != "":
		return b.Detail
	case len(b.NonFieldErrors) > 0:
		return b.NonFieldErrors[0]
	default:
		return ""
	}
}

// request describes one backend call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	sc     ports.SessionContext
}

// do sends req and decodes a 2xx JSON body into out (when non-nil).
// It returns the response headers for callers that need them.
func (c *Client) do(ctx context.Context, req request, out any) (http.Header, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	u := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", req.method, req.path, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(middleware.RequestIDHeader, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.sc.Token != "" {
		httpReq.Header.Set("Authorization", c.authScheme+" "+req.sc.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", req.method, req.path, ctxErr)
		}
		logger.Warn("Backend unreachable", slog.String("path", req.path), slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s %s: %v", apperrors.ErrNetwork, req.method, req.path, err)
	}
	defer resp.Body.Close()

	logger.Debug("Backend call",
		slog.String("method", req.method),
		slog.String("path", req.path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(raw, &eb)
		return resp.Header, fmt.Errorf("%s %s: %w", req.method, req.path, apperrors.NewServerError(resp.StatusCode, eb.message()))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return resp.Header, fmt.Errorf("%w: decoding %s %s: %v", apperrors.ErrNetwork, req.method, req.path, err)
		}
	}
	return resp.Header, nil
}
