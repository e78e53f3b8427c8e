package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"coopdesk/internal/domain"
)

const (
	headerTenant    = "X-Tenant-Slug"
	headerRequestID = "X-Request-ID"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 16 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Tenant  string
	HTTP    *http.Client
	Tokens  domain.TokenSource
	Logger  *zap.Logger
}

// Client is the HTTP implementation of domain.APIClient.
type Client struct {
	base   string
	tenant string
	http   *http.Client
	tokens domain.TokenSource
	log    *zap.Logger
}

// New returns a Client. A nil HTTP client or logger falls back to
// http.DefaultClient and a no-op logger.
func New(opts Options) *Client {
	c := &Client{
		base:   strings.TrimRight(opts.BaseURL, "/"),
		tenant: strings.TrimSpace(opts.Tenant),
		http:   opts.HTTP,
		tokens: opts.Tokens,
		log:    opts.Logger,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Anonymous returns a copy of c that never sends a bearer token. Login uses
// it so a stale or locked session cannot get in the way.
func (c *Client) Anonymous() *Client {
	cp := *c
	cp.tokens = nil
	return &cp
}

// Tenant returns the configured tenant slug.
func (c *Client) Tenant() string { return c.tenant }

// Do performs a JSON request. body, when non-nil, is JSON-encoded; the
// envelope's data is decoded into out when out is non-nil.
func (c *Client) Do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) (*domain.Pagination, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api %s %s: encode body: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, query, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body io.Reader,
) (*http.Request, error) {
	u := c.base + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("api %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	if c.tenant != "" {
		req.Header.Set(headerTenant, c.tenant)
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("api %s %s: %w", method, path, err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) (*domain.Pagination, error) {
	rid := req.Header.Get(headerRequestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return nil, fmt.Errorf("api %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("api %s %s: read body: %w", req.Method, req.URL.Path, err)
	}
	c.log.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", rid),
	)

	var env envelope
	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := &Error{
			Method:    req.Method,
			Path:      req.URL.Path,
			Status:    resp.StatusCode,
			RequestID: rid,
		}
		if decodeErr == nil {
			apiErr.Message = env.Message
			apiErr.Errors = env.Errors
		}
		c.log.Warn("api error response",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.String("request_id", rid),
		)
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("api %s %s: decode response: %w", req.Method, req.URL.Path, decodeErr)
	}
	if env.failed() {
		return nil, &Error{
			Method:    req.Method,
			Path:      req.URL.Path,
			Status:    resp.StatusCode,
			Message:   env.Message,
			Errors:    env.Errors,
			RequestID: rid,
		}
	}
	if out != nil && env.hasData() {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("api %s %s: decode data: %w", req.Method, req.URL.Path, err)
		}
	}
	return env.Pagination, nil
}

var _ domain.APIClient = (*Client)(nil)
