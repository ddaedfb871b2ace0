// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client is a Go client for the Dovito EDU JSON API. It keeps the
// session cookie in a jar, caches GET responses by endpoint path and query,
// and drops cached entries under a path prefix after each mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dovito/dovito-edu/internal/cache"
)

// DefaultCacheTTL is how long a GET response is reused.
const DefaultCacheTTL = time.Minute

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// StatusCode returns the HTTP status of an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client talks to one Dovito EDU server.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. A client without a cookie jar
// gets one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache replaces the in-memory response cache.
func WithCache(ch cache.Cache) Option {
	return func(c *Client) { c.cache = ch }
}

// WithCacheTTL sets how long GET responses are reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithLogger sets the logger used for cache failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		ttl:     DefaultCacheTTL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	if c.cache == nil {
		c.cache = cache.NewMemoryCache(cache.MemoryCacheOptions{
			DefaultTTL:      c.ttl,
			CleanupInterval: time.Minute,
		})
	}

	return c, nil
}

// Close releases the response cache.
func (c *Client) Close() error {
	return c.cache.Close()
}

// Invalidate drops every cached response whose key starts with prefix.
func (c *Client) Invalidate(ctx context.Context, prefix string) {
	if err := c.cache.DeleteByPrefix(ctx, prefix); err != nil {
		c.logger.Warn("cache invalidation failed", "prefix", prefix, "error", err)
	}
}

// InvalidateAll empties the response cache.
func (c *Client) InvalidateAll(ctx context.Context) {
	if err := c.cache.Clear(ctx); err != nil {
		c.logger.Warn("cache clear failed", "error", err)
	}
}

// cacheKey is the endpoint path plus its encoded query.
func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// get decodes a GET response into out, serving it from the cache when fresh.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key := cacheKey(path, query)

	if data, err := c.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal(data, out); err == nil {
			return nil
		}
		_ = c.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		c.logger.Warn("cache read failed", "key", key, "error", err)
	}

	req, err := c.newRequest(ctx, http.MethodGet, key, nil, "")
	if err != nil {
		return err
	}
	data, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return nil
}

// send issues a mutation with a JSON body and invalidates the given prefixes
// once it succeeds.
func (c *Client) send(ctx context.Context, method, path string, body, out any, invalidate ...string) error {
	var rdr io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rdr = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, rdr, contentType)
	if err != nil {
		return err
	}
	return c.roundTrip(ctx, req, out, invalidate...)
}

func (c *Client) roundTrip(ctx context.Context, req *http.Request, out any, invalidate ...string) error {
	data, err := c.do(req)
	if err != nil {
		return err
	}

	for _, prefix := range invalidate {
		c.Invalidate(ctx, prefix)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s: %w", req.URL.Path, err)
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, pathAndQuery string, body io.Reader, contentType string) (*http.Request, error) {
	ref, err := url.Parse(pathAndQuery)
	if err != nil {
		return nil, fmt.Errorf("parsing path: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do executes req and returns the body of a 2xx response. Anything else is
// an *APIError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		return nil, apiErr
	}
	return data, nil
}
