// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dovito/dovito-edu/internal/cache"
	"github.com/dovito/dovito-edu/internal/testutil"
)

// countingAPI records how often each path+query was requested.
type countingAPI struct {
	mu   sync.Mutex
	hits map[string]int
}

func (a *countingAPI) count(key string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[key]
}

func (a *countingAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.hits[r.URL.RequestURI()]++
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/ai-tools":
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "t1", "name": "ChatGPT", "features": []string{}}})
	case r.Method == http.MethodGet && r.URL.Path == "/api/workshops":
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "w1", "title": "W", "sessionCount": 2}})
	case r.Method == http.MethodGet && r.URL.Path == "/api/prompts":
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	case r.Method == http.MethodPatch && r.URL.Path == "/api/admin/ai-tools/t1":
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "t1", "name": "ChatGPT", "pricing": "Free"})
	case r.Method == http.MethodDelete && r.URL.Path == "/api/admin/sessions/s1":
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Session deleted successfully"})
	case r.URL.Path == "/api/ai-tools/missing":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"AI tool not found","code":"not_found"}`))
	case r.URL.Path == "/api/broken":
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not found","code":"not_found"}`))
	}
}

func newCountingClient(t *testing.T, opts ...Option) (*Client, *countingAPI) {
	t.Helper()
	api := &countingAPI{hits: map[string]int{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, append([]Option{WithLogger(testutil.TestLoggerSilent())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, api
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"absolute", "http://localhost:5000", false},
		{"trailing slash", "https://edu.dovito.com/", false},
		{"relative", "/api", true},
		{"no host", "http://", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.baseURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.http.Jar)
			assert.NoError(t, c.Close())
		})
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "/api/ai-tools", cacheKey("/api/ai-tools", nil))
	assert.Equal(t, "/api/ai-tools?category=Chat&search=gpt",
		cacheKey("/api/ai-tools", url.Values{"search": {"gpt"}, "category": {"Chat"}}))
}

func TestCatalogFilterValues(t *testing.T) {
	yes := true
	assert.Empty(t, CatalogFilter{}.values())
	assert.Equal(t, "category=Writing&featured=true&search=blog",
		CatalogFilter{Category: "Writing", Search: "blog", Featured: &yes}.values().Encode())
}

func TestGetIsCachedPerQuery(t *testing.T) {
	c, api := newCountingClient(t)
	ctx := context.Background()

	for range 3 {
		tools, err := c.ListAITools(ctx, CatalogFilter{})
		require.NoError(t, err)
		require.Len(t, tools, 1)
		assert.Equal(t, "ChatGPT", tools[0].Name)
	}
	assert.Equal(t, 1, api.count("/api/ai-tools"))

	_, err := c.ListAITools(ctx, CatalogFilter{Search: "chat"})
	require.NoError(t, err)
	assert.Equal(t, 1, api.count("/api/ai-tools?search=chat"))
}

func TestMutationInvalidatesPrefix(t *testing.T) {
	c, api := newCountingClient(t)
	ctx := context.Background()

	_, err := c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)
	_, err = c.ListAITools(ctx, CatalogFilter{Category: "Chat"})
	require.NoError(t, err)
	_, err = c.ListPrompts(ctx, CatalogFilter{})
	require.NoError(t, err)

	updated, err := c.UpdateAITool(ctx, "t1", Patch{"pricing": "Free"})
	require.NoError(t, err)
	assert.Equal(t, "Free", updated.Pricing)

	_, err = c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)
	_, err = c.ListAITools(ctx, CatalogFilter{Category: "Chat"})
	require.NoError(t, err)
	_, err = c.ListPrompts(ctx, CatalogFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, api.count("/api/ai-tools"))
	assert.Equal(t, 2, api.count("/api/ai-tools?category=Chat"))
	assert.Equal(t, 1, api.count("/api/prompts"), "unrelated entries stay cached")
}

func TestSessionWritesInvalidateWorkshops(t *testing.T) {
	c, api := newCountingClient(t)
	ctx := context.Background()

	list, err := c.ListWorkshops(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].SessionCount)

	require.NoError(t, c.DeleteSession(ctx, "s1"))

	_, err = c.ListWorkshops(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("/api/workshops"))
}

func TestFailedMutationKeepsCache(t *testing.T) {
	c, api := newCountingClient(t)
	ctx := context.Background()

	_, err := c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)

	err = c.DeleteAITool(ctx, "nope")
	require.Error(t, err)

	_, err = c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, api.count("/api/ai-tools"))
}

func TestAPIErrors(t *testing.T) {
	c, _ := newCountingClient(t)
	ctx := context.Background()

	_, err := c.GetAITool(ctx, "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "AI tool not found", apiErr.Message)
	assert.Equal(t, "404 not_found: AI tool not found", apiErr.Error())
	assert.Equal(t, http.StatusNotFound, StatusCode(err))

	var out map[string]any
	err = c.get(ctx, "/api/broken", nil, &out)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)

	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

func TestInvalidateAll(t *testing.T) {
	c, api := newCountingClient(t)
	ctx := context.Background()

	_, err := c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)
	c.InvalidateAll(ctx)
	_, err = c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, api.count("/api/ai-tools"))
}

func TestCacheTTL(t *testing.T) {
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	c, api := newCountingClient(t, WithCache(mem), WithCacheTTL(20*time.Millisecond))
	ctx := context.Background()

	_, err := c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, api.count("/api/ai-tools"))
}

func TestCorruptCacheEntryRefetches(t *testing.T) {
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	c, api := newCountingClient(t, WithCache(mem))
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "/api/ai-tools", []byte("{not json"), 0))

	tools, err := c.ListAITools(ctx, CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, tools, 1)
	assert.Equal(t, 1, api.count("/api/ai-tools"))
}

func TestAPIErrorWithoutCode(t *testing.T) {
	e := &APIError{StatusCode: 502, Message: "upstream"}
	assert.Equal(t, "502: upstream", e.Error())
}
