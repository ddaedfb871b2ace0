// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("DOVITO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: DOVITO_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache_Basic(t *testing.T) {
	url := skipIfNoRedis(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	c := NewRedisCache(client, "dovito-test:", time.Minute)
	defer func() { _ = c.Close() }()

	_ = c.Clear(ctx)

	if err := c.Set(ctx, "/api/workshops", []byte("[]"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "/api/workshops")
	if err != nil || string(got) != "[]" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := c.DeleteByPrefix(ctx, "/api/work"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	if _, err := c.Get(ctx, "/api/workshops"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after DeleteByPrefix = %v, want ErrCacheMiss", err)
	}
}

func TestNewRedisClient_RequiresURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), ""); err == nil {
		t.Error("expected error for empty URL")
	}
}
