// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set; memory is used otherwise.
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
}

// New creates a cache based on the provided configuration.
func New(ctx context.Context, cfg Config) (Cache, error) {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}

	if cfg.RedisURL != "" {
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = "dovito:"
		}
		return NewRedisCache(client, prefix, cfg.DefaultTTL), nil
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		CleanupInterval: time.Minute,
	}), nil
}
