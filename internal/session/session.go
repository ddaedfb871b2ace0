// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session builds the cookie session manager and its backing store.
package session

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"

	"github.com/dovito/dovito-edu/internal/config"
)

// Session keys.
const (
	KeyUserID     = "user_id"
	KeyOAuthState = "oauth_state"
)

// Cookie settings.
const (
	CookieName = "dovito_session"
	Lifetime   = 7 * 24 * time.Hour
)

// Options selects the backing store for New.
type Options struct {
	// Store is one of config.SessionStoreMemory, SessionStoreSQLite or SessionStoreRedis.
	Store string
	IsDev bool
	DB    *sql.DB
	Redis *redis.Client
}

// New creates a session manager backed by the configured store.
func New(opts Options) (*scs.SessionManager, error) {
	sm := scs.New()

	switch opts.Store {
	case "", config.SessionStoreMemory:
		sm.Store = memstore.New()
	case config.SessionStoreSQLite:
		if opts.DB == nil {
			return nil, fmt.Errorf("sqlite session store requires a database")
		}
		sm.Store = sqlite3store.New(opts.DB)
	case config.SessionStoreRedis:
		if opts.Redis == nil {
			return nil, fmt.Errorf("redis session store requires a redis client")
		}
		sm.Store = goredisstore.New(opts.Redis)
	default:
		return nil, fmt.Errorf("unknown session store %q", opts.Store)
	}

	sm.Lifetime = Lifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !opts.IsDev // Secure cookies in production only

	return sm, nil
}
