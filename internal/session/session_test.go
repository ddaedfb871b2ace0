// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/dovito/dovito-edu/internal/config"
	"github.com/dovito/dovito-edu/internal/testutil"
)

func TestNew_DefaultsToMemory(t *testing.T) {
	sm, err := New(Options{IsDev: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := sm.Store.(*memstore.MemStore); !ok {
		t.Errorf("Store = %T, want *memstore.MemStore", sm.Store)
	}
}

func TestNew_DevMode(t *testing.T) {
	sm, err := New(Options{Store: config.SessionStoreMemory, IsDev: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm, err := New(Options{Store: config.SessionStoreMemory, IsDev: false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	sm, err := New(Options{IsDev: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if sm.Lifetime != 7*24*time.Hour {
		t.Errorf("Lifetime = %v, want 7 days", sm.Lifetime)
	}
	if sm.Cookie.Name != "dovito_session" {
		t.Errorf("Cookie.Name = %q, want dovito_session", sm.Cookie.Name)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
}

func TestNew_SQLiteStore(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sm, err := New(Options{Store: config.SessionStoreSQLite, IsDev: true, DB: db})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := sm.Store.(*sqlite3store.SQLite3Store); !ok {
		t.Fatalf("Store = %T, want *sqlite3store.SQLite3Store", sm.Store)
	}

	// Round trip through the sessions table created by the migrations.
	expiry := time.Now().Add(time.Hour)
	if err := sm.Store.Commit("tok", []byte("payload"), expiry); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got, found, err := sm.Store.Find("tok")
	if err != nil || !found || string(got) != "payload" {
		t.Errorf("Find = %q, %v, %v", got, found, err)
	}
}

func TestNew_MissingBackends(t *testing.T) {
	if _, err := New(Options{Store: config.SessionStoreSQLite}); err == nil {
		t.Error("expected error for sqlite store without db")
	}
	if _, err := New(Options{Store: config.SessionStoreRedis}); err == nil {
		t.Error("expected error for redis store without client")
	}
	if _, err := New(Options{Store: "disk"}); err == nil {
		t.Error("expected error for unknown store")
	}
}

func TestSessionBindsUserID(t *testing.T) {
	sm, err := New(Options{IsDev: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sm.Put(ctx, KeyUserID, "user-1")
	if got := sm.GetString(ctx, KeyUserID); got != "user-1" {
		t.Errorf("GetString = %q, want user-1", got)
	}
}
