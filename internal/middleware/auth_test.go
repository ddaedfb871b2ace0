// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/dovito/dovito-edu/internal/session"
	"github.com/dovito/dovito-edu/internal/store"
	"github.com/dovito/dovito-edu/internal/testutil"
)

func TestGetUser(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user := GetUser(req); user != nil {
			t.Errorf("GetUser() = %v, want nil", user)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		testUser := store.User{ID: "u-123", Email: "test@example.com"}
		req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, testUser))

		user := GetUser(req)
		if user == nil {
			t.Fatal("GetUser() = nil, want user")
		}
		if user.Email != "test@example.com" {
			t.Errorf("GetUser().Email = %q, want %q", user.Email, "test@example.com")
		}
		if user.ID != "u-123" {
			t.Errorf("GetUser().ID = %q, want %q", user.ID, "u-123")
		}
	})
}

// sessionRequest returns a request whose context carries a loaded session,
// optionally bound to userID.
func sessionRequest(t *testing.T, sm *scs.SessionManager, userID string) *http.Request {
	t.Helper()

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	if userID != "" {
		sm.Put(ctx, session.KeyUserID, userID)
	}
	return httptest.NewRequest(http.MethodGet, "/api/admin/check", nil).WithContext(ctx)
}

func newTestSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm, err := session.New(session.Options{IsDev: true})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return sm
}

func decodeAPIError(t *testing.T, rr *httptest.ResponseRecorder) APIError {
	t.Helper()
	var body APIError
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body
}

func TestLoadUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := newTestSessionManager(t)

	member := testutil.CreateUser(t, db, "member@example.com", "secret", false)

	var seen *store.User
	handler := LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous", func(t *testing.T) {
		seen = nil
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, sessionRequest(t, sm, ""))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		if seen != nil {
			t.Errorf("user = %v, want nil", seen)
		}
	})

	t.Run("bound user", func(t *testing.T) {
		seen = nil
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, sessionRequest(t, sm, member.ID))

		if seen == nil || seen.ID != member.ID {
			t.Fatalf("user = %v, want %s", seen, member.ID)
		}
	})

	t.Run("vanished user is anonymous", func(t *testing.T) {
		seen = nil
		req := sessionRequest(t, sm, "no-such-user")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		if seen != nil {
			t.Errorf("user = %v, want nil", seen)
		}
		if got := sm.GetString(req.Context(), session.KeyUserID); got != "" {
			t.Errorf("session user_id = %q, want removed", got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if body := decodeAPIError(t, rr); body.Code != CodeUnauthenticated || body.Message != "Not authenticated" {
		t.Errorf("body = %+v", body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, store.User{ID: "u-1"}))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *store.User
		wantStatus int
		wantCode   string
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized, wantCode: CodeUnauthenticated},
		{name: "member", user: &store.User{ID: "u-1"}, wantStatus: http.StatusForbidden, wantCode: CodeForbidden},
		{name: "admin", user: &store.User{ID: "u-2", IsAdmin: true}, wantStatus: http.StatusOK},
	}

	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/prompts", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, *tt.user))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if body := decodeAPIError(t, rr); body.Code != tt.wantCode {
					t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
				}
			}
		})
	}
}

// Admin status is read from the row on every request, so a demotion takes
// effect without a new login.
func TestRequireAdminReflectsCurrentRow(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := newTestSessionManager(t)

	admin := testutil.CreateUser(t, db, "admin@example.com", "secret", true)
	handler := LoadUser(sm, db)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := sessionRequest(t, sm, admin.ID)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status before demotion = %d, want %d", rr.Code, http.StatusOK)
	}

	if _, err := store.New(db).SetUserAdmin(context.Background(), false, admin.ID); err != nil {
		t.Fatalf("SetUserAdmin: %v", err)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("status after demotion = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestWriteAPIError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteAPIError(rr, http.StatusNotFound, CodeNotFound, "Tool not found")

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	body := decodeAPIError(t, rr)
	if body.Message != "Tool not found" || body.Code != CodeNotFound {
		t.Errorf("body = %+v", body)
	}
}
