// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/dovito/dovito-edu/internal/auth"
	"github.com/dovito/dovito-edu/internal/middleware"
	"github.com/dovito/dovito-edu/internal/session"
)

// GoogleStart handles GET /api/auth/google.
func (h *Handler) GoogleStart(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		WriteError(w, http.StatusServiceUnavailable, middleware.CodeUnavailable, "Google OAuth is not configured")
		return
	}

	state, err := auth.NewState()
	if err != nil {
		writeInternalError(w, r, "start Google sign-in", err)
		return
	}
	h.sm.Put(r.Context(), session.KeyOAuthState, state)

	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusFound)
}

// GoogleCallback handles GET /auth/google/callback. The caller is a browser
// navigation, so every failure redirects to the login page instead of
// returning an error body.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fail := func(reason string, args ...any) {
		slog.WarnContext(ctx, "google sign-in failed", append([]any{"reason", reason}, args...)...)
		http.Redirect(w, r, OAuthErrorRedirect, http.StatusFound)
	}

	if h.google == nil {
		fail("not configured")
		return
	}

	q := r.URL.Query()
	expected := h.sm.PopString(ctx, session.KeyOAuthState)
	got := q.Get("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
		fail("state mismatch")
		return
	}
	if providerErr := q.Get("error"); providerErr != "" {
		fail("provider error", "error", providerErr)
		return
	}
	code := q.Get("code")
	if code == "" {
		fail("missing code")
		return
	}

	profile, err := h.google.Exchange(ctx, code)
	if err != nil {
		fail("exchange", "error", err)
		return
	}

	user, err := h.accounts.ResolveGoogleUser(ctx, *profile)
	if err != nil {
		fail("resolve user", "error", err)
		return
	}

	if err := h.bindSession(r, user); err != nil {
		fail("bind session", "error", err)
		return
	}

	slog.InfoContext(ctx, "google sign-in", "user_id", user.ID)
	http.Redirect(w, r, OAuthSuccessRedirect, http.StatusFound)
}
