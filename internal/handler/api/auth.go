// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dovito/dovito-edu/internal/middleware"
	"github.com/dovito/dovito-edu/internal/service"
	"github.com/dovito/dovito-edu/internal/session"
	"github.com/dovito/dovito-edu/internal/store"
)

// OAuth redirect targets in the SPA.
const (
	OAuthSuccessRedirect = "/dashboard?auth=success"
	OAuthErrorRedirect   = "/login?auth=error"
)

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var req CredentialsRequest
	body, err := readBody(w, r)
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		WriteValidationError(w, "Invalid JSON body")
		return req, false
	}
	return req, true
}

// bindSession rotates the session token and binds it to user.
func (h *Handler) bindSession(r *http.Request, user store.User) error {
	if err := h.sm.RenewToken(r.Context()); err != nil {
		return err
	}
	h.sm.Put(r.Context(), session.KeyUserID, user.ID)
	return nil
}

// Register handles POST /api/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			WriteValidationError(w, "Email and password required")
		case errors.Is(err, service.ErrDuplicateEmail):
			WriteError(w, http.StatusBadRequest, middleware.CodeDuplicateEmail, "Email already registered")
		default:
			writeInternalError(w, r, "register user", err)
		}
		return
	}

	if err := h.bindSession(r, user); err != nil {
		writeInternalError(w, r, "register user", err)
		return
	}

	slog.InfoContext(r.Context(), "user registered", "user_id", user.ID)
	WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteValidationError(w, "Email and password required")
		return
	}

	if locked, remaining := h.login.IsAccountLocked(req.Email); locked {
		WriteError(w, http.StatusTooManyRequests, middleware.CodeRateLimited, middleware.LockedMessage(remaining))
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.login.RecordFailedAttempt(req.Email)
			slog.InfoContext(r.Context(), "login failed", "remote_addr", r.RemoteAddr)
			WriteError(w, http.StatusUnauthorized, middleware.CodeInvalidCredentials, "Invalid credentials")
			return
		}
		writeInternalError(w, r, "login", err)
		return
	}

	h.login.RecordSuccessfulLogin(req.Email)

	if err := h.bindSession(r, user); err != nil {
		writeInternalError(w, r, "login", err)
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout handles POST /api/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sm.Destroy(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "failed to destroy session", "error", err)
		WriteError(w, http.StatusInternalServerError, middleware.CodeSession, "Failed to logout")
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me handles GET /api/me behind RequireAuth. isAdmin comes from the row
// loaded for this request.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	WriteJSON(w, http.StatusOK, MeResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    stringPtr(user.Name),
		IsAdmin: user.IsAdmin,
	})
}

// AdminCheck handles GET /api/admin/check. It never fails.
func (h *Handler) AdminCheck(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	WriteJSON(w, http.StatusOK, AdminCheckResponse{IsAdmin: user != nil && user.IsAdmin})
}
