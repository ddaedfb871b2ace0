// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func secured(cfg SecurityHeadersConfig, path string) http.Header {
	h := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Header()
}

func TestSecurityHeadersProduction(t *testing.T) {
	h := secured(DefaultSecurityHeadersConfig(false), "/workshops")

	assert.Equal(t, "max-age=31536000; includeSubDomains", h.Get("Strict-Transport-Security"))
	assert.Equal(t, "SAMEORIGIN", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))

	csp := h.Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'; script-src 'self'; ")
	assert.Contains(t, csp, "frame-src 'self' https://www.youtube.com")
	assert.Contains(t, csp, "form-action 'self' https://accounts.google.com")
	assert.NotContains(t, csp, "unsafe-eval")
	assert.Contains(t, h.Get("Permissions-Policy"), "camera=()")
}

func TestSecurityHeadersDevelopment(t *testing.T) {
	h := secured(DefaultSecurityHeadersConfig(true), "/")

	assert.Empty(t, h.Get("Strict-Transport-Security"))
	csp := h.Get("Content-Security-Policy")
	assert.Contains(t, csp, "script-src 'self' 'unsafe-inline' 'unsafe-eval'")
	assert.Contains(t, csp, "connect-src 'self' ws://localhost:5173")
}

func TestSecurityHeadersSkipUploadedDecks(t *testing.T) {
	h := secured(DefaultSecurityHeadersConfig(false), "/uploads/workshops/deck.html")
	assert.Empty(t, h.Get("Content-Security-Policy"))
	assert.Empty(t, h.Get("X-Frame-Options"))

	h = secured(DefaultSecurityHeadersConfig(false), "/uploadsx")
	assert.NotEmpty(t, h.Get("Content-Security-Policy"))
}

func TestSecurityHeadersHSTSOptions(t *testing.T) {
	tests := []struct {
		name string
		cfg  SecurityHeadersConfig
		want string
	}{
		{"disabled", SecurityHeadersConfig{}, ""},
		{"max-age only", SecurityHeadersConfig{HSTSMaxAge: 60}, "max-age=60"},
		{"preload", SecurityHeadersConfig{HSTSMaxAge: 60, HSTSIncludeSubDomains: true, HSTSPreload: true},
			"max-age=60; includeSubDomains; preload"},
		{"dev wins", SecurityHeadersConfig{HSTSMaxAge: 60, IsDevelopment: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, secured(tt.cfg, "/").Get("Strict-Transport-Security"))
		})
	}
}

func TestBuildCSPOrdering(t *testing.T) {
	got := buildCSP(map[string]string{
		"worker-src":  "'self'",
		"object-src":  "'none'",
		"default-src": "'self'",
		"child-src":   "'none'",
	})
	assert.Equal(t, "default-src 'self'; object-src 'none'; child-src 'none'; worker-src 'self'", got)
}

func TestBuildPermissionsPolicy(t *testing.T) {
	assert.Equal(t, "camera=(), usb=()", buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "()"}))
	assert.Empty(t, buildPermissionsPolicy(nil))
}
