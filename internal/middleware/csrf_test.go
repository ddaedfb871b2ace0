// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig_Development(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, true, nil)

	if len(cfg.AuthKey) != 32 {
		t.Errorf("expected 32-byte AuthKey, got %d bytes", len(cfg.AuthKey))
	}

	expected := map[string]bool{
		"localhost:5000": true,
		"localhost:5173": true,
		"127.0.0.1:5000": true,
		"127.0.0.1:5173": true,
	}
	if len(cfg.TrustedOrigins) != len(expected) {
		t.Fatalf("expected %d TrustedOrigins in dev mode, got %v", len(expected), cfg.TrustedOrigins)
	}
	for _, origin := range cfg.TrustedOrigins {
		if !expected[origin] {
			t.Errorf("unexpected TrustedOrigin: %s", origin)
		}
	}
}

func TestDefaultCSRFConfig_Production(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false, nil)

	if len(cfg.TrustedOrigins) != 0 {
		t.Errorf("expected no TrustedOrigins in production, got %v", cfg.TrustedOrigins)
	}
}

// The csrf library expects host:port values, while DOVITO_ALLOWED_ORIGINS
// holds full URLs for CORS.
func TestDefaultCSRFConfig_AllowedOriginsReducedToHosts(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false, []string{
		"https://edu.dovito.com",
		"http://localhost:3000/",
		"admin.dovito.com",
		"  ",
	})

	want := []string{"edu.dovito.com", "localhost:3000", "admin.dovito.com"}
	if len(cfg.TrustedOrigins) != len(want) {
		t.Fatalf("TrustedOrigins = %v, want %v", cfg.TrustedOrigins, want)
	}
	for i, origin := range want {
		if cfg.TrustedOrigins[i] != origin {
			t.Errorf("TrustedOrigins[%d] = %q, want %q", i, cfg.TrustedOrigins[i], origin)
		}
		if strings.HasPrefix(cfg.TrustedOrigins[i], "http") {
			t.Errorf("TrustedOrigin should be host:port, not full URL: %s", cfg.TrustedOrigins[i])
		}
	}
}

func TestCSRF_AllowsNonBrowserAndSameOrigin(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testAuthKey, false, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		secFetchSite string
		wantStatus   int
	}{
		{name: "no fetch metadata", wantStatus: http.StatusOK},
		{name: "same origin", secFetchSite: "same-origin", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
			if tt.secFetchSite != "" {
				req.Header.Set("Sec-Fetch-Site", tt.secFetchSite)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestCSRF_RejectsCrossSiteWithJSON(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testAuthKey, false, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for a cross-site POST")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}

	var body APIError
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Code != CodeForbidden {
		t.Errorf("code = %q, want %q", body.Code, CodeForbidden)
	}
}

func TestCSRF_SafeMethodsPass(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testAuthKey, false, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/ai-tools", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestOriginHost(t *testing.T) {
	tests := map[string]string{
		"https://edu.dovito.com":      "edu.dovito.com",
		"http://localhost:5173":       "localhost:5173",
		"localhost:8080":              "localhost:8080",
		"":                            "",
		"http://[::1]:5000/some/path": "[::1]:5000",
	}
	for in, want := range tests {
		if got := originHost(in); got != want {
			t.Errorf("originHost(%q) = %q, want %q", in, got, want)
		}
	}
}
