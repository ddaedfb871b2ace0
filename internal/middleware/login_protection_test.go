// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is advanced by hand so lockout tests never sleep.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestProtection(t *testing.T, maxAttempts int) (*LoginProtection, *fakeClock) {
	t.Helper()
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     10 * time.Minute,
	})
	t.Cleanup(lp.Close)

	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	lp.now = clock.now
	return lp, clock
}

func TestNewLoginProtectionFillsDefaults(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{})
	defer lp.Close()

	def := DefaultLoginProtectionConfig()
	assert.Equal(t, def.MaxFailedAttempts, lp.maxFailedAttempts)
	assert.Equal(t, def.LockoutDuration, lp.lockoutDuration)
	assert.Equal(t, def.AttemptWindow, lp.attemptWindow)

	lp.Close() // idempotent
}

func TestAccountLockout(t *testing.T) {
	lp, clock := newTestProtection(t, 3)
	const email = "learner@example.com"

	locked, _ := lp.IsAccountLocked(email)
	assert.False(t, locked)
	assert.Equal(t, 3, lp.GetRemainingAttempts(email))

	for i := range 2 {
		nowLocked, _ := lp.RecordFailedAttempt(email)
		assert.False(t, nowLocked, "attempt %d", i+1)
	}
	assert.Equal(t, 1, lp.GetRemainingAttempts(email))

	nowLocked, d := lp.RecordFailedAttempt(email)
	require.True(t, nowLocked)
	assert.Equal(t, 15*time.Minute, d)

	clock.advance(5 * time.Minute)
	locked, remaining := lp.IsAccountLocked(email)
	assert.True(t, locked)
	assert.Equal(t, 10*time.Minute, remaining)

	clock.advance(10*time.Minute + time.Second)
	locked, _ = lp.IsAccountLocked(email)
	assert.False(t, locked)
}

func TestLockoutDoublesOnRepeat(t *testing.T) {
	lp, clock := newTestProtection(t, 2)
	const email = "learner@example.com"

	lp.RecordFailedAttempt(email)
	_, d := lp.RecordFailedAttempt(email)
	assert.Equal(t, 15*time.Minute, d)

	clock.advance(16 * time.Minute)
	lp.RecordFailedAttempt(email)
	nowLocked, d := lp.RecordFailedAttempt(email)
	assert.True(t, nowLocked)
	assert.Equal(t, 30*time.Minute, d)
}

func TestLockoutFor(t *testing.T) {
	tests := []struct {
		previous int
		want     time.Duration
	}{
		{0, 15 * time.Minute},
		{1, 30 * time.Minute},
		{3, 2 * time.Hour},
		{6, 16 * time.Hour},
		{7, 24 * time.Hour},
		{40, 24 * time.Hour},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lockoutFor(15*time.Minute, tt.previous), "previous=%d", tt.previous)
	}
}

func TestAttemptWindowResets(t *testing.T) {
	lp, clock := newTestProtection(t, 3)
	const email = "learner@example.com"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	clock.advance(11 * time.Minute)

	assert.Equal(t, 3, lp.GetRemainingAttempts(email))
	nowLocked, _ := lp.RecordFailedAttempt(email)
	assert.False(t, nowLocked)
	assert.Equal(t, 2, lp.GetRemainingAttempts(email))
}

func TestSuccessfulLoginClearsAttempts(t *testing.T) {
	lp, _ := newTestProtection(t, 3)

	lp.RecordFailedAttempt("learner@example.com")
	lp.RecordFailedAttempt("learner@example.com")
	lp.RecordSuccessfulLogin("Learner@Example.com")

	assert.Equal(t, 3, lp.GetRemainingAttempts("learner@example.com"))
}

func TestLockoutIgnoresEmailCase(t *testing.T) {
	lp, _ := newTestProtection(t, 2)

	lp.RecordFailedAttempt("Ada@Example.com")
	lp.RecordFailedAttempt("ada@example.com ")

	locked, _ := lp.IsAccountLocked("ADA@EXAMPLE.COM")
	assert.True(t, locked)
}

func TestCleanupStaleEntries(t *testing.T) {
	lp, clock := newTestProtection(t, 5)

	lp.RecordFailedAttempt("old@example.com")
	clock.advance(11 * time.Minute)
	lp.RecordFailedAttempt("fresh@example.com")

	lp.cleanupStaleEntries()

	assert.NotContains(t, lp.failedAttempts, "old@example.com")
	assert.Contains(t, lp.failedAttempts, "fresh@example.com")
}

func TestLockedMessage(t *testing.T) {
	assert.Equal(t, "Account temporarily locked, try again in 1 minute(s)", LockedMessage(10*time.Second))
	assert.Equal(t, "Account temporarily locked, try again in 15 minute(s)", LockedMessage(15*time.Minute))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.168.1.1:12345", "192.168.1.1"},
		{"[::1]:8080", "::1"},
		{"10.0.0.5", "10.0.0.5"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = tt.remoteAddr
		assert.Equal(t, tt.want, getClientIP(req))
	}
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 1})
	defer lp.Close()

	wrapped := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	send := func(method, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/login", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		wrapped.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "203.0.113.9:4000").Code)

	rr := send(http.MethodPost, "203.0.113.9:4001")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.JSONEq(t, `{"message":"Too many login attempts, please try again later","code":"rate_limited"}`, rr.Body.String())

	// other clients and non-POST requests are unaffected
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "198.51.100.1:4000").Code)
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "203.0.113.9:4000").Code)
}

func TestLimiterCacheClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")
	assert.Same(t, lc.get("a"), lc.get("a"))

	assert.False(t, lc.clearIfExceeds(2))
	lc.get("c")
	assert.True(t, lc.clearIfExceeds(2))
	assert.Empty(t, lc.limiters)
}
