package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	require.True(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("1.2.3.4"))
	require.False(t, rl.Allow("1.2.3.4"), "third request within the window is blocked")

	require.True(t, rl.Allow("5.6.7.8"), "limits are per IP")
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	require.True(t, rl.Allow("1.2.3.4"))
	require.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(15 * time.Millisecond)
	require.True(t, rl.Allow("1.2.3.4"), "allowance returns after the window passes")
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, time.Millisecond)

	rl.Allow("1.2.3.4")
	time.Sleep(5 * time.Millisecond)
	rl.cleanup()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	require.Empty(t, rl.requests)
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/papers", nil)
	req.RemoteAddr = "10.0.0.1:12345"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"success":false,"message":"Too many requests. Please try again later."}`, rec.Body.String())
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:12345"
	require.Equal(t, "10.0.0.1", getClientIP(r))

	r.Header.Set("X-Real-IP", "20.0.0.2")
	require.Equal(t, "20.0.0.2", getClientIP(r))

	// X-Forwarded-For wins, first hop only.
	r.Header.Set("X-Forwarded-For", "30.0.0.3, 40.0.0.4")
	require.Equal(t, "30.0.0.3", getClientIP(r))
}
