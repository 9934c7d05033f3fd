package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(2, 1)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		capacity:   1,
		refillRate: 1,
	}
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RateLimitMiddleware(1, 1)(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	req.RemoteAddr = "10.0.0.1:4321"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// Probes bypass the limiter
	rec = httptest.NewRecorder()
	probe := httptest.NewRequest(http.MethodGet, "/health", nil)
	probe.RemoteAddr = "10.0.0.1:4321"
	h.ServeHTTP(rec, probe)
	assert.Equal(t, http.StatusOK, rec.Code)
}
