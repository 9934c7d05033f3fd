package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func authProbe(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var operator string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operator = GetOperatorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return APIKeyAuth(map[string]string{"alice": "s3cret"})(next), &operator
}

func TestAPIKeyAuth(t *testing.T) {
	h, operator := authProbe(t)

	// Missing header
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sessions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong key
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer nope")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid key lands the operator in the context
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", *operator)

	// Bare key format also accepted
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	req.Header.Set("Authorization", "s3cret")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuthSkipsProbes(t *testing.T) {
	h, _ := authProbe(t)

	for _, path := range []string{"/health", "/ready", "/live", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
