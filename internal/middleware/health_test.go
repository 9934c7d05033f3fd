package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct{ err error }

func (s stubChecker) Check(ctx context.Context) error { return s.err }

func TestHealthHandlerTiers(t *testing.T) {
	ok := stubChecker{}
	down := stubChecker{err: errors.New("connection refused")}

	cases := []struct {
		name     string
		critical map[string]HealthChecker
		optional map[string]HealthChecker
		code     int
		status   string
	}{
		{"all healthy", map[string]HealthChecker{"storage": ok}, map[string]HealthChecker{"audit": ok}, http.StatusOK, "healthy"},
		{"optional down", map[string]HealthChecker{"storage": ok}, map[string]HealthChecker{"audit": down}, http.StatusOK, "degraded"},
		{"critical down", map[string]HealthChecker{"storage": down}, map[string]HealthChecker{"audit": ok}, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			HealthHandler(tc.critical, tc.optional)(rec, req)

			require.Equal(t, tc.code, rec.Code)
			var body HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
			assert.Len(t, body.Checks, len(tc.critical)+len(tc.optional))
		})
	}
}

func TestReadinessHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)

	rec := httptest.NewRecorder()
	ReadinessHandler(map[string]HealthChecker{"storage": stubChecker{}})(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	down := stubChecker{err: errors.New("bucket unreachable")}
	ReadinessHandler(map[string]HealthChecker{"storage": down})(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
