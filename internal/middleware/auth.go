package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type contextKey string

const (
	OperatorKey contextKey = "operator"
	APIKeyKey   contextKey = "api_key"
)

// APIKeyAuth validates API key from Authorization header. validKeys maps
// operator name to key; the matched operator lands in the context.
func APIKeyAuth(validKeys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Probes and metrics stay reachable without a key
			switch r.URL.Path {
			case "/health", "/ready", "/live", "/metrics":
				next.ServeHTTP(w, r)
				return
			}

			// Extract API key from Authorization header
			auth := r.Header.Get("Authorization")
			if auth == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			// Support both "Bearer <key>" and "<key>" formats
			apiKey := strings.TrimPrefix(auth, "Bearer ")
			apiKey = strings.TrimSpace(apiKey)

			if apiKey == "" {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			// Validate API key (constant-time comparison to prevent timing attacks)
			valid := false
			var operator string
			for name, key := range validKeys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
					valid = true
					operator = name
					break
				}
			}

			if !valid {
				http.Error(w, "invalid API key", http.StatusUnauthorized)
				return
			}

			// Store operator in context
			ctx := context.WithValue(r.Context(), OperatorKey, operator)
			ctx = context.WithValue(ctx, APIKeyKey, apiKey)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperatorFromContext extracts the authenticated operator from context
func GetOperatorFromContext(ctx context.Context) string {
	if operator, ok := ctx.Value(OperatorKey).(string); ok {
		return operator
	}
	return ""
}
