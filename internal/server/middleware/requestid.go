// Package middleware provides HTTP middleware for request tracing and access logging.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// requestIDKey is the context key for storing the request ID.
const requestIDKey ContextKey = "requestID"

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds caller-supplied IDs
const maxRequestIDLength = 128

// RequestID reuses a well-formed incoming X-Request-ID or generates a new
// UUID, echoes it in the response and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, c := range id {
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) (string, error) {
	id, ok := r.Context().Value(requestIDKey).(string)
	if !ok {
		return "", fmt.Errorf("request ID not found in request context")
	}
	return id, nil
}

// RequestIDKey returns the context key for the request ID (for testing purposes).
func RequestIDKey() ContextKey {
	return requestIDKey
}
