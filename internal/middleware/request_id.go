package middleware

import (
	"context"
	"net/http"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// WithRequestID tags each request with an id, reusing the caller's when given,
// so log lines of one request can be correlated.
func WithRequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(RequestIDHeader)
			if rid == "" || len(rid) > 64 {
				rid = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, rid)

			ctx := context.WithValue(r.Context(), api_context.RequestIDKey, rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
