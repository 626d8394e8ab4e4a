package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/handler/api"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// withRouteID copies a UUID route parameter into the request context, in the
// canonical lowercase form used by cache keys and stored rows.
func withRouteID(param string, key any, label string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, label+" is required", nil)
				return
			}
			parsed, err := uuid.Parse(id)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("%s %q is not a valid UUID", label, id), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), key, parsed.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithImageID() func(http.Handler) http.Handler {
	return withRouteID("imageId", api_context.IDKey, "image ID")
}

func WithUserID() func(http.Handler) http.Handler {
	return withRouteID("userId", api_context.UserIDKey, "user ID")
}
