package api_context

import (
	"context"
)

type ctxKey string

const (
	IDKey         ctxKey = "id"
	UserIDKey     ctxKey = "userID"
	AuthUserIDKey ctxKey = "authUserID"
	RequestIDKey  ctxKey = "requestID"
)

// IDFromContext returns the image ID taken from the route.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(IDKey).(string)
	return id, ok && id != ""
}

// UserIDFromContext returns the user ID taken from the route.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

// AuthUserIDFromContext returns the canonical UUID of the authenticated caller.
func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok && id != ""
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok && id != ""
}
