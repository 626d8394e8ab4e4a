package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/handler/api"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	sessionIssuer   = "core"
	sessionAudience = "katasu"
	// clock drift tolerated on iat and nbf
	clockSkew = 30 * time.Second
)

var (
	errBadIssuer   = errors.New("bad issuer")
	errBadAudience = errors.New("bad audience")
	errExpired     = errors.New("token expired")
	errIssuedLater = errors.New("invalid iat")
	errNotYetValid = errors.New("token not valid yet")
	errBadSubject  = errors.New("sub is not a user ID")
)

// sessionClaims is the delegated session token Core signs for a signed-in user.
// Its subject is the user's UUID.
type sessionClaims struct {
	jwt.RegisteredClaims
}

func (c sessionClaims) Valid() error {
	now := time.Now()
	switch {
	case !c.VerifyIssuer(sessionIssuer, true):
		return errBadIssuer
	case !c.VerifyAudience(sessionAudience, true):
		return errBadAudience
	case !c.VerifyExpiresAt(now, true):
		return errExpired
	case !c.VerifyIssuedAt(now.Add(clockSkew), false):
		return errIssuedLater
	case !c.VerifyNotBefore(now.Add(clockSkew), false):
		return errNotYetValid
	}
	if _, err := uuid.Parse(c.Subject); err != nil {
		return errBadSubject
	}
	return nil
}

// userID returns the subject in the canonical lowercase form stored on user and image rows.
func (c sessionClaims) userID() string {
	return uuid.MustParse(c.Subject).String()
}

// WithDSTAuth validates a short-lived Bearer JWT (DST only) and stores the
// caller's user ID in the context. An empty key disables authentication.
func WithDSTAuth(jwtPublicKeyPEM string) func(http.Handler) http.Handler {
	if jwtPublicKeyPEM == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(jwtPublicKeyPEM))
	if err != nil {
		panic(fmt.Sprintf("invalid Core RSA public key: %v", err))
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}))
	keyFunc := func(*jwt.Token) (interface{}, error) { return pubKey, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			claims := &sessionClaims{}
			if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
				api.WriteError(w, http.StatusUnauthorized, rejection(err), err)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthUserIDKey, claims.userID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return raw, ok && raw != ""
}

// rejection names the failed claim check, or stays vague for signature and format errors.
func rejection(err error) string {
	for _, known := range []error{errBadIssuer, errBadAudience, errExpired, errIssuedLater, errNotYetValid, errBadSubject} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "unauthorized"
}
