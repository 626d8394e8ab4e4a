package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionUserID = "3f2c1a9e-4b7d-4e21-9c55-0d8b6f1e2a73"

func newSessionKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	return privKey, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))
}

func sessionClaimsFor(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss": "core",
		"aud": "katasu",
		"exp": time.Now().Add(time.Minute).Unix(),
		"iat": time.Now().Unix(),
		"sub": sub,
	}
}

func TestWithDSTAuth(t *testing.T) {
	privKey, pubPEM := newSessionKey(t)
	otherKey, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	signed := func(edit func(jwt.MapClaims)) func() (string, error) {
		return func() (string, error) {
			claims := sessionClaimsFor(sessionUserID)
			if edit != nil {
				edit(claims)
			}
			return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privKey)
		}
	}

	tests := []struct {
		name       string
		header     string
		token      func() (string, error)
		wantStatus int
		wantError  string
		wantUserID string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "wrong prefix", header: "Token abc", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{
			name: "bad signature",
			token: func() (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodRS256, sessionClaimsFor(sessionUserID)).SignedString(otherKey)
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "unauthorized",
		},
		{
			name: "wrong method",
			token: func() (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaimsFor(sessionUserID)).SignedString([]byte("secret"))
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "unauthorized",
		},
		{
			name:       "bad issuer",
			token:      signed(func(c jwt.MapClaims) { c["iss"] = "other" }),
			wantStatus: http.StatusUnauthorized,
			wantError:  "bad issuer",
		},
		{
			name:       "bad audience",
			token:      signed(func(c jwt.MapClaims) { c["aud"] = "medias" }),
			wantStatus: http.StatusUnauthorized,
			wantError:  "bad audience",
		},
		{
			name:       "expired",
			token:      signed(func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() }),
			wantStatus: http.StatusUnauthorized,
			wantError:  "token expired",
		},
		{
			name:       "missing exp",
			token:      signed(func(c jwt.MapClaims) { delete(c, "exp") }),
			wantStatus: http.StatusUnauthorized,
			wantError:  "token expired",
		},
		{
			name:       "future iat",
			token:      signed(func(c jwt.MapClaims) { c["iat"] = time.Now().Add(time.Minute).Unix() }),
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid iat",
		},
		{
			name:       "future nbf",
			token:      signed(func(c jwt.MapClaims) { c["nbf"] = time.Now().Add(time.Minute).Unix() }),
			wantStatus: http.StatusUnauthorized,
			wantError:  "token not valid yet",
		},
		{
			name:       "missing sub",
			token:      signed(func(c jwt.MapClaims) { delete(c, "sub") }),
			wantStatus: http.StatusUnauthorized,
			wantError:  "sub is not a user ID",
		},
		{
			name:       "sub is not a UUID",
			token:      signed(func(c jwt.MapClaims) { c["sub"] = "user-123" }),
			wantStatus: http.StatusUnauthorized,
			wantError:  "sub is not a user ID",
		},
		{
			name:       "iat within clock skew",
			token:      signed(func(c jwt.MapClaims) { c["iat"] = time.Now().Add(10 * time.Second).Unix() }),
			wantStatus: http.StatusNoContent,
			wantUserID: sessionUserID,
		},
		{
			name:       "valid token",
			token:      signed(nil),
			wantStatus: http.StatusNoContent,
			wantUserID: sessionUserID,
		},
		{
			name:       "uppercase sub is stored canonical",
			token:      signed(func(c jwt.MapClaims) { c["sub"] = "3F2C1A9E-4B7D-4E21-9C55-0D8B6F1E2A73" }),
			wantStatus: http.StatusNoContent,
			wantUserID: sessionUserID,
		},
	}

	mw := WithDSTAuth(pubPEM)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotUserID string
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = api_context.AuthUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodDelete, "/", nil)
			switch {
			case tc.header != "":
				req.Header.Set("Authorization", tc.header)
			case tc.token != nil:
				token, err := tc.token()
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+token)
			}

			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantUserID != "", nextCalled)
			assert.Equal(t, tc.wantUserID, gotUserID)
			if tc.wantError != "" {
				var body struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tc.wantError, body.Error)
			}
		})
	}
}

func TestWithDSTAuth_NoKeyPassesThrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := api_context.AuthUserIDFromContext(r.Context())
		assert.False(t, ok)
	})

	WithDSTAuth("")(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestWithDSTAuth_InvalidKeyPanics(t *testing.T) {
	assert.Panics(t, func() { WithDSTAuth("not a pem") })
}
