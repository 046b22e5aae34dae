package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := tok.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthMiddlewarePutsSubjectInContext(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	userID := uuid.NewString()
	token := signTestToken(t, key, jwt.MapClaims{
		"sub": userID,
		"iss": TokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	var gotUserID string
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(ContextKeyUserID).(string)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, userID, gotUserID)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	expired := signTestToken(t, key, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": TokenIssuer,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongIssuer := signTestToken(t, key, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "SomeoneElse",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	wrongKey := signTestToken(t, otherKey, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": TokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := map[string]string{
		"no header":    "",
		"expired":      "Bearer " + expired,
		"wrong issuer": "Bearer " + wrongIssuer,
		"wrong key":    "Bearer " + wrongKey,
	}

	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for rejected tokens")
	}))

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
