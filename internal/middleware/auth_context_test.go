package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-health-record/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

func claimsProbe(got *auth.Claims, ok *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *ok = GetClaims(r.Context())
	})
}

func TestAuthContext_DevHeader(t *testing.T) {
	var (
		got auth.Claims
		ok  bool
	)
	h := AuthContext(nil, nil)(claimsProbe(&got, &ok))

	req := httptest.NewRequest(http.MethodGet, "/pets", nil)
	req.Header.Set(DebugUserHeader, " user-1 ")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, ok)
	assert.Equal(t, "user-1", got.UserID)

	ok = false
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pets", nil))
	assert.False(t, ok)
}

func TestAuthContext_Verifier(t *testing.T) {
	verifier := auth.VerifierFunc(func(ctx context.Context, token string) (auth.Claims, error) {
		if token == "good" {
			return auth.Claims{UserID: "user-2"}, nil
		}
		return auth.Claims{}, errors.New("bad token")
	})

	var (
		got auth.Claims
		ok  bool
	)
	h := AuthContext(verifier, nil)(claimsProbe(&got, &ok))

	req := httptest.NewRequest(http.MethodGet, "/pets", nil)
	req.Header.Set("Authorization", "bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, "user-2", got.UserID)

	// Con verifier el header de debug se ignora
	ok = false
	req = httptest.NewRequest(http.MethodGet, "/pets", nil)
	req.Header.Set(DebugUserHeader, "user-1")
	req.Header.Set("Authorization", "Bearer nope")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  bearer   abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("Bearer"))
	assert.Empty(t, bearerToken(""))
}
