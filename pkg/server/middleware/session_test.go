package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealhub/dealhub/pkg/identity"
	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/session"
)

func newTestSigner() *session.Signer {
	return session.NewSigner([]byte("test-secret"), time.Hour)
}

func mintToken(t *testing.T, signer *session.Signer) string {
	t.Helper()
	token, err := signer.Mint(&model.User{
		ID:          "u-1",
		Email:       "alice@dealhub.dev",
		Role:        "merchant",
		Permissions: []string{"add"},
	})
	require.NoError(t, err)
	return token
}

func TestMiddlewareSetsIdentity(t *testing.T) {
	signer := newTestSigner()
	auth := NewSessionAuthenticator(signer)

	var got *identity.Identity
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = identity.Get(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, signer))
	req.RemoteAddr = "10.1.2.3:51234"
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "alice@dealhub.dev", got.Email)
	assert.Equal(t, "10.1.2.3", got.RemoteIP.String())
}

func TestMiddlewareRejections(t *testing.T) {
	signer := newTestSigner()
	auth := NewSessionAuthenticator(signer)

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: `Token token="abc"`},
		{name: "garbage token", header: "Bearer not-a-token"},
		{
			name:   "wrong secret",
			header: "Bearer " + mintToken(t, session.NewSigner([]byte("other"), time.Hour)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestClientIPIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.9")

	ip := ClientIP(req)
	assert.Equal(t, "203.0.113.7", ip.String())
}
