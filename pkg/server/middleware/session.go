package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/dealhub/dealhub/pkg/config"
	"github.com/dealhub/dealhub/pkg/identity"
	"github.com/dealhub/dealhub/pkg/session"
)

// SessionAuthenticator is middleware that validates session tokens
type SessionAuthenticator struct {
	Signer *session.Signer
}

// NewSessionAuthenticator creates a new session authenticator middleware
func NewSessionAuthenticator(signer *session.Signer) *SessionAuthenticator {
	return &SessionAuthenticator{Signer: signer}
}

// ClientIP resolves the client address for a request. The first
// X-Forwarded-For hop is trusted only when the direct peer is a
// configured trusted proxy.
func ClientIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer := net.ParseIP(host)

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" && peer != nil && config.Get().IsTrustedProxy(peer.String()) {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip
		}
	}
	return peer
}

// Middleware returns an HTTP middleware that validates session tokens
// and stores the resulting identity in the request context
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := a.Signer.Parse(tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid session token"))
			return
		}

		id := identity.FromClaims(claims).WithRemoteIP(ClientIP(r))
		r = r.WithContext(identity.Set(r.Context(), id))

		next.ServeHTTP(w, r)
	})
}
