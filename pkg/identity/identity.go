package identity

import (
	"context"
	"net"
	"time"

	"github.com/dealhub/dealhub/pkg/rbac"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request.
type Identity struct {
	// Token claims
	UserID      string
	Email       string
	Role        rbac.Role
	Permissions rbac.PermissionSet
	IssuedAt    time.Time
	ExpiresAt   time.Time

	// Request context
	RemoteIP net.IP
}

// Claims is the subset of session token claims the identity is built
// from.
type Claims struct {
	UserID      string
	Email       string
	Role        string
	Permissions []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// FromClaims creates an Identity from verified session token claims.
func FromClaims(claims Claims) *Identity {
	return &Identity{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Role:        rbac.Role(claims.Role),
		Permissions: rbac.FromStrings(claims.Permissions),
		IssuedAt:    claims.IssuedAt,
		ExpiresAt:   claims.ExpiresAt,
	}
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// IsAdmin returns true for administrator identities.
func (i *Identity) IsAdmin() bool {
	return i.Role == rbac.RoleAdmin
}

// Principal projects the identity into the form the access control
// resolver consumes.
func (i *Identity) Principal() *rbac.Principal {
	return &rbac.Principal{
		ID:          i.UserID,
		Role:        i.Role,
		Permissions: i.Permissions,
	}
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
