package identity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealhub/dealhub/pkg/rbac"
)

func TestFromClaims(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	expires := issued.Add(8 * time.Hour)

	id := FromClaims(Claims{
		UserID:      "u1",
		Email:       "alice@example.com",
		Role:        "merchant",
		Permissions: []string{"add", "edit"},
		IssuedAt:    issued,
		ExpiresAt:   expires,
	})

	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, rbac.RoleMerchant, id.Role)
	assert.Equal(t, rbac.PermissionSet{rbac.PermissionAdd, rbac.PermissionEdit}, id.Permissions)
	assert.Equal(t, issued, id.IssuedAt)
	assert.Equal(t, expires, id.ExpiresAt)
	assert.False(t, id.IsAdmin())
}

func TestFromClaims_UnknownPermissionsDropped(t *testing.T) {
	id := FromClaims(Claims{
		UserID:      "u1",
		Role:        "merchant",
		Permissions: []string{"add", "root"},
	})
	assert.Equal(t, rbac.PermissionSet{rbac.PermissionAdd}, id.Permissions)
}

func TestIdentity_Principal(t *testing.T) {
	id := FromClaims(Claims{
		UserID:      "m1",
		Role:        "merchant",
		Permissions: []string{"add", "edit", "delete"},
	})

	principal := id.Principal()
	require.NotNil(t, principal)
	assert.Equal(t, "m1", principal.ID)
	assert.Equal(t, rbac.RoleMerchant, principal.Role)
	assert.True(t, principal.Permissions.Has(rbac.PermissionDelete))
}

func TestContextRoundTrip(t *testing.T) {
	id := FromClaims(Claims{UserID: "u1", Role: "user"}).
		WithRemoteIP(net.ParseIP("10.0.0.1"))

	ctx := Set(context.Background(), id)
	got, ok := Get(ctx)
	require.True(t, ok)
	assert.Same(t, id, got)
	assert.Equal(t, net.ParseIP("10.0.0.1"), got.RemoteIP)
}

func TestGet_MissingIdentity(t *testing.T) {
	_, ok := Get(context.Background())
	assert.False(t, ok)
}
