package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func merchant(id string, perms ...Permission) *Principal {
	return &Principal{ID: id, Role: RoleMerchant, Permissions: perms}
}

func TestCanPerform_RoleGate(t *testing.T) {
	product := Resource{Kind: "product", OwnerID: "m1"}

	t.Run("plain user is denied every mutation", func(t *testing.T) {
		shopper := &Principal{ID: "u1", Role: RoleUser}

		for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
			decision, err := CanPerform(shopper, action, product)
			require.NoError(t, err)
			assert.False(t, decision.Allowed, "action %s", action)
			assert.Equal(t, ReasonInsufficientRole, decision.Reason)
		}
	})

	t.Run("plain user can view", func(t *testing.T) {
		decision, err := CanPerform(&Principal{ID: "u1", Role: RoleUser}, ActionView, product)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	})

	t.Run("admin is allowed everything, even on others' resources", func(t *testing.T) {
		admin := &Principal{ID: "a1", Role: RoleAdmin}

		for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete, ActionView} {
			decision, err := CanPerform(admin, action, product)
			require.NoError(t, err)
			assert.True(t, decision.Allowed, "action %s", action)
		}
	})
}

func TestCanPerform_MerchantPermissions(t *testing.T) {
	own := Resource{Kind: "product", OwnerID: "m1"}

	tests := []struct {
		name    string
		perms   []Permission
		action  Action
		allowed bool
		reason  Reason
	}{
		{"create with add", []Permission{PermissionAdd}, ActionCreate, true, ""},
		{"create without add", []Permission{PermissionEdit, PermissionDelete}, ActionCreate, false, ReasonInsufficientPermission},
		{"update with edit", []Permission{PermissionAdd, PermissionEdit}, ActionUpdate, true, ""},
		{"update without edit", []Permission{PermissionAdd}, ActionUpdate, false, ReasonInsufficientPermission},
		{"delete with delete", []Permission{PermissionDelete}, ActionDelete, true, ""},
		{"delete without delete", []Permission{PermissionAdd, PermissionEdit}, ActionDelete, false, ReasonInsufficientPermission},
		{"view with no grants", nil, ActionView, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := CanPerform(merchant("m1", tt.perms...), tt.action, own)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.reason, decision.Reason)
			}
		})
	}
}

func TestCanPerform_OwnershipGate(t *testing.T) {
	m := merchant("m1", PermissionAdd, PermissionEdit, PermissionDelete)
	other := Resource{Kind: "product", OwnerID: "m2"}
	own := Resource{Kind: "product", OwnerID: "m1"}

	decision, err := CanPerform(m, ActionUpdate, other)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNotOwner, decision.Reason)

	decision, err = CanPerform(m, ActionDelete, other)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNotOwner, decision.Reason)

	decision, err = CanPerform(m, ActionUpdate, own)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// Viewing another merchant's listing is fine.
	decision, err = CanPerform(m, ActionView, other)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

// A merchant holding only the add grant may not update their own
// product: missing grant is reported ahead of ownership.
func TestCanPerform_AddOnlyMerchantCannotUpdateOwnProduct(t *testing.T) {
	decision, err := CanPerform(
		merchant("m1", PermissionAdd),
		ActionUpdate,
		Resource{Kind: "product", OwnerID: "m1"},
	)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonInsufficientPermission, decision.Reason)
}

func TestCanPerform_InvalidPrincipal(t *testing.T) {
	resource := Resource{Kind: "product", OwnerID: "m1"}

	_, err := CanPerform(nil, ActionView, resource)
	assert.ErrorIs(t, err, ErrInvalidPrincipal)

	_, err = CanPerform(&Principal{ID: "u1"}, ActionView, resource)
	assert.ErrorIs(t, err, ErrInvalidPrincipal)
}
