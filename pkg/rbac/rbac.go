package rbac

import "errors"

// Role is the coarse access level assigned to a user account.
type Role string

const (
	RoleUser     Role = "user"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// Action is an operation attempted against a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionView   Action = "view"
)

// Reason explains why a request was denied.
type Reason string

const (
	ReasonInsufficientRole       Reason = "insufficient-role"
	ReasonInsufficientPermission Reason = "insufficient-permission"
	ReasonNotOwner               Reason = "not-owner"
)

// ErrInvalidPrincipal is returned when the caller passes a nil or
// malformed principal. This is a precondition violation, not a denial.
var ErrInvalidPrincipal = errors.New("rbac: invalid principal")

// Principal is the actor attempting an action.
type Principal struct {
	ID          string
	Role        Role
	Permissions PermissionSet
}

// Resource identifies the target of an action: what kind of thing it
// is and which merchant owns it.
type Resource struct {
	Kind    string
	OwnerID string
}

// Decision is the outcome of an access check. Denials are first-class
// results; callers must check Allowed rather than rely on errors.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow is the decision granting the action.
var Allow = Decision{Allowed: true}

// Deny returns a denial carrying the given reason.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// permissionFor maps each mutating action to the grant it requires.
var permissionFor = map[Action]Permission{
	ActionCreate: PermissionAdd,
	ActionUpdate: PermissionEdit,
	ActionDelete: PermissionDelete,
}

// CanPerform decides whether principal may perform action on resource.
//
// Rules, evaluated in order:
//  1. admin: every action is allowed.
//  2. merchant: a mutating action requires the matching grant
//     (create/add, update/edit, delete/delete); update and delete
//     additionally require ownership of the resource. view is always
//     allowed.
//  3. user: only view is allowed.
func CanPerform(principal *Principal, action Action, resource Resource) (Decision, error) {
	if principal == nil || principal.Role == "" {
		return Decision{}, ErrInvalidPrincipal
	}

	if action == ActionView {
		return Allow, nil
	}

	switch principal.Role {
	case RoleAdmin:
		return Allow, nil

	case RoleMerchant:
		required, ok := permissionFor[action]
		if !ok {
			return Deny(ReasonInsufficientPermission), nil
		}
		if !principal.Permissions.Has(required) {
			return Deny(ReasonInsufficientPermission), nil
		}
		// Merchants cannot touch each other's listings. Creation has
		// no pre-existing owner to compare against.
		if action != ActionCreate && resource.OwnerID != principal.ID {
			return Deny(ReasonNotOwner), nil
		}
		return Allow, nil

	default:
		return Deny(ReasonInsufficientRole), nil
	}
}
