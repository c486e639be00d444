package rbac

// Permission is a fine-grained grant held by a merchant account.
type Permission string

const (
	PermissionAdd    Permission = "add"
	PermissionEdit   Permission = "edit"
	PermissionDelete Permission = "delete"
)

// PermissionSet is an unordered set of grants.
type PermissionSet []Permission

// Has reports whether the set contains p.
func (s PermissionSet) Has(p Permission) bool {
	for _, member := range s {
		if member == p {
			return true
		}
	}
	return false
}

// Strings returns the set as plain strings, preserving order.
func (s PermissionSet) Strings() []string {
	out := make([]string, 0, len(s))
	for _, p := range s {
		out = append(out, string(p))
	}
	return out
}

// FromStrings builds a PermissionSet from raw string values. Unknown
// values are dropped so a corrupt stored set cannot smuggle in grants.
func FromStrings(raw []string) PermissionSet {
	set := make(PermissionSet, 0, len(raw))
	for _, v := range raw {
		switch Permission(v) {
		case PermissionAdd, PermissionEdit, PermissionDelete:
			set = append(set, Permission(v))
		}
	}
	return set
}

// NormalizePermissions applies the closure rule to a requested set:
// edit implies add, and removing add removes edit. delete is
// independent. The result is deduplicated and in canonical order
// (add, edit, delete). Idempotent and total; callers must not persist
// a permission set that has not passed through here.
func NormalizePermissions(requested PermissionSet) PermissionSet {
	hasAdd := requested.Has(PermissionAdd)
	hasEdit := requested.Has(PermissionEdit)
	hasDelete := requested.Has(PermissionDelete)

	if hasEdit {
		hasAdd = true
	}
	if !hasAdd {
		hasEdit = false
	}

	normalized := make(PermissionSet, 0, 3)
	if hasAdd {
		normalized = append(normalized, PermissionAdd)
	}
	if hasEdit {
		normalized = append(normalized, PermissionEdit)
	}
	if hasDelete {
		normalized = append(normalized, PermissionDelete)
	}
	return normalized
}
