// Package rbac implements the access control resolver for Dealhub.
//
// The resolver answers a single question: may this principal perform
// this action on this resource? The answer is a Decision value, not an
// error - a denial is an expected outcome that carries a reason code
// for user-facing messaging. The package also owns the permission
// closure rule (edit implies add) that every permission write path
// must apply before persisting.
package rbac
