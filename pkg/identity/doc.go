// Package identity provides authenticated identity management for
// Dealhub requests.
//
// An Identity combines session token claims (user id, email, role,
// permissions) with request-specific context (remote IP). The session
// middleware builds one per request and stores it in the request
// context; handlers read snapshots from there and pass the projected
// principal into the access control resolver. Nothing in this package
// mutates shared state - the identity collaborator owns writes, the
// rest of the system only reads snapshots.
//
//	// Create identity from verified claims
//	id := identity.FromClaims(claims)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
package identity
