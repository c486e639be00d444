// Package optimistic keeps a local in-memory projection of a remote
// collection consistent across asynchronous, fallible round trips.
//
// A mutation is applied to the local projection synchronously, before
// the remote call completes, so callers observe the change
// immediately. If the remote call later fails, the projection is
// restored to the exact snapshot captured at apply time and exactly
// one user-visible error is reported. Mutations are tagged with a
// per-key sequence number; a stale mutation's failure never rolls back
// state that a newer mutation has already superseded.
package optimistic
