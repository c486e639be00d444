// Package audit provides audit logging for security-relevant Dealhub
// operations.
//
// Events are written in RFC5424 syslog format and optionally persisted to
// a dedicated audit database when AUDIT_DATABASE_URL is set.
//
// # Event Types
//
//   - Authentication attempts (sign-in, sign-up)
//   - Authorization checks (allow/deny with reason)
//   - Role and permission grant changes
//   - Rolled-back optimistic mutations
//   - Identity checks (whoami)
package audit
