package audit

import "fmt"

// RollbackEvent represents a failed optimistic mutation that was rolled back
type RollbackEvent struct {
	UserID       string
	Operation    string // e.g. "wishlist-toggle"
	Key          string // item key the rollback applied to
	ErrorMessage string
}

func (e RollbackEvent) MessageID() string {
	return "rollback"
}

func (e RollbackEvent) Message() string {
	msg := fmt.Sprintf("rolled back %s for %s on %s", e.Operation, e.UserID, e.Key)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RollbackEvent) Severity() Severity {
	return SeverityWarning
}

func (e RollbackEvent) Facility() int {
	return FacilityUser
}

func (e RollbackEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSync: {
			"operation": e.Operation,
			"key":       e.Key,
		},
	}
	if e.ErrorMessage != "" {
		sd[SDIDSync]["error"] = e.ErrorMessage
	}
	return sd
}
