package audit

import "fmt"

// RoleChangeEvent represents a user role change audit event
type RoleChangeEvent struct {
	AdminID      string
	TargetID     string
	OldRole      string
	NewRole      string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RoleChangeEvent) MessageID() string {
	return "role-change"
}

func (e RoleChangeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s changed role of %s from %s to %s", e.AdminID, e.TargetID, e.OldRole, e.NewRole)
	}
	msg := fmt.Sprintf("%s tried to change role of %s to %s", e.AdminID, e.TargetID, e.NewRole)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RoleChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RoleChangeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RoleChangeEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.AdminID,
		},
		SDIDSubject: {
			"user":     e.TargetID,
			"old-role": e.OldRole,
			"new-role": e.NewRole,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "role-change",
			"result":    result,
		},
	}
}
