package audit

import (
	"fmt"
	"strings"
)

// PermissionChangeEvent represents a merchant permission grant change audit event
type PermissionChangeEvent struct {
	AdminID      string
	TargetID     string
	Permissions  []string // normalized grant set after the change
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e PermissionChangeEvent) MessageID() string {
	return "permission-change"
}

func (e PermissionChangeEvent) Message() string {
	grants := strings.Join(e.Permissions, ",")
	if grants == "" {
		grants = "none"
	}
	if e.Success {
		return fmt.Sprintf("%s set permissions of %s to [%s]", e.AdminID, e.TargetID, grants)
	}
	msg := fmt.Sprintf("%s tried to set permissions of %s to [%s]", e.AdminID, e.TargetID, grants)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e PermissionChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e PermissionChangeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PermissionChangeEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.AdminID,
		},
		SDIDSubject: {
			"user":        e.TargetID,
			"permissions": strings.Join(e.Permissions, ","),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "permission-change",
			"result":    result,
		},
	}
}
