package audit

import "fmt"

// AccessCheckEvent represents an authorization check audit event
type AccessCheckEvent struct {
	UserID   string
	ClientIP string
	Kind     string // resource kind, e.g. "product"
	Resource string // resource identifier
	Action   string // "create", "update", "delete", "view"
	Allowed  bool
	Reason   string // deny reason, empty when allowed
}

func (e AccessCheckEvent) MessageID() string {
	return "check"
}

func (e AccessCheckEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s may %s %s %s", e.UserID, e.Action, e.Kind, e.Resource)
	}
	return fmt.Sprintf("%s may not %s %s %s: %s", e.UserID, e.Action, e.Kind, e.Resource, e.Reason)
}

func (e AccessCheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AccessCheckEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AccessCheckEvent) StructuredData() map[string]map[string]string {
	result := "allowed"
	if !e.Allowed {
		result = "denied"
	}
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"kind":     e.Kind,
			"resource": e.Resource,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Action,
			"result":    result,
		},
	}
	if e.Reason != "" {
		sd[SDIDAction]["reason"] = e.Reason
	}
	return sd
}
