package audit

import "fmt"

// WhoamiEvent represents an identity check audit event
type WhoamiEvent struct {
	UserID   string
	ClientIP string
	Success  bool
}

func (e WhoamiEvent) MessageID() string {
	return "identity-check"
}

func (e WhoamiEvent) Message() string {
	return fmt.Sprintf("%s checked their identity using whoami", e.UserID)
}

func (e WhoamiEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e WhoamiEvent) Facility() int {
	return FacilityAuth
}

func (e WhoamiEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result,
		},
	}
}
