package audit

import "fmt"

// AuthenticateEvent represents a sign-in audit event
type AuthenticateEvent struct {
	Email        string
	ClientIP     string
	Method       string // "password", "signup"
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated via %s", e.Email, e.Method)
	}
	msg := fmt.Sprintf("%s failed to authenticate via %s", e.Email, e.Method)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user":   e.Email,
			"method": e.Method,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authenticate",
			"result":    result,
		},
	}
}
