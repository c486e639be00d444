package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := AuthenticateEvent{
		Email:    "admin@dealhub.dev",
		ClientIP: "192.168.1.1",
		Method:   "password",
		Success:  true,
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.Contains(output, "dealhub") {
		t.Error("Expected app name 'dealhub' in output")
	}
	if !strings.Contains(output, "authn") {
		t.Error("Expected message ID 'authn' in output")
	}
	if !strings.Contains(output, "admin@dealhub.dev") {
		t.Error("Expected user email in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "successfully authenticated") {
		t.Error("Expected success message in output")
	}
}

func TestAuthenticateEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     AuthenticateEvent
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name: "successful authentication",
			event: AuthenticateEvent{
				Email:    "admin@dealhub.dev",
				ClientIP: "10.0.0.1",
				Method:   "password",
				Success:  true,
			},
			wantMsg:   "successfully authenticated",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
		{
			name: "failed authentication",
			event: AuthenticateEvent{
				Email:        "admin@dealhub.dev",
				ClientIP:     "10.0.0.1",
				Method:       "password",
				Success:      false,
				ErrorMessage: "invalid credentials",
			},
			wantMsg:   "failed to authenticate",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want containing %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != tt.wantFac {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), tt.wantFac)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %q, want %q", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestAccessCheckEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   AccessCheckEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "allowed check",
			event: AccessCheckEvent{
				UserID:   "u-1",
				ClientIP: "10.0.0.1",
				Kind:     "product",
				Resource: "p-42",
				Action:   "update",
				Allowed:  true,
			},
			wantMsg: "u-1 may update product p-42",
			wantSev: SeverityInfo,
		},
		{
			name: "denied check carries reason",
			event: AccessCheckEvent{
				UserID:   "u-2",
				ClientIP: "10.0.0.1",
				Kind:     "product",
				Resource: "p-42",
				Action:   "delete",
				Allowed:  false,
				Reason:   "not-owner",
			},
			wantMsg: "u-2 may not delete product p-42: not-owner",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
		})
	}

	sd := AccessCheckEvent{UserID: "u-2", Action: "delete", Allowed: false, Reason: "not-owner"}.StructuredData()
	if sd[SDIDAction]["reason"] != "not-owner" {
		t.Errorf("StructuredData reason = %q, want %q", sd[SDIDAction]["reason"], "not-owner")
	}
}

func TestRoleChangeEvent(t *testing.T) {
	event := RoleChangeEvent{
		AdminID:  "admin-1",
		TargetID: "u-7",
		OldRole:  "user",
		NewRole:  "merchant",
		ClientIP: "10.0.0.1",
		Success:  true,
	}

	want := "admin-1 changed role of u-7 from user to merchant"
	if event.Message() != want {
		t.Errorf("Message() = %q, want %q", event.Message(), want)
	}
	if event.Severity() != SeverityNotice {
		t.Errorf("Severity() = %v, want %v", event.Severity(), SeverityNotice)
	}

	sd := event.StructuredData()
	if sd[SDIDSubject]["new-role"] != "merchant" {
		t.Errorf("StructuredData new-role = %q, want %q", sd[SDIDSubject]["new-role"], "merchant")
	}
}

func TestRollbackEvent(t *testing.T) {
	event := RollbackEvent{
		UserID:       "u-3",
		Operation:    "wishlist-toggle",
		Key:          "wishlist:u-3",
		ErrorMessage: "connection refused",
	}

	msg := event.Message()
	if !strings.Contains(msg, "wishlist-toggle") || !strings.Contains(msg, "connection refused") {
		t.Errorf("Message() = %q, want operation and error included", msg)
	}
	if event.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", event.Severity(), SeverityWarning)
	}
}

func TestStructuredDataEscaping(t *testing.T) {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"resource": `value with "quotes" and \backslash and ]bracket`,
		},
	}

	formatted := formatStructuredData(sd)

	if !strings.Contains(formatted, `\"quotes\"`) {
		t.Error("Expected escaped quotes in structured data")
	}
	if !strings.Contains(formatted, `\\backslash`) {
		t.Error("Expected escaped backslash in structured data")
	}
	if !strings.Contains(formatted, `\]bracket`) {
		t.Error("Expected escaped bracket in structured data")
	}
}
