package validator

import (
	"testing"
)

func TestValidator_NationalIDRule(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{name: "canonical", id: "8-1234-5678", valid: true},
		{name: "smallest leading digit", id: "1-0000-0000", valid: true},
		{name: "leading zero", id: "0-1234-5678", valid: false},
		{name: "short block", id: "8-123-5678", valid: false},
		{name: "long block", id: "8-1234-56789", valid: false},
		{name: "missing hyphens", id: "812345678", valid: false},
		{name: "letters", id: "8-abcd-5678", valid: false},
		{name: "empty", id: "", valid: false},
		{name: "surrounding text", id: "x8-1234-5678", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateUserRequest{Name: "X", NationalID: tt.id, Role: "student"}
			errs := v.Validate(&req)
			if tt.valid && errs != nil {
				t.Errorf("expected %q to pass, got %v", tt.id, errs)
			}
			if !tt.valid && errs == nil {
				t.Errorf("expected %q to fail", tt.id)
			}
		})
	}
}

func TestValidator_ErrorShape(t *testing.T) {
	v := New()

	errs := v.Validate(&CreateUserRequest{})
	if errs == nil {
		t.Fatal("expected validation errors")
	}

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	if _, ok := byField["name"]; !ok {
		t.Error("missing error for name")
	}
	if e, ok := byField["nationalid"]; !ok || e.Rule != "required" {
		t.Errorf("unexpected national id error: %+v", e)
	}
	if errs.Error() == "" {
		t.Error("Error() should describe the failures")
	}
}

func TestValidator_AttendanceRequestRules(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		req   CreateAttendanceRequest
		valid bool
	}{
		{
			name:  "minimal valid",
			req:   CreateAttendanceRequest{Name: "A", Role: "student", Kind: "entry"},
			valid: true,
		},
		{
			name:  "full valid",
			req:   CreateAttendanceRequest{Name: "A", Role: "teacher", Kind: "exit", Date: "2026-08-28", Time: "07:55", Status: "on_time"},
			valid: true,
		},
		{
			name:  "admin cannot appear on records",
			req:   CreateAttendanceRequest{Name: "A", Role: "admin", Kind: "entry"},
			valid: false,
		},
		{
			name:  "bad time format",
			req:   CreateAttendanceRequest{Name: "A", Role: "student", Kind: "entry", Time: "7:55am"},
			valid: false,
		},
		{
			name:  "bad status",
			req:   CreateAttendanceRequest{Name: "A", Role: "student", Kind: "entry", Status: "present"},
			valid: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if tt.valid && errs != nil {
				t.Errorf("expected request to pass, got %v", errs)
			}
			if !tt.valid && errs == nil {
				t.Error("expected request to fail")
			}
		})
	}
}
