package domain

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already normalized", input: "alice@example.com", expected: "alice@example.com"},
		{name: "uppercase", input: "Alice@Example.COM", expected: "alice@example.com"},
		{name: "surrounding whitespace", input: "  alice@example.com \t", expected: "alice@example.com"},
		{name: "mixed", input: " BILLING@Grand-Hotel.example ", expected: "billing@grand-hotel.example"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.expected {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleCorporate, RoleFinance} {
		if !ValidRole(role) {
			t.Errorf("expected %q to be a valid role", role)
		}
	}
	for _, role := range []string{"", "superuser", "Admin", "finance "} {
		if ValidRole(role) {
			t.Errorf("expected %q to be rejected", role)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusActive, StatusOnHold, StatusInactive} {
		if !ValidStatus(status) {
			t.Errorf("expected %q to be a valid status", status)
		}
	}
	for _, status := range []string{"", "suspended", "Active", "onhold"} {
		if ValidStatus(status) {
			t.Errorf("expected %q to be rejected", status)
		}
	}
}
