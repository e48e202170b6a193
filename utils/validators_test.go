package utils

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"Valid", "pass123!", true},
		{"TooShort", "p1!", false},
		{"NoNumber", "password!", false},
		{"NoSpecial", "password1", false},
		{"SymbolCounts", "abc123$", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidatePassword(tc.password); got != tc.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}
}
