package common

import (
	"testing"
)

func TestParseTicker(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		wantCode  string
	}{
		// Standard B3 codes
		{"PETR4", true, "PETR4"},
		{"MGLU3", true, "MGLU3"},
		{"ITUB4", true, "ITUB4"},

		// Unit codes carry two digits
		{"TAEE11", true, "TAEE11"},
		{"SANB11", true, "SANB11"},

		// Case normalization
		{"petr4", true, "PETR4"},
		{"Mglu3", true, "MGLU3"},

		// Whitespace handling
		{"  PETR4  ", true, "PETR4"},

		// Wrong shapes never validate
		{"AB1", false, ""},
		{"PETR", false, ""},
		{"PETR444", false, ""},
		{"PET4", false, ""},
		{"4PETR", false, ""},
		{"PETR4.SA", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseTicker(tt.input)

			if result.Valid() != tt.wantValid {
				t.Errorf("Valid() = %v, want %v", result.Valid(), tt.wantValid)
			}
			if result.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", result.Code, tt.wantCode)
			}
		})
	}
}
