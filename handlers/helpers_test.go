package handlers

import "testing"

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"empty is zero", "", 0, false},
		{"whitespace is zero", "   ", 0, false},
		{"plain integer", "42", 42, false},
		{"dot decimal", "45.50", 45.50, false},
		{"french comma decimal", "45,50", 45.50, false},
		{"negative", "-10", -10, false},
		{"garbage", "abc", 0, true},
		{"mixed garbage", "12abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFloat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFloat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseFloat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean name untouched", "Devis_DV-20250315-0001.pdf", "Devis_DV-20250315-0001.pdf"},
		{"slashes become dashes", "a/b\\c.pdf", "a-b-c.pdf"},
		{"forbidden chars stripped", `de*vis?"<>|.pdf`, "devis.pdf"},
		{"newlines stripped", "devis\r\n.pdf", "devis.pdf"},
		{"empty falls back", "", "document"},
		{"only forbidden falls back", "***", "document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
