package services

import (
	"testing"
	"time"
)

func TestQuoteNumberFor(t *testing.T) {
	day := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		sequence int
		want     string
	}{
		{"first of the day", 1, "DV-20250315-0001"},
		{"padded to four digits", 42, "DV-20250315-0042"},
		{"four digit sequence", 1234, "DV-20250315-1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteNumberFor(day, tt.sequence); got != tt.want {
				t.Errorf("QuoteNumberFor(%v, %d) = %q, want %q", day, tt.sequence, got, tt.want)
			}
		})
	}
}

func TestQuoteNumberPrefix(t *testing.T) {
	day := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	if got := quoteNumberPrefix(day); got != "DV-20241201-" {
		t.Errorf("quoteNumberPrefix = %q", got)
	}
}
