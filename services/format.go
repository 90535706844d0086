package services

import (
	"fmt"
	"strings"
	"time"
)

// FormatEUR formats an amount in French notation with exactly two decimal
// places and a trailing euro sign: 1 234,56 €. Thousands are grouped with a
// no-break space.
func FormatEUR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := groupThousands(intPart) + "," + decPart + " €"
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a no-break space every 3 digits from the
// right, French style.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + " " + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + " " + result
}

// FormatDateFR converts a stored ISO date ("2006-01-02", with or without a
// time part) to the French DD/MM/YYYY form. Unparseable input is returned
// unchanged.
func FormatDateFR(isoDate string) string {
	if isoDate == "" {
		return ""
	}
	// PocketBase date fields serialize as "2006-01-02 15:04:05.000Z".
	candidate := isoDate
	if len(candidate) > 10 {
		candidate = candidate[:10]
	}
	t, err := time.Parse("2006-01-02", candidate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}

// FormatQuantity renders whole quantities without decimals and fractional
// ones with two.
func FormatQuantity(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
