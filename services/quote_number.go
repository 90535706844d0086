package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// QuoteNumberFor builds the number string from its parts.
// Format: DV-YYYYMMDD-XXXX, e.g. DV-20250315-0007.
func QuoteNumberFor(day time.Time, sequence int) string {
	return fmt.Sprintf("DV-%s-%04d", day.Format("20060102"), sequence)
}

// quoteNumberPrefix is the shared day prefix of every number issued on a
// given date.
func quoteNumberPrefix(day time.Time) string {
	return fmt.Sprintf("DV-%s-", day.Format("20060102"))
}

// GenerateQuoteNumber issues the next quote number for the given day.
// The 4-digit suffix is a per-day sequence derived from the count of
// already-issued numbers sharing the day prefix, so numbers stay
// deterministic and human-orderable.
func GenerateQuoteNumber(app core.App, now time.Time) (string, error) {
	prefix := quoteNumberPrefix(now)

	existing, err := app.FindRecordsByFilter(
		"quotes",
		"quote_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// An empty collection returns no error and no rows; a real query
		// failure must not restart the sequence at 0001.
		return "", fmt.Errorf("count quotes for prefix %s: %w", prefix, err)
	}

	return QuoteNumberFor(now, len(existing)+1), nil
}
