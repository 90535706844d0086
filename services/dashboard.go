package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// DashboardStats aggregates the numbers shown on the home page.
type DashboardStats struct {
	TotalQuotes    int
	DraftQuotes    int
	SentQuotes     int
	AcceptedQuotes int
	// AcceptanceRate is accepted over decided (accepted + rejected),
	// in percent. Zero when nothing has been decided yet.
	AcceptanceRate float64
	// EstimatedRevenue sums the TTC totals of accepted quotes.
	EstimatedRevenue float64
	ActiveClients    int
	RecentQuotes     []*core.Record
}

// recentQuoteCount caps the activity feed on the dashboard.
const recentQuoteCount = 5

// ComputeDashboardStats walks the quotes collection and derives the
// dashboard aggregates in one pass.
func ComputeDashboardStats(app core.App) (*DashboardStats, error) {
	quotes, err := app.FindRecordsByFilter("quotes", "id != ''", "-created", 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	stats := &DashboardStats{}
	clientSeen := map[string]bool{}
	rejected := 0

	for _, q := range quotes {
		stats.TotalQuotes++

		status, _ := ParseStatus(q.GetString("status"))
		switch status {
		case StatusDraft:
			stats.DraftQuotes++
		case StatusSent:
			stats.SentQuotes++
		case StatusAccepted:
			stats.AcceptedQuotes++
			stats.EstimatedRevenue += q.GetFloat("total")
		case StatusRejected:
			rejected++
		}

		if clientID := q.GetString("client"); clientID != "" && !clientSeen[clientID] {
			clientSeen[clientID] = true
			stats.ActiveClients++
		}

		if len(stats.RecentQuotes) < recentQuoteCount {
			stats.RecentQuotes = append(stats.RecentQuotes, q)
		}
	}

	if decided := stats.AcceptedQuotes + rejected; decided > 0 {
		stats.AcceptanceRate = float64(stats.AcceptedQuotes) / float64(decided) * 100
	}

	return stats, nil
}
