package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/services"
	"easydevis/templates"
)

// HandleDashboard renders the home page with aggregate quote stats.
func HandleDashboard(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		stats, err := services.ComputeDashboardStats(app)
		if err != nil {
			log.Printf("dashboard: could not compute stats: %v", err)
			return e.String(http.StatusInternalServerError, "Une erreur est survenue.")
		}

		data := templates.DashboardData{
			TotalQuotes:      stats.TotalQuotes,
			DraftQuotes:      stats.DraftQuotes,
			SentQuotes:       stats.SentQuotes,
			AcceptedQuotes:   stats.AcceptedQuotes,
			AcceptanceRate:   fmt.Sprintf("%.0f %%", stats.AcceptanceRate),
			EstimatedRevenue: services.FormatEUR(stats.EstimatedRevenue),
			ActiveClients:    stats.ActiveClients,
		}

		for _, q := range stats.RecentQuotes {
			status, _ := services.ParseStatus(q.GetString("status"))
			row := templates.DashboardQuoteRow{
				ID:          q.Id,
				QuoteNumber: q.GetString("quote_number"),
				ClientName:  clientNameFor(app, q.GetString("client")),
				StatusLabel: status.Label(),
				BadgeClass:  status.BadgeClass(),
				Total:       services.FormatEUR(q.GetFloat("total")),
				IssueDate:   services.FormatDateFR(q.GetString("issue_date")),
			}
			data.RecentQuotes = append(data.RecentQuotes, row)
		}

		return render(e, templates.DashboardPage(data), templates.DashboardContent(data))
	}
}

// clientNameFor resolves a client id to its display name, degrading to a
// placeholder for missing references.
func clientNameFor(app *pocketbase.PocketBase, clientID string) string {
	if clientID == "" {
		return "—"
	}
	client, err := app.FindRecordById("clients", clientID)
	if err != nil {
		return "—"
	}
	return client.GetString("name")
}
