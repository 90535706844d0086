package templates

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// DashboardQuoteRow is one line of the recent activity table.
type DashboardQuoteRow struct {
	ID          string
	QuoteNumber string
	ClientName  string
	StatusLabel string
	BadgeClass  string
	Total       string // formatted
	IssueDate   string // DD/MM/YYYY
}

// DashboardData feeds the home page.
type DashboardData struct {
	TotalQuotes      int
	DraftQuotes      int
	SentQuotes       int
	AcceptedQuotes   int
	AcceptanceRate   string // formatted percentage
	EstimatedRevenue string // formatted
	ActiveClients    int
	RecentQuotes     []DashboardQuoteRow
}

// DashboardContent renders the dashboard fragment.
func DashboardContent(data DashboardData) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<h1>Tableau de bord</h1>")

		b.WriteString("<div class=\"stat-grid\">")
		stat := func(label, value string) {
			b.WriteString("<div class=\"stat-card\"><span class=\"stat-value\">" + esc(value) + "</span>")
			b.WriteString("<span class=\"stat-label\">" + esc(label) + "</span></div>")
		}
		stat("Devis", fmt.Sprintf("%d", data.TotalQuotes))
		stat("Brouillons", fmt.Sprintf("%d", data.DraftQuotes))
		stat("Envoyés", fmt.Sprintf("%d", data.SentQuotes))
		stat("Acceptés", fmt.Sprintf("%d", data.AcceptedQuotes))
		stat("Taux d'acceptation", data.AcceptanceRate)
		stat("Chiffre d'affaires estimé", data.EstimatedRevenue)
		stat("Clients actifs", fmt.Sprintf("%d", data.ActiveClients))
		b.WriteString("</div>")

		b.WriteString("<div class=\"panel\"><div class=\"panel-head\"><h2>Derniers devis</h2>")
		b.WriteString("<a class=\"btn btn-primary\" href=\"/quotes/new\">Nouveau devis</a></div>")

		if len(data.RecentQuotes) == 0 {
			b.WriteString("<p class=\"empty\">Aucun devis pour le moment. Créez votre premier devis.</p></div>")
			return
		}

		b.WriteString("<table class=\"table\"><thead><tr>")
		b.WriteString("<th>Numéro</th><th>Client</th><th>Date</th><th>Statut</th><th class=\"num\">Total TTC</th>")
		b.WriteString("</tr></thead><tbody>")
		for _, q := range data.RecentQuotes {
			b.WriteString("<tr>")
			b.WriteString("<td><a href=\"/quotes/" + esc(q.ID) + "\">" + esc(q.QuoteNumber) + "</a></td>")
			b.WriteString("<td>" + esc(q.ClientName) + "</td>")
			b.WriteString("<td>" + esc(q.IssueDate) + "</td>")
			b.WriteString("<td><span class=\"" + esc(q.BadgeClass) + "\">" + esc(q.StatusLabel) + "</span></td>")
			b.WriteString("<td class=\"num\">" + esc(q.Total) + "</td>")
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table></div>")
	})
}

// DashboardPage renders the full dashboard page.
func DashboardPage(data DashboardData) templ.Component {
	return Layout("Tableau de bord", "/", DashboardContent(data))
}
