package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/services"
	"easydevis/templates"
)

// quoteListRecords fetches the quotes matching the list filters, newest
// first. The search matches the number and the client name.
func quoteListRecords(app *pocketbase.PocketBase, search, status string) ([]*core.Record, error) {
	filter := "id != ''"
	params := map[string]any{}
	if status != "" {
		filter += " && status = {:status}"
		params["status"] = status
	}

	records, err := app.FindRecordsByFilter("quotes", filter, "-created", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}
	if search == "" {
		return records, nil
	}

	needle := strings.ToLower(search)
	var matched []*core.Record
	for _, q := range records {
		if strings.Contains(strings.ToLower(q.GetString("quote_number")), needle) {
			matched = append(matched, q)
			continue
		}
		if name := clientNameFor(app, q.GetString("client")); strings.Contains(strings.ToLower(name), needle) {
			matched = append(matched, q)
		}
	}
	return matched, nil
}

// HandleQuoteList renders the quote list with search and status filters.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		search := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		status := e.Request.URL.Query().Get("status")
		if _, ok := services.ParseStatus(status); !ok {
			status = ""
		}

		records, err := quoteListRecords(app, search, status)
		if err != nil {
			log.Printf("quote_list: %v", err)
			return e.String(http.StatusInternalServerError, "Une erreur est survenue.")
		}

		data := templates.QuoteListData{
			Search:   search,
			Statuses: statusOptions(services.QuoteStatus(status)),
		}
		for _, q := range records {
			st, _ := services.ParseStatus(q.GetString("status"))
			data.Quotes = append(data.Quotes, templates.QuoteListRow{
				ID:          q.Id,
				QuoteNumber: q.GetString("quote_number"),
				ClientName:  clientNameFor(app, q.GetString("client")),
				StatusLabel: st.Label(),
				BadgeClass:  st.BadgeClass(),
				IssueDate:   services.FormatDateFR(q.GetString("issue_date")),
				ExpiryDate:  services.FormatDateFR(q.GetString("expiry_date")),
				Total:       services.FormatEUR(q.GetFloat("total")),
			})
		}

		return render(e, templates.QuoteListPage(data), templates.QuoteListContent(data))
	}
}

// HandleQuoteListExcel downloads the filtered quote list as an Excel
// workbook.
func HandleQuoteListExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		search := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		status := e.Request.URL.Query().Get("status")
		if _, ok := services.ParseStatus(status); !ok {
			status = ""
		}

		records, err := quoteListRecords(app, search, status)
		if err != nil {
			log.Printf("quote_list: excel export: %v", err)
			return e.String(http.StatusInternalServerError, "Une erreur est survenue.")
		}

		export := services.QuoteListExport{
			GeneratedOn: time.Now().Format("02/01/2006"),
		}
		for _, q := range records {
			st, _ := services.ParseStatus(q.GetString("status"))
			total := q.GetFloat("total")
			export.Rows = append(export.Rows, services.QuoteListRow{
				QuoteNumber: q.GetString("quote_number"),
				ClientName:  clientNameFor(app, q.GetString("client")),
				Status:      st,
				IssueDate:   services.FormatDateFR(q.GetString("issue_date")),
				ExpiryDate:  services.FormatDateFR(q.GetString("expiry_date")),
				Total:       total,
			})
			export.Total += total
		}

		raw, err := services.GenerateQuoteListExcel(export)
		if err != nil {
			log.Printf("quote_list: could not generate workbook: %v", err)
			return e.String(http.StatusInternalServerError, "Une erreur est survenue.")
		}

		filename := fmt.Sprintf("Devis_%s.xlsx", time.Now().Format("20060102"))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(filename)))
		e.Response.Write(raw)
		return nil
	}
}

// statusOptions builds the select entries for a status input.
func statusOptions(selected services.QuoteStatus) []templates.StatusOption {
	var opts []templates.StatusOption
	for _, s := range services.AllStatuses() {
		opts = append(opts, templates.StatusOption{
			Value:    string(s),
			Label:    s.Label(),
			Selected: s == selected,
		})
	}
	return opts
}
