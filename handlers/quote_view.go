package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/services"
	"easydevis/templates"
)

// HandleQuoteView renders the read-only quote detail page.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Devis introuvable")
		}

		itemRecords, err := app.FindRecordsByFilter(
			"quote_items", "quote = {:id}", "sort_order", 0, 0,
			map[string]any{"id": quote.Id},
		)
		if err != nil {
			itemRecords = nil
		}

		status, _ := services.ParseStatus(quote.GetString("status"))
		taxRate := quote.GetFloat("tax_rate")
		if taxRate == 0 {
			taxRate = services.DefaultTaxRate
		}

		data := templates.QuoteViewData{
			ID:          quote.Id,
			QuoteNumber: quote.GetString("quote_number"),
			ClientName:  clientNameFor(app, quote.GetString("client")),
			StatusLabel: status.Label(),
			BadgeClass:  status.BadgeClass(),
			Statuses:    statusOptions(status),
			IssueDate:   services.FormatDateFR(quote.GetString("issue_date")),
			ExpiryDate:  services.FormatDateFR(quote.GetString("expiry_date")),
			Subtotal:    services.FormatEUR(quote.GetFloat("subtotal")),
			TaxLabel:    fmt.Sprintf("TVA (%.0f %%)", taxRate*100),
			TaxAmount:   services.FormatEUR(quote.GetFloat("tax_amount")),
			Total:       services.FormatEUR(quote.GetFloat("total")),
			Notes:       quote.GetString("notes"),
			Terms:       quote.GetString("terms"),
		}
		if discount := quote.GetFloat("discount"); discount > 0 {
			data.Discount = services.FormatEUR(-discount)
		}

		for _, rec := range itemRecords {
			data.Items = append(data.Items, templates.QuoteViewItem{
				Description: rec.GetString("description"),
				Quantity:    services.FormatQuantity(rec.GetFloat("quantity")),
				UnitPrice:   services.FormatEUR(rec.GetFloat("unit_price")),
				Total:       services.FormatEUR(rec.GetFloat("total")),
			})
		}

		return render(e, templates.QuoteViewPage(data), templates.QuoteViewContent(data))
	}
}

// HandleQuoteStatusChange updates the lifecycle status of a quote.
func HandleQuoteStatusChange(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Devis introuvable")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulaire invalide")
		}
		status, ok := services.ParseStatus(e.Request.FormValue("status"))
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "Statut inconnu")
		}

		quote.Set("status", string(status))
		if err := app.Save(quote); err != nil {
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		SetToast(e, "success", fmt.Sprintf("Statut changé : %s", status.Label()))
		return redirect(e, "/quotes/"+quote.Id)
	}
}
