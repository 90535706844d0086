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

// clientOptions builds the client select entries, sorted by name.
func clientOptions(app *pocketbase.PocketBase, selectedID string) []templates.ClientOption {
	records, err := app.FindRecordsByFilter("clients", "id != ''", "name", 0, 0, nil)
	if err != nil {
		log.Printf("quote_form: could not fetch clients: %v", err)
		return nil
	}
	var opts []templates.ClientOption
	for _, c := range records {
		opts = append(opts, templates.ClientOption{
			ID:       c.Id,
			Name:     c.GetString("name"),
			Selected: c.Id == selectedID,
		})
	}
	return opts
}

// parseQuoteItems reads the parallel item_* form arrays into line items.
// Rows left entirely blank are dropped.
func parseQuoteItems(e *core.RequestEvent) []services.LineItem {
	descriptions := e.Request.Form["item_description"]
	quantities := e.Request.Form["item_quantity"]
	prices := e.Request.Form["item_unit_price"]

	var items []services.LineItem
	for i := range descriptions {
		desc := strings.TrimSpace(descriptions[i])

		qty := 0.0
		if i < len(quantities) {
			if f, err := parseFloat(quantities[i]); err == nil {
				qty = f
			}
		}
		price := 0.0
		if i < len(prices) {
			if f, err := parseFloat(prices[i]); err == nil {
				price = f
			}
		}

		if desc == "" && qty == 0 && price == 0 {
			continue
		}
		items = append(items, services.LineItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items
}

// itemForms converts line items to their form representation.
func itemForms(items []services.LineItem) []templates.QuoteItemForm {
	var forms []templates.QuoteItemForm
	for _, it := range items {
		forms = append(forms, templates.QuoteItemForm{
			Description: it.Description,
			Quantity:    services.FormatQuantity(it.Quantity),
			UnitPrice:   fmt.Sprintf("%.2f", it.UnitPrice),
			Total:       services.FormatEUR(it.Total),
		})
	}
	return forms
}

// HandleQuoteCreate renders the empty quote form with one default line.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		list := services.NewItemList(true)
		list.Add()

		data := templates.QuoteFormData{
			Clients:      clientOptions(app, ""),
			Statuses:     statusOptions(services.StatusDraft),
			IssueDate:    time.Now().Format("2006-01-02"),
			Items:        itemForms(list.Items()),
			TemplateKeys: services.ServiceTemplateKeys(),
			Errors:       make(map[string]string),
		}
		return render(e, templates.QuoteFormPage(data), templates.QuoteFormContent(data))
	}
}

// HandleQuoteEdit renders the form pre-filled from a persisted quote.
func HandleQuoteEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
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

		list := services.NewItemList(true)
		var items []services.LineItem
		for _, rec := range itemRecords {
			items = append(items, services.LineItem{
				Description: rec.GetString("description"),
				Quantity:    rec.GetFloat("quantity"),
				UnitPrice:   rec.GetFloat("unit_price"),
			})
		}
		list.Replace(items)
		if list.Len() == 0 {
			list.Add()
		}

		status, _ := services.ParseStatus(quote.GetString("status"))
		totals := services.CalcQuoteTotals(list.LineTotals(), quote.GetFloat("discount"), quote.GetFloat("tax_rate"))

		data := templates.QuoteFormData{
			ID:           quote.Id,
			QuoteNumber:  quote.GetString("quote_number"),
			Clients:      clientOptions(app, quote.GetString("client")),
			Statuses:     statusOptions(status),
			IssueDate:    datePart(quote.GetString("issue_date")),
			ExpiryDate:   datePart(quote.GetString("expiry_date")),
			Discount:     fmt.Sprintf("%.2f", quote.GetFloat("discount")),
			Notes:        quote.GetString("notes"),
			Terms:        quote.GetString("terms"),
			Items:        itemForms(list.Items()),
			TemplateKeys: services.ServiceTemplateKeys(),
			Subtotal:     services.FormatEUR(totals.Subtotal),
			TaxAmount:    services.FormatEUR(totals.TaxAmount),
			Total:        services.FormatEUR(totals.Total),
			Errors:       make(map[string]string),
		}
		return render(e, templates.QuoteFormPage(data), templates.QuoteFormContent(data))
	}
}

// HandleQuoteSave creates a quote (no id in path) or updates an existing
// one, rewriting its line items.
func HandleQuoteSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulaire invalide")
		}

		id := e.Request.PathValue("id")
		clientID := e.Request.FormValue("client")
		status, _ := services.ParseStatus(e.Request.FormValue("status"))
		issueDate := e.Request.FormValue("issue_date")
		expiryDate := e.Request.FormValue("expiry_date")
		notes := strings.TrimSpace(e.Request.FormValue("notes"))
		terms := strings.TrimSpace(e.Request.FormValue("terms"))

		discount, discountErr := parseFloat(e.Request.FormValue("discount"))

		list := services.NewItemList(true)
		list.Replace(parseQuoteItems(e))

		errs := make(map[string]string)
		if clientID == "" {
			errs["client"] = "Le client est obligatoire"
		}
		if issueDate == "" {
			errs["issue_date"] = "La date est obligatoire"
		}
		if discountErr != nil || discount < 0 {
			errs["discount"] = "Remise invalide"
			discount = 0
		}

		validLines := 0
		for _, it := range list.Items() {
			if it.Description != "" && it.Quantity > 0 {
				validLines++
			}
		}
		if validLines == 0 {
			errs["items"] = "Le devis doit contenir au moins une ligne avec une description et une quantité"
		}

		if len(errs) > 0 {
			if list.Len() == 0 {
				list.Add()
			}
			totals := services.CalcQuoteTotals(list.LineTotals(), discount, services.DefaultTaxRate)
			data := templates.QuoteFormData{
				ID:           id,
				Clients:      clientOptions(app, clientID),
				Statuses:     statusOptions(status),
				IssueDate:    issueDate,
				ExpiryDate:   expiryDate,
				Discount:     e.Request.FormValue("discount"),
				Notes:        notes,
				Terms:        terms,
				Items:        itemForms(list.Items()),
				TemplateKeys: services.ServiceTemplateKeys(),
				Subtotal:     services.FormatEUR(totals.Subtotal),
				TaxAmount:    services.FormatEUR(totals.TaxAmount),
				Total:        services.FormatEUR(totals.Total),
				Errors:       errs,
			}
			SetToast(e, "warning", "Veuillez corriger les erreurs du formulaire")
			return render(e, templates.QuoteFormPage(data), templates.QuoteFormContent(data))
		}

		totals := services.CalcQuoteTotals(list.LineTotals(), discount, services.DefaultTaxRate)

		var quote *core.Record
		if id == "" {
			col, err := app.FindCollectionByNameOrId("quotes")
			if err != nil {
				log.Printf("quote_form: could not find quotes collection: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
			}
			quote = core.NewRecord(col)

			number, err := services.GenerateQuoteNumber(app, time.Now())
			if err != nil {
				log.Printf("quote_form: could not generate quote number: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
			}
			quote.Set("quote_number", number)
		} else {
			var err error
			quote, err = app.FindRecordById("quotes", id)
			if err != nil {
				return e.String(http.StatusNotFound, "Devis introuvable")
			}
		}

		quote.Set("client", clientID)
		quote.Set("status", string(status))
		quote.Set("issue_date", issueDate)
		quote.Set("expiry_date", expiryDate)
		quote.Set("discount", discount)
		quote.Set("tax_rate", totals.TaxRate)
		quote.Set("subtotal", totals.Subtotal)
		quote.Set("tax_amount", totals.TaxAmount)
		quote.Set("total", totals.Total)
		quote.Set("notes", notes)
		quote.Set("terms", terms)

		// One transaction for the quote and its lines: a failure mid-rewrite
		// must not leave the quote stripped of its persisted items.
		err := app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(quote); err != nil {
				return fmt.Errorf("save quote: %w", err)
			}
			return rewriteQuoteItems(txApp, quote.Id, list.Items())
		})
		if err != nil {
			log.Printf("quote_form: could not save quote: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		if id == "" {
			SetToast(e, "success", fmt.Sprintf("Devis %s créé", quote.GetString("quote_number")))
		} else {
			SetToast(e, "success", "Devis mis à jour")
		}
		return redirect(e, "/quotes/"+quote.Id)
	}
}

// rewriteQuoteItems replaces the persisted lines of a quote with the given
// list, preserving list order through sort_order. Callers run it inside a
// transaction so the delete and the inserts land together or not at all.
func rewriteQuoteItems(app core.App, quoteID string, items []services.LineItem) error {
	existing, err := app.FindRecordsByFilter(
		"quote_items", "quote = {:id}", "", 0, 0,
		map[string]any{"id": quoteID},
	)
	if err == nil {
		for _, rec := range existing {
			if err := app.Delete(rec); err != nil {
				return fmt.Errorf("delete old quote item: %w", err)
			}
		}
	}

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return fmt.Errorf("find quote_items collection: %w", err)
	}

	for i, it := range items {
		rec := core.NewRecord(col)
		rec.Set("quote", quoteID)
		rec.Set("sort_order", i+1)
		rec.Set("description", it.Description)
		rec.Set("quantity", it.Quantity)
		rec.Set("unit_price", it.UnitPrice)
		rec.Set("total", it.Total)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("save quote item %d: %w", i+1, err)
		}
	}
	return nil
}

// datePart truncates a stored datetime to its YYYY-MM-DD prefix for date
// inputs.
func datePart(stored string) string {
	if len(stored) > 10 {
		return stored[:10]
	}
	return stored
}
