package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"easydevis/profile"
)

// QuoteExportData holds everything the PDF layout needs: the issuer
// profile, the client block, the lines and the computed amounts.
type QuoteExportData struct {
	Company profile.Profile

	QuoteNumber string
	Status      QuoteStatus
	IssueDate   string // DD/MM/YYYY
	ExpiryDate  string // DD/MM/YYYY, may be empty

	Client *ExportClient

	Items []ExportLineItem

	Subtotal  float64
	Discount  float64
	TaxRate   float64
	TaxAmount float64
	Total     float64

	Notes string
	Terms string
}

// ExportClient is the client block of the document. Empty fields are
// omitted from the rendered box.
type ExportClient struct {
	Name       string
	Address    string
	PostalCode string
	City       string
	Country    string
	Email      string
	Phone      string
}

// ExportLineItem is a single printable table row.
type ExportLineItem struct {
	Position    int
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}

// FileName returns the download name of the generated artifact,
// Devis_<quoteNumber>.pdf.
func (d *QuoteExportData) FileName() string {
	return fmt.Sprintf("Devis_%s.pdf", d.QuoteNumber)
}

// BuildQuoteExportData assembles export data for a persisted quote. The
// client lookup is best-effort: a dangling client reference degrades to the
// "no client" placeholder instead of failing the export.
func BuildQuoteExportData(app core.App, quoteID string, company profile.Profile) (*QuoteExportData, error) {
	quote, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return nil, fmt.Errorf("quote not found: %w", err)
	}

	var client *ExportClient
	if clientID := quote.GetString("client"); clientID != "" {
		c, err := app.FindRecordById("clients", clientID)
		if err != nil {
			log.Printf("quote_export: could not find client %s: %v", clientID, err)
		} else {
			client = &ExportClient{
				Name:       c.GetString("name"),
				Address:    c.GetString("address"),
				PostalCode: c.GetString("postal_code"),
				City:       c.GetString("city"),
				Country:    c.GetString("country"),
				Email:      c.GetString("email"),
				Phone:      c.GetString("phone"),
			}
		}
	}

	itemRecords, err := app.FindRecordsByFilter(
		"quote_items",
		"quote = {:quoteId}",
		"sort_order",
		0,
		0,
		map[string]any{"quoteId": quoteID},
	)
	if err != nil {
		log.Printf("quote_export: could not fetch items for quote %s: %v", quoteID, err)
		itemRecords = nil
	}

	var items []ExportLineItem
	var lineTotals []float64
	for i, rec := range itemRecords {
		qty := rec.GetFloat("quantity")
		price := rec.GetFloat("unit_price")
		total := LineTotal(qty, price)
		lineTotals = append(lineTotals, total)
		items = append(items, ExportLineItem{
			Position:    i + 1,
			Description: rec.GetString("description"),
			Quantity:    qty,
			UnitPrice:   price,
			Total:       total,
		})
	}

	taxRate := quote.GetFloat("tax_rate")
	if taxRate == 0 {
		taxRate = DefaultTaxRate
	}
	totals := CalcQuoteTotals(lineTotals, quote.GetFloat("discount"), taxRate)

	status, _ := ParseStatus(quote.GetString("status"))

	return &QuoteExportData{
		Company:     company,
		QuoteNumber: quote.GetString("quote_number"),
		Status:      status,
		IssueDate:   FormatDateFR(quote.GetString("issue_date")),
		ExpiryDate:  FormatDateFR(quote.GetString("expiry_date")),
		Client:      client,
		Items:       items,
		Subtotal:    totals.Subtotal,
		Discount:    totals.Discount,
		TaxRate:     totals.TaxRate,
		TaxAmount:   totals.TaxAmount,
		Total:       totals.Total,
		Notes:       quote.GetString("notes"),
		Terms:       quote.GetString("terms"),
	}, nil
}
