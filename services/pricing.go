// Package services holds the quote pricing, numbering, catalog and export
// logic, free of any HTTP or storage concerns.
package services

import (
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the French VAT rate applied to all quotes.
const DefaultTaxRate = 0.20

// QuoteTotals holds the aggregated amounts for a quote.
type QuoteTotals struct {
	Subtotal  float64
	Discount  float64
	TaxRate   float64
	TaxAmount float64
	Total     float64
}

// LineTotal computes quantity × unit price for a single quote line,
// rounded to 2 decimal places. The multiplication runs through a decimal
// type so amounts such as 0.1 × 3 never pick up binary float noise.
func LineTotal(quantity, unitPrice float64) float64 {
	total := decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(unitPrice)).
		Round(2)
	f, _ := total.Float64()
	return f
}

// CalcQuoteTotals computes subtotal, tax and grand total from line totals.
// The taxable base is clamped at zero: a discount larger than the subtotal
// yields zero tax, not negative tax.
//
//	subtotal  = Σ lineTotals
//	taxAmount = max(0, subtotal − discount) × taxRate
//	total     = subtotal − discount + taxAmount
func CalcQuoteTotals(lineTotals []float64, discount, taxRate float64) QuoteTotals {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(decimal.NewFromFloat(lt))
	}

	disc := decimal.NewFromFloat(discount)
	base := subtotal.Sub(disc)
	if base.IsNegative() {
		base = decimal.Zero
	}

	taxAmount := base.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	total := subtotal.Sub(disc).Add(taxAmount).Round(2)

	sub, _ := subtotal.Round(2).Float64()
	tax, _ := taxAmount.Float64()
	tot, _ := total.Float64()

	return QuoteTotals{
		Subtotal:  sub,
		Discount:  discount,
		TaxRate:   taxRate,
		TaxAmount: tax,
		Total:     tot,
	}
}
