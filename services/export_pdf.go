package services

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"easydevis/profile"
)

var (
	inkColor   = &props.Color{Red: 33, Green: 37, Blue: 41}
	mutedColor = &props.Color{Red: 100, Green: 100, Blue: 100}
	paleColor  = &props.Color{Red: 245, Green: 245, Blue: 245}
	altColor   = &props.Color{Red: 248, Green: 249, Blue: 250}
	whiteColor = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GenerateQuotePDF lays out a quote as a paginated A4 document and returns
// the raw PDF bytes. The company band at the top and the footer band at the
// bottom repeat on every page; the body flows across pages as needed.
func GenerateQuotePDF(data *QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.Bottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterHeader(companyBandRows(data.Company)...); err != nil {
		return nil, fmt.Errorf("register quote header band: %w", err)
	}
	if footer := footerBandRows(data.Company.Footer); len(footer) > 0 {
		if err := m.RegisterFooter(footer...); err != nil {
			return nil, fmt.Errorf("register quote footer band: %w", err)
		}
	}

	addQuoteIdentity(m, data)
	addClientBlock(m, data.Client)
	addItemsTable(m, data.Items)
	addQuoteTotals(m, data)
	addNotesAndTerms(m, data)
	addSignatureBlock(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// companyBandRows builds the rows redrawn at the top of every page: the
// logo, the issuer identity lines and a separator rule. Absent fields are
// skipped rather than rendered blank, and a missing or unreadable logo
// simply leaves its slot empty.
func companyBandRows(company profile.Profile) []core.Row {
	nameStyle := props.Text{
		Size:  13,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: inkColor,
	}
	detailStyle := props.Text{
		Size:  8,
		Align: align.Left,
		Color: mutedColor,
	}
	titleStyle := props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: inkColor,
	}

	logoCol := col.New(2)
	if img, ext, ok := sniffLogo(company.Logo); ok {
		logoCol.Add(image.NewFromBytes(img, ext, props.Rect{
			Center:  false,
			Percent: 90,
		}))
	}

	identity := col.New(6)
	top := 0.0
	if company.Name != "" {
		identity.Add(text.New(company.Name, textAt(nameStyle, top)))
		top += 6
	}
	if company.Address != "" {
		identity.Add(text.New(company.Address, textAt(detailStyle, top)))
		top += 4
	}
	if company.SIRET != "" {
		identity.Add(text.New(fmt.Sprintf("SIRET : %s", company.SIRET), textAt(detailStyle, top)))
		top += 4
	}
	contact := joinNonEmpty([]string{company.Email, company.Phone}, " | ")
	if contact != "" {
		identity.Add(text.New(contact, textAt(detailStyle, top)))
	}

	return []core.Row{
		row.New(22).Add(
			logoCol,
			identity,
			col.New(4).Add(text.New("DEVIS", titleStyle)),
		),
		line.NewRow(2, props.Line{
			Color:     mutedColor,
			Thickness: 0.3,
		}),
		row.New(2),
	}
}

// footerBandRows builds the rows redrawn at the bottom of every page. The
// configured footer text wraps as needed; the page counter is drawn by the
// document config below it. No configured footer means no band at all.
func footerBandRows(footer string) []core.Row {
	if footer == "" {
		return nil
	}

	height := footerBandHeight(footer)

	return []core.Row{
		line.NewRow(2, props.Line{
			Color:     mutedColor,
			Thickness: 0.2,
		}),
		row.New(height).Add(
			col.New(12).Add(text.New(footer, props.Text{
				Size:  7,
				Align: align.Center,
				Color: mutedColor,
			})),
		),
	}
}

// addQuoteIdentity adds the first-page identity line: quote number on the
// left, client name centered, issue date on the right. Expiry and status go
// on a second line when an expiry date is set.
func addQuoteIdentity(m core.Maroto, data *QuoteExportData) {
	numberStyle := props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: inkColor,
	}
	clientStyle := props.Text{
		Size:  9,
		Align: align.Center,
		Color: inkColor,
	}
	dateStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	clientName := ""
	if data.Client != nil {
		clientName = data.Client.Name
	}

	m.AddRows(
		row.New(7).Add(
			col.New(4).Add(text.New(fmt.Sprintf("Devis n° %s", data.QuoteNumber), numberStyle)),
			col.New(4).Add(text.New(clientName, clientStyle)),
			col.New(4).Add(text.New(fmt.Sprintf("Date : %s", data.IssueDate), dateStyle)),
		),
	)

	if data.ExpiryDate != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(6).Add(text.New(fmt.Sprintf("Statut : %s", data.Status.Label()), props.Text{
					Size:  8,
					Align: align.Left,
					Color: mutedColor,
				})),
				col.New(6).Add(text.New(fmt.Sprintf("Valable jusqu'au : %s", data.ExpiryDate), dateStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addClientBlock adds the recipient box. With no client attached, a single
// placeholder line takes its place so the document never shows an empty box.
func addClientBlock(m core.Maroto, client *ExportClient) {
	sectionLabel := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: mutedColor,
	}
	boxCell := &props.Cell{BackgroundColor: paleColor}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("CLIENT", sectionLabel)),
		),
	)

	if client == nil {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(text.New("Aucun client sélectionné", props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Left,
					Color: mutedColor,
				})).WithStyle(boxCell),
			),
		)
		m.AddRows(row.New(3))
		return
	}

	lines := clientLines(client)
	box := col.New(12).WithStyle(boxCell)
	top := 1.5
	for i, l := range lines {
		style := props.Text{Size: 8, Align: align.Left}
		if i == 0 {
			style.Style = fontstyle.Bold
			style.Size = 9
		}
		box.Add(text.New(l, textAt(style, top)))
		top += 4.5
	}

	m.AddRows(row.New(float64(len(lines))*4.5 + 3).Add(box))
	m.AddRows(row.New(3))
}

// clientLines flattens the client block into printable lines, skipping
// empty fields. Postal code and city share a line, French style.
func clientLines(client *ExportClient) []string {
	var lines []string
	if client.Name != "" {
		lines = append(lines, client.Name)
	}
	if client.Address != "" {
		lines = append(lines, client.Address)
	}
	if cityLine := joinNonEmpty([]string{client.PostalCode, client.City}, " "); cityLine != "" {
		lines = append(lines, cityLine)
	}
	if client.Country != "" {
		lines = append(lines, client.Country)
	}
	if contact := joinNonEmpty([]string{client.Email, client.Phone}, " | "); contact != "" {
		lines = append(lines, contact)
	}
	if len(lines) == 0 {
		lines = append(lines, "Aucun client sélectionné")
	}
	return lines
}

// addItemsTable adds the line items table: header row, body rows with
// alternating backgrounds, and a placeholder row when there is nothing
// printable.
func addItemsTable(m core.Maroto, items []ExportLineItem) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: whiteColor,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: inkColor}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Quantité", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Prix unitaire HT", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total HT", headerText)).WithStyle(&headerCell),
		),
	)

	if !hasPrintableItems(items) {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(text.New("Aucune ligne", props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Center,
					Color: mutedColor,
				})),
			),
		)
		m.AddRows(row.New(2))
		return
	}

	for i, item := range items {
		bodyTextLeft := props.Text{Size: 8, Align: align.Left}
		bodyTextCenter := props.Text{Size: 8, Align: align.Center}
		bodyTextRight := props.Text{Size: 8, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altColor}
		}

		desc := item.Description
		if desc == "" {
			desc = "—"
		}

		colDesc := col.New(6).Add(text.New(desc, bodyTextLeft))
		colQty := col.New(2).Add(text.New(FormatQuantity(item.Quantity), bodyTextCenter))
		colPrice := col.New(2).Add(text.New(FormatEUR(item.UnitPrice), bodyTextRight))
		colTotal := col.New(2).Add(text.New(FormatEUR(item.Total), bodyTextRight))

		if cellStyle != nil {
			colDesc = colDesc.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colPrice = colPrice.WithStyle(cellStyle)
			colTotal = colTotal.WithStyle(cellStyle)
		}

		m.AddRows(row.New(7).Add(colDesc, colQty, colPrice, colTotal))
	}

	m.AddRows(row.New(2))
}

// hasPrintableItems reports whether at least one item carries a
// description. A quote whose lines are all blank prints the placeholder.
func hasPrintableItems(items []ExportLineItem) bool {
	for _, item := range items {
		if item.Description != "" {
			return true
		}
	}
	return false
}

// addQuoteTotals adds the right-aligned amounts block. The discount row only
// appears when a discount was granted, shown as a negative amount.
func addQuoteTotals(m core.Maroto, data *QuoteExportData) {
	summaryCell := &props.Cell{BackgroundColor: paleColor}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Sous-total HT", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatEUR(data.Subtotal), valueStyle)).WithStyle(summaryCell),
		),
	)

	if data.Discount > 0 {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New("Remise", labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(FormatEUR(-data.Discount), valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	tvaLabel := fmt.Sprintf("TVA (%.0f %%)", data.TaxRate*100)
	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New(tvaLabel, labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatEUR(data.TaxAmount), valueStyle)).WithStyle(summaryCell),
		),
	)

	grandCell := &props.Cell{BackgroundColor: inkColor}
	grandLabelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: whiteColor,
	}
	grandValueStyle := grandLabelStyle

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Total TTC", grandLabelStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatEUR(data.Total), grandValueStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

// addNotesAndTerms adds the notes and payment conditions sections, each
// only when non-empty. Long text wraps within the page width.
func addNotesAndTerms(m core.Maroto, data *QuoteExportData) {
	sectionLabel := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: mutedColor,
	}
	bodyStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	if data.Notes != "" {
		m.AddRows(
			row.New(6).Add(col.New(12).Add(text.New("NOTES", sectionLabel))),
		)
		m.AddRows(
			row.New(textBlockHeight(data.Notes)).Add(col.New(12).Add(text.New(data.Notes, bodyStyle))),
		)
		m.AddRows(row.New(2))
	}

	if data.Terms != "" {
		m.AddRows(
			row.New(6).Add(col.New(12).Add(text.New("CONDITIONS DE PAIEMENT", sectionLabel))),
		)
		m.AddRows(
			row.New(textBlockHeight(data.Terms)).Add(col.New(12).Add(text.New(data.Terms, bodyStyle))),
		)
		m.AddRows(row.New(2))
	}
}

// footerBandHeight sizes the footer row from the text length, counted in
// runes so accented text does not inflate the estimate. About 110
// characters fit one line at size 7 across the page.
func footerBandHeight(footer string) float64 {
	lines := utf8.RuneCountInString(footer)/110 + 1
	return float64(lines)*3.5 + 2
}

// textBlockHeight sizes a free-text row from its length in runes. About 95
// characters fit one line at size 8 across the full width.
func textBlockHeight(s string) float64 {
	lines := utf8.RuneCountInString(s)/95 + 1
	return float64(lines) * 4.5
}

// addSignatureBlock adds the acceptance area: a rule on the right half with
// its captions below. The whole block is a single row so a page break never
// splits it.
func addSignatureBlock(m core.Maroto) {
	m.AddRows(row.New(6))

	captionStyle := func(top float64) props.Text {
		return props.Text{
			Top:   top,
			Size:  7,
			Align: align.Right,
			Color: mutedColor,
		}
	}

	m.AddRows(
		row.New(20).Add(
			col.New(6).Add(text.New("Bon pour accord :", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(6).
				Add(line.New(props.Line{
					Color:         inkColor,
					Thickness:     0.3,
					OffsetPercent: 55,
				})).
				Add(text.New("Signature et cachet de l'entreprise", captionStyle(12))).
				Add(text.New("Nom, fonction et signature", captionStyle(16))),
		),
	)
}

// sniffLogo validates the logo bytes and maps them to an image type maroto
// accepts. Anything that is not a PNG or a JPEG is dropped.
func sniffLogo(data []byte) ([]byte, extension.Type, bool) {
	switch {
	case len(data) >= 8 && bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return data, extension.Png, true
	case len(data) >= 3 && bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return data, extension.Jpg, true
	default:
		return nil, "", false
	}
}

// textAt shifts a text style down by top, for stacking several lines in one
// cell.
func textAt(style props.Text, top float64) props.Text {
	style.Top = top
	return style
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	result := ""
	for i, p := range nonEmpty {
		if i > 0 {
			result += sep
		}
		result += p
	}
	return result
}
