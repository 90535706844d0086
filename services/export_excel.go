package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// QuoteListRow is one line of the quote list export.
type QuoteListRow struct {
	QuoteNumber string
	ClientName  string
	Status      QuoteStatus
	IssueDate   string // DD/MM/YYYY
	ExpiryDate  string // DD/MM/YYYY, may be empty
	Total       float64
}

// QuoteListExport is the full data set of an Excel export of the quote
// list, already filtered the way the list page was.
type QuoteListExport struct {
	GeneratedOn string // DD/MM/YYYY
	Rows        []QuoteListRow
	Total       float64
}

// GenerateQuoteListExcel creates an Excel workbook from the given quote
// list and returns the file contents as a byte slice.
func GenerateQuoteListExcel(data QuoteListExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Devis"

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{20, 32, 14, 14, 14, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// Row 1: title, Row 2: generation date.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", "Liste des devis")
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Exporté le "+data.GeneratedOn)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	// Row 4: column headers.
	headers := []string{"Numéro", "Client", "Statut", "Date", "Validité", "Total TTC"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s4", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	row := 5
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.QuoteNumber))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.ClientName))
		f.SetCellValue(sheetName, "C"+rowStr, r.Status.Label())
		f.SetCellValue(sheetName, "D"+rowStr, r.IssueDate)
		f.SetCellValue(sheetName, "E"+rowStr, r.ExpiryDate)
		f.SetCellValue(sheetName, "F"+rowStr, FormatEUR(r.Total))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, rowStyle)

		row++
	}

	// Blank row, then the grand total.
	row++
	summaryRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "E"+summaryRow, "Total :")
	f.SetCellStyle(sheetName, "E"+summaryRow, "E"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "F"+summaryRow, FormatEUR(data.Total))
	f.SetCellStyle(sheetName, "F"+summaryRow, "F"+summaryRow, summaryValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
