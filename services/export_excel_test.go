package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateQuoteListExcel(t *testing.T) {
	data := QuoteListExport{
		GeneratedOn: "15/03/2025",
		Rows: []QuoteListRow{
			{QuoteNumber: "DV-20250315-0001", ClientName: "SARL Dupont Construction", Status: StatusSent, IssueDate: "15/03/2025", ExpiryDate: "15/04/2025", Total: 1572},
			{QuoteNumber: "DV-20250315-0002", ClientName: "Entreprise Martin", Status: StatusDraft, IssueDate: "15/03/2025", Total: 860},
		},
		Total: 2432,
	}

	raw, err := GenerateQuoteListExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuoteListExcel: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); name != "Devis" {
		t.Errorf("sheet name = %q, want Devis", name)
	}

	number, err := f.GetCellValue("Devis", "A5")
	if err != nil {
		t.Fatal(err)
	}
	if number != "DV-20250315-0001" {
		t.Errorf("A5 = %q, want first quote number", number)
	}

	status, err := f.GetCellValue("Devis", "C6")
	if err != nil {
		t.Fatal(err)
	}
	if status != "Brouillon" {
		t.Errorf("C6 = %q, want French status label", status)
	}
}

func TestGenerateQuoteListExcel_Empty(t *testing.T) {
	raw, err := GenerateQuoteListExcel(QuoteListExport{GeneratedOn: "15/03/2025"})
	if err != nil {
		t.Fatalf("GenerateQuoteListExcel: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("empty workbook")
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@cmd", "'@cmd"},
		{"SARL Dupont", "SARL Dupont"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.input); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
