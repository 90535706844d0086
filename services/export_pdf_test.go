package services

import (
	"strings"
	"testing"

	"easydevis/profile"
)

func fullExportData() *QuoteExportData {
	return &QuoteExportData{
		Company: profile.Profile{
			Name:    "Artisan Pro SARL",
			Address: "5 rue du Commerce, 69002 Lyon",
			SIRET:   "123 456 789 00012",
			Email:   "contact@artisanpro.fr",
			Phone:   "04 78 00 00 00",
			Footer:  "SARL au capital de 10 000 € - RCS Lyon 123 456 789 - TVA FR12345678900",
		},
		QuoteNumber: "DV-20250315-0001",
		Status:      StatusSent,
		IssueDate:   "15/03/2025",
		ExpiryDate:  "15/04/2025",
		Client: &ExportClient{
			Name:       "SARL Dupont Construction",
			Address:    "12 rue des Artisans",
			PostalCode: "69003",
			City:       "Lyon",
			Country:    "France",
			Email:      "contact@dupont-construction.fr",
			Phone:      "04 72 00 11 22",
		},
		Items: []ExportLineItem{
			{Position: 1, Description: "Peinture murs 2 couches", Quantity: 45, UnitPrice: 28, Total: 1260},
			{Position: 2, Description: "Protection de chantier", Quantity: 1, UnitPrice: 150, Total: 150},
		},
		Subtotal:  1410,
		Discount:  100,
		TaxRate:   0.20,
		TaxAmount: 262,
		Total:     1572,
		Notes:     "Accès par la cour arrière.",
		Terms:     "Acompte de 30% à la commande.",
	}
}

func assertIsPDF(t *testing.T, pdf []byte) {
	t.Helper()
	if len(pdf) == 0 {
		t.Fatal("generated PDF is empty")
	}
	if !strings.HasPrefix(string(pdf[:5]), "%PDF-") {
		t.Errorf("output does not start with %%PDF- header: %q", pdf[:5])
	}
}

func TestGenerateQuotePDF_Complete(t *testing.T) {
	pdf, err := GenerateQuotePDF(fullExportData())
	if err != nil {
		t.Fatalf("GenerateQuotePDF: %v", err)
	}
	assertIsPDF(t, pdf)
}

func TestGenerateQuotePDF_NoClient(t *testing.T) {
	data := fullExportData()
	data.Client = nil

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF without client: %v", err)
	}
	assertIsPDF(t, pdf)
}

func TestGenerateQuotePDF_NoItems(t *testing.T) {
	data := fullExportData()
	data.Items = nil
	data.Subtotal = 0
	data.Discount = 0
	data.TaxAmount = 0
	data.Total = 0

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF without items: %v", err)
	}
	assertIsPDF(t, pdf)
}

func TestGenerateQuotePDF_BlankDescriptions(t *testing.T) {
	data := fullExportData()
	data.Items = []ExportLineItem{
		{Position: 1, Quantity: 1, UnitPrice: 0, Total: 0},
	}

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF with blank lines: %v", err)
	}
	assertIsPDF(t, pdf)
}

func TestGenerateQuotePDF_MinimalCompany(t *testing.T) {
	data := fullExportData()
	data.Company = profile.Profile{Name: "Artisan Pro SARL"}

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF with minimal company: %v", err)
	}
	assertIsPDF(t, pdf)
}

func TestGenerateQuotePDF_CorruptLogoIsSkipped(t *testing.T) {
	data := fullExportData()
	data.Company.Logo = []byte("pas une image")

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF with corrupt logo: %v", err)
	}
	assertIsPDF(t, pdf)
}

func TestGenerateQuotePDF_ManyItemsPaginates(t *testing.T) {
	data := fullExportData()
	data.Items = nil
	for i := 0; i < 80; i++ {
		data.Items = append(data.Items, ExportLineItem{
			Position:    i + 1,
			Description: "Fourniture et pose de cloison sèche",
			Quantity:    2,
			UnitPrice:   85,
			Total:       170,
		})
	}

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF with many items: %v", err)
	}
	assertIsPDF(t, pdf)
	// A quote with 80 lines cannot fit one page, so the output must be
	// noticeably larger than the single page variant.
	single, err := GenerateQuotePDF(fullExportData())
	if err != nil {
		t.Fatal(err)
	}
	if len(pdf) <= len(single) {
		t.Errorf("expected multi-page output to be larger: %d <= %d", len(pdf), len(single))
	}
}

func TestGenerateQuotePDF_LongFooterAcrossPages(t *testing.T) {
	data := fullExportData()
	data.Company.Footer = strings.Repeat(
		"SARL au capital de 10 000 € - RCS Lyon 123 456 789 - TVA FR12345678900 - ", 4,
	) + "Assurance décennale n° 987654"
	data.Items = nil
	for i := 0; i < 80; i++ {
		data.Items = append(data.Items, ExportLineItem{
			Position:    i + 1,
			Description: "Réfection complète des enduits intérieurs",
			Quantity:    3,
			UnitPrice:   62,
			Total:       186,
		})
	}

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF with wrapping footer: %v", err)
	}
	assertIsPDF(t, pdf)
}

func TestFooterBandRows(t *testing.T) {
	if rows := footerBandRows(""); rows != nil {
		t.Errorf("empty footer should produce no rows, got %d", len(rows))
	}

	short := footerBandRows("SIRET 123 456 789 00012")
	long := footerBandRows(strings.Repeat("Mentions légales étendues sur plusieurs lignes. ", 6))
	if len(short) != 2 || len(long) != 2 {
		t.Fatalf("expected rule + text rows, got %d and %d", len(short), len(long))
	}
}

func TestFooterBandHeight(t *testing.T) {
	short := footerBandHeight("SIRET 123 456 789 00012")
	long := footerBandHeight(strings.Repeat("Mentions légales étendues sur plusieurs lignes. ", 6))
	if long <= short {
		t.Errorf("wrapping footer must get a taller band: %.1f <= %.1f", long, short)
	}

	// Accents count as one character each, not one per byte.
	ascii := strings.Repeat("e", 100)
	accented := strings.Repeat("é", 100)
	if footerBandHeight(accented) != footerBandHeight(ascii) {
		t.Errorf("accented text over-counted: %.1f != %.1f",
			footerBandHeight(accented), footerBandHeight(ascii))
	}
}

func TestTextBlockHeight(t *testing.T) {
	short := textBlockHeight("Accès par la cour arrière.")
	long := textBlockHeight(strings.Repeat("Conditions de règlement détaillées. ", 8))
	if long <= short {
		t.Errorf("long text must get a taller block: %.1f <= %.1f", long, short)
	}
	if textBlockHeight(strings.Repeat("à", 90)) != textBlockHeight(strings.Repeat("a", 90)) {
		t.Error("accented text over-counted in block height")
	}
}

func TestSniffLogo(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)

	if _, ext, ok := sniffLogo(png); !ok || ext == "" {
		t.Error("PNG magic not recognized")
	}
	if _, ext, ok := sniffLogo(jpeg); !ok || ext == "" {
		t.Error("JPEG magic not recognized")
	}
	if _, _, ok := sniffLogo([]byte("GIF89a")); ok {
		t.Error("GIF must be rejected")
	}
	if _, _, ok := sniffLogo(nil); ok {
		t.Error("empty bytes must be rejected")
	}
}

func TestQuoteExportDataFileName(t *testing.T) {
	data := &QuoteExportData{QuoteNumber: "DV-20250315-0001"}
	if got := data.FileName(); got != "Devis_DV-20250315-0001.pdf" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	tests := []struct {
		parts []string
		sep   string
		want  string
	}{
		{[]string{"a", "b", "c"}, " | ", "a | b | c"},
		{[]string{"a", "", "c"}, " | ", "a | c"},
		{[]string{"", ""}, " | ", ""},
		{nil, " | ", ""},
	}

	for _, tt := range tests {
		if got := joinNonEmpty(tt.parts, tt.sep); got != tt.want {
			t.Errorf("joinNonEmpty(%v) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}
