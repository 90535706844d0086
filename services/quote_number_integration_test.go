package services_test

import (
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"

	"easydevis/services"
	"easydevis/testhelpers"
)

func TestGenerateQuoteNumberStartsAtOne(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	day := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

	got, err := services.GenerateQuoteNumber(app, day)
	if err != nil {
		t.Fatalf("GenerateQuoteNumber: %v", err)
	}
	if got != "DV-20250315-0001" {
		t.Errorf("first number of the day = %q, want DV-20250315-0001", got)
	}
}

func TestGenerateQuoteNumberIncrementsPerDay(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	day := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

	testhelpers.CreateTestQuote(t, app, "", "DV-20250315-0001")
	testhelpers.CreateTestQuote(t, app, "", "DV-20250315-0002")

	got, err := services.GenerateQuoteNumber(app, day)
	if err != nil {
		t.Fatalf("GenerateQuoteNumber: %v", err)
	}
	if got != "DV-20250315-0003" {
		t.Errorf("third number of the day = %q, want DV-20250315-0003", got)
	}
}

func TestGenerateQuoteNumberIgnoresOtherDays(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestQuote(t, app, "", "DV-20250314-0001")
	testhelpers.CreateTestQuote(t, app, "", "DV-20250314-0002")

	day := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	got, err := services.GenerateQuoteNumber(app, day)
	if err != nil {
		t.Fatalf("GenerateQuoteNumber: %v", err)
	}
	if got != "DV-20250315-0001" {
		t.Errorf("new day should restart the sequence, got %q", got)
	}
}

func TestGenerateQuoteNumberQueryFailure(t *testing.T) {
	// Bare app without the quotes collection: the count query fails and the
	// generator must surface that instead of restarting the day at 0001.
	app := pocketbase.NewWithConfig(pocketbase.Config{DefaultDataDir: t.TempDir()})
	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if _, err := services.GenerateQuoteNumber(app, time.Now()); err == nil {
		t.Fatal("expected an error when the quotes collection cannot be queried")
	}
}
