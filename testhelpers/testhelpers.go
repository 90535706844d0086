// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestClient creates a client record with the given name and returns it.
func CreateTestClient(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		t.Fatalf("failed to find clients collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("address", "12 rue des Artisans")
	record.Set("postal_code", "69003")
	record.Set("city", "Lyon")
	record.Set("country", "France")
	record.Set("email", "contact@exemple.fr")
	record.Set("phone", "04 72 00 11 22")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test client: %v", err)
	}

	return record
}

// CreateTestProduct creates a product record and returns it.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name string, unitPrice float64, isTemplate bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("description", "Prestation de test")
	record.Set("unit_price", unitPrice)
	record.Set("unit", "forfait")
	record.Set("is_template", isTemplate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestQuote creates a quote record linked to a client and returns it.
// Pass an empty clientID for a quote without a client.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, clientID, quoteNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote_number", quoteNumber)
	if clientID != "" {
		record.Set("client", clientID)
	}
	record.Set("status", "draft")
	record.Set("issue_date", "2025-03-15")
	record.Set("tax_rate", 0.20)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestQuoteItem creates a quote line record.
func CreateTestQuoteItem(t *testing.T, app *pocketbase.PocketBase, quoteID string, sortOrder int, description string, quantity, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		t.Fatalf("failed to find quote_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("quantity", quantity)
	record.Set("unit_price", unitPrice)
	record.Set("total", quantity*unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote item: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
