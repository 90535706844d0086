package handlers

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"easydevis/testhelpers"
)

func TestHandleQuoteCreate_GET(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestClient(t, app, "SARL Dupont")
	handler := HandleQuoteCreate(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/new", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Nouveau devis", "SARL Dupont", "item_description", "Électricité générale")
}

func TestHandleQuoteSave_Create(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "SARL Dupont")
	handler := HandleQuoteSave(app)

	form := url.Values{}
	form.Set("client", client.Id)
	form.Set("status", "draft")
	form.Set("issue_date", "2025-03-15")
	form.Set("expiry_date", "2025-04-15")
	form.Set("discount", "100")
	form.Add("item_description", "Tableau électrique")
	form.Add("item_quantity", "1")
	form.Add("item_unit_price", "600")
	form.Add("item_description", "Points lumineux")
	form.Add("item_quantity", "8")
	form.Add("item_unit_price", "50")

	req := httptest.NewRequest(http.MethodPost, "/quotes",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	location := rec.Header().Get("HX-Redirect")
	if !strings.HasPrefix(location, "/quotes/") {
		t.Fatalf("expected redirect to the new quote, got %q", location)
	}

	quote, err := app.FindRecordById("quotes", strings.TrimPrefix(location, "/quotes/"))
	if err != nil {
		t.Fatalf("failed to load created quote: %v", err)
	}
	if number := quote.GetString("quote_number"); !strings.HasPrefix(number, "DV-") {
		t.Errorf("expected a DV- quote number, got %q", number)
	}

	// 600 + 400 = 1000, minus 100 discount, plus 20% VAT on 900.
	if got := quote.GetFloat("subtotal"); math.Abs(got-1000) > 0.001 {
		t.Errorf("expected subtotal 1000, got %v", got)
	}
	if got := quote.GetFloat("tax_amount"); math.Abs(got-180) > 0.001 {
		t.Errorf("expected tax_amount 180, got %v", got)
	}
	if got := quote.GetFloat("total"); math.Abs(got-1080) > 0.001 {
		t.Errorf("expected total 1080, got %v", got)
	}

	items, err := app.FindRecordsByFilter("quote_items", "quote = {:id}", "sort_order", 0, 0,
		map[string]any{"id": quote.Id})
	if err != nil {
		t.Fatalf("failed to load quote items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 quote items, got %d", len(items))
	}
	if got := items[0].GetString("description"); got != "Tableau électrique" {
		t.Errorf("expected first item first, got %q", got)
	}
	if got := items[1].GetInt("sort_order"); got != 2 {
		t.Errorf("expected sort_order 2 on second item, got %d", got)
	}
}

func TestHandleQuoteSave_MissingClient(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteSave(app)

	form := url.Values{}
	form.Set("status", "draft")
	form.Set("issue_date", "2025-03-15")
	form.Add("item_description", "Ligne")
	form.Add("item_quantity", "1")
	form.Add("item_unit_price", "100")

	req := httptest.NewRequest(http.MethodPost, "/quotes",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("expected form re-render, got a redirect")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Le client est obligatoire")

	records, _ := app.FindRecordsByFilter("quotes", "id != ''", "", 0, 0, nil)
	if len(records) != 0 {
		t.Errorf("expected no quote to be created, found %d", len(records))
	}
}

func TestHandleQuoteSave_NoValidLines(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "SARL Dupont")
	handler := HandleQuoteSave(app)

	form := url.Values{}
	form.Set("client", client.Id)
	form.Set("status", "draft")
	form.Set("issue_date", "2025-03-15")
	// A priced line without description does not count as valid.
	form.Add("item_description", "")
	form.Add("item_quantity", "2")
	form.Add("item_unit_price", "100")

	req := httptest.NewRequest(http.MethodPost, "/quotes",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("expected form re-render, got a redirect")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "au moins une ligne")
}

func TestHandleQuoteSave_UpdateRewritesItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "SARL Dupont")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "DV-20250315-0001")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Ancienne ligne", 1, 500)
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 2, "Autre ancienne ligne", 1, 200)
	handler := HandleQuoteSave(app)

	form := url.Values{}
	form.Set("client", client.Id)
	form.Set("status", "sent")
	form.Set("issue_date", "2025-03-15")
	form.Add("item_description", "Nouvelle ligne")
	form.Add("item_quantity", "3")
	form.Add("item_unit_price", "150")

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+quote.Id,
		strings.NewReader(form.Encode()))
	req.SetPathValue("id", quote.Id)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/quotes/"+quote.Id)

	updated, err := app.FindRecordById("quotes", quote.Id)
	if err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if got := updated.GetString("quote_number"); got != "DV-20250315-0001" {
		t.Errorf("expected quote number to be preserved on update, got %q", got)
	}
	if got := updated.GetString("status"); got != "sent" {
		t.Errorf("expected status sent, got %q", got)
	}
	if got := updated.GetFloat("total"); math.Abs(got-540) > 0.001 {
		t.Errorf("expected total 540, got %v", got)
	}

	items, err := app.FindRecordsByFilter("quote_items", "quote = {:id}", "sort_order", 0, 0,
		map[string]any{"id": quote.Id})
	if err != nil {
		t.Fatalf("failed to load quote items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected old items replaced by 1 new item, got %d", len(items))
	}
	if got := items[0].GetString("description"); got != "Nouvelle ligne" {
		t.Errorf("expected the new line, got %q", got)
	}
}

func TestHandleQuoteSave_ItemRewriteFailureKeepsOldItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "SARL Dupont")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "DV-20250315-0001")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Ancienne ligne", 1, 500)
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 2, "Autre ancienne ligne", 1, 200)

	// Fail every new line insert after the old lines were deleted: the
	// transaction must roll the deletes back.
	app.OnRecordCreate("quote_items").BindFunc(func(ev *core.RecordEvent) error {
		return errors.New("insert refused")
	})
	handler := HandleQuoteSave(app)

	form := url.Values{}
	form.Set("client", client.Id)
	form.Set("status", "sent")
	form.Set("issue_date", "2025-03-15")
	form.Add("item_description", "Nouvelle ligne")
	form.Add("item_quantity", "3")
	form.Add("item_unit_price", "150")

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+quote.Id,
		strings.NewReader(form.Encode()))
	req.SetPathValue("id", quote.Id)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}

	items, err := app.FindRecordsByFilter("quote_items", "quote = {:id}", "sort_order", 0, 0,
		map[string]any{"id": quote.Id})
	if err != nil {
		t.Fatalf("failed to load quote items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected the original 2 items to survive the failed rewrite, got %d", len(items))
	}
	if got := items[0].GetString("description"); got != "Ancienne ligne" {
		t.Errorf("expected original first line, got %q", got)
	}

	unchanged, err := app.FindRecordById("quotes", quote.Id)
	if err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if got := unchanged.GetString("status"); got != "draft" {
		t.Errorf("expected quote fields rolled back with the items, got status %q", got)
	}
}

func TestHandleQuoteEdit_Prefills(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "SARL Dupont")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "DV-20250315-0007")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Peinture plafond", 25, 28)
	handler := HandleQuoteEdit(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/"+quote.Id+"/edit", nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"DV-20250315-0007", "Peinture plafond", "2025-03-15")
}

func TestParseQuoteItems_DropsBlankRows(t *testing.T) {
	form := url.Values{}
	form.Add("item_description", "Ligne utile")
	form.Add("item_quantity", "2")
	form.Add("item_unit_price", "50")
	form.Add("item_description", "")
	form.Add("item_quantity", "")
	form.Add("item_unit_price", "")

	req := httptest.NewRequest(http.MethodPost, "/quotes",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(nil, req, rec)
	if err := e.Request.ParseForm(); err != nil {
		t.Fatalf("failed to parse form: %v", err)
	}

	items := parseQuoteItems(e)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after dropping the blank row, got %d", len(items))
	}
	if items[0].Description != "Ligne utile" || items[0].Quantity != 2 {
		t.Errorf("unexpected parsed item: %+v", items[0])
	}
}
