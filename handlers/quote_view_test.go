package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"easydevis/testhelpers"
)

func TestHandleQuoteView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "SARL Dupont")
	quote := testhelpers.CreateTestQuote(t, app, client.Id, "DV-20250315-0001")
	quote.Set("subtotal", 1000.0)
	quote.Set("tax_amount", 200.0)
	quote.Set("total", 1200.0)
	if err := app.Save(quote); err != nil {
		t.Fatalf("failed to update quote: %v", err)
	}
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Tableau électrique", 1, 600)
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 2, "Points lumineux", 8, 50)
	handler := HandleQuoteView(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/"+quote.Id, nil)
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
		"DV-20250315-0001", "SARL Dupont", "Brouillon",
		"Tableau électrique", "Points lumineux", "15/03/2025", "TVA (20 %)")
}

func TestHandleQuoteView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteView(app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleQuoteStatusChange(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "", "DV-20250315-0001")
	handler := HandleQuoteStatusChange(app)

	form := url.Values{}
	form.Set("status", "sent")

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+quote.Id+"/status",
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
	if got := updated.GetString("status"); got != "sent" {
		t.Errorf("expected status sent, got %q", got)
	}
}

func TestHandleQuoteStatusChange_UnknownStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "", "DV-20250315-0001")
	handler := HandleQuoteStatusChange(app)

	form := url.Values{}
	form.Set("status", "archived")

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+quote.Id+"/status",
		strings.NewReader(form.Encode()))
	req.SetPathValue("id", quote.Id)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	updated, err := app.FindRecordById("quotes", quote.Id)
	if err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if got := updated.GetString("status"); got != "draft" {
		t.Errorf("expected status unchanged, got %q", got)
	}
}

func TestHandleQuoteDelete_CascadesItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "", "DV-20250315-0001")
	testhelpers.CreateTestQuoteItem(t, app, quote.Id, 1, "Ligne", 1, 100)
	handler := HandleQuoteDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/quotes/"+quote.Id, nil)
	req.SetPathValue("id", quote.Id)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/quotes")

	if _, err := app.FindRecordById("quotes", quote.Id); err == nil {
		t.Error("expected quote to be deleted")
	}
	items, _ := app.FindRecordsByFilter("quote_items", "quote = {:id}", "", 0, 0,
		map[string]any{"id": quote.Id})
	if len(items) != 0 {
		t.Errorf("expected cascade delete of items, found %d", len(items))
	}
}
