package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"easydevis/testhelpers"
)

func TestHandleProductList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProduct(t, app, "Pose de parquet", 45.50, false)
	testhelpers.CreateTestProduct(t, app, "Modèle partagé", 100, true)
	handler := HandleProductList(app)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Pose de parquet", "Modèle partagé", "badge-template", "Importer le modèle")
}

func TestHandleProductList_Search(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProduct(t, app, "Pose de parquet", 45.50, false)
	testhelpers.CreateTestProduct(t, app, "Peinture plafond", 28, false)
	handler := HandleProductList(app)

	req := httptest.NewRequest(http.MethodGet, "/products?q=parquet", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Pose de parquet")
	if strings.Contains(body, "Peinture plafond") {
		t.Error("expected non-matching product to be filtered out")
	}
}
