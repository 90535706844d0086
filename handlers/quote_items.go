package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/services"
	"easydevis/templates"
)

// HandleQuoteItemRow serves one fresh editable line for the form's
// "add line" button.
func HandleQuoteItemRow(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		list := services.NewItemList(false)
		item := list.Add()

		form := templates.QuoteItemForm{
			Quantity:  services.FormatQuantity(item.Quantity),
			UnitPrice: fmt.Sprintf("%.2f", item.UnitPrice),
			Total:     services.FormatEUR(item.Total),
		}
		return templates.QuoteItemRowFragment(form).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteTemplateRows replaces the form's item rows with a service
// template's blueprint lines. An unknown key leaves a single default line.
func HandleQuoteTemplateRows(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		key := e.Request.URL.Query().Get("template_key")

		list := services.NewItemList(true)
		if n := services.ApplyTemplate(list, key); n == 0 {
			SetToast(e, "warning", "Modèle inconnu")
			list.Add()
		} else {
			SetToast(e, "success", fmt.Sprintf("%d lignes ajoutées", n))
		}

		return templates.QuoteItemRowsFragment(itemForms(list.Items())).Render(e.Request.Context(), e.Response)
	}
}

// HandleTemplateImportProducts bulk-inserts a service template's blueprint
// lines into the product catalog. Rows that fail to save do not stop the
// rest; the toast reports partial failures.
func HandleTemplateImportProducts(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulaire invalide")
		}
		key := e.Request.FormValue("template_key")

		blueprints := services.ServiceTemplate(key)
		if blueprints == nil {
			return ErrorToast(e, http.StatusBadRequest, "Modèle inconnu")
		}

		col, err := app.FindCollectionByNameOrId("products")
		if err != nil {
			log.Printf("template_import: could not find products collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		var result services.BatchResult
		for _, bp := range blueprints {
			rec := core.NewRecord(col)
			rec.Set("name", bp.Description)
			rec.Set("unit_price", bp.UnitPrice)
			rec.Set("is_template", false)
			if err := app.Save(rec); err != nil {
				log.Printf("template_import: could not save %q: %v", bp.Description, err)
				result.Failed = append(result.Failed, services.BatchFailure{Blueprint: bp, Err: err})
				continue
			}
			result.Succeeded = append(result.Succeeded, bp)
		}

		if result.OK() {
			SetToast(e, "success", fmt.Sprintf("%d prestations ajoutées au catalogue", len(result.Succeeded)))
		} else {
			SetToast(e, "warning", fmt.Sprintf("%d prestations ajoutées, %d en échec",
				len(result.Succeeded), len(result.Failed)))
		}
		return redirect(e, "/products")
	}
}
