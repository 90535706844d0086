package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/templates"
)

// HandleProductCreate renders the empty product form.
func HandleProductCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ProductFormData{Errors: make(map[string]string)}
		return render(e, templates.ProductFormPage(data), templates.ProductFormContent(data))
	}
}

// HandleProductEdit renders the form pre-filled from a persisted product.
// Template-flagged products are shared presets and cannot be edited.
func HandleProductEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Prestation introuvable")
		}
		if record.GetBool("is_template") {
			SetToast(e, "warning", "Les modèles partagés ne sont pas modifiables")
			return redirect(e, "/products")
		}

		data := templates.ProductFormData{
			ID:          record.Id,
			Name:        record.GetString("name"),
			Description: record.GetString("description"),
			UnitPrice:   fmt.Sprintf("%.2f", record.GetFloat("unit_price")),
			Unit:        record.GetString("unit"),
			Category:    record.GetString("category"),
			Errors:      make(map[string]string),
		}
		return render(e, templates.ProductFormPage(data), templates.ProductFormContent(data))
	}
}

// HandleProductSave creates a product (no id in path) or updates an
// existing one.
func HandleProductSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulaire invalide")
		}

		id := e.Request.PathValue("id")

		data := templates.ProductFormData{
			ID:          id,
			Name:        strings.TrimSpace(e.Request.FormValue("name")),
			Description: strings.TrimSpace(e.Request.FormValue("description")),
			UnitPrice:   strings.TrimSpace(e.Request.FormValue("unit_price")),
			Unit:        strings.TrimSpace(e.Request.FormValue("unit")),
			Category:    strings.TrimSpace(e.Request.FormValue("category")),
			Errors:      make(map[string]string),
		}

		if data.Name == "" {
			data.Errors["name"] = "Le nom est obligatoire"
		}
		price, err := parseFloat(data.UnitPrice)
		if err != nil || price < 0 {
			data.Errors["unit_price"] = "Prix unitaire invalide"
		}

		if len(data.Errors) > 0 {
			SetToast(e, "warning", "Veuillez corriger les erreurs du formulaire")
			return render(e, templates.ProductFormPage(data), templates.ProductFormContent(data))
		}

		var record *core.Record
		if id == "" {
			col, err := app.FindCollectionByNameOrId("products")
			if err != nil {
				log.Printf("product_form: could not find products collection: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
			}
			record = core.NewRecord(col)
		} else {
			record, err = app.FindRecordById("products", id)
			if err != nil {
				return e.String(http.StatusNotFound, "Prestation introuvable")
			}
			if record.GetBool("is_template") {
				SetToast(e, "warning", "Les modèles partagés ne sont pas modifiables")
				return redirect(e, "/products")
			}
		}

		record.Set("name", data.Name)
		record.Set("description", data.Description)
		record.Set("unit_price", price)
		record.Set("unit", data.Unit)
		record.Set("category", data.Category)

		if err := app.Save(record); err != nil {
			log.Printf("product_form: could not save product: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		if id == "" {
			SetToast(e, "success", "Prestation créée")
		} else {
			SetToast(e, "success", "Prestation mise à jour")
		}
		return redirect(e, "/products")
	}
}

// HandleProductDelete removes a product from the catalog. Template-flagged
// products are shared presets and cannot be deleted.
func HandleProductDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Prestation introuvable")
		}
		if record.GetBool("is_template") {
			return ErrorToast(e, http.StatusForbidden, "Les modèles partagés ne sont pas supprimables")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("product_delete: could not delete product %s: %v", record.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		SetToast(e, "success", "Prestation supprimée")
		return redirect(e, "/products")
	}
}
