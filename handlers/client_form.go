package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/templates"
)

// HandleClientCreate renders the empty client form.
func HandleClientCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ClientFormData{
			Country: "France",
			Errors:  make(map[string]string),
		}
		return render(e, templates.ClientFormPage(data), templates.ClientFormContent(data))
	}
}

// HandleClientEdit renders the form pre-filled from a persisted client.
func HandleClientEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("clients", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Client introuvable")
		}

		data := templates.ClientFormData{
			ID:          record.Id,
			Name:        record.GetString("name"),
			ContactName: record.GetString("contact_name"),
			Address:     record.GetString("address"),
			PostalCode:  record.GetString("postal_code"),
			City:        record.GetString("city"),
			Country:     record.GetString("country"),
			Email:       record.GetString("email"),
			Phone:       record.GetString("phone"),
			Notes:       record.GetString("notes"),
			Errors:      make(map[string]string),
		}
		return render(e, templates.ClientFormPage(data), templates.ClientFormContent(data))
	}
}

// HandleClientSave creates a client (no id in path) or updates an existing
// one.
func HandleClientSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulaire invalide")
		}

		id := e.Request.PathValue("id")

		data := templates.ClientFormData{
			ID:          id,
			Name:        strings.TrimSpace(e.Request.FormValue("name")),
			ContactName: strings.TrimSpace(e.Request.FormValue("contact_name")),
			Address:     strings.TrimSpace(e.Request.FormValue("address")),
			PostalCode:  strings.TrimSpace(e.Request.FormValue("postal_code")),
			City:        strings.TrimSpace(e.Request.FormValue("city")),
			Country:     strings.TrimSpace(e.Request.FormValue("country")),
			Email:       strings.TrimSpace(e.Request.FormValue("email")),
			Phone:       strings.TrimSpace(e.Request.FormValue("phone")),
			Notes:       strings.TrimSpace(e.Request.FormValue("notes")),
			Errors:      make(map[string]string),
		}

		if data.Name == "" {
			data.Errors["name"] = "Le nom est obligatoire"
		}

		if len(data.Errors) > 0 {
			SetToast(e, "warning", "Veuillez corriger les erreurs du formulaire")
			return render(e, templates.ClientFormPage(data), templates.ClientFormContent(data))
		}

		var record *core.Record
		if id == "" {
			col, err := app.FindCollectionByNameOrId("clients")
			if err != nil {
				log.Printf("client_form: could not find clients collection: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
			}
			record = core.NewRecord(col)
		} else {
			var err error
			record, err = app.FindRecordById("clients", id)
			if err != nil {
				return e.String(http.StatusNotFound, "Client introuvable")
			}
		}

		record.Set("name", data.Name)
		record.Set("contact_name", data.ContactName)
		record.Set("address", data.Address)
		record.Set("postal_code", data.PostalCode)
		record.Set("city", data.City)
		record.Set("country", data.Country)
		record.Set("email", data.Email)
		record.Set("phone", data.Phone)
		record.Set("notes", data.Notes)

		if err := app.Save(record); err != nil {
			log.Printf("client_form: could not save client: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		if id == "" {
			SetToast(e, "success", "Client créé")
		} else {
			SetToast(e, "success", "Client mis à jour")
		}
		return redirect(e, "/clients")
	}
}
