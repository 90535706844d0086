package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleClientDelete removes a client. Quotes referencing it keep their
// other data; their client reference is cleared by the backend.
func HandleClientDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("clients", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Client introuvable")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("client_delete: could not delete client %s: %v", record.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		SetToast(e, "success", "Client supprimé")
		return redirect(e, "/clients")
	}
}
