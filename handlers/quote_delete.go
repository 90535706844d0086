package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteDelete removes a quote. Its lines follow through the cascade
// on the quote relation.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quote, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Devis introuvable")
		}

		if err := app.Delete(quote); err != nil {
			log.Printf("quote_delete: could not delete quote %s: %v", quote.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		SetToast(e, "success", "Devis supprimé")
		return redirect(e, "/quotes")
	}
}
