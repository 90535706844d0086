package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/profile"
	"easydevis/services"
)

// HandleQuoteExportPDF generates and downloads the PDF document of a quote.
// The company profile comes from the store so the letterhead always matches
// the current settings.
func HandleQuoteExportPDF(app *pocketbase.PocketBase, store profile.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Identifiant manquant")
		}

		company, err := store.Load()
		if err != nil {
			log.Printf("quote_export: could not load company profile: %v", err)
			company = profile.Profile{}
		}

		data, err := services.BuildQuoteExportData(app, id, company)
		if err != nil {
			log.Printf("quote_export: could not build export data: %v", err)
			return e.String(http.StatusNotFound, "Devis introuvable")
		}

		pdfBytes, err := services.GenerateQuotePDF(data)
		if err != nil {
			log.Printf("quote_export: could not generate PDF: %v", err)
			return e.String(http.StatusInternalServerError, "Une erreur est survenue.")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(data.FileName())))
		e.Response.Write(pdfBytes)
		return nil
	}
}
