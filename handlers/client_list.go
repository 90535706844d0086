package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/templates"
)

// HandleClientList renders the client directory, with an optional name
// search.
func HandleClientList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		search := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		filter := "id != ''"
		params := map[string]any{}
		if search != "" {
			filter = "name ~ {:search} || city ~ {:search} || email ~ {:search}"
			params["search"] = search
		}

		records, err := app.FindRecordsByFilter("clients", filter, "name", 0, 0, params)
		if err != nil {
			log.Printf("client_list: could not fetch clients: %v", err)
			return e.String(http.StatusInternalServerError, "Une erreur est survenue.")
		}

		data := templates.ClientListData{Search: search}
		for _, c := range records {
			quotes, err := app.FindRecordsByFilter("quotes", "client = {:id}", "", 0, 0, map[string]any{"id": c.Id})
			if err != nil {
				quotes = nil
			}
			data.Clients = append(data.Clients, templates.ClientRow{
				ID:         c.Id,
				Name:       c.GetString("name"),
				City:       c.GetString("city"),
				Email:      c.GetString("email"),
				Phone:      c.GetString("phone"),
				QuoteCount: len(quotes),
			})
		}

		return render(e, templates.ClientListPage(data), templates.ClientListContent(data))
	}
}
