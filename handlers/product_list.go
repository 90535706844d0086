package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/services"
	"easydevis/templates"
)

// HandleProductList renders the service catalog, with an optional search.
func HandleProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		search := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		filter := "id != ''"
		params := map[string]any{}
		if search != "" {
			filter = "name ~ {:search} || description ~ {:search} || category ~ {:search}"
			params["search"] = search
		}

		records, err := app.FindRecordsByFilter("products", filter, "name", 0, 0, params)
		if err != nil {
			log.Printf("product_list: could not fetch products: %v", err)
			return e.String(http.StatusInternalServerError, "Une erreur est survenue.")
		}

		data := templates.ProductListData{
			Search:       search,
			TemplateKeys: services.ServiceTemplateKeys(),
		}
		for _, p := range records {
			data.Products = append(data.Products, templates.ProductRow{
				ID:          p.Id,
				Name:        p.GetString("name"),
				Description: p.GetString("description"),
				UnitPrice:   services.FormatEUR(p.GetFloat("unit_price")),
				Unit:        p.GetString("unit"),
				Category:    p.GetString("category"),
				IsTemplate:  p.GetBool("is_template"),
			})
		}

		return render(e, templates.ProductListPage(data), templates.ProductListContent(data))
	}
}
