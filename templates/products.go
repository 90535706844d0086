package templates

import (
	"strings"

	"github.com/a-h/templ"
)

// ProductRow is one line of the catalog list.
type ProductRow struct {
	ID          string
	Name        string
	Description string
	UnitPrice   string // formatted
	Unit        string
	Category    string
	IsTemplate  bool
}

// ProductListData feeds the catalog page.
type ProductListData struct {
	Products     []ProductRow
	Search       string
	TemplateKeys []string
}

// ProductFormData carries the product form values and validation errors.
type ProductFormData struct {
	ID          string
	Name        string
	Description string
	UnitPrice   string
	Unit        string
	Category    string
	Errors      map[string]string
}

// ProductListContent renders the catalog fragment. Template-flagged rows
// are shared presets and expose no edit or delete action.
func ProductListContent(data ProductListData) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<div class=\"panel-head\"><h1>Catalogue</h1>")
		b.WriteString("<a class=\"btn btn-primary\" href=\"/products/new\">Nouvelle prestation</a></div>")

		b.WriteString("<form class=\"filters\" method=\"get\" action=\"/products\">")
		b.WriteString("<input type=\"search\" name=\"q\" placeholder=\"Rechercher une prestation…\" value=\"" + esc(data.Search) + "\">")
		b.WriteString("<button class=\"btn\" type=\"submit\">Rechercher</button></form>")

		if len(data.TemplateKeys) > 0 {
			b.WriteString("<form class=\"filters\" method=\"post\" action=\"/products/import-template\" " +
				"hx-post=\"/products/import-template\" hx-target=\"#main\">")
			b.WriteString("<select name=\"template_key\">")
			for _, k := range data.TemplateKeys {
				b.WriteString("<option value=\"" + esc(k) + "\">" + esc(k) + "</option>")
			}
			b.WriteString("</select>")
			b.WriteString("<button class=\"btn\" type=\"submit\">Importer le modèle dans le catalogue</button></form>")
		}

		if len(data.Products) == 0 {
			b.WriteString("<p class=\"empty\">Aucune prestation dans le catalogue.</p>")
			return
		}

		b.WriteString("<table class=\"table\"><thead><tr>")
		b.WriteString("<th>Nom</th><th>Description</th><th>Catégorie</th><th class=\"num\">Prix unitaire HT</th><th>Unité</th><th></th>")
		b.WriteString("</tr></thead><tbody>")
		for _, p := range data.Products {
			b.WriteString("<tr>")
			b.WriteString("<td>" + esc(p.Name))
			if p.IsTemplate {
				b.WriteString(" <span class=\"badge badge-template\">Modèle</span>")
			}
			b.WriteString("</td>")
			b.WriteString("<td>" + esc(p.Description) + "</td>")
			b.WriteString("<td>" + esc(p.Category) + "</td>")
			b.WriteString("<td class=\"num\">" + esc(p.UnitPrice) + "</td>")
			b.WriteString("<td>" + esc(p.Unit) + "</td>")
			b.WriteString("<td class=\"actions\">")
			if !p.IsTemplate {
				b.WriteString("<a class=\"btn\" href=\"/products/" + esc(p.ID) + "/edit\">Modifier</a>")
				b.WriteString("<button class=\"btn btn-danger\" hx-delete=\"/products/" + esc(p.ID) +
					"\" hx-confirm=\"Supprimer cette prestation ?\" hx-target=\"#main\">Supprimer</button>")
			}
			b.WriteString("</td></tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

// ProductListPage renders the full catalog page.
func ProductListPage(data ProductListData) templ.Component {
	return Layout("Catalogue", "/products", ProductListContent(data))
}

// ProductFormContent renders the create/edit product form fragment.
func ProductFormContent(data ProductFormData) templ.Component {
	return component(func(b *strings.Builder) {
		title := "Nouvelle prestation"
		action := "/products"
		if data.ID != "" {
			title = "Modifier la prestation"
			action = "/products/" + data.ID
		}

		b.WriteString("<h1>" + esc(title) + "</h1>")
		b.WriteString("<form method=\"post\" action=\"" + action + "\" hx-post=\"" + action + "\" hx-target=\"#main\">")

		textInput(b, data.Errors, "name", "Nom *", data.Name)
		textArea(b, data.Errors, "description", "Description", data.Description)
		b.WriteString("<div class=\"field-row\">")
		numberInput(b, data.Errors, "unit_price", "Prix unitaire HT *", data.UnitPrice, "0.01")
		textInput(b, data.Errors, "unit", "Unité", data.Unit)
		textInput(b, data.Errors, "category", "Catégorie", data.Category)
		b.WriteString("</div>")

		b.WriteString("<div class=\"form-actions\">")
		b.WriteString("<a class=\"btn\" href=\"/products\">Annuler</a>")
		b.WriteString("<button class=\"btn btn-primary\" type=\"submit\">Enregistrer</button>")
		b.WriteString("</div></form>")
	})
}

// ProductFormPage renders the full product form page.
func ProductFormPage(data ProductFormData) templ.Component {
	title := "Nouvelle prestation"
	if data.ID != "" {
		title = "Modifier la prestation"
	}
	return Layout(title, "/products", ProductFormContent(data))
}
