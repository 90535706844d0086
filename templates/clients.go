package templates

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ClientRow is one line of the client list.
type ClientRow struct {
	ID         string
	Name       string
	City       string
	Email      string
	Phone      string
	QuoteCount int
}

// ClientListData feeds the client list page.
type ClientListData struct {
	Clients []ClientRow
	Search  string
}

// ClientFormData carries the client form values and validation errors.
type ClientFormData struct {
	ID          string
	Name        string
	ContactName string
	Address     string
	PostalCode  string
	City        string
	Country     string
	Email       string
	Phone       string
	Notes       string
	Errors      map[string]string
}

// ClientListContent renders the client list fragment.
func ClientListContent(data ClientListData) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<div class=\"panel-head\"><h1>Clients</h1>")
		b.WriteString("<a class=\"btn btn-primary\" href=\"/clients/new\">Nouveau client</a></div>")

		b.WriteString("<form class=\"filters\" method=\"get\" action=\"/clients\">")
		b.WriteString("<input type=\"search\" name=\"q\" placeholder=\"Rechercher un client…\" value=\"" + esc(data.Search) + "\">")
		b.WriteString("<button class=\"btn\" type=\"submit\">Rechercher</button></form>")

		if len(data.Clients) == 0 {
			b.WriteString("<p class=\"empty\">Aucun client trouvé.</p>")
			return
		}

		b.WriteString("<table class=\"table\"><thead><tr>")
		b.WriteString("<th>Nom</th><th>Ville</th><th>Email</th><th>Téléphone</th><th class=\"num\">Devis</th><th></th>")
		b.WriteString("</tr></thead><tbody>")
		for _, c := range data.Clients {
			b.WriteString("<tr>")
			b.WriteString("<td><a href=\"/clients/" + esc(c.ID) + "/edit\">" + esc(c.Name) + "</a></td>")
			b.WriteString("<td>" + esc(c.City) + "</td>")
			b.WriteString("<td>" + esc(c.Email) + "</td>")
			b.WriteString("<td>" + esc(c.Phone) + "</td>")
			b.WriteString("<td class=\"num\">" + strconv.Itoa(c.QuoteCount) + "</td>")
			b.WriteString("<td class=\"actions\">")
			b.WriteString("<button class=\"btn btn-danger\" hx-delete=\"/clients/" + esc(c.ID) +
				"\" hx-confirm=\"Supprimer ce client ?\" hx-target=\"#main\">Supprimer</button>")
			b.WriteString("</td></tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

// ClientListPage renders the full client list page.
func ClientListPage(data ClientListData) templ.Component {
	return Layout("Clients", "/clients", ClientListContent(data))
}

// ClientFormContent renders the create/edit client form fragment.
func ClientFormContent(data ClientFormData) templ.Component {
	return component(func(b *strings.Builder) {
		title := "Nouveau client"
		action := "/clients"
		if data.ID != "" {
			title = "Modifier le client"
			action = "/clients/" + data.ID
		}

		b.WriteString("<h1>" + esc(title) + "</h1>")
		b.WriteString("<form method=\"post\" action=\"" + action + "\" hx-post=\"" + action + "\" hx-target=\"#main\">")

		textInput(b, data.Errors, "name", "Nom *", data.Name)
		textInput(b, data.Errors, "contact_name", "Contact", data.ContactName)
		textInput(b, data.Errors, "address", "Adresse", data.Address)
		b.WriteString("<div class=\"field-row\">")
		textInput(b, data.Errors, "postal_code", "Code postal", data.PostalCode)
		textInput(b, data.Errors, "city", "Ville", data.City)
		b.WriteString("</div>")
		textInput(b, data.Errors, "country", "Pays", data.Country)
		textInput(b, data.Errors, "email", "Email", data.Email)
		textInput(b, data.Errors, "phone", "Téléphone", data.Phone)
		textArea(b, data.Errors, "notes", "Notes", data.Notes)

		b.WriteString("<div class=\"form-actions\">")
		b.WriteString("<a class=\"btn\" href=\"/clients\">Annuler</a>")
		b.WriteString("<button class=\"btn btn-primary\" type=\"submit\">Enregistrer</button>")
		b.WriteString("</div></form>")
	})
}

// ClientFormPage renders the full client form page.
func ClientFormPage(data ClientFormData) templ.Component {
	title := "Nouveau client"
	if data.ID != "" {
		title = "Modifier le client"
	}
	return Layout(title, "/clients", ClientFormContent(data))
}
