package templates

import (
	"strings"

	"github.com/a-h/templ"
)

// QuoteListRow is one line of the quote list.
type QuoteListRow struct {
	ID          string
	QuoteNumber string
	ClientName  string
	StatusLabel string
	BadgeClass  string
	IssueDate   string
	ExpiryDate  string
	Total       string // formatted
}

// StatusOption is one entry of a status select input.
type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

// QuoteListData feeds the quote list page.
type QuoteListData struct {
	Quotes   []QuoteListRow
	Search   string
	Statuses []StatusOption // filter options, "" entry means all
}

// ClientOption is one entry of the client select input.
type ClientOption struct {
	ID       string
	Name     string
	Selected bool
}

// QuoteItemForm is one editable line of the quote form.
type QuoteItemForm struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string // formatted, display only
}

// QuoteFormData carries the quote form values and validation errors.
type QuoteFormData struct {
	ID           string
	QuoteNumber  string
	Clients      []ClientOption
	Statuses     []StatusOption
	IssueDate    string // YYYY-MM-DD for the input
	ExpiryDate   string
	Discount     string
	Notes        string
	Terms        string
	Items        []QuoteItemForm
	TemplateKeys []string
	Subtotal     string // formatted preview
	TaxAmount    string
	Total        string
	Errors       map[string]string
}

// QuoteViewItem is one read-only line of the quote detail page.
type QuoteViewItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}

// QuoteViewData feeds the quote detail page.
type QuoteViewData struct {
	ID          string
	QuoteNumber string
	ClientName  string
	StatusLabel string
	BadgeClass  string
	Statuses    []StatusOption
	IssueDate   string
	ExpiryDate  string
	Items       []QuoteViewItem
	Subtotal    string
	Discount    string // empty when no discount
	TaxLabel    string
	TaxAmount   string
	Total       string
	Notes       string
	Terms       string
}

// QuoteListContent renders the quote list fragment.
func QuoteListContent(data QuoteListData) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<div class=\"panel-head\"><h1>Devis</h1><div>")
		b.WriteString("<a class=\"btn\" href=\"/quotes/export\">Exporter Excel</a> ")
		b.WriteString("<a class=\"btn btn-primary\" href=\"/quotes/new\">Nouveau devis</a>")
		b.WriteString("</div></div>")

		b.WriteString("<form class=\"filters\" method=\"get\" action=\"/quotes\">")
		b.WriteString("<input type=\"search\" name=\"q\" placeholder=\"Numéro ou client…\" value=\"" + esc(data.Search) + "\">")
		b.WriteString("<select name=\"status\"><option value=\"\">Tous les statuts</option>")
		for _, s := range data.Statuses {
			sel := ""
			if s.Selected {
				sel = " selected"
			}
			b.WriteString("<option value=\"" + esc(s.Value) + "\"" + sel + ">" + esc(s.Label) + "</option>")
		}
		b.WriteString("</select>")
		b.WriteString("<button class=\"btn\" type=\"submit\">Filtrer</button></form>")

		if len(data.Quotes) == 0 {
			b.WriteString("<p class=\"empty\">Aucun devis trouvé.</p>")
			return
		}

		b.WriteString("<table class=\"table\"><thead><tr>")
		b.WriteString("<th>Numéro</th><th>Client</th><th>Date</th><th>Validité</th><th>Statut</th><th class=\"num\">Total TTC</th><th></th>")
		b.WriteString("</tr></thead><tbody>")
		for _, q := range data.Quotes {
			b.WriteString("<tr>")
			b.WriteString("<td><a href=\"/quotes/" + esc(q.ID) + "\">" + esc(q.QuoteNumber) + "</a></td>")
			b.WriteString("<td>" + esc(q.ClientName) + "</td>")
			b.WriteString("<td>" + esc(q.IssueDate) + "</td>")
			b.WriteString("<td>" + esc(q.ExpiryDate) + "</td>")
			b.WriteString("<td><span class=\"" + esc(q.BadgeClass) + "\">" + esc(q.StatusLabel) + "</span></td>")
			b.WriteString("<td class=\"num\">" + esc(q.Total) + "</td>")
			b.WriteString("<td class=\"actions\">")
			b.WriteString("<a class=\"btn\" href=\"/quotes/" + esc(q.ID) + "/pdf\">PDF</a>")
			b.WriteString("<button class=\"btn btn-danger\" hx-delete=\"/quotes/" + esc(q.ID) +
				"\" hx-confirm=\"Supprimer ce devis ?\" hx-target=\"#main\">Supprimer</button>")
			b.WriteString("</td></tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

// QuoteListPage renders the full quote list page.
func QuoteListPage(data QuoteListData) templ.Component {
	return Layout("Devis", "/quotes", QuoteListContent(data))
}

// QuoteItemRowFragment renders a single editable line of the items table,
// served standalone for the HTMX "add line" button.
func QuoteItemRowFragment(item QuoteItemForm) templ.Component {
	return component(func(b *strings.Builder) {
		writeQuoteItemRow(b, item)
	})
}

// QuoteItemRowsFragment renders a full replacement tbody, served when a
// service template is applied to the form.
func QuoteItemRowsFragment(items []QuoteItemForm) templ.Component {
	return component(func(b *strings.Builder) {
		for _, item := range items {
			writeQuoteItemRow(b, item)
		}
	})
}

func writeQuoteItemRow(b *strings.Builder, item QuoteItemForm) {
	b.WriteString("<tr class=\"item-row\">")
	b.WriteString("<td><input type=\"text\" name=\"item_description\" value=\"" + esc(item.Description) + "\"></td>")
	b.WriteString("<td><input type=\"number\" name=\"item_quantity\" step=\"0.01\" min=\"0\" value=\"" + esc(item.Quantity) + "\"></td>")
	b.WriteString("<td><input type=\"number\" name=\"item_unit_price\" step=\"0.01\" min=\"0\" value=\"" + esc(item.UnitPrice) + "\"></td>")
	b.WriteString("<td class=\"num item-total\">" + esc(item.Total) + "</td>")
	b.WriteString("<td><button type=\"button\" class=\"btn btn-danger remove-row\">×</button></td>")
	b.WriteString("</tr>")
}

// QuoteFormContent renders the create/edit quote form fragment.
func QuoteFormContent(data QuoteFormData) templ.Component {
	return component(func(b *strings.Builder) {
		title := "Nouveau devis"
		action := "/quotes"
		if data.ID != "" {
			title = "Modifier le devis " + data.QuoteNumber
			action = "/quotes/" + data.ID
		}

		b.WriteString("<h1>" + esc(title) + "</h1>")
		b.WriteString("<form id=\"quote-form\" method=\"post\" action=\"" + action + "\" hx-post=\"" + action + "\" hx-target=\"#main\">")

		b.WriteString("<div class=\"field-row\">")
		b.WriteString("<div class=\"field\"><label for=\"client\">Client *</label>")
		b.WriteString("<select id=\"client\" name=\"client\"><option value=\"\">— Choisir un client —</option>")
		for _, c := range data.Clients {
			sel := ""
			if c.Selected {
				sel = " selected"
			}
			b.WriteString("<option value=\"" + esc(c.ID) + "\"" + sel + ">" + esc(c.Name) + "</option>")
		}
		b.WriteString("</select>")
		formError(b, data.Errors, "client")
		b.WriteString("</div>")

		b.WriteString("<div class=\"field\"><label for=\"status\">Statut</label>")
		b.WriteString("<select id=\"status\" name=\"status\">")
		for _, s := range data.Statuses {
			sel := ""
			if s.Selected {
				sel = " selected"
			}
			b.WriteString("<option value=\"" + esc(s.Value) + "\"" + sel + ">" + esc(s.Label) + "</option>")
		}
		b.WriteString("</select></div>")
		b.WriteString("</div>")

		b.WriteString("<div class=\"field-row\">")
		b.WriteString("<div class=\"field\"><label for=\"issue_date\">Date *</label>")
		b.WriteString("<input type=\"date\" id=\"issue_date\" name=\"issue_date\" value=\"" + esc(data.IssueDate) + "\">")
		formError(b, data.Errors, "issue_date")
		b.WriteString("</div>")
		b.WriteString("<div class=\"field\"><label for=\"expiry_date\">Valable jusqu'au</label>")
		b.WriteString("<input type=\"date\" id=\"expiry_date\" name=\"expiry_date\" value=\"" + esc(data.ExpiryDate) + "\"></div>")
		b.WriteString("</div>")

		// Template picker swaps the items tbody wholesale.
		b.WriteString("<div class=\"field-row template-picker\">")
		b.WriteString("<select name=\"template_key\" id=\"template_key\">")
		b.WriteString("<option value=\"\">— Modèle de prestation —</option>")
		for _, k := range data.TemplateKeys {
			b.WriteString("<option value=\"" + esc(k) + "\">" + esc(k) + "</option>")
		}
		b.WriteString("</select>")
		b.WriteString("<button type=\"button\" class=\"btn\" hx-get=\"/quotes/template-rows\" " +
			"hx-include=\"#template_key\" hx-target=\"#item-rows\" hx-swap=\"innerHTML\">Appliquer le modèle</button>")
		b.WriteString("</div>")

		b.WriteString("<table class=\"table items\"><thead><tr>")
		b.WriteString("<th>Description</th><th>Quantité</th><th>PU HT</th><th class=\"num\">Total HT</th><th></th>")
		b.WriteString("</tr></thead><tbody id=\"item-rows\">")
		for _, item := range data.Items {
			writeQuoteItemRow(b, item)
		}
		b.WriteString("</tbody></table>")
		formError(b, data.Errors, "items")

		b.WriteString("<button type=\"button\" class=\"btn\" hx-get=\"/quotes/item-row\" " +
			"hx-target=\"#item-rows\" hx-swap=\"beforeend\">Ajouter une ligne</button>")

		b.WriteString("<div class=\"field-row\">")
		numberInput(b, data.Errors, "discount", "Remise (€)", data.Discount, "0.01")
		b.WriteString("</div>")
		textArea(b, data.Errors, "notes", "Notes", data.Notes)
		textArea(b, data.Errors, "terms", "Conditions de paiement", data.Terms)

		if data.Subtotal != "" {
			b.WriteString("<div class=\"totals-preview\">")
			b.WriteString("<div><span>Sous-total HT</span><span>" + esc(data.Subtotal) + "</span></div>")
			b.WriteString("<div><span>TVA</span><span>" + esc(data.TaxAmount) + "</span></div>")
			b.WriteString("<div class=\"grand\"><span>Total TTC</span><span>" + esc(data.Total) + "</span></div>")
			b.WriteString("</div>")
		}

		b.WriteString("<div class=\"form-actions\">")
		b.WriteString("<a class=\"btn\" href=\"/quotes\">Annuler</a>")
		b.WriteString("<button class=\"btn btn-primary\" type=\"submit\">Enregistrer</button>")
		b.WriteString("</div></form>")
	})
}

// QuoteFormPage renders the full quote form page.
func QuoteFormPage(data QuoteFormData) templ.Component {
	title := "Nouveau devis"
	if data.ID != "" {
		title = "Modifier le devis"
	}
	return Layout(title, "/quotes", QuoteFormContent(data))
}

// QuoteViewContent renders the read-only quote detail fragment.
func QuoteViewContent(data QuoteViewData) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<div class=\"panel-head\"><h1>Devis " + esc(data.QuoteNumber) + "</h1><div>")
		b.WriteString("<a class=\"btn\" href=\"/quotes/" + esc(data.ID) + "/edit\">Modifier</a> ")
		b.WriteString("<a class=\"btn btn-primary\" href=\"/quotes/" + esc(data.ID) + "/pdf\">Télécharger le PDF</a>")
		b.WriteString("</div></div>")

		b.WriteString("<div class=\"quote-meta\">")
		b.WriteString("<p><strong>Client :</strong> " + esc(data.ClientName) + "</p>")
		b.WriteString("<p><strong>Date :</strong> " + esc(data.IssueDate) + "</p>")
		if data.ExpiryDate != "" {
			b.WriteString("<p><strong>Valable jusqu'au :</strong> " + esc(data.ExpiryDate) + "</p>")
		}
		b.WriteString("<p><span class=\"" + esc(data.BadgeClass) + "\">" + esc(data.StatusLabel) + "</span></p>")

		b.WriteString("<form class=\"status-form\" hx-post=\"/quotes/" + esc(data.ID) + "/status\" hx-target=\"#main\">")
		b.WriteString("<select name=\"status\">")
		for _, s := range data.Statuses {
			sel := ""
			if s.Selected {
				sel = " selected"
			}
			b.WriteString("<option value=\"" + esc(s.Value) + "\"" + sel + ">" + esc(s.Label) + "</option>")
		}
		b.WriteString("</select>")
		b.WriteString("<button class=\"btn\" type=\"submit\">Changer le statut</button></form>")
		b.WriteString("</div>")

		b.WriteString("<table class=\"table\"><thead><tr>")
		b.WriteString("<th>Description</th><th class=\"num\">Quantité</th><th class=\"num\">PU HT</th><th class=\"num\">Total HT</th>")
		b.WriteString("</tr></thead><tbody>")
		if len(data.Items) == 0 {
			b.WriteString("<tr><td colspan=\"4\" class=\"empty\">Aucune ligne</td></tr>")
		}
		for _, item := range data.Items {
			b.WriteString("<tr>")
			b.WriteString("<td>" + esc(item.Description) + "</td>")
			b.WriteString("<td class=\"num\">" + esc(item.Quantity) + "</td>")
			b.WriteString("<td class=\"num\">" + esc(item.UnitPrice) + "</td>")
			b.WriteString("<td class=\"num\">" + esc(item.Total) + "</td>")
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")

		b.WriteString("<div class=\"totals-preview\">")
		b.WriteString("<div><span>Sous-total HT</span><span>" + esc(data.Subtotal) + "</span></div>")
		if data.Discount != "" {
			b.WriteString("<div><span>Remise</span><span>" + esc(data.Discount) + "</span></div>")
		}
		b.WriteString("<div><span>" + esc(data.TaxLabel) + "</span><span>" + esc(data.TaxAmount) + "</span></div>")
		b.WriteString("<div class=\"grand\"><span>Total TTC</span><span>" + esc(data.Total) + "</span></div>")
		b.WriteString("</div>")

		if data.Notes != "" {
			b.WriteString("<h2>Notes</h2><p>" + esc(data.Notes) + "</p>")
		}
		if data.Terms != "" {
			b.WriteString("<h2>Conditions de paiement</h2><p>" + esc(data.Terms) + "</p>")
		}
	})
}

// QuoteViewPage renders the full quote detail page.
func QuoteViewPage(data QuoteViewData) templ.Component {
	return Layout("Devis "+data.QuoteNumber, "/quotes", QuoteViewContent(data))
}
