package templates

import (
	"strings"

	"github.com/a-h/templ"
)

// SettingsFormData carries the company profile form values.
type SettingsFormData struct {
	Name    string
	Address string
	SIRET   string
	Email   string
	Phone   string
	HasLogo bool
	Footer  string
	Errors  map[string]string
}

// SettingsContent renders the company profile form fragment.
func SettingsContent(data SettingsFormData) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<h1>Paramètres de l'entreprise</h1>")
		b.WriteString("<p class=\"hint\">Ces informations apparaissent sur l'en-tête et le pied de page de chaque devis PDF.</p>")

		b.WriteString("<form method=\"post\" action=\"/settings\" enctype=\"multipart/form-data\" " +
			"hx-post=\"/settings\" hx-encoding=\"multipart/form-data\" hx-target=\"#main\">")

		textInput(b, data.Errors, "name", "Raison sociale", data.Name)
		textInput(b, data.Errors, "address", "Adresse", data.Address)
		textInput(b, data.Errors, "siret", "SIRET", data.SIRET)
		b.WriteString("<div class=\"field-row\">")
		textInput(b, data.Errors, "email", "Email", data.Email)
		textInput(b, data.Errors, "phone", "Téléphone", data.Phone)
		b.WriteString("</div>")

		b.WriteString("<div class=\"field\"><label for=\"logo\">Logo (PNG ou JPEG)</label>")
		b.WriteString("<input type=\"file\" id=\"logo\" name=\"logo\" accept=\"image/png,image/jpeg\">")
		if data.HasLogo {
			b.WriteString("<p class=\"hint\">Un logo est enregistré. Téléverser un fichier le remplace.</p>")
			b.WriteString("<label class=\"checkbox\"><input type=\"checkbox\" name=\"remove_logo\" value=\"1\"> Supprimer le logo</label>")
		}
		formError(b, data.Errors, "logo")
		b.WriteString("</div>")

		textArea(b, data.Errors, "footer", "Pied de page (mentions légales)", data.Footer)

		b.WriteString("<div class=\"form-actions\">")
		b.WriteString("<button class=\"btn btn-primary\" type=\"submit\">Enregistrer</button>")
		b.WriteString("</div></form>")
	})
}

// SettingsPage renders the full settings page.
func SettingsPage(data SettingsFormData) templ.Component {
	return Layout("Paramètres", "/settings", SettingsContent(data))
}
