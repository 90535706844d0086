// Package templates renders the HTML views of the quoting app as templ
// components. Full pages wrap their content in Layout; *Content variants
// return only the inner fragment for HTMX swaps.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// esc escapes a dynamic value for HTML output.
func esc(s string) string {
	return templ.EscapeString(s)
}

// component wraps a string-building render function into a templ.Component.
func component(render func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		render(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// navItem is one entry of the top navigation bar.
type navItem struct {
	href  string
	label string
}

var navItems = []navItem{
	{"/", "Tableau de bord"},
	{"/quotes", "Devis"},
	{"/clients", "Clients"},
	{"/products", "Catalogue"},
	{"/settings", "Paramètres"},
}

// Layout wraps content in the full page shell: document head, navigation
// and the toast container. active marks the highlighted nav entry by href.
func Layout(title, active string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"fr\"><head>")
		b.WriteString("<meta charset=\"utf-8\">")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		b.WriteString("<title>" + esc(title) + " · EasyDevis</title>")
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/css/app.css\">")
		b.WriteString("<script src=\"https://unpkg.com/htmx.org@1.9.12\" defer></script>")
		b.WriteString("<script src=\"/static/js/toast.js\" defer></script>")
		b.WriteString("<script src=\"/static/js/app.js\" defer></script>")
		b.WriteString("</head><body>")

		b.WriteString("<nav class=\"topnav\"><span class=\"brand\">EasyDevis</span><ul>")
		for _, item := range navItems {
			cls := ""
			if item.href == active {
				cls = " class=\"active\""
			}
			b.WriteString(fmt.Sprintf("<li%s><a href=\"%s\">%s</a></li>", cls, item.href, esc(item.label)))
		}
		b.WriteString("</ul></nav>")

		b.WriteString("<main id=\"main\" class=\"container\">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main><div id=\"toast-container\"></div></body></html>")
		return err
	})
}

// formError renders the inline error paragraph of a form field, or nothing.
func formError(b *strings.Builder, errs map[string]string, field string) {
	if msg, ok := errs[field]; ok {
		b.WriteString("<p class=\"field-error\">" + esc(msg) + "</p>")
	}
}

// textInput renders a labelled text input.
func textInput(b *strings.Builder, errs map[string]string, name, label, value string) {
	b.WriteString("<div class=\"field\"><label for=\"" + name + "\">" + esc(label) + "</label>")
	b.WriteString("<input type=\"text\" id=\"" + name + "\" name=\"" + name + "\" value=\"" + esc(value) + "\">")
	formError(b, errs, name)
	b.WriteString("</div>")
}

// numberInput renders a labelled numeric input.
func numberInput(b *strings.Builder, errs map[string]string, name, label, value, step string) {
	b.WriteString("<div class=\"field\"><label for=\"" + name + "\">" + esc(label) + "</label>")
	b.WriteString("<input type=\"number\" id=\"" + name + "\" name=\"" + name + "\" step=\"" + step + "\" value=\"" + esc(value) + "\">")
	formError(b, errs, name)
	b.WriteString("</div>")
}

// textArea renders a labelled multi-line input.
func textArea(b *strings.Builder, errs map[string]string, name, label, value string) {
	b.WriteString("<div class=\"field\"><label for=\"" + name + "\">" + esc(label) + "</label>")
	b.WriteString("<textarea id=\"" + name + "\" name=\"" + name + "\" rows=\"3\">" + esc(value) + "</textarea>")
	formError(b, errs, name)
	b.WriteString("</div>")
}
