// Package handlers wires HTTP requests to the quote services and templates.
// Every handler follows the same shape: a constructor taking the app (and
// its collaborators) returns the PocketBase route function.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"
)

// isHTMX reports whether the request came from an HTMX swap rather than a
// full page load.
func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

// render writes the fragment for HTMX requests and the full page otherwise.
func render(e *core.RequestEvent, page, fragment templ.Component) error {
	component := page
	if isHTMX(e) {
		component = fragment
	}
	return component.Render(e.Request.Context(), e.Response)
}

// redirect sends an HX-Redirect for HTMX requests and a 302 otherwise.
func redirect(e *core.RequestEvent, url string) error {
	if isHTMX(e) {
		e.Response.Header().Set("HX-Redirect", url)
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, url)
}

// parseFloat reads a form value as float64, returning 0 for blank input.
func parseFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	// Forms localized in French may use a decimal comma.
	raw = strings.ReplaceAll(raw, ",", ".")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return f, nil
}

// sanitizeFilename strips characters that break Content-Disposition or the
// receiving filesystem.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
		"\n", "",
		"\r", "",
	)
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		return "document"
	}
	return cleaned
}
