package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/profile"
	"easydevis/templates"
)

// maxLogoSize caps logo uploads at 2 MiB.
const maxLogoSize = 2 << 20

// HandleSettings renders the company profile form.
func HandleSettings(app *pocketbase.PocketBase, store profile.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		p, err := store.Load()
		if err != nil {
			log.Printf("settings: could not load profile: %v", err)
			p = profile.Profile{}
		}

		data := settingsFormData(p)
		return render(e, templates.SettingsPage(data), templates.SettingsContent(data))
	}
}

// HandleSettingsSave persists the company profile, replacing or removing
// the logo as requested.
func HandleSettingsSave(app *pocketbase.PocketBase, store profile.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxLogoSize); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulaire invalide")
		}

		current, err := store.Load()
		if err != nil {
			log.Printf("settings: could not load profile: %v", err)
			current = profile.Profile{}
		}

		p := profile.Profile{
			Name:    strings.TrimSpace(e.Request.FormValue("name")),
			Address: strings.TrimSpace(e.Request.FormValue("address")),
			SIRET:   strings.TrimSpace(e.Request.FormValue("siret")),
			Email:   strings.TrimSpace(e.Request.FormValue("email")),
			Phone:   strings.TrimSpace(e.Request.FormValue("phone")),
			Footer:  strings.TrimSpace(e.Request.FormValue("footer")),
			Logo:    current.Logo,
		}

		if e.Request.FormValue("remove_logo") == "1" {
			p.Logo = nil
		}

		if file, _, err := e.Request.FormFile("logo"); err == nil {
			defer file.Close()
			raw, err := io.ReadAll(io.LimitReader(file, maxLogoSize+1))
			if err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Lecture du logo impossible")
			}
			if len(raw) > maxLogoSize {
				data := settingsFormData(p)
				data.Errors["logo"] = "Le logo dépasse 2 Mo"
				SetToast(e, "warning", "Veuillez corriger les erreurs du formulaire")
				return render(e, templates.SettingsPage(data), templates.SettingsContent(data))
			}
			if len(raw) > 0 {
				if !isSupportedLogo(raw) {
					data := settingsFormData(p)
					data.Errors["logo"] = "Format non supporté (PNG ou JPEG attendu)"
					SetToast(e, "warning", "Veuillez corriger les erreurs du formulaire")
					return render(e, templates.SettingsPage(data), templates.SettingsContent(data))
				}
				p.Logo = raw
			}
		}

		if err := store.Save(p); err != nil {
			log.Printf("settings: could not save profile: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Une erreur est survenue.")
		}

		SetToast(e, "success", "Paramètres enregistrés")
		return redirect(e, "/settings")
	}
}

// settingsFormData maps a profile to its form representation.
func settingsFormData(p profile.Profile) templates.SettingsFormData {
	return templates.SettingsFormData{
		Name:    p.Name,
		Address: p.Address,
		SIRET:   p.SIRET,
		Email:   p.Email,
		Phone:   p.Phone,
		HasLogo: len(p.Logo) > 0,
		Footer:  p.Footer,
		Errors:  make(map[string]string),
	}
}

// isSupportedLogo accepts PNG and JPEG magic bytes only.
func isSupportedLogo(raw []byte) bool {
	if len(raw) >= 8 && string(raw[:8]) == "\x89PNG\r\n\x1a\n" {
		return true
	}
	return len(raw) >= 3 && raw[0] == 0xFF && raw[1] == 0xD8 && raw[2] == 0xFF
}
