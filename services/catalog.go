package services

import "sort"

// Blueprint is one predefined quote line of a service template: what gets
// instantiated into a fresh LineItem or catalog product.
type Blueprint struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// serviceTemplates maps a trade category to its predefined lines. The table
// is static and read-only; it is a separate mechanism from template-flagged
// products in the catalog (those are shared rows marked non-editable).
var serviceTemplates = map[string][]Blueprint{
	"Électricité générale": {
		{Description: "Mise aux normes du tableau électrique", Quantity: 1, UnitPrice: 1250},
		{Description: "Pose de prise électrique (encastrée)", Quantity: 8, UnitPrice: 65},
		{Description: "Pose de point lumineux avec interrupteur", Quantity: 6, UnitPrice: 85},
		{Description: "Tirage de ligne spécialisée 32A", Quantity: 2, UnitPrice: 180},
		{Description: "Vérification et certificat Consuel", Quantity: 1, UnitPrice: 190},
	},
	"Plomberie sanitaire": {
		{Description: "Remplacement de chauffe-eau 200L", Quantity: 1, UnitPrice: 980},
		{Description: "Pose de WC suspendu avec bâti-support", Quantity: 1, UnitPrice: 750},
		{Description: "Installation de robinetterie mitigeur", Quantity: 3, UnitPrice: 145},
		{Description: "Reprise d'évacuation PVC", Quantity: 4, UnitPrice: 95},
	},
	"Peinture & finitions": {
		{Description: "Préparation des supports (rebouchage, ponçage)", Quantity: 45, UnitPrice: 12},
		{Description: "Peinture murs 2 couches (au m²)", Quantity: 45, UnitPrice: 28},
		{Description: "Peinture plafond 2 couches (au m²)", Quantity: 20, UnitPrice: 32},
		{Description: "Protection et nettoyage de chantier", Quantity: 1, UnitPrice: 150},
	},
	"Création site web": {
		{Description: "Développement site web responsive avec CMS", Quantity: 1, UnitPrice: 2500},
		{Description: "Création de logo professionnel avec déclinaisons", Quantity: 1, UnitPrice: 450},
		{Description: "Formation à l'utilisation du CMS", Quantity: 4, UnitPrice: 80},
		{Description: "Maintenance mensuelle (premier mois offert à -50%)", Quantity: 1, UnitPrice: 60},
	},
}

// ServiceTemplate returns the blueprints for a template key. Lookup is a
// case-sensitive exact match; an unknown key returns nil rather than an
// error.
func ServiceTemplate(key string) []Blueprint {
	bps, ok := serviceTemplates[key]
	if !ok {
		return nil
	}
	out := make([]Blueprint, len(bps))
	copy(out, bps)
	return out
}

// ServiceTemplateKeys lists the available template categories, sorted for
// stable display.
func ServiceTemplateKeys() []string {
	keys := make([]string, 0, len(serviceTemplates))
	for k := range serviceTemplates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyTemplate replaces the list's lines with the template's blueprints,
// each instantiated with a fresh id and a computed total. An unknown key is
// a no-op. Returns the number of lines applied.
func ApplyTemplate(list *ItemList, key string) int {
	bps := ServiceTemplate(key)
	if bps == nil {
		return 0
	}
	items := make([]LineItem, len(bps))
	for i, bp := range bps {
		items[i] = LineItem{
			Description: bp.Description,
			Quantity:    bp.Quantity,
			UnitPrice:   bp.UnitPrice,
		}
	}
	list.Replace(items)
	return len(bps)
}

// BatchResult reports the outcome of a best-effort bulk insert of template
// blueprints into the product catalog. Failed rows do not stop later rows.
type BatchResult struct {
	Succeeded []Blueprint
	Failed    []BatchFailure
}

// BatchFailure pairs a blueprint with the error that rejected it.
type BatchFailure struct {
	Blueprint Blueprint
	Err       error
}

// OK reports whether every row was inserted.
func (r BatchResult) OK() bool {
	return len(r.Failed) == 0
}
