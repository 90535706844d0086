package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/services"
)

type clientDef struct {
	name        string
	contactName string
	address     string
	postalCode  string
	city        string
	country     string
	email       string
	phone       string
}

type productDef struct {
	name        string
	description string
	unitPrice   float64
	unit        string
	category    string
	isTemplate  bool
}

type quoteItemDef struct {
	sortOrder   int
	description string
	quantity    float64
	unitPrice   float64
}

type quoteDef struct {
	quoteNumber string
	clientName  string
	status      string
	issueDate   string
	expiryDate  string
	discount    float64
	notes       string
	terms       string
	items       []quoteItemDef
}

// Seed populates the collections with a realistic starting data set for a
// small French trades business. It is safe to call on every startup because
// it returns early if any client records already exist.
func Seed(app *pocketbase.PocketBase) error {
	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return fmt.Errorf("seed: could not find clients collection: %w", err)
	}
	existing, err := app.FindAllRecords(clientsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query clients: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: clients collection is empty – inserting seed data …")

	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("seed: could not find quotes collection: %w", err)
	}
	quoteItemsCol, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return fmt.Errorf("seed: could not find quote_items collection: %w", err)
	}

	clientDefs := []clientDef{
		{
			name:        "SARL Dupont Construction",
			contactName: "Jean Dupont",
			address:     "12 rue des Artisans",
			postalCode:  "69003",
			city:        "Lyon",
			country:     "France",
			email:       "contact@dupont-construction.fr",
			phone:       "04 72 00 11 22",
		},
		{
			name:        "Entreprise Martin",
			contactName: "Sophie Martin",
			address:     "8 avenue de la République",
			postalCode:  "75011",
			city:        "Paris",
			country:     "France",
			email:       "s.martin@entreprise-martin.fr",
			phone:       "01 43 55 66 77",
		},
		{
			name:        "SAS Bernard Rénovation",
			contactName: "Luc Bernard",
			address:     "3 impasse du Four",
			postalCode:  "33000",
			city:        "Bordeaux",
			country:     "France",
			email:       "luc@bernard-renovation.fr",
			phone:       "05 56 44 33 22",
		},
	}

	clientIDs := map[string]string{}
	for _, d := range clientDefs {
		r := core.NewRecord(clientsCol)
		r.Set("name", d.name)
		r.Set("contact_name", d.contactName)
		r.Set("address", d.address)
		r.Set("postal_code", d.postalCode)
		r.Set("city", d.city)
		r.Set("country", d.country)
		r.Set("email", d.email)
		r.Set("phone", d.phone)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save client %q: %w", d.name, err)
		}
		clientIDs[d.name] = r.Id
	}

	productDefs := []productDef{
		{name: "Heure de main d'œuvre", description: "Taux horaire standard", unitPrice: 45, unit: "heure", category: "Général"},
		{name: "Déplacement chantier", description: "Forfait zone urbaine", unitPrice: 35, unit: "forfait", category: "Général"},
		{name: "Peinture murs 2 couches", description: "Fourniture et application, acrylique mat", unitPrice: 28, unit: "m²", category: "Peinture"},
		{name: "Pose de prise électrique", description: "Prise encastrée, saignée comprise", unitPrice: 65, unit: "unité", category: "Électricité"},
		{name: "Remplacement chauffe-eau 200L", description: "Dépose, pose et mise en service", unitPrice: 980, unit: "forfait", category: "Plomberie", isTemplate: true},
		{name: "Développement site web responsive", description: "Site vitrine avec CMS", unitPrice: 2500, unit: "forfait", category: "Web", isTemplate: true},
		{name: "Maintenance mensuelle site web", description: "Mises à jour et sauvegardes", unitPrice: 60, unit: "mois", category: "Web", isTemplate: true},
	}

	for _, d := range productDefs {
		r := core.NewRecord(productsCol)
		r.Set("name", d.name)
		r.Set("description", d.description)
		r.Set("unit_price", d.unitPrice)
		r.Set("unit", d.unit)
		r.Set("category", d.category)
		r.Set("is_template", d.isTemplate)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save product %q: %w", d.name, err)
		}
	}

	today := time.Now()
	quoteDefs := []quoteDef{
		{
			quoteNumber: services.QuoteNumberFor(today, 1),
			clientName:  "SARL Dupont Construction",
			status:      "sent",
			issueDate:   today.AddDate(0, 0, -7).Format("2006-01-02"),
			expiryDate:  today.AddDate(0, 0, 23).Format("2006-01-02"),
			notes:       "Accès chantier par la cour arrière.",
			terms:       "Acompte de 30% à la commande, solde à réception de facture.",
			items: []quoteItemDef{
				{sortOrder: 1, description: "Préparation des supports (rebouchage, ponçage)", quantity: 45, unitPrice: 12},
				{sortOrder: 2, description: "Peinture murs 2 couches", quantity: 45, unitPrice: 28},
				{sortOrder: 3, description: "Protection et nettoyage de chantier", quantity: 1, unitPrice: 150},
			},
		},
		{
			quoteNumber: services.QuoteNumberFor(today, 2),
			clientName:  "Entreprise Martin",
			status:      "draft",
			issueDate:   today.Format("2006-01-02"),
			expiryDate:  today.AddDate(0, 1, 0).Format("2006-01-02"),
			discount:    100,
			terms:       "Paiement à 30 jours fin de mois.",
			items: []quoteItemDef{
				{sortOrder: 1, description: "Remplacement de chauffe-eau 200L", quantity: 1, unitPrice: 980},
				{sortOrder: 2, description: "Installation de robinetterie mitigeur", quantity: 2, unitPrice: 145},
			},
		},
	}

	for _, d := range quoteDefs {
		var lineTotals []float64
		for _, it := range d.items {
			lineTotals = append(lineTotals, services.LineTotal(it.quantity, it.unitPrice))
		}
		totals := services.CalcQuoteTotals(lineTotals, d.discount, services.DefaultTaxRate)

		q := core.NewRecord(quotesCol)
		q.Set("quote_number", d.quoteNumber)
		q.Set("client", clientIDs[d.clientName])
		q.Set("status", d.status)
		q.Set("issue_date", d.issueDate)
		q.Set("expiry_date", d.expiryDate)
		q.Set("discount", d.discount)
		q.Set("tax_rate", totals.TaxRate)
		q.Set("subtotal", totals.Subtotal)
		q.Set("tax_amount", totals.TaxAmount)
		q.Set("total", totals.Total)
		q.Set("notes", d.notes)
		q.Set("terms", d.terms)
		if err := app.Save(q); err != nil {
			return fmt.Errorf("seed: save quote %q: %w", d.quoteNumber, err)
		}

		for i, it := range d.items {
			r := core.NewRecord(quoteItemsCol)
			r.Set("quote", q.Id)
			r.Set("sort_order", it.sortOrder)
			r.Set("description", it.description)
			r.Set("quantity", it.quantity)
			r.Set("unit_price", it.unitPrice)
			r.Set("total", lineTotals[i])
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: save quote item %q: %w", it.description, err)
			}
		}
	}

	log.Println("seed: done")
	return nil
}
