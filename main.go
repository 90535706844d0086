package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"easydevis/collections"
	"easydevis/handlers"
	"easydevis/profile"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		store := profile.NewFileStore(app.DataDir())
		if err := seedProfile(store); err != nil {
			log.Printf("Warning: company profile init failed: %v", err)
		}

		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Dashboard ────────────────────────────────────────────
		se.Router.GET("/", handlers.HandleDashboard(app))

		// ── Client CRUD ──────────────────────────────────────────
		se.Router.GET("/clients", handlers.HandleClientList(app))
		se.Router.GET("/clients/new", handlers.HandleClientCreate(app))
		se.Router.POST("/clients", handlers.HandleClientSave(app))
		se.Router.GET("/clients/{id}/edit", handlers.HandleClientEdit(app))
		se.Router.POST("/clients/{id}", handlers.HandleClientSave(app))
		se.Router.DELETE("/clients/{id}", handlers.HandleClientDelete(app))

		// ── Product catalog ──────────────────────────────────────
		se.Router.GET("/products", handlers.HandleProductList(app))
		se.Router.GET("/products/new", handlers.HandleProductCreate(app))
		se.Router.POST("/products", handlers.HandleProductSave(app))
		se.Router.POST("/products/import-template", handlers.HandleTemplateImportProducts(app))
		se.Router.GET("/products/{id}/edit", handlers.HandleProductEdit(app))
		se.Router.POST("/products/{id}", handlers.HandleProductSave(app))
		se.Router.DELETE("/products/{id}", handlers.HandleProductDelete(app))

		// ── Quotes ───────────────────────────────────────────────
		// Fixed paths before /quotes/{id} so they never match as ids.
		se.Router.GET("/quotes", handlers.HandleQuoteList(app))
		se.Router.GET("/quotes/export", handlers.HandleQuoteListExcel(app))
		se.Router.GET("/quotes/new", handlers.HandleQuoteCreate(app))
		se.Router.GET("/quotes/item-row", handlers.HandleQuoteItemRow(app))
		se.Router.GET("/quotes/template-rows", handlers.HandleQuoteTemplateRows(app))
		se.Router.POST("/quotes", handlers.HandleQuoteSave(app))
		se.Router.GET("/quotes/{id}/edit", handlers.HandleQuoteEdit(app))
		se.Router.POST("/quotes/{id}", handlers.HandleQuoteSave(app))
		se.Router.GET("/quotes/{id}/pdf", handlers.HandleQuoteExportPDF(app, store))
		se.Router.POST("/quotes/{id}/status", handlers.HandleQuoteStatusChange(app))
		se.Router.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(app))
		se.Router.GET("/quotes/{id}", handlers.HandleQuoteView(app))

		// ── Settings ─────────────────────────────────────────────
		se.Router.GET("/settings", handlers.HandleSettings(app, store))
		se.Router.POST("/settings", handlers.HandleSettingsSave(app, store))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// seedProfile fills an empty profile store from COMPANY_* environment
// variables so a fresh install prints a usable letterhead.
func seedProfile(store profile.Store) error {
	current, err := store.Load()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return nil
	}

	defaults, err := profile.DefaultsFromEnv()
	if err != nil {
		return err
	}
	if defaults.IsZero() {
		return nil
	}
	return store.Save(defaults)
}
