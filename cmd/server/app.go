package main

import (
	"net/http"

	"github.com/BradleySCNA/Quality-Inventory/internal/config"
	"github.com/BradleySCNA/Quality-Inventory/internal/handlers"
	"github.com/BradleySCNA/Quality-Inventory/internal/services"
	"github.com/BradleySCNA/Quality-Inventory/internal/session"
	"github.com/BradleySCNA/Quality-Inventory/internal/view"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux  *http.ServeMux
	db   *gorm.DB
	cfg  config.Config
	gate *session.Gate
}

// NewApp creates a new application with all routes configured.
func NewApp(cfg config.Config, db *gorm.DB) *App {
	app := &App{
		mux:  http.NewServeMux(),
		db:   db,
		cfg:  cfg,
		gate: session.NewGate(cfg.SessionSecret),
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// setupRoutes configures all application routes. Every page except login
// goes through the session gate; an invalid cookie redirects to "/" before
// any handler work happens.
func (a *App) setupRoutes() {
	ah := handlers.NewAuthHandler(a.cfg.Password, a.gate)
	ih := handlers.NewItemHandler(a.db)
	bh := handlers.NewBrowseHandler(a.db)
	eh := handlers.NewEditHandler(a.db)
	invh := handlers.NewInventoryHandler(services.NewInventoryService(a.db))
	xh := handlers.NewExportHandler(a.db)

	a.mux.HandleFunc("/", ah.Login)

	protected := func(h http.HandlerFunc) http.Handler {
		return a.gate.RequireLogin(h)
	}

	a.mux.Handle("/home", protected(a.home))
	a.mux.Handle("/add_item", protected(ih.Add))
	a.mux.Handle("/remove_item", protected(ih.Remove))
	a.mux.Handle("/transactions", protected(bh.Transactions))
	a.mux.Handle("/edit_transaction", protected(eh.Transaction))
	a.mux.Handle("/barcodes", protected(bh.Barcodes))
	a.mux.Handle("/edit_barcode", protected(eh.Barcode))
	a.mux.Handle("/inventory", protected(invh.View))
	a.mux.Handle("/export_excel", protected(xh.Excel))
}

func (a *App) home(w http.ResponseWriter, r *http.Request) {
	if err := view.Render(w, r, "home.html", nil); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}
