package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BradleySCNA/Quality-Inventory/internal/services"
	"github.com/BradleySCNA/Quality-Inventory/internal/view"
)

// InventoryHandler serves the derived current-inventory view. Every page
// load recomputes the grouping from the barcode table and rewrites the
// inventory cache table; the filters below are display-only and never
// affect what gets persisted.
type InventoryHandler struct {
	Inv *services.InventoryService
}

func NewInventoryHandler(inv *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{Inv: inv}
}

// InventoryFilter holds the display filters for the grouped result.
type InventoryFilter struct {
	ItemNumber string
	LotNumber  string
	ExpDate    string
	Typ        string
}

func parseInventoryFilter(r *http.Request) InventoryFilter {
	return InventoryFilter{
		ItemNumber: r.FormValue("item_number"),
		LotNumber:  r.FormValue("lot_number"),
		ExpDate:    r.FormValue("exp_date"),
		Typ:        r.FormValue("item_type"),
	}
}

func (f InventoryFilter) matches(g services.InventoryGroup) bool {
	if f.ItemNumber != "" && !services.ContainsFold(g.ItemNumber, f.ItemNumber) {
		return false
	}
	if f.LotNumber != "" && !services.ContainsFold(g.LotNumber, f.LotNumber) {
		return false
	}
	if f.ExpDate != "" && !strings.Contains(g.ExpDate, f.ExpDate) {
		return false
	}
	if f.Typ != "" && !services.ContainsFold(g.Typ, f.Typ) {
		return false
	}
	return true
}

var inventoryColumns = []string{"Item #", "Lot #", "Exp Date", "Type", "Quantity"}

func (h *InventoryHandler) View(w http.ResponseWriter, r *http.Request) {
	groups, total, err := h.Inv.Recompute()
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if total == 0 {
		render(w, r, "inventory.html", map[string]any{"Empty": true})
		return
	}

	f := parseInventoryFilter(r)
	rows := make([][]view.Cell, 0, len(groups))
	for _, g := range groups {
		if !f.matches(g) {
			continue
		}
		rows = append(rows, view.TextRow(g.ItemNumber, g.LotNumber, g.ExpDate, g.Typ, strconv.FormatInt(g.Quantity, 10)))
	}

	render(w, r, "inventory.html", map[string]any{
		"Filter": f,
		"Table":  view.Table{Columns: inventoryColumns, Rows: rows},
	})
}
