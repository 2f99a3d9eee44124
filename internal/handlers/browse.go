package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BradleySCNA/Quality-Inventory/internal/models"
	"github.com/BradleySCNA/Quality-Inventory/internal/services"
	"github.com/BradleySCNA/Quality-Inventory/internal/view"
	"gorm.io/gorm"
)

// BrowseHandler serves the transactions and barcodes list pages: full-table
// fetch sorted by primary key descending, filtered in memory.
type BrowseHandler struct {
	DB *gorm.DB
}

func NewBrowseHandler(db *gorm.DB) *BrowseHandler { return &BrowseHandler{DB: db} }

// TransactionFilter holds the browse filters exactly as submitted; text
// fields are case-insensitive substring matches, the date bounds are
// inclusive. Malformed date bounds are flagged and skipped, never fatal.
type TransactionFilter struct {
	Barcode        string
	ItemNumber     string
	Description    string
	LotNumber      string
	ExpDate        string
	Typ            string
	TransDateBegin string
	TransDateEnd   string
	Employee       string
}

func parseTransactionFilter(r *http.Request) TransactionFilter {
	return TransactionFilter{
		Barcode:        r.FormValue("barcode"),
		ItemNumber:     r.FormValue("item_number"),
		Description:    r.FormValue("description"),
		LotNumber:      r.FormValue("lot_number"),
		ExpDate:        r.FormValue("exp_date"),
		Typ:            r.FormValue("item_type"),
		TransDateBegin: r.FormValue("trans_date_begin"),
		TransDateEnd:   r.FormValue("trans_date_end"),
		Employee:       r.FormValue("employee"),
	}
}

const transDateDisplayLayout = "2006-01-02 15:04:05"

var transactionColumns = []string{"Trans ID", "Barcode", "Item #", "Description", "Lot #", "Exp Date", "Type", "Add/Remove", "Trans Date", "Employee"}

func (f TransactionFilter) matches(t models.Transaction, begin, end *time.Time) bool {
	if f.Barcode != "" && !services.ContainsFold(t.Barcode, f.Barcode) {
		return false
	}
	if f.ItemNumber != "" && !services.ContainsFold(t.ItemNumber, f.ItemNumber) {
		return false
	}
	if f.Description != "" && !services.ContainsFold(t.Description, f.Description) {
		return false
	}
	if f.LotNumber != "" && !services.ContainsFold(t.LotNumber, f.LotNumber) {
		return false
	}
	if f.ExpDate != "" && !strings.Contains(t.ExpDate, f.ExpDate) {
		return false
	}
	if f.Typ != "" && !services.ContainsFold(t.Typ, f.Typ) {
		return false
	}
	if f.Employee != "" && !services.ContainsFold(t.Employee, f.Employee) {
		return false
	}
	// Bounds compare against the second-floored timestamp the page shows.
	td := t.TransDate.Truncate(time.Second)
	if begin != nil && td.Before(*begin) {
		return false
	}
	if end != nil && td.After(*end) {
		return false
	}
	return true
}

func (h *BrowseHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	f := parseTransactionFilter(r)

	var txns []models.Transaction
	if err := h.DB.Order("trans_id desc").Find(&txns).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	// A bad bound flags the field and the bound is ignored; the page renders.
	inputErrors := map[string]bool{}
	var begin, end *time.Time
	if f.TransDateBegin != "" {
		if t, err := services.ParseFilterTime(f.TransDateBegin); err != nil {
			inputErrors["trans_date_begin"] = true
		} else {
			begin = &t
		}
	}
	if f.TransDateEnd != "" {
		if t, err := services.ParseFilterTime(f.TransDateEnd); err != nil {
			inputErrors["trans_date_end"] = true
		} else {
			end = &t
		}
	}

	rows := make([][]view.Cell, 0, len(txns))
	for _, t := range txns {
		if !f.matches(t, begin, end) {
			continue
		}
		id := strconv.FormatUint(uint64(t.TransID), 10)
		rows = append(rows, []view.Cell{
			{Text: id, Href: "/edit_transaction?trans_id=" + id},
			{Text: t.Barcode},
			{Text: t.ItemNumber},
			{Text: t.Description},
			{Text: t.LotNumber},
			{Text: t.ExpDate},
			{Text: t.Typ},
			{Text: t.AddRemove},
			{Text: t.TransDate.Truncate(time.Second).Format(transDateDisplayLayout)},
			{Text: t.Employee},
		})
	}

	render(w, r, "transactions.html", map[string]any{
		"Filter":      f,
		"InputErrors": inputErrors,
		"Table":       view.Table{Columns: transactionColumns, Rows: rows},
	})
}

// BarcodeFilter mirrors TransactionFilter for the barcodes page.
type BarcodeFilter struct {
	Barcode     string
	ItemNumber  string
	Description string
	LotNumber   string
	ExpDate     string
	Typ         string
}

func parseBarcodeFilter(r *http.Request) BarcodeFilter {
	return BarcodeFilter{
		Barcode:     r.FormValue("barcode"),
		ItemNumber:  r.FormValue("item_number"),
		Description: r.FormValue("description"),
		LotNumber:   r.FormValue("lot_number"),
		ExpDate:     r.FormValue("exp_date"),
		Typ:         r.FormValue("item_type"),
	}
}

var barcodeColumns = []string{"Barcode", "Item #", "Description", "Lot #", "Exp Date", "Type", "Remove"}

func (f BarcodeFilter) matches(b models.Barcode) bool {
	if f.Barcode != "" && !services.ContainsFold(b.Barcode, f.Barcode) {
		return false
	}
	if f.ItemNumber != "" && !services.ContainsFold(b.ItemNumber, f.ItemNumber) {
		return false
	}
	if f.Description != "" && !services.ContainsFold(b.Description, f.Description) {
		return false
	}
	if f.LotNumber != "" && !services.ContainsFold(b.LotNumber, f.LotNumber) {
		return false
	}
	if f.ExpDate != "" && !strings.Contains(b.ExpDate, f.ExpDate) {
		return false
	}
	if f.Typ != "" && !services.ContainsFold(b.Typ, f.Typ) {
		return false
	}
	return true
}

func (h *BrowseHandler) Barcodes(w http.ResponseWriter, r *http.Request) {
	f := parseBarcodeFilter(r)

	var bcs []models.Barcode
	if err := h.DB.Order("barcode desc").Find(&bcs).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	rows := make([][]view.Cell, 0, len(bcs))
	for _, b := range bcs {
		if !f.matches(b) {
			continue
		}
		rows = append(rows, []view.Cell{
			{Text: b.Barcode, Href: "/edit_barcode?barcode=" + b.Barcode},
			{Text: b.ItemNumber},
			{Text: b.Description},
			{Text: b.LotNumber},
			{Text: b.ExpDate},
			{Text: b.Typ},
			{Text: strconv.Itoa(b.Remove)},
		})
	}

	render(w, r, "barcodes.html", map[string]any{
		"Filter": f,
		"Table":  view.Table{Columns: barcodeColumns, Rows: rows},
	})
}
