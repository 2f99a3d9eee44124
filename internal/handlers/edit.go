package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BradleySCNA/Quality-Inventory/internal/models"
	"github.com/BradleySCNA/Quality-Inventory/internal/validation"
	"gorm.io/gorm"
)

// EditHandler serves the drill-down edit pages reached from the list views.
// Both pages share the same shape: delete sentinel short-circuits, a
// submission with any editable field present becomes a partial update, and
// fields left empty on an update are deliberately cleared, not preserved.
type EditHandler struct {
	DB *gorm.DB
}

func NewEditHandler(db *gorm.DB) *EditHandler { return &EditHandler{DB: db} }

const deleteSentinel = "DO_DELETE"

// EditTransactionForm carries the raw edit submission. Empty string means
// the field was omitted.
type EditTransactionForm struct {
	Barcode     string
	ItemNumber  string
	Description string
	LotNumber   string
	ExpDate     string
	Typ         string
	AddRemove   string
	Employee    string
}

func parseEditTransactionForm(r *http.Request) EditTransactionForm {
	return EditTransactionForm{
		Barcode:     r.FormValue("barcode"),
		ItemNumber:  r.FormValue("item_number"),
		Description: r.FormValue("description"),
		LotNumber:   r.FormValue("lot_number"),
		ExpDate:     r.FormValue("exp_date"),
		Typ:         r.FormValue("item_type"),
		AddRemove:   r.FormValue("add_remove"),
		Employee:    r.FormValue("employee"),
	}
}

// AnyPresent reports whether the submission carries any editable field.
// The add_remove select alone does not count as an edit.
func (f EditTransactionForm) AnyPresent() bool {
	return f.Barcode != "" || f.ItemNumber != "" || f.Description != "" ||
		f.LotNumber != "" || f.ExpDate != "" || f.Typ != "" || f.Employee != ""
}

// Validate checks only the fields that were provided.
func (f EditTransactionForm) Validate() validation.Errors {
	var errs validation.Errors
	if f.Barcode != "" {
		validation.ExactLen(&errs, "Barcode", f.Barcode, 6)
	}
	validation.MaxLen(&errs, "Item #", f.ItemNumber, 50)
	validation.MaxLen(&errs, "Description", f.Description, 100)
	validation.MaxLen(&errs, "Lot #", f.LotNumber, 50)
	validation.MaxLen(&errs, "Add/Remove", f.AddRemove, 50)
	validation.MaxLen(&errs, "Employee", f.Employee, 50)
	return errs
}

// Updates builds the full update map. Every editable column is present:
// omitted fields are written back as empty, which clears them. This is the
// documented behavior of the edit pages, not an accident.
func (f EditTransactionForm) Updates() map[string]any {
	return map[string]any{
		"barcode":     f.Barcode,
		"item_number": f.ItemNumber,
		"description": f.Description,
		"lot_number":  f.LotNumber,
		"exp_date":    f.ExpDate,
		"typ":         f.Typ,
		"add_remove":  f.AddRemove,
		"employee":    f.Employee,
	}
}

func (h *EditHandler) renderEditTransaction(w http.ResponseWriter, r *http.Request, id string, rec models.Transaction, f EditTransactionForm, errMsg string) {
	selectedTyp := f.Typ
	if selectedTyp == "" {
		selectedTyp = rec.Typ
	}
	selectedAR := f.AddRemove
	if selectedAR == "" {
		selectedAR = rec.AddRemove
	}
	render(w, r, "edit_transaction.html", map[string]any{
		"TransID":           id,
		"Record":            rec,
		"Values":            f,
		"Error":             errMsg,
		"ItemTypes":         models.ItemTypes,
		"AddRemoveValues":   models.AddRemoveValues,
		"SelectedTyp":       selectedTyp,
		"SelectedAddRemove": selectedAR,
	})
}

func (h *EditHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("trans_id")

	if r.FormValue("delete") == deleteSentinel {
		if err := h.DB.Where("trans_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/transactions", http.StatusSeeOther)
		return
	}

	var rec models.Transaction
	if err := h.DB.Where("trans_id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			render(w, r, "record_not_found.html", nil)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	f := parseEditTransactionForm(r)
	if r.Method == http.MethodPost && f.AnyPresent() {
		errs := f.Validate()
		if !errs.Empty() {
			h.renderEditTransaction(w, r, id, rec, f, errs.First())
			return
		}
		if err := h.DB.Model(&models.Transaction{}).Where("trans_id = ?", id).Updates(f.Updates()).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/transactions", http.StatusSeeOther)
		return
	}

	h.renderEditTransaction(w, r, id, rec, f, "")
}

// EditBarcodeForm carries the raw edit-barcode submission. The barcode key
// itself is not editable here.
type EditBarcodeForm struct {
	ItemNumber  string
	Description string
	LotNumber   string
	ExpDate     string
	Typ         string
	Remove      string // "0" or "1" from the select; empty if omitted
}

func parseEditBarcodeForm(r *http.Request) EditBarcodeForm {
	return EditBarcodeForm{
		ItemNumber:  r.FormValue("item_number"),
		Description: r.FormValue("description"),
		LotNumber:   r.FormValue("lot_number"),
		ExpDate:     r.FormValue("exp_date"),
		Typ:         r.FormValue("item_type"),
		Remove:      r.FormValue("remove"),
	}
}

func (f EditBarcodeForm) AnyPresent() bool {
	return f.ItemNumber != "" || f.Description != "" || f.LotNumber != "" ||
		f.ExpDate != "" || f.Typ != "" || f.Remove != ""
}

func (f EditBarcodeForm) Validate() validation.Errors {
	var errs validation.Errors
	validation.MaxLen(&errs, "Item #", f.ItemNumber, 50)
	validation.MaxLen(&errs, "Description", f.Description, 100)
	validation.MaxLen(&errs, "Lot #", f.LotNumber, 50)
	validation.OneOf(&errs, "Remove", f.Remove, "0", "1")
	return errs
}

func (f EditBarcodeForm) Updates() map[string]any {
	removeFlag := models.BarcodeActive
	if f.Remove == "1" {
		removeFlag = models.BarcodeRemoved
	}
	return map[string]any{
		"item_number": f.ItemNumber,
		"description": f.Description,
		"lot_number":  f.LotNumber,
		"exp_date":    f.ExpDate,
		"typ":         f.Typ,
		"remove":      removeFlag,
	}
}

func (h *EditHandler) renderEditBarcode(w http.ResponseWriter, r *http.Request, key string, rec models.Barcode, f EditBarcodeForm, errMsg string) {
	selectedTyp := f.Typ
	if selectedTyp == "" {
		selectedTyp = rec.Typ
	}
	selectedRemove := f.Remove
	if selectedRemove == "" {
		selectedRemove = strconv.Itoa(rec.Remove)
	}
	render(w, r, "edit_barcode.html", map[string]any{
		"BarcodeKey":     key,
		"Record":         rec,
		"Values":         f,
		"Error":          errMsg,
		"ItemTypes":      models.ItemTypes,
		"SelectedTyp":    selectedTyp,
		"SelectedRemove": selectedRemove,
	})
}

func (h *EditHandler) Barcode(w http.ResponseWriter, r *http.Request) {
	key := r.FormValue("barcode")

	if r.FormValue("delete") == deleteSentinel {
		if err := h.DB.Where("barcode = ?", key).Delete(&models.Barcode{}).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/barcodes", http.StatusSeeOther)
		return
	}

	var rec models.Barcode
	if err := h.DB.Where("barcode = ?", key).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			render(w, r, "record_not_found.html", nil)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	f := parseEditBarcodeForm(r)
	if r.Method == http.MethodPost && f.AnyPresent() {
		errs := f.Validate()
		if !errs.Empty() {
			h.renderEditBarcode(w, r, key, rec, f, errs.First())
			return
		}
		if err := h.DB.Model(&models.Barcode{}).Where("barcode = ?", key).Updates(f.Updates()).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/barcodes", http.StatusSeeOther)
		return
	}

	h.renderEditBarcode(w, r, key, rec, f, "")
}
