package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/BradleySCNA/Quality-Inventory/internal/models"
	"github.com/BradleySCNA/Quality-Inventory/internal/validation"
	"gorm.io/gorm"
)

// ItemHandler owns the two scan workflows: adding a new item and removing
// an existing one. Both append a transaction row and touch the barcode
// table in separate calls; there is no atomicity between the writes.
type ItemHandler struct {
	DB *gorm.DB
}

func NewItemHandler(db *gorm.DB) *ItemHandler { return &ItemHandler{DB: db} }

// AddItemForm is the typed add submission.
type AddItemForm struct {
	Barcode     string
	ItemNumber  string
	Description string
	LotNumber   string
	ExpDate     string
	Typ         string
	Employee    string
}

func parseAddItemForm(r *http.Request) AddItemForm {
	return AddItemForm{
		Barcode:     r.FormValue("barcode"),
		ItemNumber:  r.FormValue("item_number"),
		Description: r.FormValue("description"),
		LotNumber:   r.FormValue("lot_number"),
		ExpDate:     r.FormValue("exp_date"),
		Typ:         r.FormValue("item_type"),
		Employee:    r.FormValue("employee"),
	}
}

// Validate runs the field rules in their fixed order. The uniqueness and
// required checks run after these, in the handler.
func (f AddItemForm) Validate() validation.Errors {
	var errs validation.Errors
	validation.ExactLen(&errs, "Barcode", f.Barcode, 6)
	validation.MaxLen(&errs, "Item #", f.ItemNumber, 50)
	validation.MaxLen(&errs, "Description", f.Description, 100)
	validation.MaxLen(&errs, "Lot #", f.LotNumber, 50)
	validation.MaxLen(&errs, "Type", f.Typ, 50)
	validation.MaxLen(&errs, "Employee", f.Employee, 50)
	validation.Numeric(&errs, "Barcode", f.Barcode)
	return errs
}

func (h *ItemHandler) renderAddForm(w http.ResponseWriter, r *http.Request, f AddItemForm, errMsg string) {
	render(w, r, "add_item.html", map[string]any{
		"Form":      f,
		"Error":     errMsg,
		"ItemTypes": models.ItemTypes,
	})
}

// Add renders the add form on GET and validates + writes on POST. Only the
// first error surfaces; the form is redisplayed with the submitted values.
func (h *ItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderAddForm(w, r, AddItemForm{}, "")
		return
	}
	f := parseAddItemForm(r)
	errs := f.Validate()

	var count int64
	if err := h.DB.Model(&models.Barcode{}).Where("barcode = ?", f.Barcode).Count(&count).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		errs.Add("Barcode already exists.")
	}
	validation.AllPresent(&errs, f.Barcode, f.ItemNumber, f.Description, f.LotNumber, f.ExpDate, f.Typ, f.Employee)

	if !errs.Empty() {
		h.renderAddForm(w, r, f, errs.First())
		return
	}

	// Transaction first, then barcode; a failure between the two leaves the
	// log and the barcode table inconsistent with no compensation.
	txn := models.Transaction{
		Barcode:     f.Barcode,
		ItemNumber:  f.ItemNumber,
		Description: f.Description,
		LotNumber:   f.LotNumber,
		ExpDate:     f.ExpDate,
		Typ:         f.Typ,
		AddRemove:   models.AddRemoveAdd,
		TransDate:   time.Now(),
		Employee:    f.Employee,
	}
	if err := h.DB.Create(&txn).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	bc := models.Barcode{
		Barcode:     f.Barcode,
		ItemNumber:  f.ItemNumber,
		Description: f.Description,
		LotNumber:   f.LotNumber,
		ExpDate:     f.ExpDate,
		Typ:         f.Typ,
		Remove:      models.BarcodeActive,
	}
	if err := h.DB.Create(&bc).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (h *ItemHandler) renderRemove(w http.ResponseWriter, r *http.Request, barcode string, record *models.Barcode, errMsg string) {
	render(w, r, "remove_item.html", map[string]any{
		"Barcode": barcode,
		"Record":  record,
		"Error":   errMsg,
	})
}

// lookupRemovable fetches a barcode and classifies the two lookup failures
// the remove flow reports.
func (h *ItemHandler) lookupRemovable(barcode string) (*models.Barcode, string, error) {
	var rec models.Barcode
	err := h.DB.Where("barcode = ?", barcode).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "This barcode does not exist.", nil
	}
	if err != nil {
		return nil, "", err
	}
	if rec.Remove == models.BarcodeRemoved {
		return nil, "This barcode has already been removed.", nil
	}
	return &rec, "", nil
}

// Remove is the two-phase removal: POST a barcode to look it up, then POST
// the hidden confirm sentinel with an employee name to commit. The confirm
// step re-runs the lookup; nothing binds the two phases together, so two
// operators racing on the same barcode is last-write-wins.
func (h *ItemHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderRemove(w, r, "", nil, "")
		return
	}
	barcode := r.FormValue("barcode")

	if r.FormValue("confirm") == "DO_REMOVE" {
		rec, lookupErr, err := h.lookupRemovable(barcode)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		if lookupErr != "" {
			h.renderRemove(w, r, barcode, nil, lookupErr)
			return
		}
		employee := r.FormValue("employee")
		if employee == "" {
			h.renderRemove(w, r, barcode, rec, "Employee is required before removing an item.")
			return
		}
		txn := models.Transaction{
			Barcode:     rec.Barcode,
			ItemNumber:  rec.ItemNumber,
			Description: rec.Description,
			LotNumber:   rec.LotNumber,
			ExpDate:     rec.ExpDate,
			Typ:         rec.Typ,
			AddRemove:   models.AddRemoveRemove,
			TransDate:   time.Now(),
			Employee:    employee,
		}
		if err := h.DB.Create(&txn).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		if err := h.DB.Model(&models.Barcode{}).Where("barcode = ?", rec.Barcode).
			Update("remove", models.BarcodeRemoved).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	// Search phase.
	if barcode == "" {
		h.renderRemove(w, r, "", nil, "")
		return
	}
	rec, lookupErr, err := h.lookupRemovable(barcode)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	h.renderRemove(w, r, barcode, rec, lookupErr)
}
