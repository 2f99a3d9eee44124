package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/BradleySCNA/Quality-Inventory/internal/models"
)

func validAddForm() url.Values {
	return url.Values{
		"barcode":     {"100001"},
		"item_number": {"SKU1"},
		"description": {"Box damaged in transit"},
		"lot_number":  {"L1"},
		"exp_date":    {"2025-01-01"},
		"item_type":   {models.TypeDamage},
		"employee":    {"Alice"},
	}
}

func TestAddItemSuccess(t *testing.T) {
	db := newTestDB(t)
	h := NewItemHandler(db)

	rec := postForm(t, h.Add, "/add_item", validAddForm())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/home" {
		t.Errorf("redirect = %q, want /home", loc)
	}

	var txn models.Transaction
	if err := db.First(&txn).Error; err != nil {
		t.Fatalf("transaction not written: %v", err)
	}
	if txn.Barcode != "100001" || txn.AddRemove != models.AddRemoveAdd || txn.Employee != "Alice" {
		t.Errorf("transaction = %+v", txn)
	}
	if txn.TransDate.IsZero() {
		t.Error("transaction date not set")
	}

	var bc models.Barcode
	if err := db.First(&bc).Error; err != nil {
		t.Fatalf("barcode not written: %v", err)
	}
	if bc.Barcode != "100001" || bc.Remove != models.BarcodeActive {
		t.Errorf("barcode = %+v", bc)
	}
}

func TestAddItemGETRendersForm(t *testing.T) {
	h := NewItemHandler(newTestDB(t))
	rec := get(t, h.Add, "/add_item")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`name="barcode"`, `name="employee"`, models.TypeVendorDamage} {
		if !strings.Contains(body, want) {
			t.Errorf("form missing %q", want)
		}
	}
}

func TestAddItemDuplicateBarcode(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.Barcode{Barcode: "100001", ItemNumber: "SKU1"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewItemHandler(db)

	rec := postForm(t, h.Add, "/add_item", validAddForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Barcode already exists.") {
		t.Errorf("body missing duplicate error: %s", rec.Body.String())
	}
	if n := countRows(t, db, &models.Transaction{}); n != 0 {
		t.Errorf("transactions written on failed add: %d", n)
	}
}

func TestAddItemValidationOrder(t *testing.T) {
	db := newTestDB(t)
	h := NewItemHandler(db)

	// Bad length and non-numeric at once: the length error surfaces first.
	form := validAddForm()
	form.Set("barcode", "abc")
	rec := postForm(t, h.Add, "/add_item", form)
	if !strings.Contains(rec.Body.String(), "Barcode must be exactly 6 characters.") {
		t.Errorf("first error not surfaced: %s", rec.Body.String())
	}

	// Right length, wrong charset.
	form = validAddForm()
	form.Set("barcode", "abcdef")
	rec = postForm(t, h.Add, "/add_item", form)
	if !strings.Contains(rec.Body.String(), "Barcode must be numeric.") {
		t.Errorf("numeric error not surfaced: %s", rec.Body.String())
	}

	// Valid fields but one missing.
	form = validAddForm()
	form.Set("employee", "")
	rec = postForm(t, h.Add, "/add_item", form)
	if !strings.Contains(rec.Body.String(), "All fields are required.") {
		t.Errorf("required error not surfaced: %s", rec.Body.String())
	}

	if n := countRows(t, db, &models.Barcode{}); n != 0 {
		t.Errorf("barcodes written on failed adds: %d", n)
	}
}

func TestRemoveSearchShowsRecord(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.Barcode{Barcode: "100001", ItemNumber: "SKU1", Description: "Box damaged"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewItemHandler(db)

	rec := postForm(t, h.Remove, "/remove_item", url.Values{"barcode": {"100001"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Box damaged") {
		t.Errorf("record not shown: %s", body)
	}
	if !strings.Contains(body, "DO_REMOVE") {
		t.Errorf("confirm sentinel missing: %s", body)
	}
}

func TestRemoveUnknownBarcode(t *testing.T) {
	h := NewItemHandler(newTestDB(t))
	rec := postForm(t, h.Remove, "/remove_item", url.Values{"barcode": {"999999"}})
	if !strings.Contains(rec.Body.String(), "This barcode does not exist.") {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestRemoveAlreadyRemoved(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.Barcode{Barcode: "100001", Remove: models.BarcodeRemoved}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewItemHandler(db)

	rec := postForm(t, h.Remove, "/remove_item", url.Values{
		"barcode":  {"100001"},
		"confirm":  {"DO_REMOVE"},
		"employee": {"Bob"},
	})
	if !strings.Contains(rec.Body.String(), "This barcode has already been removed.") {
		t.Errorf("body: %s", rec.Body.String())
	}
	if n := countRows(t, db, &models.Transaction{}); n != 0 {
		t.Errorf("transactions written: %d", n)
	}
}

func TestRemoveConfirmRequiresEmployee(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.Barcode{Barcode: "100001", ItemNumber: "SKU1"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewItemHandler(db)

	rec := postForm(t, h.Remove, "/remove_item", url.Values{
		"barcode": {"100001"},
		"confirm": {"DO_REMOVE"},
	})
	if !strings.Contains(rec.Body.String(), "Employee is required before removing an item.") {
		t.Errorf("body: %s", rec.Body.String())
	}

	var bc models.Barcode
	if err := db.First(&bc, "barcode = ?", "100001").Error; err != nil {
		t.Fatalf("read: %v", err)
	}
	if bc.Remove != models.BarcodeActive {
		t.Error("barcode flipped without employee")
	}
	if n := countRows(t, db, &models.Transaction{}); n != 0 {
		t.Errorf("transactions written: %d", n)
	}
}

func TestRemoveConfirmSuccess(t *testing.T) {
	db := newTestDB(t)
	seed := models.Barcode{Barcode: "100001", ItemNumber: "SKU1", Description: "Box damaged", LotNumber: "L1", ExpDate: "2025-01-01", Typ: models.TypeDamage}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewItemHandler(db)

	rec := postForm(t, h.Remove, "/remove_item", url.Values{
		"barcode":  {"100001"},
		"confirm":  {"DO_REMOVE"},
		"employee": {"Bob"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	var txn models.Transaction
	if err := db.First(&txn).Error; err != nil {
		t.Fatalf("remove transaction not written: %v", err)
	}
	if txn.AddRemove != models.AddRemoveRemove || txn.Employee != "Bob" || txn.ItemNumber != "SKU1" {
		t.Errorf("transaction = %+v", txn)
	}

	var bc models.Barcode
	if err := db.First(&bc, "barcode = ?", "100001").Error; err != nil {
		t.Fatalf("read: %v", err)
	}
	if bc.Remove != models.BarcodeRemoved {
		t.Errorf("remove flag = %d, want %d", bc.Remove, models.BarcodeRemoved)
	}
}
