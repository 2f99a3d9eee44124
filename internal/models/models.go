package models

import "time"

// Item condition types offered by the add form and the edit selects.
const (
	TypeVendorDamage = "Vendor Damage"
	TypeDamage       = "Damage"
	TypeExpired      = "Expired"
	TypeShortDated   = "Short Dated"
)

// ItemTypes is the select-option order used on every form.
var ItemTypes = []string{TypeVendorDamage, TypeDamage, TypeExpired, TypeShortDated}

// Transaction directions.
const (
	AddRemoveAdd    = "Add"
	AddRemoveRemove = "Remove"
)

var AddRemoveValues = []string{AddRemoveAdd, AddRemoveRemove}

// Barcode remove-flag states.
const (
	BarcodeActive  = 0
	BarcodeRemoved = 1
)

// Barcode is one physical item: a unique 6-digit identifier plus its
// descriptive fields and an active/removed flag. Rows are created by the
// add workflow and flipped to removed (not deleted) by the remove workflow.
type Barcode struct {
	Barcode     string `gorm:"primaryKey;size:6"`
	ItemNumber  string `gorm:"size:50"`
	Description string `gorm:"size:100"`
	LotNumber   string `gorm:"size:50"`
	ExpDate     string `gorm:"size:10"` // YYYY-MM-DD
	Typ         string `gorm:"size:50"`
	Remove      int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Transaction is one add or remove event, appended at write time with a
// server-assigned timestamp. Rows carry a copy of the barcode's fields so
// the log stays readable even after the barcode record is edited or deleted.
type Transaction struct {
	TransID     uint   `gorm:"primaryKey;column:trans_id"`
	Barcode     string `gorm:"size:6;index"`
	ItemNumber  string `gorm:"size:50"`
	Description string `gorm:"size:100"`
	LotNumber   string `gorm:"size:50"`
	ExpDate     string `gorm:"size:10"`
	Typ         string `gorm:"size:50"`
	AddRemove   string `gorm:"size:50"`
	TransDate   time.Time
	Employee    string `gorm:"size:50"`
}

// InventoryRow is the derived count of active barcodes grouped by
// item/lot/expiration/type. The table is a cache: it is wiped and rebuilt
// on every inventory page view and is never read back by the application.
type InventoryRow struct {
	ID         uint   `gorm:"primaryKey"`
	ItemNumber string `gorm:"size:50"`
	LotNumber  string `gorm:"size:50"`
	ExpDate    string `gorm:"size:10"`
	Typ        string `gorm:"size:50"`
	Quantity   int64
}

func (InventoryRow) TableName() string { return "inventory" }
