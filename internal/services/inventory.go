package services

import (
	"sort"

	"github.com/BradleySCNA/Quality-Inventory/internal/models"
	"gorm.io/gorm"
)

// InventoryGroup is one row of the derived inventory: the count of active
// barcodes sharing item number, lot, expiration date and type.
type InventoryGroup struct {
	ItemNumber string
	LotNumber  string
	ExpDate    string
	Typ        string
	Quantity   int64
}

// ComputeInventory groups the active (remove=0) barcodes and counts them.
// Pure and deterministic: output is sorted by the grouping key.
func ComputeInventory(barcodes []models.Barcode) []InventoryGroup {
	type key struct {
		itemNumber, lotNumber, expDate, typ string
	}
	counts := map[key]int64{}
	for _, b := range barcodes {
		if b.Remove != models.BarcodeActive {
			continue
		}
		counts[key{b.ItemNumber, b.LotNumber, b.ExpDate, b.Typ}]++
	}
	groups := make([]InventoryGroup, 0, len(counts))
	for k, n := range counts {
		groups = append(groups, InventoryGroup{
			ItemNumber: k.itemNumber,
			LotNumber:  k.lotNumber,
			ExpDate:    k.expDate,
			Typ:        k.typ,
			Quantity:   n,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.ItemNumber != b.ItemNumber {
			return a.ItemNumber < b.ItemNumber
		}
		if a.LotNumber != b.LotNumber {
			return a.LotNumber < b.LotNumber
		}
		if a.ExpDate != b.ExpDate {
			return a.ExpDate < b.ExpDate
		}
		return a.Typ < b.Typ
	})
	return groups
}

// InventoryService derives the current inventory from the barcode table.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService { return &InventoryService{DB: db} }

// Derive fetches all barcodes and computes the grouping without touching
// the inventory table. Also returns the total barcode row count so callers
// can tell "no inventory at all" apart from "nothing active".
func (s *InventoryService) Derive() ([]InventoryGroup, int64, error) {
	var barcodes []models.Barcode
	if err := s.DB.Find(&barcodes).Error; err != nil {
		return nil, 0, err
	}
	return ComputeInventory(barcodes), int64(len(barcodes)), nil
}

// Recompute derives the grouping and replaces the inventory cache table
// with it. The table holds no independent state; every view rewrites it.
// There is no concurrency guard: two simultaneous inventory page loads can
// interleave the delete and the inserts and transiently persist a partial
// snapshot (kept from the source system, see DESIGN.md).
func (s *InventoryService) Recompute() ([]InventoryGroup, int64, error) {
	groups, total, err := s.Derive()
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return groups, 0, nil
	}
	if err := s.DB.Exec("DELETE FROM inventory").Error; err != nil {
		return nil, 0, err
	}
	if len(groups) > 0 {
		rows := make([]models.InventoryRow, len(groups))
		for i, g := range groups {
			rows[i] = models.InventoryRow{
				ItemNumber: g.ItemNumber,
				LotNumber:  g.LotNumber,
				ExpDate:    g.ExpDate,
				Typ:        g.Typ,
				Quantity:   g.Quantity,
			}
		}
		if err := s.DB.Create(&rows).Error; err != nil {
			return nil, 0, err
		}
	}
	return groups, total, nil
}
