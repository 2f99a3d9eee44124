package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BradleySCNA/Quality-Inventory/internal/models"
	"github.com/BradleySCNA/Quality-Inventory/internal/services"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the three tables as one workbook: Transactions,
// Barcodes, and the derived Inventory grouping (computed for the file only,
// the inventory cache table is not touched).
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler { return &ExportHandler{DB: db} }

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *ExportHandler) Excel(w http.ResponseWriter, r *http.Request) {
	var txns []models.Transaction
	if err := h.DB.Order("trans_id desc").Find(&txns).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	var bcs []models.Barcode
	if err := h.DB.Order("barcode desc").Find(&bcs).Error; err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	groups := services.ComputeInventory(bcs)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeWorkbook(f, txns, bcs, groups); err != nil {
		http.Error(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := "quality_inv_data_" + time.Now().Format("20060102_150405") + ".xlsx"
	w.Header().Set("Content-Type", excelContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(w); err != nil {
		// Headers are already gone; nothing useful left to send.
		return
	}
}

func writeWorkbook(f *excelize.File, txns []models.Transaction, bcs []models.Barcode, groups []services.InventoryGroup) error {
	if err := f.SetSheetName("Sheet1", "Transactions"); err != nil {
		return err
	}
	if err := writeSheet(f, "Transactions",
		[]any{"trans_id", "barcode", "item_number", "description", "lot_number", "exp_date", "typ", "add_remove", "trans_date", "employee"},
		len(txns), func(i int) []any {
			t := txns[i]
			return []any{t.TransID, t.Barcode, t.ItemNumber, t.Description, t.LotNumber, t.ExpDate, t.Typ, t.AddRemove,
				t.TransDate.Truncate(time.Second).Format(transDateDisplayLayout), t.Employee}
		}); err != nil {
		return err
	}

	if _, err := f.NewSheet("Barcodes"); err != nil {
		return err
	}
	if err := writeSheet(f, "Barcodes",
		[]any{"barcode", "item_number", "description", "lot_number", "exp_date", "typ", "remove"},
		len(bcs), func(i int) []any {
			b := bcs[i]
			return []any{b.Barcode, b.ItemNumber, b.Description, b.LotNumber, b.ExpDate, b.Typ, b.Remove}
		}); err != nil {
		return err
	}

	if _, err := f.NewSheet("Inventory"); err != nil {
		return err
	}
	return writeSheet(f, "Inventory",
		[]any{"item_number", "lot_number", "exp_date", "typ", "Quantity"},
		len(groups), func(i int) []any {
			g := groups[i]
			return []any{g.ItemNumber, g.LotNumber, g.ExpDate, g.Typ, g.Quantity}
		})
}

func writeSheet(f *excelize.File, sheet string, header []any, n int, row func(i int) []any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cells := row(i)
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}
