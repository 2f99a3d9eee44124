package view

// Cell is one table cell; when Href is set the cell renders as a link
// (Trans ID and Barcode columns drill down into the edit pages).
type Cell struct {
	Text string
	Href string
}

// Table is a tabular result set ready for the data-table partial.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// TextRow builds a row of plain (unlinked) cells.
func TextRow(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Text: v}
	}
	return cells
}
