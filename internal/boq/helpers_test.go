package boq

// helpers_test.go holds small builders shared by the package tests.

// testRow builds a Row whose cells start at column A. Values use the typed
// cell representation directly: nil, string, float64, or bool.
func testRow(rowIdx int, values ...any) Row {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = newCell(i+1, rowIdx, v)
	}
	return Row{RowIndex: rowIdx, Cells: cells}
}
