package boq

// PreviewRows is the size of the window used for column role detection:
// the first up to 30 surviving rows of the sheet. Roles are derived exactly
// once per extraction from this window and applied uniformly to all rows.
const PreviewRows = 30

// Cell is a single decoded spreadsheet cell.
//
// Value is nil, string, float64, or bool. Cells covered by a merge region
// but not at the merge anchor carry nil. Address is always ColLetter
// concatenated with RowIndex and stays consistent with ColIndex.
type Cell struct {
	Address   string `json:"address"`
	ColIndex  int    `json:"col_index"`  // 1-based
	ColLetter string `json:"col_letter"` // spreadsheet letters: A..Z, AA..
	RowIndex  int    `json:"row_index"`  // 1-based
	Value     any    `json:"value"`
}

// Row is one sheet row that survived the visibility and emptiness filter.
type Row struct {
	RowIndex int    `json:"row_index"`
	Cells    []Cell `json:"cells"`
}

// Role names a semantic column role in a BOQ sheet.
type Role string

const (
	RoleQuantity  Role = "quantity"
	RoleUnit      Role = "unit"
	RoleUnitPrice Role = "unit_price"
	RoleAmount    Role = "amount"
	RoleWeightKg  Role = "weight_kg"
)

// ColumnRoles maps each detected role to a single column letter.
// A role is absent from the map when no evidence for it was found;
// downstream consumers tolerate absence.
type ColumnRoles map[Role]string

// BoqLine is the normalized form of one surviving row.
//
// Nil pointer fields render as JSON null, matching the wire contract:
// a missing article code, unit, quantity, or weight is expected data
// variance, not an error.
type BoqLine struct {
	RowIndex    int      `json:"row_index"`
	IsBoqLine   bool     `json:"is_boq_line"`
	ArticleCode *string  `json:"article_code"`
	Unit        *string  `json:"unit"`
	Quantity    *float64 `json:"quantity"`
	WeightKg    *float64 `json:"weight_kg"`
}

// Summary holds roll-up totals over the lines classified as real BOQ lines.
type Summary struct {
	TotalQuantity float64 `json:"total_quantity"`
	TotalWeightKg float64 `json:"total_weight_kg"`
}

// SheetData is the adapter output: one selected sheet reduced to its
// visible, non-empty rows in ascending row order.
type SheetData struct {
	SheetName string `json:"sheet_name"`
	RowCount  int    `json:"row_count"`
	Rows      []Row  `json:"rows"`
}
