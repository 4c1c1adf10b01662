package boq

import "testing"

func TestClassifyRow_QualifyingLine(t *testing.T) {
	roles := ColumnRoles{RoleQuantity: "C", RoleUnit: "B", RoleWeightKg: "D"}
	row := testRow(9, "Excavation terrassement", "m²", 12.5, 250.0, "003.001.")

	line := ClassifyRow(row, roles)

	if !line.IsBoqLine {
		t.Fatal("IsBoqLine = false, want true")
	}
	if line.ArticleCode == nil || *line.ArticleCode != "003.001." {
		t.Errorf("ArticleCode = %v, want 003.001.", line.ArticleCode)
	}
	if line.Unit == nil || *line.Unit != "m2" {
		t.Errorf("Unit = %v, want m2", line.Unit)
	}
	if line.Quantity == nil || *line.Quantity != 12.5 {
		t.Errorf("Quantity = %v, want 12.5", line.Quantity)
	}
	if line.WeightKg == nil || *line.WeightKg != 250.0 {
		t.Errorf("WeightKg = %v, want 250", line.WeightKg)
	}
	if line.RowIndex != 9 {
		t.Errorf("RowIndex = %d, want 9", line.RowIndex)
	}
}

func TestClassifyRow_SectionHeaderRejected(t *testing.T) {
	// Descriptive but non-numeric: fails the has_numeric leg.
	roles := ColumnRoles{RoleQuantity: "B"}
	row := testRow(3, "CHAPITRE 1 - TERRASSEMENTS", "voir détail")

	line := ClassifyRow(row, roles)

	if line.IsBoqLine {
		t.Error("section header classified as BOQ line")
	}
}

func TestClassifyRow_StrayTotalRejected(t *testing.T) {
	// Numeric but non-descriptive: fails the has_description leg.
	roles := ColumnRoles{RoleQuantity: "B"}
	row := testRow(40, "Tot.", 1250.0)

	line := ClassifyRow(row, roles)

	if line.IsBoqLine {
		t.Error("totals row classified as BOQ line")
	}
	if line.Quantity == nil || *line.Quantity != 1250.0 {
		t.Errorf("Quantity = %v, want 1250 (extracted even when not a BOQ line)", line.Quantity)
	}
}

func TestClassifyRow_NoRoleSignalRejected(t *testing.T) {
	// A 40-character description plus a numeric cell in a column with no
	// assigned role, and no article code: every role-derived signal is
	// missing, so the conjunction fails.
	roles := ColumnRoles{}
	row := testRow(12, "fourniture et pose de gaines électriques", 7.0)

	line := ClassifyRow(row, roles)

	if line.IsBoqLine {
		t.Error("row without role signal classified as BOQ line")
	}
}

func TestClassifyRow_NonNumericQuantityIsAbsent(t *testing.T) {
	roles := ColumnRoles{RoleQuantity: "B", RoleUnit: "C"}
	row := testRow(5, "pose de bordures en béton", "à confirmer", "m", 3.0)

	line := ClassifyRow(row, roles)

	if line.Quantity != nil {
		t.Errorf("Quantity = %v, want nil for non-numeric cell", *line.Quantity)
	}
	// Unit still anchors the line; the numeric cell sits in an unroled column.
	if !line.IsBoqLine {
		t.Error("IsBoqLine = false, want true (unit present, description, numeric)")
	}
}

func TestClassifyRow_MissingRoleColumnInRow(t *testing.T) {
	// Roles reference column F but the row only has three cells.
	roles := ColumnRoles{RoleQuantity: "F"}
	row := testRow(6, "description longue ici", 2.0, "003.")

	line := ClassifyRow(row, roles)

	if line.Quantity != nil {
		t.Errorf("Quantity = %v, want nil when the row has no cell at F", *line.Quantity)
	}
	if !line.IsBoqLine {
		t.Error("IsBoqLine = false, want true (article code anchors the line)")
	}
}

func TestClassifyRow_DescriptionLengthBoundary(t *testing.T) {
	roles := ColumnRoles{RoleQuantity: "B"}

	// Exactly five runes does not count as a description.
	short := ClassifyRow(testRow(1, "abcde", 4.0), roles)
	if short.IsBoqLine {
		t.Error("five-rune text counted as description")
	}

	long := ClassifyRow(testRow(2, "abcdef", 4.0), roles)
	if !long.IsBoqLine {
		t.Error("six-rune text not counted as description")
	}
}

func TestSummarize(t *testing.T) {
	q1, w1 := 10.0, 100.0
	q2 := 2.5
	q3, w3 := 99.0, 999.0

	lines := []BoqLine{
		{RowIndex: 1, IsBoqLine: true, Quantity: &q1, WeightKg: &w1},
		{RowIndex: 2, IsBoqLine: true, Quantity: &q2}, // absent weight counts as 0
		{RowIndex: 3, IsBoqLine: false, Quantity: &q3, WeightKg: &w3}, // excluded
		{RowIndex: 4, IsBoqLine: true}, // nothing to add
	}

	sum := Summarize(lines)

	if sum.TotalQuantity != 12.5 {
		t.Errorf("TotalQuantity = %v, want 12.5", sum.TotalQuantity)
	}
	if sum.TotalWeightKg != 100.0 {
		t.Errorf("TotalWeightKg = %v, want 100", sum.TotalWeightKg)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	if sum.TotalQuantity != 0 || sum.TotalWeightKg != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero totals", sum)
	}
}
