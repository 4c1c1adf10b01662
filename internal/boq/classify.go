package boq

import (
	"strings"
	"unicode/utf8"
)

// minDescriptionLen is the trimmed length a textual cell must exceed to
// count as a description. Shorter strings are codes, units, or noise.
const minDescriptionLen = 5

// ClassifyRow turns one surviving row into a normalized BOQ line using the
// run-wide column roles.
//
// Quantity and weight are taken only from cells holding numeric values in
// their role columns; non-numeric values there are treated as absent. The
// is_boq_line decision is a hard conjunction: the row must carry a
// description (any textual cell longer than minDescriptionLen after trim),
// a numeric cell anywhere, and at least one role-derived signal (article
// code, unit, quantity, or weight). Section headers fail the numeric leg,
// stray totals fail the description leg, and unanchored noise fails the
// signal leg.
func ClassifyRow(row Row, roles ColumnRoles) BoqLine {
	line := BoqLine{RowIndex: row.RowIndex}

	if code, ok := DetectArticleCode(row.Cells); ok {
		line.ArticleCode = &code
	}

	if cell := cellAt(row.Cells, roles[RoleUnit]); cell != nil && cell.Value != nil {
		line.Unit = NormalizeUnit(cell.Value)
	}
	if cell := cellAt(row.Cells, roles[RoleQuantity]); cell != nil {
		if q, ok := numericValue(cell.Value); ok {
			line.Quantity = &q
		}
	}
	if cell := cellAt(row.Cells, roles[RoleWeightKg]); cell != nil {
		if w, ok := numericValue(cell.Value); ok {
			line.WeightKg = &w
		}
	}

	hasDescription := false
	hasNumeric := false
	for _, cell := range row.Cells {
		switch v := cell.Value.(type) {
		case string:
			if utf8.RuneCountInString(strings.TrimSpace(v)) > minDescriptionLen {
				hasDescription = true
			}
		case float64:
			hasNumeric = true
		}
	}

	line.IsBoqLine = hasDescription && hasNumeric &&
		(line.ArticleCode != nil || line.Unit != nil || line.Quantity != nil || line.WeightKg != nil)

	return line
}

// cellAt finds the row's cell at the given column letter. Rows may have
// fewer populated columns than the roles reference; nil means no such cell.
func cellAt(cells []Cell, colLetter string) *Cell {
	if colLetter == "" {
		return nil
	}
	for i := range cells {
		if cells[i].ColLetter == colLetter {
			return &cells[i]
		}
	}
	return nil
}

// Summarize folds all lines with is_boq_line set into roll-up totals,
// treating absent quantity/weight as zero. Non-qualifying lines contribute
// nothing even when they carry numeric values.
func Summarize(lines []BoqLine) Summary {
	var s Summary
	for _, line := range lines {
		if !line.IsBoqLine {
			continue
		}
		if line.Quantity != nil {
			s.TotalQuantity += *line.Quantity
		}
		if line.WeightKg != nil {
			s.TotalWeightKg += *line.WeightKg
		}
	}
	return s
}
