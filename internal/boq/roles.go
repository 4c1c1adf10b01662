package boq

import "strings"

// headerKeywords maps each column role to the header substrings that
// signal it. Hand-authored BOQ sheets in the field mix French, Dutch, and
// English headers, so every role carries all three. Matching is on
// lowercased, trimmed cell text via substring containment.
var headerKeywords = map[Role][]string{
	RoleQuantity:  {"quantité", "qté", "qte", "qty", "hoeveelheid"},
	RoleUnit:      {"unité", "unit", "eenheid", "u", "u.", "un", "un."},
	RoleUnitPrice: {"pu", "prix unitaire", "unit price", "eenheidsprijs"},
	RoleAmount:    {"montant", "total", "totaal", "amount", "sommes"},
	RoleWeightKg:  {"kg", "poids", "gewicht"},
}

// DetectColumnRoles assigns a single column to each semantic role by
// scanning the preview window, in two deterministic phases.
//
// Keyword phase: every cell whose lowercased text contains a role keyword
// makes its column a candidate for that role; each candidate set collapses
// to the lexicographically smallest column-letter string. The letter-string
// comparison intentionally mirrors the behavior this service replaces ("AA"
// sorts before "B"); sheets wider than column Z are rare in practice.
//
// Hint phase: a non-empty quantityHint or unitHint overrides (or sets) the
// corresponding role with the column of the first preview cell whose
// normalized text contains the normalized hint, scanning rows top to bottom
// and cells left to right. Both hints are evaluated independently.
func DetectColumnRoles(preview []Row, quantityHint, unitHint string) ColumnRoles {
	candidates := make(map[Role][]string)
	for _, row := range preview {
		for _, cell := range row.Cells {
			if cell.Value == nil {
				continue
			}
			v := strings.ToLower(strings.TrimSpace(stringifyValue(cell.Value)))
			if v == "" {
				continue
			}
			for role, keywords := range headerKeywords {
				for _, k := range keywords {
					if strings.Contains(v, k) {
						candidates[role] = append(candidates[role], cell.ColLetter)
						break
					}
				}
			}
		}
	}

	roles := make(ColumnRoles, len(candidates))
	for role, cols := range candidates {
		min := cols[0]
		for _, col := range cols[1:] {
			if col < min {
				min = col
			}
		}
		roles[role] = min
	}

	if col, ok := findHintColumn(preview, quantityHint); ok {
		roles[RoleQuantity] = col
	}
	if col, ok := findHintColumn(preview, unitHint); ok {
		roles[RoleUnit] = col
	}

	return roles
}

// findHintColumn locates the first preview cell whose normalized text
// contains the normalized hint, in row-major order.
func findHintColumn(preview []Row, hint string) (string, bool) {
	hint = normalizeHintText(hint)
	if hint == "" {
		return "", false
	}
	for _, row := range preview {
		for _, cell := range row.Cells {
			if cell.Value == nil {
				continue
			}
			if strings.Contains(normalizeHintText(stringifyValue(cell.Value)), hint) {
				return cell.ColLetter, true
			}
		}
	}
	return "", false
}

// normalizeHintText lowercases, treats pipes as whitespace, and collapses
// whitespace runs to single spaces. Applied to both hints and cell text so
// multi-line headers like "Qté\n|\nstuks" still match simple hints.
func normalizeHintText(s string) string {
	s = strings.ReplaceAll(s, "|", " ")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
