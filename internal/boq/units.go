package boq

import "strings"

// unitReplacer rewrites superscript area/volume glyphs to their ASCII forms.
var unitReplacer = strings.NewReplacer("m²", "m2", "m³", "m3")

// NormalizeUnit canonicalizes a unit-of-measure cell value: stringify, trim,
// lowercase, and map m²/m³ to m2/m3. Returns nil for nil input or when the
// result is empty.
func NormalizeUnit(v any) *string {
	if v == nil {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(stringifyValue(v)))
	s = unitReplacer.Replace(s)
	if s == "" {
		return nil
	}
	return &s
}
