package boq

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCellValue types a decoder-reported cell string.
//
// Both decoders yield formatted strings, so numbers and booleans are
// recovered by parsing: numeric text becomes float64, TRUE/FALSE becomes
// bool, empty becomes nil, anything else stays a string. Dates arrive
// pre-formatted and are kept as strings; no locale-aware parsing happens
// here.
func parseCellValue(s string) any {
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return s
}

// stringifyValue renders a cell value the way it would appear in the sheet.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(t)
	}
}

// numericValue reports whether v holds a number and returns it.
// Booleans and numeric-looking text do not count: typing happened at decode
// time and is not revisited here.
func numericValue(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// isBlank reports whether a cell value is nil or whitespace-only text.
func isBlank(v any) bool {
	return strings.TrimSpace(stringifyValue(v)) == ""
}
