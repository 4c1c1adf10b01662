package boq

import (
	"regexp"
	"strings"
)

// articleCodePattern matches hierarchical article codes as they appear in
// engineering BOQ sheets: a leading three-digit group, further dot-separated
// numeric groups, an optional single uppercase letter, and a mandatory
// trailing dot. Examples: "003.", "003.012.", "003.012.A.".
var articleCodePattern = regexp.MustCompile(`^\d{3}(\.\d+)*(\.[A-Z])?\.$`)

// DetectArticleCode returns the first cell text in the row, in cell order,
// that matches the article code pattern. At most one code is attributed per
// row; ok is false when no cell matches.
func DetectArticleCode(cells []Cell) (code string, ok bool) {
	for _, cell := range cells {
		if cell.Value == nil {
			continue
		}
		v := strings.TrimSpace(stringifyValue(cell.Value))
		if articleCodePattern.MatchString(v) {
			return v, true
		}
	}
	return "", false
}
