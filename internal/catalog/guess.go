package catalog

import "strings"

// Default candidate lists for the two column roles, covering the German and
// English header names the catalogs in the field actually use.
var (
	DefaultProductCandidates  = []string{"artikel", "produkt", "product", "name", "bezeichnung", "item"}
	DefaultLocationCandidates = []string{"lager", "lagerort", "location", "warehouse", "regal", "fach", "bin"}
)

// GuessColumn picks the column most likely to carry a semantic role.
// Candidates are tried in order; for each candidate the columns are scanned
// in their original order and the first column whose lowercased name contains
// the lowercased candidate as a substring wins. Scanning in column order
// keeps the guess reproducible when a candidate matches more than one column.
// If nothing matches, the first column is returned. The bool is false only
// for an empty column set.
func GuessColumn(columns, candidates []string) (string, bool) {
	if len(columns) == 0 {
		return "", false
	}

	for _, cand := range candidates {
		needle := strings.ToLower(cand)
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), needle) {
				return col, true
			}
		}
	}

	return columns[0], true
}
