package catalog

import "strings"

// FilterRows keeps the records where at least one of the given columns
// contains term as a case-insensitive substring. The term is trimmed before
// matching; an empty or all-whitespace term returns the input slice as-is,
// so callers must not assume the result is a copy. Absent column values
// never match. Record order is preserved.
func FilterRows(records []Record, term string, columns []string) []Record {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return records
	}

	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		for _, col := range columns {
			val, ok := rec[col]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(val), needle) {
				matched = append(matched, rec)
				break
			}
		}
	}

	return matched
}
