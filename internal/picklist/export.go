package picklist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Spreadsheets (Excel in particular) only pick up UTF-8 when the file starts
// with a byte-order mark.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Export writes the pick list as comma-separated CSV preceded by a UTF-8 BOM.
// Column order: the product column first, the location display column when at
// least one entry carries a location, the quantity column, then every
// remaining source column in first-seen order across the entries. A catalog
// column sharing a reserved name is overwritten by the pick-list value, never
// duplicated.
func Export(w io.Writer, list *List, productCol, locationName, quantityName string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	entries := list.Entries()
	columns, hasLocation := exportColumns(entries, productCol, locationName, quantityName)

	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	row := make([]string, len(columns))
	for _, e := range entries {
		for i, col := range columns {
			switch {
			case hasLocation && col == locationName:
				row[i] = e.Location
			case col == quantityName:
				row[i] = strconv.Itoa(e.Quantity)
			default:
				row[i] = e.Fields[col]
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportFile writes the pick list to path, creating parent directories as
// needed. A failed export removes the partial file.
func ExportFile(path string, list *List, productCol, locationName, quantityName string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := Export(file, list, productCol, locationName, quantityName); err != nil {
		os.Remove(path)
		return fmt.Errorf("export failed: %w", err)
	}

	return nil
}

func exportColumns(entries []Entry, productCol, locationName, quantityName string) ([]string, bool) {
	hasLocation := false
	for _, e := range entries {
		if e.HasLocation {
			hasLocation = true
			break
		}
	}

	lead := []string{productCol}
	if hasLocation {
		lead = append(lead, locationName)
	}
	lead = append(lead, quantityName)

	var columns []string
	seen := make(map[string]bool)
	for _, col := range lead {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	for _, e := range entries {
		for _, col := range e.Columns {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	return columns, hasLocation
}
