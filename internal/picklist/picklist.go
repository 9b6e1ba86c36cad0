// Package picklist accumulates user-picked catalog records with quantities
// and turns them into a spreadsheet-friendly CSV export.
package picklist

import "stockpick/internal/catalog"

// Entry is one pick-list line: a copy of the catalog record it came from,
// annotated with the picked quantity and, when a location column is assigned,
// the location value surfaced for the picker.
type Entry struct {
	Fields      map[string]string
	Columns     []string // column order snapshot from the source catalog
	Quantity    int
	Location    string
	HasLocation bool
}

// List holds picked products in first-insertion order, unique by the value of
// the product column. Add merges, Clear erases; there is no per-entry removal
// and no quantity decrement.
type List struct {
	entries []Entry
}

func New() *List {
	return &List{}
}

// Add works through selected in order. A missing or non-positive quantity
// skips the product, an identity with no catalog match skips silently, and a
// product already on the list gets its quantity bumped in place instead of a
// second entry. Add never fails; each selected product is independent of the
// others.
func (l *List) Add(cat *catalog.Catalog, productCol, locationCol string, selected []string, quantities map[string]int) {
	for _, prod := range selected {
		qty := quantities[prod]
		if qty <= 0 {
			continue
		}

		rec, ok := findRecord(cat, productCol, prod)
		if !ok {
			continue
		}

		if l.merge(productCol, rec[productCol], qty) {
			continue
		}

		l.entries = append(l.entries, newEntry(rec, cat.Columns, locationCol, qty))
	}
}

// Clear drops every entry. It is the only way entries leave the list.
func (l *List) Clear() {
	l.entries = nil
}

func (l *List) Len() int {
	return len(l.entries)
}

// Entries returns the list in insertion order. The slice is a copy; the
// entries still share their field maps with the list.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// TotalQuantity sums the quantities across all entries.
func (l *List) TotalQuantity() int {
	total := 0
	for _, e := range l.entries {
		total += e.Quantity
	}
	return total
}

func findRecord(cat *catalog.Catalog, productCol, prod string) (catalog.Record, bool) {
	for _, rec := range cat.Records {
		if rec[productCol] == prod {
			return rec, true
		}
	}
	return nil, false
}

func (l *List) merge(productCol, key string, qty int) bool {
	for i := range l.entries {
		if l.entries[i].Fields[productCol] == key {
			l.entries[i].Quantity += qty
			return true
		}
	}
	return false
}

func newEntry(rec catalog.Record, columns []string, locationCol string, qty int) Entry {
	fields := make(map[string]string, len(rec))
	for k, v := range rec {
		fields[k] = v
	}

	entry := Entry{
		Fields:   fields,
		Columns:  append([]string(nil), columns...),
		Quantity: qty,
	}

	if locationCol != "" {
		if loc, ok := rec[locationCol]; ok {
			entry.Location = loc
			entry.HasLocation = true
		}
	}

	return entry
}
