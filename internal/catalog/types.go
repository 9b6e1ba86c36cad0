package catalog

// Record is one catalog row keyed by column name. Column sets are not known
// until the source file is loaded, so rows are generic maps rather than
// structs; column order lives on Catalog.Columns, never on the record.
type Record map[string]string

// Catalog is a loaded product table. It is read-only after Load returns:
// sessions share it, nothing mutates it.
type Catalog struct {
	Source  string
	Columns []string
	Records []Record
}

// Empty reports whether the catalog has no data rows. An empty catalog is
// fatal to a session; the loader still returns it so the caller can tell
// "no rows" apart from "unreadable file".
func (c *Catalog) Empty() bool {
	return len(c.Records) == 0
}
