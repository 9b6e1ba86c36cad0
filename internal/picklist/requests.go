package picklist

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"

	"stockpick/internal/catalog"
)

// Request is one row of a batch pick file: a comma-separated CSV with
// "product" and "quantity" headers. Quantities follow the same rules as
// interactive picks, so zero and negative values are skipped, not rejected.
type Request struct {
	Product  string `csv:"product"`
	Quantity int    `csv:"quantity"`
}

// ReadRequests parses a batch pick file. Rows keep their file order;
// duplicate products are left to the aggregator's merge.
func ReadRequests(path string) ([]Request, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open requests file: %w", err)
	}
	defer file.Close()

	decoder, err := csvutil.NewDecoder(csv.NewReader(catalog.NewBOMReader(file)))
	if err != nil {
		return nil, fmt.Errorf("failed to read requests header: %w", err)
	}

	var requests []Request
	if err := decoder.Decode(&requests); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}

	return requests, nil
}

// AddRequests replays a batch of requests one at a time so duplicate rows
// merge exactly the way repeated interactive picks do.
func (l *List) AddRequests(cat *catalog.Catalog, productCol, locationCol string, requests []Request) {
	for _, req := range requests {
		l.Add(cat, productCol, locationCol,
			[]string{req.Product},
			map[string]int{req.Product: req.Quantity})
	}
}
