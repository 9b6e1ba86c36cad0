package picklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRequestsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picks.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRequests(t *testing.T) {
	path := writeRequestsFile(t, "product,quantity\nBolt,5\nNut,3\n")

	requests, err := ReadRequests(path)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, Request{Product: "Bolt", Quantity: 5}, requests[0])
	assert.Equal(t, Request{Product: "Nut", Quantity: 3}, requests[1])
}

func TestReadRequestsWithBOM(t *testing.T) {
	path := writeRequestsFile(t, "\xEF\xBB\xBFproduct,quantity\nBolt,5\n")

	requests, err := ReadRequests(path)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "Bolt", requests[0].Product)
}

func TestReadRequestsMissingFile(t *testing.T) {
	_, err := ReadRequests(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadRequestsBadQuantity(t *testing.T) {
	path := writeRequestsFile(t, "product,quantity\nBolt,many\n")

	_, err := ReadRequests(path)
	assert.Error(t, err)
}

func TestAddRequestsMergesDuplicates(t *testing.T) {
	cat := boltNutCatalog()
	list := New()

	list.AddRequests(cat, "Item", "Bin", []Request{
		{Product: "Bolt", Quantity: 2},
		{Product: "Nut", Quantity: 0}, // skipped, same rule as interactive picks
		{Product: "Bolt", Quantity: 3},
	})

	require.Equal(t, 1, list.Len())
	entry := list.Entries()[0]
	assert.Equal(t, "Bolt", entry.Fields["Item"])
	assert.Equal(t, 5, entry.Quantity)
}
