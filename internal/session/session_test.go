package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpick/internal/catalog"
	"stockpick/internal/config"
	"stockpick/internal/picklist"
)

func warehouseCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Source:  "warehouse.csv",
		Columns: []string{"Artikel", "Lagerort", "Preis"},
		Records: []catalog.Record{
			{"Artikel": "Schraube M8", "Lagerort": "Regal 3", "Preis": "0.12"},
			{"Artikel": "Mutter M8", "Lagerort": "Regal 4", "Preis": "0.08"},
			{"Artikel": "Scheibe M8", "Lagerort": "Kiste 1", "Preis": "0.05"},
		},
	}
}

func TestNewGuessesColumns(t *testing.T) {
	cfg := config.DefaultConfig()

	s, err := New(warehouseCatalog(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "Artikel", s.ProductColumn)
	assert.Equal(t, "Lagerort", s.LocationColumn)
	assert.False(t, s.SearchProductOnly)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, 0, s.Picks.Len())
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	cat := &catalog.Catalog{
		Source:  "empty.csv",
		Columns: []string{"Artikel"},
	}

	_, err := New(cat, config.DefaultConfig(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCatalog))
	assert.Contains(t, err.Error(), "empty.csv")
}

func TestSearchAllColumns(t *testing.T) {
	s, err := New(warehouseCatalog(), config.DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Artikel", "Lagerort", "Preis"}, s.SearchColumns())

	// "regal" only appears in the location column.
	results := s.Search("regal")
	require.Len(t, results, 2)
	assert.Equal(t, "Schraube M8", results[0]["Artikel"])
	assert.Equal(t, "Mutter M8", results[1]["Artikel"])
}

func TestSearchProductOnly(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Search.ProductOnly = true

	s, err := New(warehouseCatalog(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Artikel"}, s.SearchColumns())

	// Location values are out of scope now.
	assert.Empty(t, s.Search("regal"))
	assert.Len(t, s.Search("m8"), 3)
}

func TestSearchScopeFollowsToggle(t *testing.T) {
	s, err := New(warehouseCatalog(), config.DefaultConfig(), nil)
	require.NoError(t, err)

	require.Len(t, s.Search("regal"), 2)

	s.SearchProductOnly = true
	assert.Empty(t, s.Search("regal"))

	s.SearchProductOnly = false
	assert.Len(t, s.Search("regal"), 2)
}

func TestAddPicksAndClear(t *testing.T) {
	s, err := New(warehouseCatalog(), config.DefaultConfig(), nil)
	require.NoError(t, err)

	n := s.AddPicks([]string{"Schraube M8", "Mutter M8"}, map[string]int{
		"Schraube M8": 4,
		"Mutter M8":   8,
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, 12, s.Picks.TotalQuantity())

	// Same product again merges instead of duplicating.
	n = s.AddPicks([]string{"Schraube M8"}, map[string]int{"Schraube M8": 1})
	assert.Equal(t, 2, n)
	assert.Equal(t, 13, s.Picks.TotalQuantity())

	s.ClearPicks()
	assert.Equal(t, 0, s.Picks.Len())
}

func TestAddRequests(t *testing.T) {
	s, err := New(warehouseCatalog(), config.DefaultConfig(), nil)
	require.NoError(t, err)

	n := s.AddRequests([]picklist.Request{
		{Product: "Schraube M8", Quantity: 2},
		{Product: "Scheibe M8", Quantity: 10},
		{Product: "Schraube M8", Quantity: 3},
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, 15, s.Picks.TotalQuantity())
}

func TestWritePickListUsesConfiguredNames(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Export.QuantityColumn = "Menge"
	cfg.Export.LocationColumn = "Lagerort_Anzeige"

	s, err := New(warehouseCatalog(), cfg, nil)
	require.NoError(t, err)

	s.AddPicks([]string{"Schraube M8"}, map[string]int{"Schraube M8": 6})

	var buf bytes.Buffer
	require.NoError(t, s.WritePickList(&buf))

	out, err := catalog.Parse(bytes.NewReader(buf.Bytes()), "export", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Artikel", "Lagerort_Anzeige", "Menge", "Lagerort", "Preis"}, out.Columns)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Schraube M8", out.Records[0]["Artikel"])
	assert.Equal(t, "Regal 3", out.Records[0]["Lagerort_Anzeige"])
	assert.Equal(t, "6", out.Records[0]["Menge"])
}

func TestExportPickListWritesFile(t *testing.T) {
	s, err := New(warehouseCatalog(), config.DefaultConfig(), nil)
	require.NoError(t, err)

	s.AddPicks([]string{"Mutter M8"}, map[string]int{"Mutter M8": 2})

	path := t.TempDir() + "/out/picks.csv"
	require.NoError(t, s.ExportPickList(path))

	out, err := catalog.Load(path, 0)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Mutter M8", out.Records[0]["Artikel"])
	assert.Equal(t, "2", out.Records[0]["Quantity"])
}
