package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDelimiterDetection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		columns []string
	}{
		{
			name:    "comma",
			input:   "Item,Bin\nBolt,A1\n",
			columns: []string{"Item", "Bin"},
		},
		{
			name:    "semicolon",
			input:   "Item;Bin\nBolt;A1\n",
			columns: []string{"Item", "Bin"},
		},
		{
			name:    "tab",
			input:   "Item\tBin\nBolt\tA1\n",
			columns: []string{"Item", "Bin"},
		},
		{
			name:    "pipe",
			input:   "Item|Bin\nBolt|A1\n",
			columns: []string{"Item", "Bin"},
		},
		{
			name:    "single column defaults to comma",
			input:   "Item\nBolt\n",
			columns: []string{"Item"},
		},
		{
			name:    "semicolon header with commas in the data",
			input:   "Artikel;Ort;Preis\nSchraube M8;\"Halle 1, Regal 2\";0,50\n",
			columns: []string{"Artikel", "Ort", "Preis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Parse(strings.NewReader(tt.input), "test.csv", 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.columns, cat.Columns); diff != "" {
				t.Errorf("columns mismatch (-want +got):\n%s", diff)
			}
			if len(cat.Records) != 1 {
				t.Errorf("got %d records, want 1", len(cat.Records))
			}
		})
	}
}

func TestParseExplicitDelimiterWins(t *testing.T) {
	// The header contains more semicolons than commas; a forced comma must
	// still be honored.
	input := "a;b;c,d\n1;2;3,4\n"
	cat, err := Parse(strings.NewReader(input), "test.csv", ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a;b;c", "d"}
	if diff := cmp.Diff(want, cat.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSkipsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFItem,Bin\nBolt,A1\n"
	cat, err := Parse(strings.NewReader(input), "test.csv", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Columns[0] != "Item" {
		t.Errorf("first column = %q, want %q (BOM must not stick to the header)", cat.Columns[0], "Item")
	}
}

func TestParseRows(t *testing.T) {
	input := "Item,Bin,Note\nBolt,A1,M8\nNut,B2\nWasher,C3,flat,extra\n"
	cat, err := Parse(strings.NewReader(input), "test.csv", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cat.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(cat.Records))
	}

	// Full row.
	if got := cat.Records[0]["Note"]; got != "M8" {
		t.Errorf("Records[0][Note] = %q, want %q", got, "M8")
	}

	// Short row: trailing column absent, not empty.
	if _, ok := cat.Records[1]["Note"]; ok {
		t.Errorf("Records[1][Note] should be absent for a short row")
	}

	// Long row: cells beyond the header width dropped.
	if len(cat.Records[2]) != 3 {
		t.Errorf("Records[2] has %d fields, want 3", len(cat.Records[2]))
	}
}

func TestParseNonASCII(t *testing.T) {
	input := "Artikel,Lagerort\nSchraube Größe M8,Gang 3\n"
	cat, err := Parse(strings.NewReader(input), "test.csv", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cat.Records[0]["Artikel"]; got != "Schraube Größe M8" {
		t.Errorf("got %q, want %q", got, "Schraube Größe M8")
	}
}

func TestParseHeaderOnly(t *testing.T) {
	cat, err := Parse(strings.NewReader("Item,Bin\n"), "test.csv", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cat.Empty() {
		t.Errorf("header-only catalog should be empty")
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := Parse(strings.NewReader(""), "test.csv", 0); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), 0); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte("Item;Bin\nBolt;A1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Source != path {
		t.Errorf("Source = %q, want %q", cat.Source, path)
	}
	if got := cat.Records[0]["Bin"]; got != "A1" {
		t.Errorf("got %q, want %q", got, "A1")
	}
}
