package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCacheReturnsSameCatalog(t *testing.T) {
	path := writeCatalogFile(t, "Item,Bin\nBolt,A1\n")
	cache := NewCache()

	first, err := cache.Load(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.Load(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("same path should return the same *Catalog")
	}
}

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	path := writeCatalogFile(t, "Item,Bin\nBolt,A1\n")
	cache := NewCache()

	first, err := cache.Load(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rewrite the file; the cache is keyed on path identity, so the old
	// parse keeps being served.
	if err := os.WriteFile(path, []byte("Item,Bin\nNut,B2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stale, err := cache.Load(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stale != first {
		t.Error("cache re-parsed without invalidation")
	}

	cache.Invalidate(path)

	fresh, err := cache.Load(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh == first {
		t.Error("invalidation did not force a re-parse")
	}
	if got := fresh.Records[0]["Item"]; got != "Nut" {
		t.Errorf("got %q, want %q", got, "Nut")
	}
}

func TestCacheLoadError(t *testing.T) {
	cache := NewCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "missing.csv"), 0); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestCacheDistinctPaths(t *testing.T) {
	a := writeCatalogFile(t, "Item\nBolt\n")
	b := writeCatalogFile(t, "Item\nNut\n")
	cache := NewCache()

	catA, err := cache.Load(a, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	catB, err := cache.Load(b, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if catA == catB {
		t.Error("different paths must not share a catalog")
	}
	if got := catB.Records[0]["Item"]; got != "Nut" {
		t.Errorf("got %q, want %q", got, "Nut")
	}
}
