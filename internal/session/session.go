// Package session ties one loaded catalog to the user's column assignments
// and pick list. Everything that is "the current browsing session" lives here
// explicitly; there are no package-level globals.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockpick/internal/catalog"
	"stockpick/internal/config"
	"stockpick/internal/picklist"
)

// ErrEmptyCatalog marks a catalog with no data rows. Searching or picking
// against zero rows is pointless, so a session refuses to start.
var ErrEmptyCatalog = errors.New("catalog has no data rows")

// Session owns the state scoped to one user working one catalog: column role
// assignments, search scope and the pick list. Created after a successful
// load, discarded at exit.
type Session struct {
	ID      uuid.UUID
	Catalog *catalog.Catalog

	ProductColumn     string
	LocationColumn    string // empty means no location column assigned
	SearchProductOnly bool

	Picks *picklist.List

	cfg *config.Config
	log *zap.Logger
}

// New starts a session over a loaded catalog, guessing both column roles from
// the configured candidate lists. The guesses are starting points; the user
// may reassign either column, or set the location column to none.
func New(cat *catalog.Catalog, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if cat.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, cat.Source)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	productCol, _ := catalog.GuessColumn(cat.Columns, cfg.ProductCandidates)
	locationCol, _ := catalog.GuessColumn(cat.Columns, cfg.LocationCandidates)

	s := &Session{
		ID:                uuid.New(),
		Catalog:           cat,
		ProductColumn:     productCol,
		LocationColumn:    locationCol,
		SearchProductOnly: cfg.Search.ProductOnly,
		Picks:             picklist.New(),
		cfg:               cfg,
		log:               logger,
	}

	s.log.Info("session started",
		zap.String("session", s.ID.String()),
		zap.String("catalog", cat.Source),
		zap.Int("rows", len(cat.Records)),
		zap.String("product_column", productCol),
		zap.String("location_column", locationCol))

	return s, nil
}

// SearchColumns returns the columns free-text search runs over.
func (s *Session) SearchColumns() []string {
	if s.SearchProductOnly {
		return []string{s.ProductColumn}
	}
	return s.Catalog.Columns
}

// Search filters the catalog rows by term over the current search scope.
func (s *Session) Search(term string) []catalog.Record {
	results := catalog.FilterRows(s.Catalog.Records, term, s.SearchColumns())
	s.log.Debug("search",
		zap.String("session", s.ID.String()),
		zap.String("term", term),
		zap.Int("matches", len(results)))
	return results
}

// AddPicks merges the selected products into the pick list and returns the
// resulting entry count.
func (s *Session) AddPicks(selected []string, quantities map[string]int) int {
	s.Picks.Add(s.Catalog, s.ProductColumn, s.LocationColumn, selected, quantities)
	s.log.Info("picks added",
		zap.String("session", s.ID.String()),
		zap.Int("selected", len(selected)),
		zap.Int("entries", s.Picks.Len()),
		zap.Int("total_quantity", s.Picks.TotalQuantity()))
	return s.Picks.Len()
}

// AddRequests replays a batch pick file through the aggregator and returns
// the resulting entry count.
func (s *Session) AddRequests(requests []picklist.Request) int {
	s.Picks.AddRequests(s.Catalog, s.ProductColumn, s.LocationColumn, requests)
	s.log.Info("batch picks added",
		zap.String("session", s.ID.String()),
		zap.Int("requests", len(requests)),
		zap.Int("entries", s.Picks.Len()))
	return s.Picks.Len()
}

// ClearPicks empties the pick list.
func (s *Session) ClearPicks() {
	s.Picks.Clear()
	s.log.Info("pick list cleared", zap.String("session", s.ID.String()))
}

// WritePickList exports the pick list to w using the configured export
// column names.
func (s *Session) WritePickList(w io.Writer) error {
	return picklist.Export(w, s.Picks, s.ProductColumn,
		s.cfg.Export.LocationColumn, s.cfg.Export.QuantityColumn)
}

// ExportPickList writes the pick list to path.
func (s *Session) ExportPickList(path string) error {
	err := picklist.ExportFile(path, s.Picks, s.ProductColumn,
		s.cfg.Export.LocationColumn, s.cfg.Export.QuantityColumn)
	if err != nil {
		return err
	}

	s.log.Info("pick list exported",
		zap.String("session", s.ID.String()),
		zap.String("path", path),
		zap.Int("entries", s.Picks.Len()))
	return nil
}
