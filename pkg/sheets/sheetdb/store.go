package sheetdb

import (
	"context"
	"time"

	"github.com/itaoit/itstock-backend/pkg/cache"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
	"github.com/itaoit/itstock-backend/pkg/metrics"
)

// SheetAPI is the remote surface the store needs from the sheets client.
type SheetAPI interface {
	SpreadsheetID() string
	GetValues(ctx context.Context, tab string) ([][]any, error)
	UpdateValues(ctx context.Context, tab string, values [][]any) error
	AppendRow(ctx context.Context, tab string, row []any) error
	AppendRows(ctx context.Context, tab string, rows [][]any) error
}

// Store is the tabular data-access layer: whole-tab reads behind a TTL
// cache, whole-tab overwrites, and a cheap append path. It is the only
// component that talks to the spreadsheet after bootstrap.
type Store struct {
	api     SheetAPI
	cache   cache.Cache
	metrics *metrics.SheetMetrics
	logg    *logger.Logger
}

// NewStore wires the data-access layer.
func NewStore(api SheetAPI, c cache.Cache, m *metrics.SheetMetrics, logg *logger.Logger) *Store {
	return &Store{api: api, cache: c, metrics: m, logg: logg}
}

// Read fetches a tab as a table with exactly the declared columns, serving
// from cache when a fresh-enough copy exists.
func (s *Store) Read(ctx context.Context, spec TabSpec) (*Table, error) {
	if s.cache != nil {
		if blob, ok, err := s.cache.Get(ctx, s.cacheKey(spec)); err == nil && ok {
			table := &Table{}
			if err := table.UnmarshalBinary(blob); err == nil {
				s.metrics.IncCacheHit(spec.Name)
				return table, nil
			}
		}
	}
	s.metrics.IncCacheMiss(spec.Name)
	return s.readRemote(ctx, spec, true)
}

// ReadFresh bypasses and refills the cache; used when the caller must see
// its own just-written rows.
func (s *Store) ReadFresh(ctx context.Context, spec TabSpec) (*Table, error) {
	return s.readRemote(ctx, spec, true)
}

func (s *Store) readRemote(ctx context.Context, spec TabSpec, fillCache bool) (*Table, error) {
	start := time.Now()
	values, err := s.api.GetValues(ctx, spec.Name)
	s.metrics.ObserveCall(spec.Name, "read", time.Since(start), err)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading tab "+spec.Name)
	}

	table := TableFromValues(values, spec.Headers)
	if fillCache && s.cache != nil {
		if blob, err := table.MarshalBinary(); err == nil {
			if err := s.cache.Set(ctx, s.cacheKey(spec), blob); err != nil && s.logg != nil {
				s.logg.Warn(s.logg.WithTab(ctx, spec.Name), "cache fill failed")
			}
		}
	}
	return table, nil
}

// Write replaces the tab's full content (header row plus data rows) and
// invalidates the cached copy. Last writer wins: no version check is made
// against what is currently in the tab.
func (s *Store) Write(ctx context.Context, spec TabSpec, table *Table) error {
	normalized := &Table{Headers: spec.Headers, Rows: table.Rows}

	start := time.Now()
	err := s.api.UpdateValues(ctx, spec.Name, normalized.Values())
	s.metrics.ObserveCall(spec.Name, "write", time.Since(start), err)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing tab "+spec.Name)
	}

	s.invalidate(ctx, spec)
	return nil
}

// Append adds one row without reading the rest of the tab.
func (s *Store) Append(ctx context.Context, spec TabSpec, row Row) error {
	cells := make([]any, len(spec.Headers))
	for i, col := range spec.Headers {
		cells[i] = row[col]
	}

	start := time.Now()
	err := s.api.AppendRow(ctx, spec.Name, cells)
	s.metrics.ObserveCall(spec.Name, "append", time.Since(start), err)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "appending to tab "+spec.Name)
	}

	s.invalidate(ctx, spec)
	return nil
}

// AppendAll adds a group of rows in a single remote call. Either the whole
// group is appended or the tab is left untouched, which is what batch
// writers rely on.
func (s *Store) AppendAll(ctx context.Context, spec TabSpec, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(spec.Headers))
		for j, col := range spec.Headers {
			cells[j] = row[col]
		}
		values[i] = cells
	}

	start := time.Now()
	err := s.api.AppendRows(ctx, spec.Name, values)
	s.metrics.ObserveCall(spec.Name, "append", time.Since(start), err)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "appending to tab "+spec.Name)
	}

	s.invalidate(ctx, spec)
	return nil
}

func (s *Store) invalidate(ctx context.Context, spec TabSpec) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, s.cacheKey(spec)); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithTab(ctx, spec.Name), "cache invalidation failed")
	}
}

func (s *Store) cacheKey(spec TabSpec) string {
	return s.api.SpreadsheetID() + ":" + spec.Name
}
