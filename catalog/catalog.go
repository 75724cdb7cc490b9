package catalog

import (
	"sort"

	"github.com/signalsfoundry/orbital-atlas/model"
)

// LoadStats summarises what happened to the raw rows during a load.
// Rejected rows had no usable launch date; ineligible rows parsed fine but
// failed the LEO predicate.
type LoadStats struct {
	RowsRead   int `json:"rowsRead"`
	Rejected   int `json:"rejected"`
	Ineligible int `json:"ineligible"`
	Kept       int `json:"kept"`
}

// Catalog is the in-memory working set for one dataset snapshot: eligible
// records only, in file order, with layout precomputed. It is built once
// by Load and read-only afterwards: interaction handlers derive views
// from it but never write back, so concurrent reads need no locking.
type Catalog struct {
	records []model.CatalogRecord
	stats   LoadStats

	minYear int
	maxYear int

	types []model.ObjectType
}

// Records returns the working set in load order. Callers must treat the
// slice as read-only.
func (c *Catalog) Records() []model.CatalogRecord { return c.records }

// Len returns the number of records in the working set.
func (c *Catalog) Len() int { return len(c.records) }

// Stats returns the load statistics.
func (c *Catalog) Stats() LoadStats { return c.stats }

// YearRange returns the span the year slider covers: from the earliest
// launch year to the latest launch year, clamped to the load-time current
// year so the slider never points into the future.
func (c *Catalog) YearRange() (min, max int) { return c.minYear, c.maxYear }

// ObjectTypes returns the distinct categories present in the working set,
// sorted, for building the filter checkboxes.
func (c *Catalog) ObjectTypes() []model.ObjectType { return c.types }

func distinctTypes(records []model.CatalogRecord) []model.ObjectType {
	seen := make(map[model.ObjectType]bool)
	for i := range records {
		seen[records[i].ObjectType] = true
	}
	types := make([]model.ObjectType, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
