package core

import (
	"time"

	"github.com/signalsfoundry/orbital-atlas/model"
)

// TypeFilter is the set of object types admitted by the category
// checkboxes. A nil or empty filter admits nothing; that is a valid
// selection, not an error.
type TypeFilter map[model.ObjectType]bool

// NewTypeFilter builds a filter admitting exactly the given types.
func NewTypeFilter(types ...model.ObjectType) TypeFilter {
	f := make(TypeFilter, len(types))
	for _, t := range types {
		f[t] = true
	}
	return f
}

// EndOfYear returns the last represented instant of a calendar year,
// Dec 31 23:59:59 UTC.
func EndOfYear(year int) time.Time {
	return time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
}

// ActiveAt returns the records in orbit at the end of the target year whose
// type passes the filter: launched no later than end-of-year, and either
// never decayed or decayed after it. Input order is preserved; the input
// slice is not modified.
//
// This runs on every slider drag and checkbox toggle; a plain O(n) scan is
// fine at catalog scale (thousands of records) and keeps the working set
// index-free.
func ActiveAt(records []model.CatalogRecord, year int, allowed TypeFilter) []model.CatalogRecord {
	cutoff := EndOfYear(year)
	var active []model.CatalogRecord
	for i := range records {
		r := &records[i]
		if !allowed[r.ObjectType] {
			continue
		}
		if r.LaunchDate.After(cutoff) {
			continue
		}
		if r.Decayed() && !r.DecayDate.After(cutoff) {
			continue
		}
		active = append(active, *r)
	}
	return active
}
