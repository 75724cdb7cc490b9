package catalog

import "github.com/signalsfoundry/orbital-atlas/model"

// LEOThresholds holds the low-Earth-orbit cutoffs. These are a domain
// heuristic rather than a physical law, so they are kept overridable
// instead of inlined where the predicate is evaluated.
type LEOThresholds struct {
	ApogeeMaxKm      float64
	PeriodMaxMinutes float64
}

// DefaultLEOThresholds are the cutoffs the source catalog was curated
// against: apogee at or below 2000 km, or orbital period at or below
// 127 minutes.
var DefaultLEOThresholds = LEOThresholds{
	ApogeeMaxKm:      2000,
	PeriodMaxMinutes: 127,
}

// IsLEO reports whether a record qualifies as low Earth orbit: it must be
// Earth-centered and satisfy at least one of the two thresholds. NaN and
// infinite values never satisfy a threshold, so records missing both
// apogee and period are excluded.
func (t LEOThresholds) IsLEO(r *model.CatalogRecord) bool {
	if r.OrbitCenter != model.OrbitCenterEarth {
		return false
	}
	if r.HasApogee() && r.ApogeeKm <= t.ApogeeMaxKm {
		return true
	}
	if r.HasPeriod() && r.PeriodMinutes <= t.PeriodMaxMinutes {
		return true
	}
	return false
}
