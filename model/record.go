package model

import (
	"math"
	"time"
)

// ObjectType is the catalog category of a tracked object.
type ObjectType string

const (
	ObjectPayload    ObjectType = "PAYLOAD"
	ObjectRocketBody ObjectType = "ROCKET BODY"
	ObjectDebris     ObjectType = "DEBRIS"
	ObjectUnknown    ObjectType = "UNKNOWN"
)

// OrbitCenterEarth is the orbit-center tag a record must carry to be
// eligible for the low-Earth-orbit working set.
const OrbitCenterEarth = "Earth-centered"

// CatalogRecord is one object from the satellite catalog snapshot.
// Records are built once at load time and never mutated afterwards;
// per-year views are derived, not written back.
type CatalogRecord struct {
	// CatalogID is the NORAD catalog number, or a row-index fallback when
	// the source column is missing or unparseable. Unique within a load.
	CatalogID int

	ObjectType ObjectType

	// LaunchDate is always valid for records admitted to the working set.
	LaunchDate time.Time

	// DecayDate is the zero time while the object is still in orbit.
	DecayDate time.Time

	// ApogeeKm and PeriodMinutes are NaN when the source column was
	// missing or not numeric. Either one alone can classify the record.
	ApogeeKm      float64
	PeriodMinutes float64

	OrbitCenter string

	// Map-view columns; empty for the timeline dataset.
	Continent  string
	LaunchSite string

	// Layout is derived from CatalogID, not read from the input.
	Layout Layout
}

// Decayed reports whether the record has a decay date.
func (r *CatalogRecord) Decayed() bool {
	return !r.DecayDate.IsZero()
}

// HasApogee reports whether the apogee field carries a usable number.
func (r *CatalogRecord) HasApogee() bool {
	return !math.IsNaN(r.ApogeeKm) && !math.IsInf(r.ApogeeKm, 0)
}

// HasPeriod reports whether the period field carries a usable number.
func (r *CatalogRecord) HasPeriod() bool {
	return !math.IsNaN(r.PeriodMinutes) && !math.IsInf(r.PeriodMinutes, 0)
}
