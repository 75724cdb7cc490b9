package catalog

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/signalsfoundry/orbital-atlas/model"
)

// dateLayout is the calendar-date form used throughout the catalog export.
const dateLayout = "2006-01-02"

// ParseRow converts one data row into a CatalogRecord, or returns nil to
// reject it. The only rejection cause is a missing or unparseable launch
// date; every other field degrades to a sentinel instead, because apogee
// and period are each independently sufficient for classification and the
// catalog id has a stable positional fallback.
//
// rowIndex is the zero-based position of the row within the file and seeds
// the id fallback. ParseRow is pure: it never touches shared state.
func ParseRow(schema *Schema, row []string, rowIndex int) *model.CatalogRecord {
	launchRaw, ok := schema.Lookup(FieldLaunchDate, row)
	if !ok || launchRaw == "" {
		return nil
	}
	launch, err := time.Parse(dateLayout, launchRaw)
	if err != nil {
		return nil
	}

	rec := &model.CatalogRecord{
		CatalogID:     parseCatalogID(schema, row, rowIndex),
		ObjectType:    parseObjectType(schema, row),
		LaunchDate:    launch.UTC(),
		ApogeeKm:      parseNumeric(schema, FieldApogee, row),
		PeriodMinutes: parseNumeric(schema, FieldPeriod, row),
	}

	if raw, ok := schema.Lookup(FieldDecayDate, row); ok && raw != "" {
		if decay, err := time.Parse(dateLayout, raw); err == nil {
			rec.DecayDate = decay.UTC()
		}
	}
	if raw, ok := schema.Lookup(FieldOrbitCenter, row); ok {
		rec.OrbitCenter = raw
	}
	if raw, ok := schema.Lookup(FieldContinent, row); ok {
		rec.Continent = raw
	}
	if raw, ok := schema.Lookup(FieldLaunchSite, row); ok {
		rec.LaunchSite = raw
	}

	return rec
}

// parseCatalogID coerces the catalog number column to an integer, falling
// back to rowIndex+1 so every record keeps a stable unique key even when
// the column is absent or corrupt.
func parseCatalogID(schema *Schema, row []string, rowIndex int) int {
	raw, ok := schema.Lookup(FieldCatalogID, row)
	if !ok || raw == "" {
		return rowIndex + 1
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return rowIndex + 1
	}
	return id
}

// parseNumeric coerces a numeric column to float64, yielding NaN for
// missing or non-numeric cells rather than rejecting the row.
func parseNumeric(schema *Schema, f Field, row []string) float64 {
	raw, ok := schema.Lookup(f, row)
	if !ok || raw == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseObjectType(schema *Schema, row []string) model.ObjectType {
	raw, ok := schema.Lookup(FieldObjectType, row)
	if !ok || raw == "" {
		return model.ObjectUnknown
	}
	switch model.ObjectType(strings.ToUpper(raw)) {
	case model.ObjectPayload:
		return model.ObjectPayload
	case model.ObjectRocketBody:
		return model.ObjectRocketBody
	case model.ObjectDebris:
		return model.ObjectDebris
	default:
		return model.ObjectUnknown
	}
}
