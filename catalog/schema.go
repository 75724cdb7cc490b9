package catalog

import (
	"fmt"
	"strings"
)

// Field identifies a canonical column of the catalog schema. Source files
// spell several of these differently depending on which export produced
// them; the alias table below absorbs that once, at header time.
type Field int

const (
	FieldCatalogID Field = iota
	FieldObjectType
	FieldLaunchDate
	FieldDecayDate
	FieldApogee
	FieldPeriod
	FieldOrbitCenter
	FieldContinent
	FieldLaunchSite
)

// fieldAliases lists the accepted header spellings for each canonical
// field, in preference order. This is the single source of truth for
// column naming; parsers never probe alternative spellings themselves.
var fieldAliases = map[Field][]string{
	FieldCatalogID:   {"NORAD_CAT_ID", "NORAD_ID", "CATALOG_NUMBER"},
	FieldObjectType:  {"OBJECT_TYPE", "OBJECT_CLASS"},
	FieldLaunchDate:  {"LAUNCH_DATE", "LAUNCH"},
	FieldDecayDate:   {"DECAY_DATE", "DECAY"},
	FieldApogee:      {"APOGEE", "APOGEE_KM"},
	FieldPeriod:      {"PERIOD", "PERIOD_MIN"},
	FieldOrbitCenter: {"ORBIT_CENTER", "CENTER_NAME"},
	FieldContinent:   {"CONTINENT"},
	FieldLaunchSite:  {"LAUNCH_SITE", "SITE"},
}

// Schema maps canonical fields to column positions for one loaded file.
// It is resolved once from the header row and then shared by every
// ParseRow call for that file.
type Schema struct {
	index map[Field]int
}

// ResolveSchema matches a header row against the alias table. It fails
// only when the launch-date column is missing, since a file without it
// cannot yield a single usable record.
func ResolveSchema(header []string) (*Schema, error) {
	byName := make(map[string]int, len(header))
	for i, col := range header {
		byName[normalizeColumn(col)] = i
	}

	s := &Schema{index: make(map[Field]int)}
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if i, ok := byName[alias]; ok {
				s.index[field] = i
				break
			}
		}
	}

	if _, ok := s.index[FieldLaunchDate]; !ok {
		return nil, fmt.Errorf("ResolveSchema: no launch date column in header %v", header)
	}
	return s, nil
}

// Lookup returns the trimmed cell value for a field, or ok=false when the
// file has no such column or the row is too short.
func (s *Schema) Lookup(f Field, row []string) (string, bool) {
	i, ok := s.index[f]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

// Has reports whether the loaded file carries a column for the field.
func (s *Schema) Has(f Field) bool {
	_, ok := s.index[f]
	return ok
}

func normalizeColumn(col string) string {
	col = strings.TrimSpace(col)
	// Strip a UTF-8 BOM left by spreadsheet exports on the first header cell.
	col = strings.TrimPrefix(col, "\uFEFF")
	col = strings.ToUpper(col)
	return strings.ReplaceAll(col, " ", "_")
}
