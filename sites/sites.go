// Package sites backs the launch-site map views: a coordinate table for
// known sites, ECEF positions for the globe rendering, and per-site launch
// aggregation with a report of sites the table does not know. A missing
// coordinate never fails the view; the map draws what it can and the UI
// shows the aggregate miss count.
package sites

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/signalsfoundry/orbital-atlas/core"
	"github.com/signalsfoundry/orbital-atlas/model"
)

// Table is the launch-site coordinate lookup, keyed by the site spelling
// used in the catalog exports. Built once from the JSON config and
// read-only afterwards.
type Table struct {
	byName map[string]model.LaunchSite
}

// site config shape; unexported so the file format can evolve freely.
type siteJSON struct {
	Name         string  `json:"name"`
	Continent    string  `json:"continent"`
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	AltitudeKm   float64 `json:"altitude_km"`
}

// LoadTable reads the site coordinate config from r. Duplicate names keep
// the last entry. ECEF positions are derived here, once, so map handlers
// never pay for the conversion.
func LoadTable(r io.Reader) (*Table, error) {
	var payload []siteJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("sites.LoadTable: decode failed: %w", err)
	}

	t := &Table{byName: make(map[string]model.LaunchSite, len(payload))}
	for _, js := range payload {
		if js.Name == "" {
			return nil, fmt.Errorf("sites.LoadTable: site with empty name")
		}
		coords := model.SiteCoordinates{
			LatitudeDeg:  js.LatitudeDeg,
			LongitudeDeg: js.LongitudeDeg,
			AltitudeKm:   js.AltitudeKm,
		}
		t.byName[normalizeName(js.Name)] = model.LaunchSite{
			Name:        js.Name,
			Continent:   js.Continent,
			Coordinates: coords,
			Position:    ecefPosition(coords),
		}
	}
	return t, nil
}

// Get returns the site entry for a catalog site name, if known.
func (t *Table) Get(name string) (model.LaunchSite, bool) {
	s, ok := t.byName[normalizeName(name)]
	return s, ok
}

// Len returns the number of sites in the table.
func (t *Table) Len() int { return len(t.byName) }

// Continents returns the distinct continent tags in the table, sorted,
// for the map view's dropdown.
func (t *Table) Continents() []string {
	seen := make(map[string]bool)
	for _, s := range t.byName {
		if s.Continent != "" {
			seen[s.Continent] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// SiteCount is one aggregated map point: a known site and how many catalog
// records launched from it.
type SiteCount struct {
	Site     model.LaunchSite `json:"site"`
	Launches int              `json:"launches"`
}

// MissingReport aggregates the coordinate lookups that failed: how many
// records referenced an unknown site, and the distinct site names, sorted.
type MissingReport struct {
	Count int      `json:"count"`
	Sites []string `json:"sites"`
}

// Aggregate counts launches per known site, filtered to records launched
// no later than the target year (year <= 0 means the whole catalog) and to
// one continent when continent is non-empty. Records naming a site the
// table does not know go into the missing report instead of failing the
// aggregation; records with no site column at all are skipped silently.
// Results are sorted by launch count descending, then by name.
func (t *Table) Aggregate(records []model.CatalogRecord, continent string, year int) ([]SiteCount, MissingReport) {
	counts := make(map[string]int)
	missing := make(map[string]bool)
	var missingRecords int

	for i := range records {
		r := &records[i]
		if r.LaunchSite == "" {
			continue
		}
		if year > 0 && r.LaunchDate.After(core.EndOfYear(year)) {
			continue
		}

		site, ok := t.Get(r.LaunchSite)
		if !ok {
			missing[r.LaunchSite] = true
			missingRecords++
			continue
		}
		if continent != "" && !strings.EqualFold(site.Continent, continent) {
			continue
		}
		counts[normalizeName(site.Name)]++
	}

	out := make([]SiteCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, SiteCount{Site: t.byName[key], Launches: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Launches != out[j].Launches {
			return out[i].Launches > out[j].Launches
		}
		return out[i].Site.Name < out[j].Site.Name
	})

	report := MissingReport{Count: missingRecords, Sites: make([]string, 0, len(missing))}
	for name := range missing {
		report.Sites = append(report.Sites, name)
	}
	sort.Strings(report.Sites)
	return out, report
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
