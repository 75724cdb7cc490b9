package sites

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/orbital-atlas/model"
)

const tableJSON = `[
  {"name": "BAIKONUR", "continent": "Asia", "latitude_deg": 45.96, "longitude_deg": 63.35, "altitude_km": 0.09},
  {"name": "CAPE CANAVERAL", "continent": "North America", "latitude_deg": 28.49, "longitude_deg": -80.57, "altitude_km": 0.003},
  {"name": "EQUATOR TEST PAD", "continent": "Africa", "latitude_deg": 0, "longitude_deg": 0, "altitude_km": 0}
]`

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := LoadTable(strings.NewReader(tableJSON))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	return table
}

func launchRec(id int, site string, year int) model.CatalogRecord {
	return model.CatalogRecord{
		CatalogID:  id,
		ObjectType: model.ObjectPayload,
		LaunchDate: time.Date(year, time.May, 15, 0, 0, 0, 0, time.UTC),
		LaunchSite: site,
	}
}

func TestLoadTableAndLookup(t *testing.T) {
	table := loadTestTable(t)

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	s, ok := table.Get("BAIKONUR")
	if !ok {
		t.Fatal("Get(BAIKONUR) missed")
	}
	if s.Continent != "Asia" {
		t.Errorf("Continent = %q, want Asia", s.Continent)
	}

	// Lookups are case- and whitespace-insensitive to survive export quirks.
	if _, ok := table.Get("  cape canaveral "); !ok {
		t.Error("Get should normalise site names")
	}
}

func TestLoadTableRejectsEmptyName(t *testing.T) {
	_, err := LoadTable(strings.NewReader(`[{"name": "", "continent": "Asia"}]`))
	if err == nil {
		t.Fatal("LoadTable accepted a site with no name")
	}
}

func TestECEFPositionOnEarthSurface(t *testing.T) {
	table := loadTestTable(t)

	s, _ := table.Get("EQUATOR TEST PAD")
	norm := math.Sqrt(s.Position.X*s.Position.X + s.Position.Y*s.Position.Y + s.Position.Z*s.Position.Z)

	// A sea-level equatorial site sits one equatorial Earth radius from
	// the geocentre, ~6378 km.
	if norm < 6300 || norm > 6400 {
		t.Fatalf("|ECEF| = %.1f km, want ~6378", norm)
	}
	if math.Abs(s.Position.Z) > 1 {
		t.Fatalf("equatorial site Z = %.3f km, want ~0", s.Position.Z)
	}
}

func TestECEFDeterminism(t *testing.T) {
	a := loadTestTable(t)
	b := loadTestTable(t)

	sa, _ := a.Get("BAIKONUR")
	sb, _ := b.Get("BAIKONUR")
	if sa.Position != sb.Position {
		t.Fatalf("ECEF differs across loads: %+v vs %+v", sa.Position, sb.Position)
	}
}

func TestAggregateCountsAndMissing(t *testing.T) {
	table := loadTestTable(t)
	records := []model.CatalogRecord{
		launchRec(1, "BAIKONUR", 1970),
		launchRec(2, "BAIKONUR", 1980),
		launchRec(3, "CAPE CANAVERAL", 1990),
		launchRec(4, "UNLISTED PAD", 1995),
		launchRec(5, "UNLISTED PAD", 1996),
		launchRec(6, "ANOTHER UNKNOWN", 1997),
		launchRec(7, "", 1998), // no site column value: skipped silently
	}

	counts, missing := table.Aggregate(records, "", 0)

	if len(counts) != 2 {
		t.Fatalf("got %d sites, want 2", len(counts))
	}
	// Sorted by launches descending.
	if counts[0].Site.Name != "BAIKONUR" || counts[0].Launches != 2 {
		t.Fatalf("top site = %s/%d, want BAIKONUR/2", counts[0].Site.Name, counts[0].Launches)
	}

	if missing.Count != 3 {
		t.Errorf("missing.Count = %d, want 3 records", missing.Count)
	}
	wantSites := []string{"ANOTHER UNKNOWN", "UNLISTED PAD"}
	if len(missing.Sites) != len(wantSites) {
		t.Fatalf("missing.Sites = %v, want %v", missing.Sites, wantSites)
	}
	for i := range wantSites {
		if missing.Sites[i] != wantSites[i] {
			t.Fatalf("missing.Sites = %v, want %v", missing.Sites, wantSites)
		}
	}
}

func TestAggregateContinentAndYearFilters(t *testing.T) {
	table := loadTestTable(t)
	records := []model.CatalogRecord{
		launchRec(1, "BAIKONUR", 1970),
		launchRec(2, "CAPE CANAVERAL", 1990),
		launchRec(3, "CAPE CANAVERAL", 2015),
	}

	counts, _ := table.Aggregate(records, "North America", 0)
	if len(counts) != 1 || counts[0].Site.Name != "CAPE CANAVERAL" || counts[0].Launches != 2 {
		t.Fatalf("continent filter wrong: %+v", counts)
	}

	counts, _ = table.Aggregate(records, "North America", 2000)
	if len(counts) != 1 || counts[0].Launches != 1 {
		t.Fatalf("year filter wrong: %+v", counts)
	}
}

func TestContinents(t *testing.T) {
	table := loadTestTable(t)

	got := table.Continents()
	want := []string{"Africa", "Asia", "North America"}
	if len(got) != len(want) {
		t.Fatalf("Continents() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Continents() = %v, want %v", got, want)
		}
	}
}
