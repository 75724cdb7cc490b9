package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signalsfoundry/orbital-atlas/model"
)

func TestIsLEO(t *testing.T) {
	nan := math.NaN()

	cases := []struct {
		name    string
		center  string
		apogee  float64
		period  float64
		wantLEO bool
	}{
		{"apogee under threshold", model.OrbitCenterEarth, 1999, nan, true},
		{"apogee at threshold", model.OrbitCenterEarth, 2000, nan, true},
		{"apogee over threshold", model.OrbitCenterEarth, 2001, nan, false},
		{"period under threshold", model.OrbitCenterEarth, nan, 126, true},
		{"period at threshold", model.OrbitCenterEarth, nan, 127, true},
		{"period over threshold", model.OrbitCenterEarth, nan, 128, false},
		{"either alone suffices", model.OrbitCenterEarth, 50000, 90, true},
		{"both absent", model.OrbitCenterEarth, nan, nan, false},
		{"infinite apogee", model.OrbitCenterEarth, math.Inf(1), nan, false},
		{"negative infinity period", model.OrbitCenterEarth, nan, math.Inf(-1), false},
		{"wrong center", "Mars-centered", 400, 92, false},
		{"empty center", "", 400, 92, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &model.CatalogRecord{
				OrbitCenter:   tc.center,
				ApogeeKm:      tc.apogee,
				PeriodMinutes: tc.period,
			}
			assert.Equal(t, tc.wantLEO, DefaultLEOThresholds.IsLEO(rec))
		})
	}
}

func TestIsLEOCustomThresholds(t *testing.T) {
	// Tighter cutoffs reclassify a default-LEO record.
	tight := LEOThresholds{ApogeeMaxKm: 500, PeriodMaxMinutes: 95}
	rec := &model.CatalogRecord{
		OrbitCenter:   model.OrbitCenterEarth,
		ApogeeKm:      800,
		PeriodMinutes: 101,
	}

	assert.True(t, DefaultLEOThresholds.IsLEO(rec))
	assert.False(t, tight.IsLEO(rec))
}
