// Package render produces the offline launches-per-year chart, the
// static counterpart of the timeline view's axis panel. Drawing is
// delegated entirely to go-chart; this package only shapes the series.
package render

import (
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/signalsfoundry/orbital-atlas/core"
	"github.com/signalsfoundry/orbital-atlas/model"
)

// TimelineOptions tunes the exported chart.
type TimelineOptions struct {
	Width  int // default 1024
	Height int // default 400
}

// Timeline renders two series over the catalog's year span: launches per
// year and the active-set size at each year end (all object types). format
// is "png" or "svg".
func Timeline(records []model.CatalogRecord, format string, opts TimelineOptions, w io.Writer) error {
	if len(records) == 0 {
		return fmt.Errorf("render.Timeline: empty working set")
	}
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}

	minYear, maxYear := yearSpan(records)
	launches := launchesPerYear(records, minYear, maxYear)

	allTypes := core.NewTypeFilter(distinctTypes(records)...)

	years := make([]float64, 0, maxYear-minYear+1)
	launched := make([]float64, 0, maxYear-minYear+1)
	active := make([]float64, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		years = append(years, float64(y))
		launched = append(launched, float64(launches[y]))
		active = append(active, float64(len(core.ActiveAt(records, y, allTypes))))
	}

	graph := chart.Chart{
		Title:  "Objects in low Earth orbit",
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name: "Year",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(f))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{Name: "Objects"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Active in orbit",
				XValues: years,
				YValues: active,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(48),
				},
			},
			chart.ContinuousSeries{
				Name:    "Launched that year",
				XValues: years,
				YValues: launched,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("9a9a9a"),
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	switch format {
	case "png", "":
		return graph.Render(chart.PNG, w)
	case "svg":
		return graph.Render(chart.SVG, w)
	default:
		return fmt.Errorf("render.Timeline: unsupported format %q (want png or svg)", format)
	}
}

func yearSpan(records []model.CatalogRecord) (min, max int) {
	min = records[0].LaunchDate.Year()
	max = min
	for i := range records {
		y := records[i].LaunchDate.Year()
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	if current := time.Now().UTC().Year(); max > current {
		max = current
	}
	return min, max
}

func launchesPerYear(records []model.CatalogRecord, min, max int) map[int]int {
	counts := make(map[int]int, max-min+1)
	for i := range records {
		y := records[i].LaunchDate.Year()
		if y >= min && y <= max {
			counts[y]++
		}
	}
	return counts
}

func distinctTypes(records []model.CatalogRecord) []model.ObjectType {
	seen := make(map[model.ObjectType]bool)
	var types []model.ObjectType
	for i := range records {
		if !seen[records[i].ObjectType] {
			seen[records[i].ObjectType] = true
			types = append(types, records[i].ObjectType)
		}
	}
	return types
}
