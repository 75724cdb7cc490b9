// atlas-export precomputes visualization artifacts for static hosting: the
// launches-per-year chart and, optionally, per-year frame JSON files that a
// client can fetch instead of hitting the API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signalsfoundry/orbital-atlas/catalog"
	"github.com/signalsfoundry/orbital-atlas/core"
	"github.com/signalsfoundry/orbital-atlas/internal/logging"
	"github.com/signalsfoundry/orbital-atlas/render"
)

func main() {
	datasetPath := flag.String("dataset", "configs/catalog.csv", "Path to the catalog snapshot CSV/TSV")
	chartOut := flag.String("chart", "timeline.png", "Output path for the launches-per-year chart (empty to skip)")
	format := flag.String("format", "", "Chart format: png or svg (default inferred from -chart extension)")
	framesDir := flag.String("frames-dir", "", "When set, write one frame JSON per year into this directory")
	budget := flag.Int("budget", 1500, "Render budget per frame")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	f, err := os.Open(*datasetPath)
	if err != nil {
		log.Error(ctx, "failed to open dataset", logging.String("path", *datasetPath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	cat, err := catalog.Load(f, catalog.LoadOptions{})
	f.Close()
	if err != nil {
		log.Error(ctx, "failed to load catalog", logging.String("error", err.Error()))
		os.Exit(1)
	}

	if *chartOut != "" {
		if err := exportChart(cat, *chartOut, *format); err != nil {
			log.Error(ctx, "chart export failed", logging.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info(ctx, "chart written", logging.String("path", *chartOut))
	}

	if *framesDir != "" {
		n, err := exportFrames(cat, *framesDir, *budget)
		if err != nil {
			log.Error(ctx, "frame export failed", logging.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info(ctx, "frames written", logging.String("dir", *framesDir), logging.Int("count", n))
	}
}

func exportChart(cat *catalog.Catalog, out, format string) error {
	if format == "" {
		switch filepath.Ext(out) {
		case ".svg":
			format = "svg"
		default:
			format = "png"
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	return render.Timeline(cat.Records(), format, render.TimelineOptions{}, f)
}

// exportFrames writes frame-<year>.json for every year in the catalog
// range, with all object types admitted. The files are byte-stable across
// runs for the same dataset, so they can be diffed and cached.
func exportFrames(cat *catalog.Catalog, dir string, budget int) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dir, err)
	}

	builder := core.NewFrameBuilder(cat.Records(), budget)
	allTypes := core.NewTypeFilter(cat.ObjectTypes()...)

	minYear, maxYear := cat.YearRange()
	written := 0
	for year := minYear; year <= maxYear; year++ {
		frame := builder.Build(year, allTypes, 0)

		data, err := json.MarshalIndent(frame, "", "  ")
		if err != nil {
			return written, fmt.Errorf("marshal frame %d: %w", year, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame-%d.json", year))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}
