// Package config holds the atlas server configuration: defaults,
// overridden by an optional YAML file, overridden by environment
// variables. Command-line flags in the mains take final precedence.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/orbital-atlas/catalog"
)

// Config is the full server configuration.
type Config struct {
	// ListenAddr is the API listener; MetricsAddr serves /metrics
	// separately so scrapers never contend with the view traffic.
	ListenAddr  string `yaml:"listen_addr" env:"ATLAS_LISTEN_ADDR"`
	MetricsAddr string `yaml:"metrics_addr" env:"ATLAS_METRICS_ADDR"`

	// DatasetPath points at the catalog snapshot (CSV or TSV); SitesPath
	// at the launch-site coordinate table.
	DatasetPath string `yaml:"dataset_path" env:"ATLAS_DATASET"`
	SitesPath   string `yaml:"sites_path" env:"ATLAS_SITES"`

	// Delimiter selects the dataset column separator: "comma", "tab", or
	// "auto" to sniff it from the header line.
	Delimiter string `yaml:"delimiter" env:"ATLAS_DELIMITER"`

	// RenderBudget caps how many points a frame may carry before the
	// subsampler kicks in.
	RenderBudget int `yaml:"render_budget" env:"ATLAS_RENDER_BUDGET"`

	// DiscRadius anchors the layout annulus, in logical pixels.
	DiscRadius float64 `yaml:"disc_radius" env:"ATLAS_DISC_RADIUS"`

	// LEO classification cutoffs; zero values fall back to the catalog
	// package defaults.
	LEOApogeeMaxKm      float64 `yaml:"leo_apogee_max_km" env:"ATLAS_LEO_APOGEE_MAX_KM"`
	LEOPeriodMaxMinutes float64 `yaml:"leo_period_max_minutes" env:"ATLAS_LEO_PERIOD_MAX_MINUTES"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:          ":8080",
		MetricsAddr:         ":9090",
		DatasetPath:         "configs/catalog.csv",
		SitesPath:           "configs/launch_sites.json",
		Delimiter:           "auto",
		RenderBudget:        1500,
		DiscRadius:          0,
		LEOApogeeMaxKm:      catalog.DefaultLEOThresholds.ApogeeMaxKm,
		LEOPeriodMaxMinutes: catalog.DefaultLEOThresholds.PeriodMaxMinutes,
	}
}

// Load builds the configuration: defaults, then the YAML file at path when
// non-empty, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config.Load: environment: %w", err)
	}

	return cfg, nil
}

// DelimiterRune maps the configured delimiter name to the loader's rune;
// 0 means sniff.
func (c Config) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "", "auto":
		return 0, nil
	case "comma":
		return ',', nil
	case "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("config: unknown delimiter %q (want comma, tab, or auto)", c.Delimiter)
	}
}

// Thresholds returns the LEO cutoffs with defaults filled in.
func (c Config) Thresholds() catalog.LEOThresholds {
	t := catalog.DefaultLEOThresholds
	if c.LEOApogeeMaxKm > 0 {
		t.ApogeeMaxKm = c.LEOApogeeMaxKm
	}
	if c.LEOPeriodMaxMinutes > 0 {
		t.PeriodMaxMinutes = c.LEOPeriodMaxMinutes
	}
	return t
}
