package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.MetricsAddr)
	}
	if cfg.RenderBudget != 1500 {
		t.Errorf("RenderBudget = %d, want 1500", cfg.RenderBudget)
	}
	if cfg.Delimiter != "auto" {
		t.Errorf("Delimiter = %q, want auto", cfg.Delimiter)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.yaml")
	content := `listen_addr: ":9999"
dataset_path: /data/catalog.tsv
delimiter: tab
render_budget: 500
leo_apogee_max_km: 1800
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if cfg.DatasetPath != "/data/catalog.tsv" {
		t.Errorf("DatasetPath = %q", cfg.DatasetPath)
	}
	if cfg.RenderBudget != 500 {
		t.Errorf("RenderBudget = %d, want 500", cfg.RenderBudget)
	}
	// Unset keys keep their defaults.
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want default :9090", cfg.MetricsAddr)
	}
	if cfg.Thresholds().ApogeeMaxKm != 1800 {
		t.Errorf("ApogeeMaxKm = %v, want 1800", cfg.Thresholds().ApogeeMaxKm)
	}
	if cfg.Thresholds().PeriodMaxMinutes != 127 {
		t.Errorf("PeriodMaxMinutes = %v, want default 127", cfg.Thresholds().PeriodMaxMinutes)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9999\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ATLAS_LISTEN_ADDR", ":7070")
	t.Setenv("ATLAS_RENDER_BUDGET", "250")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want env override :7070", cfg.ListenAddr)
	}
	if cfg.RenderBudget != 250 {
		t.Errorf("RenderBudget = %d, want env override 250", cfg.RenderBudget)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load accepted a missing config file")
	}
}

func TestDelimiterRune(t *testing.T) {
	cases := []struct {
		name    string
		want    rune
		wantErr bool
	}{
		{"auto", 0, false},
		{"", 0, false},
		{"comma", ',', false},
		{"tab", '\t', false},
		{"semicolon", 0, true},
	}
	for _, tc := range cases {
		got, err := Config{Delimiter: tc.name}.DelimiterRune()
		if tc.wantErr {
			if err == nil {
				t.Errorf("DelimiterRune(%q) accepted", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("DelimiterRune(%q): %v", tc.name, err)
		} else if got != tc.want {
			t.Errorf("DelimiterRune(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
