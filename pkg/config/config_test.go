package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-view/pkg/config"
)

func TestParse_YAML(t *testing.T) {
	cfg, err := config.Parse([]byte(`
base_path: ./views
layout: layout.tpl
globals:
  site: Example
  year: 2026
helpers:
  markdown: true
log_level: debug
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := config.Config{
		BasePath: "./views",
		Layout:   "layout.tpl",
		Globals:  map[string]any{"site": "Example", "year": 2026},
		Helpers:  config.HelperConfig{Markdown: true},
		LogLevel: "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got := len(cfg.Options()); got != 3 {
		t.Fatalf("expected 3 options (globals, layout, markdown), got %d", got)
	}
}

func TestParse_JSONAndDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`{"base_path": "/srv/views"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.Globals == nil {
		t.Fatal("expected globals map to be initialised")
	}
	if cfg.BasePath != "/srv/views" {
		t.Fatalf("unexpected base path %q", cfg.BasePath)
	}
}

func TestParse_RejectsUnknownLevel(t *testing.T) {
	if _, err := config.Parse([]byte("log_level: loud\n")); err == nil {
		t.Fatal("expected unknown log level to fail validation")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.yaml")
	if err := os.WriteFile(path, []byte("layout: base.tpl\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Layout != "base.tpl" {
		t.Fatalf("unexpected layout %q", cfg.Layout)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected missing file to fail")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range cases {
		got, err := config.ParseLevel(input)
		if err != nil {
			t.Fatalf("parse level %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("level %q: want %v, got %v", input, want, got)
		}
	}
}
