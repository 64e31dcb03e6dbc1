// Package config loads renderer settings from YAML (or JSON) files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-view/pkg/render"
	"github.com/goliatone/go-view/pkg/render/markup"
)

// Config holds the settings used to build a Renderer.
type Config struct {
	// BasePath is the directory template names resolve against.
	BasePath string `yaml:"base_path"`
	// Layout is the default layout template, empty for none.
	Layout string `yaml:"layout"`
	// Globals are persistent variables visible to every template.
	Globals map[string]any `yaml:"globals"`
	// Helpers toggles the optional helper sets.
	Helpers HelperConfig `yaml:"helpers"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// HelperConfig toggles helpers beyond the default escaping helpers.
type HelperConfig struct {
	Sanitize bool `yaml:"sanitize"`
	Markdown bool `yaml:"markdown"`
}

// DefaultConfig returns a Config rendering from the working directory with
// no layout and info level logging.
func DefaultConfig() Config {
	return Config{
		Globals:  map[string]any{},
		LogLevel: "info",
	}
}

// Load reads and parses the file at path on top of DefaultConfig.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML or JSON data on top of DefaultConfig and validates it.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if cfg.Globals == nil {
		cfg.Globals = map[string]any{}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the renderer would reject.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for key := range c.Globals {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("config: global names cannot be empty")
		}
	}
	return nil
}

// Options converts the configuration into renderer options.
func (c Config) Options() []render.Option {
	opts := []render.Option{
		render.WithGlobals(c.Globals),
	}
	if c.Layout != "" {
		opts = append(opts, render.WithLayout(c.Layout))
	}
	if c.Helpers.Sanitize {
		opts = append(opts, render.WithHelper(markup.HelperSanitize, markup.SanitizeHelper))
	}
	if c.Helpers.Markdown {
		opts = append(opts, render.WithHelper(markup.HelperMarkdown, markup.MarkdownHelper))
	}
	return opts
}

// ParseLevel maps a level name onto an slog.Level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", level)
	}
}
