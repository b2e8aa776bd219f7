// Package config provides configuration types, defaults and validation for recipebox.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/zjrosen/recipebox/internal/log"
	"github.com/zjrosen/recipebox/internal/tracing"
)

// DefaultConfigPath is where a default config is written on first run.
const DefaultConfigPath = ".recipebox/config.yaml"

// Config holds all configuration options for recipebox.
type Config struct {
	UI          UIConfig        `mapstructure:"ui"`
	Theme       ThemeConfig     `mapstructure:"theme"`
	Recipes     []RecipeConfig  `mapstructure:"recipes"`
	Tracing     tracing.Config  `mapstructure:"tracing"`
	WatchConfig bool            `mapstructure:"watch_config"`
	Flags       map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"`
	ShowCounts    bool          `mapstructure:"show_counts"`     // Recipe count in the list title
	ShowImageKind bool          `mapstructure:"show_image_kind"` // url/file badge next to image refs
}

// ThemeConfig overrides the default palette. Empty values keep the defaults.
type ThemeConfig struct {
	Muted   string `mapstructure:"muted" yaml:"muted,omitempty"`
	Error   string `mapstructure:"error" yaml:"error,omitempty"`
	Success string `mapstructure:"success" yaml:"success,omitempty"`
}

// RecipeConfig is a starter recipe submitted at startup.
type RecipeConfig struct {
	Label string `mapstructure:"label"`
	Image string `mapstructure:"image"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ToastDuration: 3 * time.Second,
			ShowCounts:    true,
			ShowImageKind: true,
		},
		Tracing:     tracing.DefaultConfig(),
		WatchConfig: true,
	}
}

// DefaultTracesFilePath returns ~/.config/recipebox/traces/traces.jsonl,
// falling back to a relative path when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".recipebox", "traces", "traces.jsonl")
	}
	return filepath.Join(home, ".config", "recipebox", "traces", "traces.jsonl")
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the whole configuration.
// Seed recipes are not validated here: blanks and duplicates are reported by
// the registry when they are submitted.
func (c Config) Validate() error {
	if c.UI.ToastDuration < 0 {
		return fmt.Errorf("ui.toast_duration must not be negative, got %s", c.UI.ToastDuration)
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTheme checks that every override is a hex color.
func ValidateTheme(theme ThemeConfig) error {
	for key, value := range map[string]string{
		"muted":   theme.Muted,
		"error":   theme.Error,
		"success": theme.Success,
	} {
		if value != "" && !hexColor.MatchString(value) {
			return fmt.Errorf("theme.%s must be a hex color like #73F59F, got %q", key, value)
		}
	}
	return nil
}

// ValidateTracing checks exporter names and sample rate.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	if t.Enabled && t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// ResolveTracing fills in the default trace file when the file exporter
// is selected without a path.
func (c Config) ResolveTracing() tracing.Config {
	t := c.Tracing
	if t.Enabled && t.Exporter == tracing.ExporterFile && t.FilePath == "" {
		t.FilePath = DefaultTracesFilePath()
	}
	return t
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# Recipebox Configuration

# UI settings
ui:
  toast_duration: 3s      # How long feedback messages stay on screen
  show_counts: true       # Show the number of recipes in the list title
  show_image_kind: true   # Show a url/file badge next to image references

# Theme overrides (hex colors). Leave empty to use the defaults.
theme:
  # muted: "#696969"
  # error: "#FF8787"
  # success: "#73F59F"

# Reload theme colors when this file changes while the TUI is running
watch_config: true

# Starter recipes submitted at startup. Blank or duplicate entries are
# skipped and reported in the debug log.
recipes:
  # - label: Pasta
  #   image: https://example.com/pasta.png

# Feature flags
flags:
  mouse: true             # Click the Add button
  alt-screen: true        # Use the terminal's alternate screen

# Tracing of recipe submissions
tracing:
  enabled: false
  exporter: file          # none, file, stdout, otlp
  # file_path: ~/.config/recipebox/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, creating
// parent directories.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
