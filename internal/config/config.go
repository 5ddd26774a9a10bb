package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/davidMuir/clean-deps/internal/ecosystem"
	"github.com/davidMuir/clean-deps/internal/report"
)

// Config represents the full clean-deps configuration. Every field can be set
// from .clean-deps.yaml, a CLEAN_DEPS_* environment variable or a flag.
type Config struct {
	// Path is the directory to scan. Empty means the working directory.
	Path     string       `mapstructure:"path"`
	Language string       `mapstructure:"language"`
	Delete   DeleteConfig `mapstructure:"delete"`
	Output   OutputConfig `mapstructure:"output"`
	Journal  string       `mapstructure:"journal"`
	Verbose  bool         `mapstructure:"verbose"`
}

// DeleteConfig contains deletion settings
type DeleteConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Yes skips the confirmation prompt.
	Yes    bool `mapstructure:"yes"`
	DryRun bool `mapstructure:"dry_run"`
}

// OutputConfig contains report settings
type OutputConfig struct {
	Format string `mapstructure:"format"`
	// Color is one of auto, always, never.
	Color string `mapstructure:"color"`
}

// Load loads configuration from the global viper instance
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration from v
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if cfg.Output.Format == "" {
		cfg.Output.Format = report.FormatText
	}

	cfg.Output.Color = strings.ToLower(cfg.Output.Color)
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}

	// A dry run only makes sense as part of a deletion pass.
	if cfg.Delete.DryRun {
		cfg.Delete.Enabled = true
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Language != "" {
		if _, err := ecosystem.Default().Parse(c.Language); err != nil {
			return fmt.Errorf("invalid language: %w", err)
		}
	}

	validFormats := map[string]bool{}
	for _, f := range report.Formats {
		validFormats[f] = true
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid format: %s (must be %s)", c.Output.Format, strings.Join(report.Formats, ", "))
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[c.Output.Color] {
		return fmt.Errorf("invalid color: %s (must be auto, always, or never)", c.Output.Color)
	}

	// The prompt would corrupt structured output.
	if c.Delete.Enabled && !c.Delete.Yes && !c.Delete.DryRun && c.Output.Format != report.FormatText {
		return fmt.Errorf("--delete with --format %s requires --yes or --dry-run", c.Output.Format)
	}

	return nil
}

// Ecosystem returns the parsed language filter, or false when none is set.
func (c *Config) Ecosystem() (ecosystem.Ecosystem, bool) {
	if c.Language == "" {
		return "", false
	}
	e, err := ecosystem.Default().Parse(c.Language)
	if err != nil {
		return "", false
	}
	return e, true
}
