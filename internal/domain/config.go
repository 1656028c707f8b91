package domain

import (
	"fmt"
	"path/filepath"
	"slices"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Query    QueryConfig  `toml:"query"`
	Output   OutputConfig `toml:"output"`
	Log      LogConfig    `toml:"log"`
}

// QueryConfig holds default filter settings from [query] section.
type QueryConfig struct {
	IncludeFlags  []string `toml:"include_flags,omitempty"`  // Flags used when --include_flags is not given
	RequireOutput bool     `toml:"require_output,omitempty"` // Default for --require_output
}

// OutputConfig holds rendering settings from [output] section.
type OutputConfig struct {
	Format string `toml:"format,omitempty"` // text (default), json, yaml
	Color  string `toml:"color,omitempty"`  // auto (default), always, never
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Config file locations.
const (
	AppDirName     = "logtree"     // Directory under the config home
	ConfigFileName = "config.toml" // Config file name
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config file path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// OutputFormat selects how filtered nodes are rendered.
type OutputFormat string

// Supported output formats.
const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a format name. Empty selects text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatText, nil
	}
	f := OutputFormat(s)
	if !slices.Contains([]OutputFormat{FormatText, FormatJSON, FormatYAML}, f) {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}
	return f, nil
}

// ColorMode controls ANSI coloring of text output.
type ColorMode string

// Supported color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode. Empty selects auto.
func ParseColorMode(s string) (ColorMode, error) {
	if s == "" {
		return ColorAuto, nil
	}
	m := ColorMode(s)
	if !slices.Contains([]ColorMode{ColorAuto, ColorAlways, ColorNever}, m) {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidColorMode)
	}
	return m, nil
}

// NewDefaultConfig returns the configuration used when no file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: string(FormatText),
			Color:  string(ColorAuto),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Merge overlays non-zero values of other onto a copy of c.
func (c *Config) Merge(other *Config) *Config {
	res := *c
	if other.Query.IncludeFlags != nil {
		res.Query.IncludeFlags = slices.Clone(other.Query.IncludeFlags)
	}
	if other.Query.RequireOutput {
		res.Query.RequireOutput = true
	}
	if other.Output.Format != "" {
		res.Output.Format = other.Output.Format
	}
	if other.Output.Color != "" {
		res.Output.Color = other.Output.Color
	}
	if other.Log.Level != "" {
		res.Log.Level = other.Log.Level
	}
	res.Warnings = append(slices.Clone(c.Warnings), other.Warnings...)
	return &res
}
