// Package config provides configuration loading functionality.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/logtree/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file.
type Loader struct {
	path     string // Config file path
	required bool   // Fail when the file does not exist
}

// NewLoader creates a Loader for the global config file.
// A missing file yields the default configuration.
func NewLoader() *Loader {
	return &Loader{path: DefaultPath()}
}

// NewLoaderWithPath creates a Loader for an explicit config file, which must exist.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{path: path, required: true}
}

// DefaultPath returns the global config file path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigPath(configHome)
}

// Path returns the config file path.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the default configuration overlaid with the config file.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()
	if l.path == "" {
		return base, nil
	}

	fileCfg, err := l.loadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !l.required {
			return base, nil
		}
		return nil, err
	}
	return base.Merge(fileCfg), nil
}

// loadFile decodes a config file, reporting unknown keys as warnings.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Reading user config file
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg domain.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Warnings = unknownKeys(data)
	return &cfg, nil
}

// unknownKeys decodes strictly and turns missing-field errors into warnings.
func unknownKeys(data []byte) []string {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var probe domain.Config
	err := dec.Decode(&probe)
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		return nil
	}

	warnings := make([]string, 0, len(strict.Errors))
	for _, e := range strict.Errors {
		warnings = append(warnings, "unknown config key: "+strings.Join(e.Key(), "."))
	}
	return warnings
}

// Encode renders cfg as TOML.
func Encode(cfg *domain.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
