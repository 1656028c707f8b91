package domain

import "io"

// LogSource opens execution logs for parsing.
type LogSource interface {
	// Open returns a reader for the log at path. Callers must close it.
	Open(path string) (io.ReadCloser, error)
}

// ConfigLoader manages configuration loading.
type ConfigLoader interface {
	// Load returns the effective configuration (defaults <- file).
	Load() (*Config, error)

	// Path returns the config file the loader reads.
	Path() string
}
