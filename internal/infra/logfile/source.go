// Package logfile opens execution log files from disk.
package logfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/logtree/internal/domain"
)

// Ensure Source implements domain.LogSource.
var _ domain.LogSource = (*Source)(nil)

// Source opens log files, expanding a leading "~" to the user's home directory.
type Source struct {
	homeDir func() (string, error)
}

// New creates a Source using the current user's home directory.
func New() *Source {
	return &Source{homeDir: os.UserHomeDir}
}

// NewWithHome creates a Source with a fixed home directory.
// This is useful for testing.
func NewWithHome(home string) *Source {
	return &Source{homeDir: func() (string, error) { return home, nil }}
}

// Open opens the log file at path after tilde expansion.
func (s *Source) Open(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, domain.ErrEmptyInput
	}
	expanded, err := s.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(expanded) //nolint:gosec // Reading user-specified log file
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Expand replaces a leading "~" or "~/" with the home directory.
// Other paths, including "~user/...", are returned unchanged.
func (s *Source) Expand(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := s.homeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
