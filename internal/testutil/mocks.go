// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runoshun/logtree/internal/domain"
)

// Ensure mocks implement their ports.
var (
	_ domain.LogSource    = (*MockLogSource)(nil)
	_ domain.ConfigLoader = (*MockConfigLoader)(nil)
)

// MockLogSource is a test double for domain.LogSource backed by in-memory files.
// Fields are ordered to minimize memory padding.
type MockLogSource struct {
	Files   map[string]string
	OpenErr error // Returned by Open when set
	ReadErr error // Returned by Read after the file content is consumed
	Opened  []string
	Closed  int
}

// NewMockLogSource creates a new MockLogSource with an initialized file map.
func NewMockLogSource() *MockLogSource {
	return &MockLogSource{Files: make(map[string]string)}
}

// AddLines registers a file whose content is lines joined with newlines.
func (m *MockLogSource) AddLines(path string, lines ...string) {
	m.Files[path] = strings.Join(lines, "\n") + "\n"
}

// Open returns a reader over the registered file content.
func (m *MockLogSource) Open(path string) (io.ReadCloser, error) {
	m.Opened = append(m.Opened, path)
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	content, ok := m.Files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return &mockReadCloser{src: m, r: strings.NewReader(content)}, nil
}

type mockReadCloser struct {
	src *MockLogSource
	r   *strings.Reader
}

func (rc *mockReadCloser) Read(p []byte) (int, error) {
	n, err := rc.r.Read(p)
	if errors.Is(err, io.EOF) && rc.src.ReadErr != nil {
		return n, rc.src.ReadErr
	}
	return n, err
}

func (rc *mockReadCloser) Close() error {
	rc.src.Closed++
	return nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config     *domain.Config
	LoadErr    error
	ConfigPath string
}

// Load returns the configured config or the default one.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// Path returns the configured path.
func (m *MockConfigLoader) Path() string {
	return m.ConfigPath
}
