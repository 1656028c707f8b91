// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/logtree/internal/domain"
	"github.com/runoshun/logtree/internal/infra/config"
	"github.com/runoshun/logtree/internal/infra/logfile"
	"github.com/runoshun/logtree/internal/infra/logging"
	"github.com/runoshun/logtree/internal/usecase"
)

// Options controls how the container is built.
type Options struct {
	ConfigPath string    // Explicit config file (empty = global config)
	LogLevel   string    // Overrides the configured log level when set
	LogOutput  io.Writer // Diagnostic log destination (nil = stderr)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Logs         domain.LogSource
	ConfigLoader domain.ConfigLoader

	// Pointer fields
	Logger *slog.Logger
	Config *domain.Config
}

// New creates a new Container, loading configuration from disk.
func New(opts Options) (*Container, error) {
	var loader domain.ConfigLoader = config.NewLoader()
	if opts.ConfigPath != "" {
		loader = config.NewLoaderWithPath(opts.ConfigPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}

	return &Container{
		Logs:         logfile.New(),
		ConfigLoader: loader,
		Logger:       logging.NewFromString(out, level),
		Config:       cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(logs domain.LogSource, loader domain.ConfigLoader, logger *slog.Logger) (*Container, error) {
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return &Container{
		Logs:         logs,
		ConfigLoader: loader,
		Logger:       logger,
		Config:       cfg,
	}, nil
}

// UseCase factory methods

// QueryNodesUseCase returns a new QueryNodes use case.
func (c *Container) QueryNodesUseCase() *usecase.QueryNodes {
	return usecase.NewQueryNodes(c.Logs, c.Logger)
}

// ShowTreeUseCase returns a new ShowTree use case.
func (c *Container) ShowTreeUseCase() *usecase.ShowTree {
	return usecase.NewShowTree(c.Logs, c.Logger)
}
