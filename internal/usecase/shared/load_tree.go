package shared

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runoshun/logtree/internal/domain"
)

// LoadTree opens the log at path and parses it into a task tree.
// Any open or read failure is reported as domain.ErrParseLog wrapping the cause.
func LoadTree(ctx context.Context, source domain.LogSource, logger *slog.Logger, path string) (*domain.Tree, error) {
	if path == "" {
		return nil, domain.ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseLog, err)
	}
	defer func() { _ = rc.Close() }()

	tree, err := domain.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseLog, err)
	}

	logger.DebugContext(ctx, "parsed log", "path", path, "lines", tree.Lines, "nodes", tree.Len(), "roots", len(tree.Roots()))
	return tree, nil
}
