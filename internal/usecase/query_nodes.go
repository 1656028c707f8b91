package usecase

import (
	"context"
	"log/slog"

	"github.com/runoshun/logtree/internal/domain"
	"github.com/runoshun/logtree/internal/usecase/shared"
)

// QueryNodesInput contains the parameters for querying a log's task tree.
type QueryNodesInput struct {
	Path          string        // Log file path (may start with ~)
	IncludeFlags  []domain.Flag // Keep nodes carrying any of these flags
	RequireOutput bool          // Keep only nodes with captured output
	// NoFlagFilter skips the flag predicate entirely instead of matching against IncludeFlags.
	NoFlagFilter bool
}

// QueryNodesOutput contains the result of a query.
type QueryNodesOutput struct {
	Tree  *domain.Tree          // Full parsed tree
	Nodes []domain.FilteredNode // Nodes passing every predicate, in log order
}

// QueryNodes is the use case for parsing a log and filtering its nodes.
type QueryNodes struct {
	source domain.LogSource
	logger *slog.Logger
}

// NewQueryNodes creates a new QueryNodes use case.
func NewQueryNodes(source domain.LogSource, logger *slog.Logger) *QueryNodes {
	return &QueryNodes{
		source: source,
		logger: logger,
	}
}

// Execute parses the log and returns the nodes matching the input criteria.
func (uc *QueryNodes) Execute(ctx context.Context, in QueryNodesInput) (*QueryNodesOutput, error) {
	tree, err := shared.LoadTree(ctx, uc.source, uc.logger, in.Path)
	if err != nil {
		return nil, err
	}

	nodes := domain.Filter(tree, BuildPredicates(in)...)
	uc.logger.DebugContext(ctx, "filtered nodes", "kept", len(nodes), "total", tree.Len())

	return &QueryNodesOutput{
		Tree:  tree,
		Nodes: nodes,
	}, nil
}

// BuildPredicates returns the filter predicates described by the input, in evaluation order.
func BuildPredicates(in QueryNodesInput) []domain.Predicate {
	var preds []domain.Predicate
	if !in.NoFlagFilter {
		preds = append(preds, domain.MatchAnyFlag(in.IncludeFlags))
	}
	if in.RequireOutput {
		preds = append(preds, domain.RequireOutput())
	}
	return preds
}
