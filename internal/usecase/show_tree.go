package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/runoshun/logtree/internal/domain"
	"github.com/runoshun/logtree/internal/usecase/shared"
)

// ShowTreeInput contains the parameters for displaying the task hierarchy.
type ShowTreeInput struct {
	Root     *int   // Subtree root index (nil = all roots)
	Path     string // Log file path (may start with ~)
	MaxDepth int    // Deepest level to include relative to each root (0 = unlimited)
}

// TreeLine is one node of the rendered hierarchy.
// Fields are ordered to minimize memory padding.
type TreeLine struct {
	Node        *domain.Node
	Index       int
	Depth       int
	OutputLines int // Number of output lines captured for the node
}

// ShowTreeOutput contains the hierarchy in pre-order.
type ShowTreeOutput struct {
	Lines []TreeLine
	Total int // Number of nodes in the whole tree
}

// ShowTree is the use case for walking the parsed task hierarchy.
type ShowTree struct {
	source domain.LogSource
	logger *slog.Logger
}

// NewShowTree creates a new ShowTree use case.
func NewShowTree(source domain.LogSource, logger *slog.Logger) *ShowTree {
	return &ShowTree{
		source: source,
		logger: logger,
	}
}

// Execute parses the log and flattens the requested subtrees in pre-order.
func (uc *ShowTree) Execute(ctx context.Context, in ShowTreeInput) (*ShowTreeOutput, error) {
	tree, err := shared.LoadTree(ctx, uc.source, uc.logger, in.Path)
	if err != nil {
		return nil, err
	}

	roots := tree.Roots()
	if in.Root != nil {
		if _, err := tree.Get(*in.Root); err != nil {
			return nil, err
		}
		roots = []int{*in.Root}
	}

	var lines []TreeLine
	for _, root := range roots {
		tree.Walk(root, func(i, depth int) bool {
			node := &tree.Nodes[i]
			lines = append(lines, TreeLine{
				Node:        node,
				Index:       i,
				Depth:       depth,
				OutputLines: countLines(node.Output),
			})
			return in.MaxDepth <= 0 || depth+1 < in.MaxDepth
		})
	}

	return &ShowTreeOutput{
		Lines: lines,
		Total: tree.Len(),
	}, nil
}

// countLines counts output lines; a final line without a newline still counts.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
