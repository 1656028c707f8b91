package domain

import "slices"

// Predicate reports whether a node should be kept.
type Predicate func(n *Node) bool

// MatchAnyFlag keeps nodes carrying at least one of the wanted flags.
// An empty wanted set keeps nothing.
func MatchAnyFlag(wanted []Flag) Predicate {
	wanted = slices.Clone(wanted)
	return func(n *Node) bool {
		for _, f := range wanted {
			if n.HasFlag(f) {
				return true
			}
		}
		return false
	}
}

// RequireOutput keeps nodes with non-empty output.
func RequireOutput() Predicate {
	return (*Node).HasOutput
}

// FilteredNode is a node kept by Filter together with its index in the tree.
type FilteredNode struct {
	Node
	Index int
}

// Filter returns the nodes satisfying every predicate, in tree order.
// With no predicates every node is returned.
func Filter(t *Tree, preds ...Predicate) []FilteredNode {
	var out []FilteredNode
	for i := range t.Nodes {
		if matchAll(&t.Nodes[i], preds) {
			out = append(out, FilteredNode{Node: t.Nodes[i], Index: i})
		}
	}
	return out
}

func matchAll(n *Node, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred(n) {
			return false
		}
	}
	return true
}
