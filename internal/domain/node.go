// Package domain contains the task tree model, the log line parser, and node filters.
package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Flag records which log line pattern created a node.
type Flag string

// Flags assigned by the parser.
const (
	FlagAdded     Flag = "added"
	FlagStarting  Flag = "starting"
	FlagExecuting Flag = "executing"
)

// AllFlags returns every flag the parser can assign, in pattern precedence order.
func AllFlags() []Flag {
	return []Flag{FlagAdded, FlagStarting, FlagExecuting}
}

// ParseFlags splits a comma-separated flag list verbatim.
// An empty string yields a single empty flag, which matches no node.
func ParseFlags(s string) []Flag {
	parts := strings.Split(s, ",")
	flags := make([]Flag, 0, len(parts))
	for _, p := range parts {
		flags = append(flags, Flag(p))
	}
	return flags
}

// Node is one task occurrence recorded in the log.
// Fields are ordered to minimize memory padding.
type Node struct {
	Parent   *int   `json:"parent" yaml:"parent"`     // Index of the node open at creation (nil = root)
	Task     string `json:"task" yaml:"task"`         // Captured text from the triggering line
	Output   string `json:"output" yaml:"output"`     // Lines logged while this node was open
	Children []int  `json:"children" yaml:"children"` // Indices of nodes created while this node was open
	Flags    []Flag `json:"flags" yaml:"flags"`       // Exactly one flag, set at creation
}

// IsRoot returns true if the node was created while no task was open.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// HasFlag reports whether the node carries the given flag.
func (n *Node) HasFlag(f Flag) bool {
	return slices.Contains(n.Flags, f)
}

// HasOutput reports whether any output was captured for the node.
func (n *Node) HasOutput() bool {
	return n.Output != ""
}

// Tree is the append-only node arena produced by the parser.
// Indices into it are stable for the life of the tree.
type Tree struct {
	Nodes []Node
	Lines int // Lines scanned to build the tree
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Get returns the node at index i.
func (t *Tree) Get(i int) (*Node, error) {
	if i < 0 || i >= len(t.Nodes) {
		return nil, fmt.Errorf("node %d: %w", i, ErrNodeNotFound)
	}
	return &t.Nodes[i], nil
}

// Roots returns the indices of nodes without a parent, in creation order.
func (t *Tree) Roots() []int {
	var roots []int
	for i := range t.Nodes {
		if t.Nodes[i].IsRoot() {
			roots = append(roots, i)
		}
	}
	return roots
}

// Depth returns the number of ancestors of node i.
func (t *Tree) Depth(i int) int {
	depth := 0
	for p := t.Nodes[i].Parent; p != nil; p = t.Nodes[*p].Parent {
		depth++
	}
	return depth
}

// Walk visits the subtree rooted at index root in pre-order.
// fn receives the node index and its depth relative to root; returning false skips the node's children.
func (t *Tree) Walk(root int, fn func(index, depth int) bool) {
	var visit func(i, depth int)
	visit = func(i, depth int) {
		if !fn(i, depth) {
			return
		}
		for _, c := range t.Nodes[i].Children {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
}

// Validate checks that parent and children links agree.
// Every child index must point back to its parent, appear under exactly one parent,
// and be created after that parent.
func (t *Tree) Validate() error {
	seen := make(map[int]int, len(t.Nodes))
	for i := range t.Nodes {
		for _, c := range t.Nodes[i].Children {
			if c <= i || c >= len(t.Nodes) {
				return fmt.Errorf("node %d lists invalid child %d: %w", i, c, ErrInconsistentTree)
			}
			if prev, dup := seen[c]; dup {
				return fmt.Errorf("node %d is a child of both %d and %d: %w", c, prev, i, ErrInconsistentTree)
			}
			seen[c] = i
			if p := t.Nodes[c].Parent; p == nil || *p != i {
				return fmt.Errorf("node %d does not point back to parent %d: %w", c, i, ErrInconsistentTree)
			}
		}
	}
	for i := range t.Nodes {
		p := t.Nodes[i].Parent
		if p == nil {
			continue
		}
		if parent, ok := seen[i]; !ok || parent != *p {
			return fmt.Errorf("node %d missing from children of %d: %w", i, *p, ErrInconsistentTree)
		}
	}
	return nil
}
