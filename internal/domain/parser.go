package domain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Line prefixes recognized by the parser, in match precedence order.
const (
	TaskAddedPrefix    = "Task Added:"
	StartingTaskPrefix = "✨ Starting task: "
	FinishedPrefix     = "Finished:"
	ExecutingPrefix    = "Executing: "
)

// Parser turns log lines into a task tree.
// The open node acts as a cursor: new nodes nest under it, plain lines
// accumulate into its output, and a finished line moves it back to the parent.
type Parser struct {
	current *int // Index of the open node (nil = no task open)
	nodes   []Node
	lines   int
}

// NewParser returns a parser with no nodes and no open task.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads every line from r and returns the resulting tree.
// A read failure aborts parsing and no partial tree is returned.
func Parse(r io.Reader) (*Tree, error) {
	p := NewParser()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && (err == nil || errors.Is(err, io.EOF)) {
			if trimmed, ok := strings.CutSuffix(line, "\n"); ok {
				line = strings.TrimSuffix(trimmed, "\r")
			}
			p.Feed(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
	}
	return p.Tree(), nil
}

// ParseLines runs the parser over an in-memory line sequence.
func ParseLines(lines []string) *Tree {
	p := NewParser()
	for _, line := range lines {
		p.Feed(line)
	}
	return p.Tree()
}

// Feed classifies a single line (without its trailing newline) and applies it.
// Only the first matching pattern acts.
func (p *Parser) Feed(line string) {
	p.lines++
	if _, task, ok := strings.Cut(line, TaskAddedPrefix); ok {
		p.open(strings.TrimPrefix(task, " "), FlagAdded)
		return
	}
	if _, task, ok := strings.Cut(line, StartingTaskPrefix); ok {
		p.open(task, FlagStarting)
		return
	}
	if strings.Contains(line, FinishedPrefix) {
		p.finish()
		return
	}
	if _, task, ok := strings.Cut(line, ExecutingPrefix); ok {
		// The open node's output is replaced by the whole line, not appended to.
		if p.current != nil {
			p.nodes[*p.current].Output = line
		}
		p.open(task, FlagExecuting)
		return
	}
	if p.current != nil {
		p.nodes[*p.current].Output += line + "\n"
	}
}

// Current returns the index of the open node, or nil if no task is open.
func (p *Parser) Current() *int {
	if p.current == nil {
		return nil
	}
	i := *p.current
	return &i
}

// Tree returns the nodes parsed so far.
func (p *Parser) Tree() *Tree {
	return &Tree{Nodes: p.nodes, Lines: p.lines}
}

// open appends a new node under the current one and makes it current.
func (p *Parser) open(task string, flag Flag) {
	node := Node{
		Task:   task,
		Parent: p.Current(),
		Flags:  []Flag{flag},
	}
	p.nodes = append(p.nodes, node)
	idx := len(p.nodes) - 1
	if p.current != nil {
		parent := &p.nodes[*p.current]
		parent.Children = append(parent.Children, idx)
	}
	p.current = &idx
}

// finish closes the open node and reopens its parent. It is a no-op when no task is open.
func (p *Parser) finish() {
	if p.current == nil {
		return
	}
	p.current = p.nodes[*p.current].Parent
}
