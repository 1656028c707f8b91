package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/runoshun/logtree/internal/domain"
	"github.com/runoshun/logtree/internal/usecase"
	"gopkg.in/yaml.v3"
)

// styles holds the lipgloss styles for console output.
type styles struct {
	Task      lipgloss.Style
	Output    lipgloss.Style
	Index     lipgloss.Style
	Muted     lipgloss.Style
	Added     lipgloss.Style
	Starting  lipgloss.Style
	Executing lipgloss.Style
}

// newStyles builds styles bound to w, honoring the color mode.
func newStyles(w io.Writer, mode domain.ColorMode) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case domain.ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case domain.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case domain.ColorAuto:
		// Renderer detects the terminal from w.
	}

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return styles{
		Task:      base.Foreground(lipgloss.Color("3")), // Yellow
		Output:    base.Foreground(lipgloss.Color("2")), // Green
		Index:     base.Foreground(lipgloss.Color("8")),
		Muted:     base.Foreground(lipgloss.Color("8")).Italic(true),
		Added:     base.Foreground(lipgloss.Color("4")),
		Starting:  base.Foreground(lipgloss.Color("5")),
		Executing: base.Foreground(lipgloss.Color("6")),
	}
}

// flag returns the style for a flag badge.
func (s styles) flag(f domain.Flag) lipgloss.Style {
	switch f {
	case domain.FlagAdded:
		return s.Added
	case domain.FlagStarting:
		return s.Starting
	case domain.FlagExecuting:
		return s.Executing
	default:
		return s.Muted
	}
}

// paint applies style line by line so multi-line text keeps its exact layout.
func paint(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderNodes writes the filtered nodes in the requested format.
func renderNodes(w io.Writer, nodes []domain.FilteredNode, format domain.OutputFormat, st styles) error {
	switch format {
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toNodeViews(nodes))
	case domain.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toNodeViews(nodes)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case domain.FormatText:
		return renderText(w, nodes, st)
	default:
		return fmt.Errorf("%q: %w", format, domain.ErrInvalidFormat)
	}
}

// renderText prints each node as a "Task:" line and its raw output, separated by blank lines.
func renderText(w io.Writer, nodes []domain.FilteredNode, st styles) error {
	for _, n := range nodes {
		if _, err := fmt.Fprintf(w, "Task: %s\nOutput:\n%s\n\n", paint(st.Task, n.Task), paint(st.Output, n.Output)); err != nil {
			return err
		}
	}
	return nil
}

// nodeView is the serialized form of a filtered node.
type nodeView struct {
	Parent   *int          `json:"parent" yaml:"parent"`
	Task     string        `json:"task" yaml:"task"`
	Output   string        `json:"output" yaml:"output"`
	Flags    []domain.Flag `json:"flags" yaml:"flags"`
	Children []int         `json:"children" yaml:"children"`
	Index    int           `json:"index" yaml:"index"`
}

func toNodeViews(nodes []domain.FilteredNode) []nodeView {
	views := make([]nodeView, 0, len(nodes))
	for _, n := range nodes {
		children := n.Children
		if children == nil {
			children = []int{}
		}
		views = append(views, nodeView{
			Index:    n.Index,
			Task:     n.Task,
			Flags:    n.Flags,
			Parent:   n.Parent,
			Children: children,
			Output:   n.Output,
		})
	}
	return views
}

// renderTree prints the hierarchy with two spaces of indentation per level.
func renderTree(w io.Writer, out *usecase.ShowTreeOutput, st styles) error {
	for _, line := range out.Lines {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", line.Depth))
		b.WriteString(st.Index.Render(fmt.Sprintf("#%d", line.Index)))
		b.WriteString(" ")
		b.WriteString(st.Task.Render(line.Node.Task))
		for _, f := range line.Node.Flags {
			b.WriteString(" ")
			b.WriteString(st.flag(f).Render("[" + string(f) + "]"))
		}
		if line.OutputLines > 0 {
			b.WriteString(" ")
			b.WriteString(st.Muted.Render(fmt.Sprintf("(%d lines)", line.OutputLines)))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	if len(out.Lines) == 0 {
		_, err := fmt.Fprintln(w, st.Muted.Render("No tasks found."))
		return err
	}
	return nil
}
