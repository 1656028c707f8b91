package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/logtree/internal/domain"
)

// Colors defines the color palette for the browser.
var Colors = struct {
	Primary   lipgloss.Color
	Muted     lipgloss.Color
	Selected  lipgloss.Color
	Task      lipgloss.Color
	Output    lipgloss.Color
	Added     lipgloss.Color
	Starting  lipgloss.Color
	Executing lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Muted:     lipgloss.Color("#636E72"), // Gray
	Selected:  lipgloss.Color("#FFEAA7"), // Yellow
	Task:      lipgloss.Color("#DFE6E9"), // Light gray
	Output:    lipgloss.Color("#00B894"), // Green
	Added:     lipgloss.Color("#74B9FF"), // Light blue
	Starting:  lipgloss.Color("#A29BFE"), // Lavender
	Executing: lipgloss.Color("#FDCB6E"), // Yellow
}

// Styles contains the lipgloss styles for the browser.
type Styles struct {
	Header       lipgloss.Style
	ListPane     lipgloss.Style
	OutputPane   lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	OutputTitle  lipgloss.Style
	Output       lipgloss.Style
	Empty        lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			PaddingLeft(1),
		ListPane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(Colors.Muted).
			PaddingRight(1),
		OutputPane: lipgloss.NewStyle().
			PaddingLeft(1),
		Item: lipgloss.NewStyle().
			Foreground(Colors.Task),
		ItemSelected: lipgloss.NewStyle().
			Foreground(Colors.Selected).
			Bold(true),
		OutputTitle: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),
		Output: lipgloss.NewStyle().
			Foreground(Colors.Output),
		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true).
			PaddingLeft(1),
	}
}

// FlagStyle returns the badge style for a flag.
func FlagStyle(f domain.Flag) lipgloss.Style {
	switch f {
	case domain.FlagAdded:
		return lipgloss.NewStyle().Foreground(Colors.Added)
	case domain.FlagStarting:
		return lipgloss.NewStyle().Foreground(Colors.Starting)
	case domain.FlagExecuting:
		return lipgloss.NewStyle().Foreground(Colors.Executing)
	default:
		return lipgloss.NewStyle().Foreground(Colors.Muted)
	}
}
