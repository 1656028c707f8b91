// Package tui provides an interactive browser over filtered log nodes.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/runoshun/logtree/internal/domain"
)

const (
	headerHeight = 1
	footerHeight = 1
	minListWidth = 20
	scrollStep   = 5
)

// Model is the browser TUI model.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Data
	tree  *domain.Tree
	nodes []domain.FilteredNode

	// Components
	keys     KeyMap
	styles   Styles
	help     help.Model
	viewport viewport.Model

	// Numeric state
	cursor int
	offset int // First visible list row
	width  int
	height int

	// Boolean state
	ready bool
}

// New creates a browser over nodes selected from tree.
func New(tree *domain.Tree, nodes []domain.FilteredNode) *Model {
	return &Model{
		tree:     tree,
		nodes:    nodes,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Cursor returns the index of the selected entry in the node list.
func (m *Model) Cursor() int {
	return m.cursor
}

// Selected returns the selected node, or nil when the list is empty.
func (m *Model) Selected() *domain.FilteredNode {
	if len(m.nodes) == 0 {
		return nil
	}
	return &m.nodes[m.cursor]
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.cursor + 1)
	case key.Matches(msg, m.keys.Top):
		m.moveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(len(m.nodes) - 1)
	case key.Matches(msg, m.keys.Parent):
		m.jumpToParent()
	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.SetYOffset(m.viewport.YOffset + scrollStep)
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.SetYOffset(m.viewport.YOffset - scrollStep)
	}
	return m, nil
}

// moveTo selects entry i, clamped to the list bounds.
func (m *Model) moveTo(i int) {
	if len(m.nodes) == 0 {
		return
	}
	i = max(0, min(i, len(m.nodes)-1))
	if i == m.cursor {
		return
	}
	m.cursor = i
	m.ensureVisible()
	m.syncOutput()
}

// jumpToParent selects the selected node's parent if the parent passed the filters.
func (m *Model) jumpToParent() {
	sel := m.Selected()
	if sel == nil || sel.Parent == nil {
		return
	}
	for i, n := range m.nodes {
		if n.Index == *sel.Parent {
			m.moveTo(i)
			return
		}
	}
}

func (m *Model) listHeight() int {
	h := m.height - headerHeight - footerHeight
	if m.help.ShowAll {
		h -= lipgloss.Height(m.help.View(m.keys)) - 1
	}
	return max(h, 1)
}

func (m *Model) listWidth() int {
	return max(m.width*2/5, minListWidth)
}

func (m *Model) resize() {
	m.viewport.Width = max(m.width-m.listWidth()-2, 1)
	m.viewport.Height = max(m.listHeight()-1, 1)
	m.help.Width = m.width
	m.ensureVisible()
	m.syncOutput()
}

func (m *Model) ensureVisible() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// syncOutput loads the selected node's output into the viewport.
func (m *Model) syncOutput() {
	sel := m.Selected()
	if sel == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.styles.Output.Render(strings.TrimSuffix(sel.Output, "\n")))
	m.viewport.GotoTop()
}

// View renders the model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.styles.Header.Render(fmt.Sprintf("logtree: %d of %d tasks", len(m.nodes), m.tree.Len()))
	if len(m.nodes) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.styles.Empty.Render("No tasks match the filters."),
			m.help.View(m.keys),
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.ListPane.Width(m.listWidth()).Height(m.listHeight()).Render(m.viewList()),
		m.styles.OutputPane.Render(m.viewOutput()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.help.View(m.keys))
}

func (m *Model) viewList() string {
	h := m.listHeight()
	end := min(m.offset+h, len(m.nodes))
	width := m.listWidth() - 1

	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(i, width))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(i, width int) string {
	n := m.nodes[i]
	indent := strings.Repeat("  ", m.tree.Depth(n.Index))
	text := truncate.StringWithTail(fmt.Sprintf("%s#%d %s", indent, n.Index, n.Task), uint(max(width-12, 1)), "…")

	style := m.styles.Item
	if i == m.cursor {
		style = m.styles.ItemSelected
	}
	row := style.Render(text)
	for _, f := range n.Flags {
		row += " " + FlagStyle(f).Render(string(f))
	}
	return row
}

func (m *Model) viewOutput() string {
	sel := m.Selected()
	title := "Output"
	if !sel.HasOutput() {
		title = "Output (none)"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.OutputTitle.Render(title),
		m.viewport.View(),
	)
}
