package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cavern/internal/sandbox"
)

// Trace viewer layout constants.
const (
	minWidthForSidebar = 100 // Minimum width to show the summary sidebar
	sidebarWidth       = 24
)

// TraceKeyMap defines the key bindings for the trace viewer.
type TraceKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextEvent key.Binding
	PrevEvent key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k TraceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextEvent, k.PrevEvent, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k TraceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.NextEvent, k.PrevEvent, k.Quit},
	}
}

// DefaultTraceKeyMap returns default key bindings.
func DefaultTraceKeyMap() TraceKeyMap {
	return TraceKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextEvent: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab/n", "next change"),
		),
		PrevEvent: key.NewBinding(
			key.WithKeys("shift+tab", "N"),
			key.WithHelp("S-tab/N", "prev change"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first tick"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last tick"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TraceModel is the Bubble Tea model for browsing a headless trace.
type TraceModel struct {
	title       string
	rows        []sandbox.TraceRow
	summary     sandbox.TraceSummary
	table       table.Model
	help        help.Model
	keys        TraceKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewTraceModel creates a viewer for rows.
func NewTraceModel(title string, rows []sandbox.TraceRow, width, height int) TraceModel {
	m := TraceModel{
		title:       title,
		rows:        rows,
		summary:     sandbox.Summarize(rows),
		keys:        DefaultTraceKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized to the window.
func (m *TraceModel) createTable() table.Model {
	widths := []int{6, 9, 9, 9, 9, 8, 8, 24}
	columns := make([]table.Column, len(sandbox.TraceColumns))
	for i, title := range sandbox.TraceColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the trace.
func (m *TraceModel) updateTableRows() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row(r.Cells())
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// nextChange returns the index of the next row, searching in dir, whose
// contacts differ from the row before it. Returns from when there is none.
func (m TraceModel) nextChange(from, dir int) int {
	for i := from + dir; i > 0 && i < len(m.rows); i += dir {
		if sandbox.Describe(m.rows[i].State) != sandbox.Describe(m.rows[i-1].State) {
			return i
		}
	}
	return from
}

// Init initializes the trace viewer.
func (m TraceModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the trace viewer.
func (m TraceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextEvent):
			m.table.SetCursor(m.nextChange(m.table.Cursor(), 1))
			return m, nil

		case key.Matches(msg, m.keys.PrevEvent):
			m.table.SetCursor(m.nextChange(m.table.Cursor(), -1))
			return m, nil

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the trace viewer.
func (m TraceModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("TRACE - "+m.title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		sidebarStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(sidebarWidth).
			Padding(0, 1)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(m.renderSummary()), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSummary renders the sidebar counts.
func (m TraceModel) renderSummary() string {
	s := m.summary
	var b strings.Builder
	b.WriteString("Summary\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")
	fmt.Fprintf(&b, "ticks     %d\n", s.Ticks)
	fmt.Fprintf(&b, "grounded  %d\n", s.GroundedTicks)
	fmt.Fprintf(&b, "climbing  %d\n", s.ClimbTicks)
	fmt.Fprintf(&b, "descend   %d\n", s.DescendTicks)
	fmt.Fprintf(&b, "walls     %d\n", s.WallTicks)
	fmt.Fprintf(&b, "ceiling   %d\n", s.CeilingTicks)
	fmt.Fprintf(&b, "max slope %.1f°\n", s.MaxSlopeAngle)
	fmt.Fprintf(&b, "path      %.2f\n", s.Distance)
	fmt.Fprintf(&b, "end       %.2f,%.2f", s.End.X(), s.End.Y())
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m TraceModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No ticks recorded.")
	}
	return m.table.View()
}

// Cursor returns the index of the highlighted row.
func (m TraceModel) Cursor() int {
	return m.table.Cursor()
}

// RunTrace shows rows in the interactive trace viewer.
func RunTrace(title string, rows []sandbox.TraceRow, width, height int) error {
	p := tea.NewProgram(NewTraceModel(title, rows, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
