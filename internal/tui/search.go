package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockpick/internal/catalog"
	"stockpick/internal/session"
)

type SearchModel struct {
	sess    *session.Session
	input   textinput.Model
	table   table.Model
	matches []catalog.Record
	width   int
	height  int
}

func NewSearchModel(sess *session.Session) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search term..."
	input.CharLimit = 100
	input.Width = 40
	input.Focus()

	t := table.New(
		table.WithColumns(catalogColumns(sess.Catalog)),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(tableStyles()),
	)

	m := &SearchModel{
		sess:  sess,
		input: input,
		table: t,
	}
	m.applyFilter()
	return m
}

func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width - 4)
	m.table.SetHeight(height - 12)
}

func (m *SearchModel) Refresh() {
	m.applyFilter()
}

func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, ChangeScreen(MenuScreen)
		case "ctrl+p":
			m.sess.SearchProductOnly = !m.sess.SearchProductOnly
			m.applyFilter()
			return m, nil
		case "up", "down", "pgup", "pgdown":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}

	// Everything else goes to the input; re-filter on each keystroke for
	// live results.
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *SearchModel) applyFilter() {
	m.matches = m.sess.Search(m.input.Value())
	m.table.SetRows(catalogRows(m.sess.Catalog, m.matches))
	if m.table.Cursor() >= len(m.matches) {
		m.table.GotoTop()
	}
}

func (m *SearchModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("🔍 Search Catalog")

	help := adaptiveHelpStyle.Render("Type to search • Ctrl+P: Toggle scope • ↑/↓: Navigate • Esc: Back to menu")

	count := statusStyle.Render(fmt.Sprintf("Showing %d of %d rows",
		len(m.matches), len(m.sess.Catalog.Records)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderFilterBar(),
		m.table.View(),
		count,
		help,
	)
}

func (m *SearchModel) renderFilterBar() string {
	var sb strings.Builder

	filterStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
		Padding(0, 1)

	sb.WriteString(filterStyle.Render(m.input.View()))
	sb.WriteString("  ")

	scopes := []struct {
		productOnly bool
		label       string
	}{
		{false, "All columns"},
		{true, "Product only"},
	}

	for _, scope := range scopes {
		style := helpStyle.Margin(0)
		if m.sess.SearchProductOnly == scope.productOnly {
			style = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
				Bold(true).
				Underline(true)
		}
		sb.WriteString(style.Render(scope.label))
		sb.WriteString("  ")
	}

	return sb.String()
}
