package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockpick/internal/session"
)

const noneLabel = "(none)"

type SettingsModel struct {
	sess *session.Session

	state        SettingsState
	cursor       int
	columnCursor int
	columns      []string

	width  int
	height int
}

type SettingsState int

const (
	SettingsMenuState SettingsState = iota
	SettingsProductState
	SettingsLocationState
)

func NewSettingsModel(sess *session.Session) *SettingsModel {
	return &SettingsModel{
		sess:  sess,
		state: SettingsMenuState,
	}
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *SettingsModel) Refresh() {
	m.state = SettingsMenuState
}

func (m *SettingsModel) choices() []string {
	location := m.sess.LocationColumn
	if location == "" {
		location = noneLabel
	}
	scope := "all columns"
	if m.sess.SearchProductOnly {
		scope = "product only"
	}
	return []string{
		fmt.Sprintf("Product column: %s", m.sess.ProductColumn),
		fmt.Sprintf("Location column: %s", location),
		fmt.Sprintf("Search scope: %s", scope),
		"Back",
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case SettingsMenuState:
		return m.updateMenuState(msg)
	case SettingsProductState, SettingsLocationState:
		return m.updateColumnState(msg)
	}
	return m, nil
}

func (m *SettingsModel) updateMenuState(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices())-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.handleSelection()
		case "esc", "q":
			return m, ChangeScreen(MenuScreen)
		}
	}
	return m, nil
}

func (m *SettingsModel) handleSelection() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0: // Product column
		m.columns = m.sess.Catalog.Columns
		m.columnCursor = indexOf(m.columns, m.sess.ProductColumn)
		m.state = SettingsProductState
	case 1: // Location column
		m.columns = append([]string{noneLabel}, m.sess.Catalog.Columns...)
		m.columnCursor = 0
		if m.sess.LocationColumn != "" {
			m.columnCursor = indexOf(m.columns, m.sess.LocationColumn)
		}
		m.state = SettingsLocationState
	case 2: // Search scope
		m.sess.SearchProductOnly = !m.sess.SearchProductOnly
	case 3: // Back
		return m, ChangeScreen(MenuScreen)
	}
	return m, nil
}

func (m *SettingsModel) updateColumnState(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.columnCursor > 0 {
				m.columnCursor--
			}
		case "down", "j":
			if m.columnCursor < len(m.columns)-1 {
				m.columnCursor++
			}
		case "enter":
			m.assignColumn()
			m.state = SettingsMenuState
		case "esc", "q":
			m.state = SettingsMenuState
		}
	}
	return m, nil
}

func (m *SettingsModel) assignColumn() {
	choice := m.columns[m.columnCursor]
	switch m.state {
	case SettingsProductState:
		m.sess.ProductColumn = choice
	case SettingsLocationState:
		if choice == noneLabel {
			m.sess.LocationColumn = ""
		} else {
			m.sess.LocationColumn = choice
		}
	}
}

func indexOf(items []string, want string) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return 0
}

func (m *SettingsModel) View() string {
	switch m.state {
	case SettingsProductState:
		return m.renderColumnList("⚙️  Select Product Column")
	case SettingsLocationState:
		return m.renderColumnList("⚙️  Select Location Column")
	}
	return m.renderMenu()
}

func (m *SettingsModel) renderMenu() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("⚙️  Column Settings")

	var menu string
	for i, choice := range m.choices() {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
			choice = selectedMenuItemStyle.Render(choice)
		} else {
			choice = menuItemStyle.Render(choice)
		}
		menu += fmt.Sprintf("%s %s\n", cursor, choice)
	}

	help := adaptiveHelpStyle.Render("↑/↓: Navigate • Enter: Select/Toggle • Esc: Back to menu")

	content := lipgloss.JoinVertical(lipgloss.Center, title, menu, help)
	if m.width > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *SettingsModel) renderColumnList(heading string) string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render(heading)

	var list string
	for i, column := range m.columns {
		cursor := " "
		if m.columnCursor == i {
			cursor = ">"
			column = selectedMenuItemStyle.Render(column)
		} else {
			column = menuItemStyle.Render(column)
		}
		list += fmt.Sprintf("%s %s\n", cursor, column)
	}

	help := adaptiveHelpStyle.Render("↑/↓: Navigate • Enter: Assign • Esc: Cancel")

	content := lipgloss.JoinVertical(lipgloss.Center, title, list, help)
	if m.width > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
