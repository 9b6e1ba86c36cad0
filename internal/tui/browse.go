package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockpick/internal/catalog"
	"stockpick/internal/session"
)

const (
	maxColumnWidth = 24
	minColumnWidth = 4
	// Column sizing samples the top of the catalog; scanning a huge file
	// for one long outlier cell is not worth it.
	sizingSampleRows = 200
)

type BrowseModel struct {
	sess           *session.Session
	table          table.Model
	details        viewport.Model
	showingDetails bool
	width          int
	height         int
}

func NewBrowseModel(sess *session.Session) *BrowseModel {
	t := table.New(
		table.WithColumns(catalogColumns(sess.Catalog)),
		table.WithRows(catalogRows(sess.Catalog, sess.Catalog.Records)),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithStyles(tableStyles()),
	)

	return &BrowseModel{
		sess:    sess,
		table:   t,
		details: viewport.New(60, 15),
	}
}

// catalogColumns sizes each column from its header and a sample of the data.
func catalogColumns(cat *catalog.Catalog) []table.Column {
	columns := make([]table.Column, len(cat.Columns))
	for i, name := range cat.Columns {
		width := utf8.RuneCountInString(name)
		for r, rec := range cat.Records {
			if r == sizingSampleRows {
				break
			}
			if n := utf8.RuneCountInString(rec[name]); n > width {
				width = n
			}
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if width < minColumnWidth {
			width = minColumnWidth
		}
		columns[i] = table.Column{Title: name, Width: width}
	}
	return columns
}

func catalogRows(cat *catalog.Catalog, records []catalog.Record) []table.Row {
	rows := make([]table.Row, len(records))
	for i, rec := range records {
		row := make(table.Row, len(cat.Columns))
		for j, name := range cat.Columns {
			row[j] = rec[name]
		}
		rows[i] = row
	}
	return rows
}

func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

func (m *BrowseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width - 4)
	m.table.SetHeight(height - 8)
	m.details.Width = width - 8
	m.details.Height = height - 10
}

func (m *BrowseModel) Refresh() {
	m.table.SetRows(catalogRows(m.sess.Catalog, m.sess.Catalog.Records))
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.showingDetails {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc", "enter", "q":
				m.showingDetails = false
				return m, nil
			}
		}
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.openDetails()
			return m, nil
		case "esc", "q":
			return m, ChangeScreen(MenuScreen)
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// openDetails renders every column of the highlighted record vertically,
// which is the only way to read wide rows that the table truncates.
func (m *BrowseModel) openDetails() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.sess.Catalog.Records) {
		return
	}
	rec := m.sess.Catalog.Records[idx]

	var sb strings.Builder
	for _, name := range m.sess.Catalog.Columns {
		role := ""
		switch name {
		case m.sess.ProductColumn:
			role = " (product)"
		case m.sess.LocationColumn:
			role = " (location)"
		}
		sb.WriteString(labelStyle.Render(name+role+":") + "\n")
		sb.WriteString("  " + rec[name] + "\n\n")
	}

	m.details.SetContent(sb.String())
	m.details.GotoTop()
	m.showingDetails = true
}

func (m *BrowseModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	if m.showingDetails {
		title := adaptiveTitleStyle.Render("📦 Record Details")
		body := formStyle.Render(m.details.View())
		help := adaptiveHelpStyle.Render("↑/↓: Scroll • Esc: Back to list")
		return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
	}

	title := adaptiveTitleStyle.Render("📦 Browse Catalog")
	info := statusStyle.Render(fmt.Sprintf("%s • %d rows", m.sess.Catalog.Source, len(m.sess.Catalog.Records)))
	help := adaptiveHelpStyle.Render("↑/↓: Navigate • Enter: Details • Esc: Back to menu")

	return lipgloss.JoinVertical(lipgloss.Left, title, info, m.table.View(), help)
}
