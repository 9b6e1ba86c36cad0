package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockpick/internal/catalog"
	"stockpick/internal/config"
	"stockpick/internal/session"
)

type PickModel struct {
	sess *session.Session
	cfg  *config.Config

	state PickState

	// Select state
	filterInput   textinput.Model
	filterFocused bool
	table         table.Model
	matches       []catalog.Record
	staged        map[string]int
	stagedOrder   []string

	// Quantity prompt
	qtyInput   textinput.Model
	qtyProduct string
	qtyErr     string

	// Pick list view
	listTable table.Model

	// Export
	exportInput textinput.Model
	result      PickExportResult

	status string
	width  int
	height int
}

type PickState int

const (
	PickSelectState PickState = iota
	PickQuantityState
	PickListState
	PickExportState
	PickResultState
)

type PickExportResult struct {
	Path    string
	Entries int
	Err     error
}

type PickExportedMsg struct {
	Result PickExportResult
}

func NewPickModel(sess *session.Session, cfg *config.Config) *PickModel {
	filterInput := textinput.New()
	filterInput.Placeholder = "Filter products..."
	filterInput.CharLimit = 100
	filterInput.Width = 40

	qtyInput := textinput.New()
	qtyInput.Placeholder = "1"
	qtyInput.CharLimit = 6
	qtyInput.Width = 10

	exportInput := textinput.New()
	exportInput.Placeholder = cfg.Export.Output
	exportInput.CharLimit = 200
	exportInput.Width = 40

	m := &PickModel{
		sess:        sess,
		cfg:         cfg,
		state:       PickSelectState,
		filterInput: filterInput,
		qtyInput:    qtyInput,
		exportInput: exportInput,
		staged:      make(map[string]int),
	}

	m.table = table.New(
		table.WithColumns(m.pickColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(tableStyles()),
	)
	m.listTable = table.New(
		table.WithColumns(m.listColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(tableStyles()),
	)
	m.applyFilter()

	return m
}

// pickColumns builds the select table: staged quantity, product and, when a
// location column is assigned, the location.
func (m *PickModel) pickColumns() []table.Column {
	productWidth := utf8.RuneCountInString(m.sess.ProductColumn)
	locationWidth := utf8.RuneCountInString(m.sess.LocationColumn)
	for r, rec := range m.sess.Catalog.Records {
		if r == sizingSampleRows {
			break
		}
		if n := utf8.RuneCountInString(rec[m.sess.ProductColumn]); n > productWidth {
			productWidth = n
		}
		if n := utf8.RuneCountInString(rec[m.sess.LocationColumn]); n > locationWidth {
			locationWidth = n
		}
	}
	if productWidth > 40 {
		productWidth = 40
	}
	if locationWidth > maxColumnWidth {
		locationWidth = maxColumnWidth
	}

	columns := []table.Column{
		{Title: "Qty", Width: 5},
		{Title: m.sess.ProductColumn, Width: productWidth},
	}
	if m.sess.LocationColumn != "" {
		columns = append(columns, table.Column{Title: m.sess.LocationColumn, Width: locationWidth})
	}
	return columns
}

func (m *PickModel) pickRows() []table.Row {
	rows := make([]table.Row, len(m.matches))
	for i, rec := range m.matches {
		qty := ""
		if n, ok := m.staged[rec[m.sess.ProductColumn]]; ok {
			qty = strconv.Itoa(n)
		}
		row := table.Row{qty, rec[m.sess.ProductColumn]}
		if m.sess.LocationColumn != "" {
			row = append(row, rec[m.sess.LocationColumn])
		}
		rows[i] = row
	}
	return rows
}

func (m *PickModel) listColumns() []table.Column {
	return []table.Column{
		{Title: m.sess.ProductColumn, Width: 32},
		{Title: m.cfg.Export.LocationColumn, Width: 20},
		{Title: m.cfg.Export.QuantityColumn, Width: 10},
	}
}

func (m *PickModel) listRows() []table.Row {
	entries := m.sess.Picks.Entries()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		location := ""
		if e.HasLocation {
			location = e.Location
		}
		rows[i] = table.Row{
			e.Fields[m.sess.ProductColumn],
			location,
			strconv.Itoa(e.Quantity),
		}
	}
	return rows
}

func (m *PickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PickModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width - 4)
	m.table.SetHeight(height - 14)
	m.listTable.SetWidth(width - 4)
	m.listTable.SetHeight(height - 12)
}

// Refresh rebuilds both tables; the column assignments may have changed in
// the settings screen since the last visit. Rows are cleared before the
// columns swap because the table renders stale rows against the new column
// set.
func (m *PickModel) Refresh() {
	m.table.SetRows(nil)
	m.table.SetColumns(m.pickColumns())
	m.applyFilter()
	m.listTable.SetColumns(m.listColumns())
	m.listTable.SetRows(m.listRows())
}

func (m *PickModel) applyFilter() {
	m.matches = m.sess.Search(m.filterInput.Value())
	m.table.SetRows(m.pickRows())
	if m.table.Cursor() >= len(m.matches) {
		m.table.GotoTop()
	}
}

func (m *PickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case PickSelectState:
			return m.updateSelectState(msg)
		case PickQuantityState:
			return m.updateQuantityState(msg)
		case PickListState:
			return m.updateListState(msg)
		case PickExportState:
			return m.updateExportState(msg)
		case PickResultState:
			if msg.String() == "enter" || msg.String() == " " || msg.String() == "esc" {
				m.state = PickSelectState
				m.status = ""
				return m, nil
			}
		}

	case PickExportedMsg:
		m.result = msg.Result
		m.state = PickResultState
		return m, nil
	}

	return m, nil
}

func (m *PickModel) updateSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.filterFocused {
		switch msg.String() {
		case "esc", "enter":
			m.filterFocused = false
			m.filterInput.Blur()
			return m, nil
		}
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch msg.String() {
	case "/":
		m.filterFocused = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case " ":
		m.toggleStaged()
		return m, nil
	case "enter":
		return m.openQuantityPrompt()
	case "a":
		return m, m.commitStaged()
	case "v":
		m.listTable.SetColumns(m.listColumns())
		m.listTable.SetRows(m.listRows())
		m.state = PickListState
		return m, nil
	case "x":
		return m.openExportForm()
	case "c":
		m.sess.ClearPicks()
		m.status = "Pick list cleared"
		return m, nil
	case "esc", "q":
		return m, ChangeScreen(MenuScreen)
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// toggleStaged stages the highlighted product with quantity 1, or unstages
// it when already staged.
func (m *PickModel) toggleStaged() {
	product, ok := m.highlightedProduct()
	if !ok {
		return
	}
	if _, staged := m.staged[product]; staged {
		m.stage(product, 0)
	} else {
		m.stage(product, 1)
	}
	m.table.SetRows(m.pickRows())
}

func (m *PickModel) highlightedProduct() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.matches) {
		return "", false
	}
	return m.matches[idx][m.sess.ProductColumn], true
}

func (m *PickModel) stage(product string, qty int) {
	if qty <= 0 {
		if _, ok := m.staged[product]; ok {
			delete(m.staged, product)
			for i, p := range m.stagedOrder {
				if p == product {
					m.stagedOrder = append(m.stagedOrder[:i], m.stagedOrder[i+1:]...)
					break
				}
			}
		}
		return
	}
	if _, ok := m.staged[product]; !ok {
		m.stagedOrder = append(m.stagedOrder, product)
	}
	m.staged[product] = qty
}

func (m *PickModel) openQuantityPrompt() (tea.Model, tea.Cmd) {
	product, ok := m.highlightedProduct()
	if !ok {
		return m, nil
	}
	m.qtyProduct = product
	m.qtyErr = ""
	if qty, staged := m.staged[product]; staged {
		m.qtyInput.SetValue(strconv.Itoa(qty))
	} else {
		m.qtyInput.SetValue("1")
	}
	m.qtyInput.Focus()
	m.state = PickQuantityState
	return m, textinput.Blink
}

func (m *PickModel) updateQuantityState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.qtyInput.Blur()
		m.state = PickSelectState
		return m, nil
	case "enter":
		qty, err := strconv.Atoi(strings.TrimSpace(m.qtyInput.Value()))
		if err != nil || qty < 0 {
			m.qtyErr = "Quantity must be a non-negative whole number"
			return m, nil
		}
		m.stage(m.qtyProduct, qty)
		m.qtyInput.Blur()
		m.state = PickSelectState
		m.table.SetRows(m.pickRows())
		return m, nil
	}

	m.qtyInput, cmd = m.qtyInput.Update(msg)
	return m, cmd
}

// commitStaged moves the staged selection into the session pick list.
func (m *PickModel) commitStaged() tea.Cmd {
	if len(m.staged) == 0 {
		m.status = "Nothing staged; press Space or Enter on a product first"
		return nil
	}

	n := m.sess.AddPicks(m.stagedOrder, m.staged)
	m.status = fmt.Sprintf("Added %d product(s) • pick list now has %d entries", len(m.stagedOrder), n)
	m.staged = make(map[string]int)
	m.stagedOrder = nil
	m.table.SetRows(m.pickRows())
	return nil
}

func (m *PickModel) updateListState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc", "q", "v":
		m.state = PickSelectState
		return m, nil
	case "c":
		m.sess.ClearPicks()
		m.listTable.SetRows(m.listRows())
		m.status = "Pick list cleared"
		return m, nil
	case "x":
		return m.openExportForm()
	}

	m.listTable, cmd = m.listTable.Update(msg)
	return m, cmd
}

func (m *PickModel) openExportForm() (tea.Model, tea.Cmd) {
	if m.sess.Picks.Len() == 0 {
		m.status = "Pick list is empty; nothing to export"
		m.state = PickSelectState
		return m, nil
	}
	m.exportInput.SetValue(m.cfg.Export.Output)
	m.exportInput.Focus()
	m.state = PickExportState
	return m, textinput.Blink
}

func (m *PickModel) updateExportState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.exportInput.Blur()
		m.state = PickSelectState
		return m, nil
	case "enter":
		m.exportInput.Blur()
		return m, m.performExport()
	}

	m.exportInput, cmd = m.exportInput.Update(msg)
	return m, cmd
}

func (m *PickModel) performExport() tea.Cmd {
	path := strings.TrimSpace(m.exportInput.Value())
	if path == "" {
		path = m.cfg.Export.Output
	}
	entries := m.sess.Picks.Len()

	return func() tea.Msg {
		err := m.sess.ExportPickList(path)
		return PickExportedMsg{Result: PickExportResult{
			Path:    path,
			Entries: entries,
			Err:     err,
		}}
	}
}

func (m *PickModel) View() string {
	switch m.state {
	case PickSelectState:
		return m.renderSelect()
	case PickQuantityState:
		return m.renderQuantityPrompt()
	case PickListState:
		return m.renderList()
	case PickExportState:
		return m.renderExportForm()
	case PickResultState:
		return m.renderResult()
	}
	return ""
}

func (m *PickModel) renderSelect() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📝 Pick Products")

	filterStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
		Padding(0, 1)
	if m.filterFocused {
		filterStyle = filterStyle.BorderForeground(lipgloss.AdaptiveColor{Light: "#d33682", Dark: "#ff79c6"})
	}
	filterBar := filterStyle.Render(m.filterInput.View())

	info := statusStyle.Render(fmt.Sprintf("Showing %d of %d rows • %d staged • %d in pick list",
		len(m.matches), len(m.sess.Catalog.Records), len(m.staged), m.sess.Picks.Len()))

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	help := adaptiveHelpStyle.Render(
		"Space: Stage (qty 1) • Enter: Set quantity • /: Filter • a: Add staged • v: View list • x: Export • c: Clear • Esc: Menu")

	return lipgloss.JoinVertical(lipgloss.Left, title, filterBar, m.table.View(), info, status, help)
}

func (m *PickModel) renderQuantityPrompt() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📝 Set Quantity")

	body := labelStyle.Render("Quantity for "+m.qtyProduct+":") + "\n" + m.qtyInput.View()
	if m.qtyErr != "" {
		body += "\n\n" + warningStyle.Render(m.qtyErr)
	}
	form := adaptiveFormStyle.Render(body)

	help := adaptiveHelpStyle.Render("Enter: Confirm • 0: Unstage • Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, help)
}

func (m *PickModel) renderList() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📝 Pick List")

	info := statusStyle.Render(fmt.Sprintf("%d entries • total quantity %d",
		m.sess.Picks.Len(), m.sess.Picks.TotalQuantity()))

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	help := adaptiveHelpStyle.Render("x: Export • c: Clear • Esc: Back to picking")

	return lipgloss.JoinVertical(lipgloss.Left, title, m.listTable.View(), info, status, help)
}

func (m *PickModel) renderExportForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("💾 Export Pick List")

	form := adaptiveFormStyle.Render(
		labelStyle.Render("Output file:") + "\n" + m.exportInput.View(),
	)

	help := adaptiveHelpStyle.Render("Enter: Export • Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, form, help)
}

func (m *PickModel) renderResult() string {
	title := titleStyle.Render("💾 Export Complete")

	var status string
	if m.result.Err != nil {
		status = errorStyle.Render(fmt.Sprintf("❌ Export failed: %v", m.result.Err))
	} else {
		status = successStyle.Render(fmt.Sprintf("✅ Wrote %d entries to %s", m.result.Entries, m.result.Path))
	}

	help := helpStyle.Render("Enter: Back to picking")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, help)
}
