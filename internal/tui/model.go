package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"stockpick/internal/catalog"
	"stockpick/internal/config"
	"stockpick/internal/session"
)

type Screen int

const (
	MenuScreen Screen = iota
	BrowseScreen
	SearchScreen
	PickScreen
	SettingsScreen
)

type Model struct {
	cfg       *config.Config
	cache     *catalog.Cache
	log       *zap.Logger
	path      string
	delimiter rune

	// Populated once the catalog load completes.
	sess          *session.Session
	menuModel     *MenuModel
	browseModel   *BrowseModel
	searchModel   *SearchModel
	pickModel     *PickModel
	settingsModel *SettingsModel

	currentScreen Screen
	loading       spinner.Model
	err           error
	fatalErr      error
	quitting      bool
	width         int
	height        int
}

func NewModel(cfg *config.Config, cache *catalog.Cache, logger *zap.Logger, path string, delimiter rune) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		cfg:           cfg,
		cache:         cache,
		log:           logger,
		path:          path,
		delimiter:     delimiter,
		currentScreen: MenuScreen,
		loading:       sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loading.Tick, m.loadCatalog())
}

// loadCatalog reads the catalog off the Update loop so the spinner keeps
// moving on large files.
func (m Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		cat, err := m.cache.Load(m.path, m.delimiter)
		if err != nil {
			return CatalogFailedMsg{Err: err}
		}
		return CatalogLoadedMsg{Catalog: cat}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.setSizes()
		return m, nil

	case spinner.TickMsg:
		if m.sess == nil && m.fatalErr == nil {
			m.loading, cmd = m.loading.Update(msg)
			return m, cmd
		}
		return m, nil

	case CatalogLoadedMsg:
		sess, err := session.New(msg.Catalog, m.cfg, m.log)
		if err != nil {
			m.fatalErr = err
			return m, nil
		}
		m.sess = sess
		m.menuModel = NewMenuModel(sess)
		m.browseModel = NewBrowseModel(sess)
		m.searchModel = NewSearchModel(sess)
		m.pickModel = NewPickModel(sess, m.cfg)
		m.settingsModel = NewSettingsModel(sess)
		m.setSizes()
		return m, textinput.Blink

	case CatalogFailedMsg:
		m.fatalErr = msg.Err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.fatalErr != nil {
			// Any key exits the fatal error screen.
			m.quitting = true
			return m, tea.Quit
		}
		if m.sess == nil {
			// Still loading.
			return m, nil
		}

	case ScreenChangeMsg:
		m.err = nil
		m.currentScreen = msg.Screen
		// Column assignments or the pick list may have changed while the
		// target screen was out of sight.
		switch msg.Screen {
		case BrowseScreen:
			m.browseModel.Refresh()
		case SearchScreen:
			m.searchModel.Refresh()
		case PickScreen:
			m.pickModel.Refresh()
		case SettingsScreen:
			m.settingsModel.Refresh()
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	if m.sess == nil {
		return m, nil
	}

	switch m.currentScreen {
	case MenuScreen:
		newMenuModel, cmd := m.menuModel.Update(msg)
		m.menuModel = newMenuModel.(*MenuModel)
		return m, cmd
	case BrowseScreen:
		newBrowseModel, cmd := m.browseModel.Update(msg)
		m.browseModel = newBrowseModel.(*BrowseModel)
		return m, cmd
	case SearchScreen:
		newSearchModel, cmd := m.searchModel.Update(msg)
		m.searchModel = newSearchModel.(*SearchModel)
		return m, cmd
	case PickScreen:
		newPickModel, cmd := m.pickModel.Update(msg)
		m.pickModel = newPickModel.(*PickModel)
		return m, cmd
	case SettingsScreen:
		newSettingsModel, cmd := m.settingsModel.Update(msg)
		m.settingsModel = newSettingsModel.(*SettingsModel)
		return m, cmd
	}

	return m, cmd
}

func (m *Model) setSizes() {
	if m.width == 0 || m.sess == nil {
		return
	}
	m.menuModel.SetSize(m.width, m.height)
	m.browseModel.SetSize(m.width, m.height)
	m.searchModel.SetSize(m.width, m.height)
	m.pickModel.SetSize(m.width, m.height)
	m.settingsModel.SetSize(m.width, m.height)
}

func (m Model) View() string {
	if m.quitting {
		return "Thanks for using stockpick! 👋\n"
	}

	if m.fatalErr != nil {
		return m.renderFatal()
	}

	if m.sess == nil {
		content := fmt.Sprintf("%s Loading catalog %s...", m.loading.View(), m.path)
		if m.width > 0 {
			content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
		}
		return content
	}

	var content string
	switch m.currentScreen {
	case MenuScreen:
		content = m.menuModel.View()
	case BrowseScreen:
		content = m.browseModel.View()
	case SearchScreen:
		content = m.searchModel.View()
	case PickScreen:
		content = m.pickModel.View()
	case SettingsScreen:
		content = m.settingsModel.View()
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Margin(1, 0)
		content += errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return content
}

func (m Model) renderFatal() string {
	title := titleStyle.Render("⛔ Cannot start")
	body := errorStyle.Render(fmt.Sprintf("Error: %v", m.fatalErr))
	help := helpStyle.Render("Press any key to exit")

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, help)
	if m.width > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

type ScreenChangeMsg struct {
	Screen Screen
}

type ErrorMsg struct {
	Err error
}

type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
}

type CatalogFailedMsg struct {
	Err error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
