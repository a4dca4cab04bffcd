package tui

import (
	"swimtracker/internal/service"
	"swimtracker/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenSessions
	ScreenInsights
	ScreenRecords
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard DashboardModel
	sessions  SessionsModel
	insights  InsightsModel
	records   RecordsModel
	help      HelpModel

	// Services
	db           *store.DB
	queryService *service.QueryService
	units        Units

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(db *store.DB, queryService *service.QueryService) *App {
	units := NewUnits(queryService.Config().Display)
	return &App{
		screen:       ScreenDashboard,
		db:           db,
		queryService: queryService,
		units:        units,
		dashboard:    NewDashboardModel(queryService, units),
		sessions:     NewSessionsModel(queryService, units),
		insights:     NewInsightsModel(queryService, units, 0, 0),
		records:      NewRecordsModel(queryService, units),
		help:         NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenDashboard
			a.dashboard = NewDashboardModel(a.queryService, a.units)
			return a, a.dashboard.Init()
		case "2":
			a.screen = ScreenSessions
			return a, a.sessions.Init()
		case "3":
			a.screen = ScreenInsights
			a.insights = NewInsightsModel(a.queryService, a.units, a.width, a.height)
			return a, a.insights.Init()
		case "4":
			a.screen = ScreenRecords
			return a, a.records.Init()
		case "?":
			a.prevScreen = a.screen
			a.screen = ScreenHelp
			return a, nil
		case "esc":
			switch a.screen {
			case ScreenHelp:
				a.screen = a.prevScreen
				return a, nil
			case ScreenInsights:
				a.screen = ScreenSessions
				return a, a.sessions.Init()
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case OpenSessionInsightsMsg:
		// Drill into one session from the sessions list
		a.screen = ScreenInsights
		a.insights = NewInsightsModel(a.queryService, a.units, a.width, a.height)
		a.insights.sessionID = msg.SessionID
		return a, a.insights.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenSessions:
		var m tea.Model
		m, cmd = a.sessions.Update(msg)
		a.sessions = m.(SessionsModel)
	case ScreenInsights:
		var m tea.Model
		m, cmd = a.insights.Update(msg)
		a.insights = m.(InsightsModel)
	case ScreenRecords:
		var m tea.Model
		m, cmd = a.records.Update(msg)
		a.records = m.(RecordsModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenSessions:
		content = a.sessions.View()
	case ScreenInsights:
		content = a.insights.View()
	case ScreenRecords:
		content = a.records.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Swim Performance Tracker")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Sessions", ScreenSessions},
		{"3", "Insights", ScreenInsights},
		{"4", "Records", ScreenRecords},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

// OpenSessionInsightsMsg asks for the insights screen for one session
type OpenSessionInsightsMsg struct {
	SessionID string
}
