package tui

import (
	"fmt"

	"swimtracker/internal/analysis"
	"swimtracker/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	units        Units
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, units Units) DashboardModel {
	return DashboardModel{
		queryService: qs,
		units:        units,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.Dashboard()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || m.data.TotalSessions == 0 {
		return "\n  No sessions yet. Import a session log to get started."
	}

	var sections []string

	weekCard := m.renderWeekCard()
	trainingCard := m.renderTrainingCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, weekCard, "  ", trainingCard)
	sections = append(sections, topRow)

	if m.data.TotalSessions > 2 {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderRecentSessions())

	help := statusStyle.Render("Press 'r' to refresh, '2' for sessions, '3' for insights")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week")

	lines := []string{
		RenderMetric("Swims", fmt.Sprintf("%d", m.data.WeekSwimCount), ""),
		RenderMetric("Distance", m.units.FormatDistance(m.data.WeekDistance), ""),
		RenderMetric("Time", m.units.FormatDuration(m.data.WeekDuration), ""),
		RenderMetric("Avg Pace", m.units.FormatPaceWithUnit(m.data.WeekAvgPace), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderTrainingCard() string {
	title := cardTitleStyle.Render("Training Direction")

	lines := []string{
		RenderMetric("Momentum", m.data.Momentum.Trend, trendArrow(m.data.Momentum.Trend, m.data.Momentum.Score)),
		RenderMetric("Streak", fmt.Sprintf("%d weeks", m.data.Streak.Current), ""),
		RenderMetric("Longest streak", fmt.Sprintf("%d weeks", m.data.Streak.Longest), ""),
		RenderMetric("Progress", m.data.Progress.Status, trendArrow(m.data.Progress.Status, m.data.Progress.Score)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

// trendArrow maps a classified trend onto the arrow shown beside it
func trendArrow(trend string, score int) string {
	switch trend {
	case analysis.TrendImproving, "up":
		return fmt.Sprintf("↑ %+d%%", score)
	case analysis.TrendDeclining, "down":
		return fmt.Sprintf("↓ %+d%%", score)
	case analysis.TrendStable, "steady":
		return fmt.Sprintf("%+d%%", score)
	}
	return ""
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Weekly Distance (%s, last %d weeks)", m.units.DistanceLabel(), service.ChartWeeks))

	graph := asciigraph.Plot(m.units.ChartDistances(m.data.WeeklyDistance),
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
	)

	first := m.data.WeekLabels[0]
	last := m.data.WeekLabels[len(m.data.WeekLabels)-1]
	axis := statusStyle.Render(fmt.Sprintf("%s%*s", first, 60-len(first), last))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, axis))
}

func (m DashboardModel) renderRecentSessions() string {
	title := cardTitleStyle.Render("Recent Sessions")

	if len(m.data.RecentSessions) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No sessions yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-20s  %8s  %7s  %6s",
		"Date", "Name", "Distance", "Pace", "SWOLF"))

	rows := []string{header}
	for _, s := range m.data.RecentSessions {
		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-20s  %8s  %7s  %6s",
			s.StartTimeLocal.Format("Jan 02"),
			truncateName(s.Name, 20),
			m.units.FormatDistance(s.Distance),
			m.units.FormatPace(s.Pace),
			m.units.FormatSwolf(s.Swolf),
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

// truncateName shortens a session name to max runes. Byte slicing
// would split multi-byte characters in user-supplied names.
func truncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
