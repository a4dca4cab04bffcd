package tui

import (
	"fmt"
	"strings"

	"swimtracker/internal/service"
	"swimtracker/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RecordsModel is the personal records screen model
type RecordsModel struct {
	queryService *service.QueryService
	units        Units
	data         *service.RecordsData
	loading      bool
	err          error
}

// NewRecordsModel creates a new records model
func NewRecordsModel(qs *service.QueryService, units Units) RecordsModel {
	return RecordsModel{
		queryService: qs,
		units:        units,
		loading:      true,
	}
}

// Init initializes the records screen
func (m RecordsModel) Init() tea.Cmd {
	return m.loadRecords
}

type recordsLoadedMsg struct {
	data *service.RecordsData
	err  error
}

func (m RecordsModel) loadRecords() tea.Msg {
	data, err := m.queryService.RecordsAndMilestones()
	return recordsLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadRecords
		}
	}
	return m, nil
}

// View renders the records screen
func (m RecordsModel) View() string {
	if m.loading {
		return "\n  Loading records..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || m.data.TotalSessions == 0 {
		return "\n  No sessions yet. Import a session log to get started."
	}

	var sections []string
	sections = append(sections, m.renderRecordsCard())
	sections = append(sections, m.renderMilestonesCard())

	totals := statusStyle.Render(fmt.Sprintf("Lifetime: %d sessions, %s swum",
		m.data.TotalSessions, m.units.FormatDistance(m.data.TotalDistance)))
	sections = append(sections, totals)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m RecordsModel) renderRecordsCard() string {
	title := cardTitleStyle.Render("Personal Records")

	var lines []string
	lines = append(lines, m.recordLine("Fastest pace", m.data.Records.FastestPace, func(s *store.Session) string {
		return m.units.FormatPaceWithUnit(s.Pace)
	}))
	lines = append(lines, m.recordLine("Longest swim", m.data.Records.LongestDistance, func(s *store.Session) string {
		return m.units.FormatDistance(s.Distance)
	}))
	lines = append(lines, m.recordLine("Best SWOLF", m.data.Records.BestSwolf, func(s *store.Session) string {
		return m.units.FormatSwolf(s.Swolf)
	}))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m RecordsModel) recordLine(label string, s *store.Session, value func(*store.Session) string) string {
	if s == nil {
		return RenderMetric(label, "-", "")
	}
	date := helpDescStyle.Render("  " + s.StartTimeLocal.Format("Jan 02, 2006"))
	return RenderMetric(label, value(s), "") + date
}

func (m RecordsModel) renderMilestonesCard() string {
	title := cardTitleStyle.Render("Next Milestones")

	if len(m.data.Milestones) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No milestones yet"))
	}

	var lines []string
	for _, ms := range m.data.Milestones {
		label := milestoneLabel(ms.Metric)
		target := m.formatMilestoneValue(ms.Metric, ms.Target)
		current := m.formatMilestoneValue(ms.Metric, ms.Current)

		lines = append(lines, fmt.Sprintf("%s  %s → %s",
			metricLabelStyle.Render(label), current, target))
		lines = append(lines, fmt.Sprintf("%s %s",
			RenderProgressBar(float64(ms.Progress)/100, 30),
			helpDescStyle.Render(fmt.Sprintf("%d%%", ms.Progress))))
		lines = append(lines, "")
	}
	lines = lines[:len(lines)-1]

	content := strings.Join(lines, "\n")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func milestoneLabel(metric string) string {
	switch metric {
	case "pace":
		return "Pace"
	case "distance":
		return "Session distance"
	case "swolf":
		return "SWOLF"
	case "total-distance":
		return "Total distance"
	}
	return metric
}

// formatMilestoneValue renders a milestone value in its metric's
// display unit: seconds per 100m for pace, km for distances, points
// for SWOLF.
func (m RecordsModel) formatMilestoneValue(metric string, v float64) string {
	switch metric {
	case "pace":
		return fmt.Sprintf("%d:%02d/100m", int(v)/60, int(v)%60)
	case "distance", "total-distance":
		return fmt.Sprintf("%.1f km", v)
	case "swolf":
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
