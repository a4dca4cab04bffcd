package tui

import (
	"errors"
	"fmt"
	"strings"

	"swimtracker/internal/analysis"
	"swimtracker/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InsightsModel is the deep-analysis screen model. With an empty
// sessionID it analyzes the most recent session.
type InsightsModel struct {
	queryService *service.QueryService
	units        Units
	sessionID    string
	deep         *analysis.DeepAnalysis
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewInsightsModel creates a new insights model
func NewInsightsModel(qs *service.QueryService, units Units, width, height int) InsightsModel {
	m := InsightsModel{
		queryService: qs,
		units:        units,
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the insights screen
func (m InsightsModel) Init() tea.Cmd {
	return m.loadInsights
}

type insightsLoadedMsg struct {
	deep *analysis.DeepAnalysis
	err  error
}

func (m InsightsModel) loadInsights() tea.Msg {
	var deep *analysis.DeepAnalysis
	var err error
	if m.sessionID != "" {
		deep, err = m.queryService.SessionInsights(m.sessionID)
	} else {
		deep, err = m.queryService.Insights()
	}
	return insightsLoadedMsg{deep: deep, err: err}
}

// Update handles messages
func (m InsightsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.deep = msg.deep
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.deep != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadInsights
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the insights screen
func (m InsightsModel) View() string {
	if m.loading {
		return "\n  Analyzing session..."
	}

	if m.err != nil {
		if errors.Is(m.err, analysis.ErrNoSession) {
			return "\n  No sessions to analyze yet. Import a session log to get started."
		}
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh  esc: back to sessions")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m InsightsModel) renderContent() string {
	if m.deep == nil {
		return ""
	}

	var sections []string

	s := m.deep.Session
	sections = append(sections, "")
	sections = append(sections, cardTitleStyle.Render(fmt.Sprintf("Session Analysis: %s (%s)",
		s.Name, s.StartTimeLocal.Format("Mon Jan 02, 15:04"))))

	summary := fmt.Sprintf("  %s in %s, pace %s",
		m.units.FormatDistance(s.Distance),
		m.units.FormatDuration(s.Duration),
		m.units.FormatPaceWithUnit(s.Pace),
	)
	if s.HasValidSwolf() {
		summary += fmt.Sprintf(", SWOLF %s", m.units.FormatSwolf(s.Swolf))
	}
	sections = append(sections, statusStyle.Render(summary))
	sections = append(sections, "")

	sections = append(sections, m.renderPacingSection())
	sections = append(sections, m.renderComparisonsSection())
	sections = append(sections, m.renderPatternsSection())
	sections = append(sections, m.renderRecommendationsSection())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m InsightsModel) renderPacingSection() string {
	var lines []string
	lines = append(lines, RenderSectionHeader("Pacing"))

	if m.deep.Pacing == nil {
		lines = append(lines, helpDescStyle.Render("  No lap data recorded for this session."))
		lines = append(lines, "")
		return strings.Join(lines, "\n")
	}

	p := m.deep.Pacing
	lines = append(lines, "  "+RenderMetric("Strategy", describeStrategy(p.Strategy), ""))
	if p.Strategy != analysis.PacingUnknown {
		lines = append(lines, "  "+RenderMetric("Consistency", fmt.Sprintf("%d/100", p.Consistency), ""))
		lines = append(lines, "  "+RenderMetric("Variation", fmt.Sprintf("%.1f%%", p.Variation), ""))
		lines = append(lines, "  "+RenderMetric("Split change", fmt.Sprintf("%+.1f%%", p.PaceChange), ""))
	}

	if f := m.deep.Fatigue; f != nil {
		lines = append(lines, "")
		fatigueLine := fmt.Sprintf("  Fatigue: %s (%.1f%% over baseline, %d fading laps)",
			f.Description, f.Index, f.FadingLaps)
		lines = append(lines, fatigueStyle(f.Index).Render(fatigueLine))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func describeStrategy(strategy string) string {
	switch strategy {
	case analysis.PacingEven:
		return "even splits"
	case analysis.PacingNegative:
		return "negative split (finishing faster)"
	case analysis.PacingPositive:
		return "positive split (fading)"
	case analysis.PacingErratic:
		return "erratic"
	}
	return "unknown"
}

func (m InsightsModel) renderComparisonsSection() string {
	var lines []string
	lines = append(lines, RenderSectionHeader("How This Swim Compares"))

	any := false
	if c := m.deep.VsRecent; c != nil {
		lines = append(lines, "  "+renderComparison("vs recent average", m.units.FormatPace(c.ReferencePace), c.Diff))
		any = true
	}
	if c := m.deep.VsBest; c != nil {
		lines = append(lines, "  "+renderComparison("vs personal best", m.units.FormatPace(c.ReferencePace), c.Diff))
		any = true
	}
	if c := m.deep.VsSimilar; c != nil {
		lines = append(lines, "  "+renderComparison("vs similar distance", m.units.FormatPace(c.ReferencePace), c.Diff))
		any = true
	}
	if p := m.deep.PacePercentile; p != nil {
		lines = append(lines, "  "+RenderMetric("Percentile", fmt.Sprintf("faster than %d%% of swims", *p), ""))
		any = true
	}
	if d := m.deep.DaysSinceLast; d != nil {
		lines = append(lines, "  "+RenderMetric("Rest before", fmt.Sprintf("%d days", *d), ""))
		any = true
	}

	if !any {
		lines = append(lines, helpDescStyle.Render("  Not enough history to compare against yet."))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func renderComparison(label, refPace string, diff int) string {
	var diffText string
	switch {
	case diff > 0:
		diffText = fmt.Sprintf("↑ %d%% faster", diff)
	case diff < 0:
		diffText = fmt.Sprintf("↓ %d%% slower", -diff)
	default:
		diffText = "on par"
	}
	return RenderMetric(label, refPace, diffText)
}

func (m InsightsModel) renderPatternsSection() string {
	var lines []string
	lines = append(lines, RenderSectionHeader("Patterns"))

	pat := m.deep.Patterns
	if pat == nil {
		lines = append(lines, helpDescStyle.Render("  Patterns appear after five swims with pace data."))
		lines = append(lines, "")
		return strings.Join(lines, "\n")
	}

	if pat.BestDay != "" {
		lines = append(lines, "  "+RenderMetric("Best day", pat.BestDay, ""))
	}
	if pat.BestTime != "" {
		lines = append(lines, "  "+RenderMetric("Best time", pat.BestTime, ""))
	}

	streak := m.deep.Streak
	lines = append(lines, "  "+RenderMetric("Streak", fmt.Sprintf("%d weeks (longest %d)", streak.Current, streak.Longest), ""))

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m InsightsModel) renderRecommendationsSection() string {
	var lines []string
	lines = append(lines, RenderSectionHeader("Recommendations"))

	for _, rec := range m.deep.Recommendations {
		title := fmt.Sprintf("  %s %s", priorityBadge(rec.Priority), rec.Title)
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(title))
		lines = append(lines, helpDescStyle.Render("    "+rec.Message))
		if rec.Action != "" {
			lines = append(lines, helpDescStyle.Render("    → "+rec.Action))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
