package tui

import (
	"fmt"

	"swimtracker/internal/service"
	"swimtracker/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// SessionsModel is the session list screen model
type SessionsModel struct {
	queryService *service.QueryService
	units        Units
	sessions     []store.Session
	cursor       int
	offset       int
	pageSize     int
	loading      bool
	err          error
}

// NewSessionsModel creates a new sessions model
func NewSessionsModel(qs *service.QueryService, units Units) SessionsModel {
	return SessionsModel{
		queryService: qs,
		units:        units,
		pageSize:     15,
		loading:      true,
	}
}

// Init initializes the sessions screen
func (m SessionsModel) Init() tea.Cmd {
	return m.loadSessions
}

type sessionsLoadedMsg struct {
	sessions []store.Session
	err      error
}

func (m SessionsModel) loadSessions() tea.Msg {
	sessions, err := m.queryService.Sessions()
	return sessionsLoadedMsg{sessions: sessions, err: err}
}

// Update handles messages
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.sessions = msg.sessions
		if m.cursor >= len(m.sessions) {
			m.cursor = 0
			m.offset = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.pageSize {
					m.offset = m.cursor - m.pageSize + 1
				}
			}
		case "pgup":
			m.cursor -= m.pageSize
			if m.cursor < 0 {
				m.cursor = 0
			}
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		case "pgdown":
			m.cursor += m.pageSize
			if m.cursor > len(m.sessions)-1 {
				m.cursor = len(m.sessions) - 1
			}
			if m.cursor >= m.offset+m.pageSize {
				m.offset = m.cursor - m.pageSize + 1
			}
		case "r":
			m.loading = true
			return m, m.loadSessions
		case "enter":
			if len(m.sessions) > 0 && m.cursor < len(m.sessions) {
				sessionID := m.sessions[m.cursor].ID
				return m, func() tea.Msg {
					return OpenSessionInsightsMsg{SessionID: sessionID}
				}
			}
		}
	}
	return m, nil
}

// View renders the session list
func (m SessionsModel) View() string {
	if m.loading {
		return "\n  Loading sessions..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.sessions) == 0 {
		return "\n  No sessions found. Import a session log to get started."
	}

	var sections []string

	end := m.offset + m.pageSize
	if end > len(m.sessions) {
		end = len(m.sessions)
	}
	visible := m.sessions[m.offset:end]

	title := cardTitleStyle.Render(fmt.Sprintf("Sessions (%d-%d of %d)", m.offset+1, end, len(m.sessions)))
	sections = append(sections, title)

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-14s  %-18s  %8s  %6s  %7s  %6s",
		"When", "Name", "Distance", "Time", "Pace", "SWOLF"))
	sections = append(sections, header)

	for i, s := range visible {
		cursor := "  "
		if m.offset+i == m.cursor {
			cursor = "> "
		}

		row := fmt.Sprintf("%s%-14s  %-18s  %8s  %6s  %7s  %6s",
			cursor,
			humanize.Time(s.StartTime),
			truncateName(s.Name, 18),
			m.units.FormatDistance(s.Distance),
			m.units.FormatDuration(s.Duration),
			m.units.FormatPace(s.Pace),
			m.units.FormatSwolf(s.Swolf),
		)

		if m.offset+i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	help := statusStyle.Render("\n  enter: analyze session  j/k: navigate  pgup/pgdn: page  r: refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
