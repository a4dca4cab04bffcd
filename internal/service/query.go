package service

import (
	"fmt"
	"time"

	"swimtracker/internal/analysis"
	"swimtracker/internal/config"
	"swimtracker/internal/store"
)

// QueryService provides read-only queries for the TUI
type QueryService struct {
	store *store.DB
	cfg   *config.Config
	now   func() time.Time
}

// NewQueryService creates a new query service
func NewQueryService(db *store.DB, cfg *config.Config) *QueryService {
	return &QueryService{store: db, cfg: cfg, now: time.Now}
}

// Config returns the configuration the service was built with
func (q *QueryService) Config() *config.Config {
	return q.cfg
}

// Sessions returns the full session history, newest first
func (q *QueryService) Sessions() ([]store.Session, error) {
	sessions, err := q.store.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	return sessions, nil
}

// Insights builds the deep analysis bundle for the most recent session.
// With no sessions at all it returns analysis.ErrNoSession.
func (q *QueryService) Insights() (*analysis.DeepAnalysis, error) {
	sessions, err := q.Sessions()
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, analysis.ErrNoSession
	}
	return analysis.Analyze(sessions, &sessions[0], q.now())
}

// SessionInsights builds the deep analysis bundle for one session by id
func (q *QueryService) SessionInsights(id string) (*analysis.DeepAnalysis, error) {
	sessions, err := q.Sessions()
	if err != nil {
		return nil, err
	}
	target, err := q.store.GetSession(id)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return analysis.Analyze(sessions, target, q.now())
}
