package service

import (
	"swimtracker/internal/analysis"
)

// RecordsData bundles personal bests and upcoming milestones
type RecordsData struct {
	Records    analysis.Records
	Milestones []analysis.Milestone

	// Lifetime context shown next to the records
	TotalSessions int
	TotalDistance float64 // meters
}

// RecordsAndMilestones fetches personal bests and the milestones
// closest to being reached
func (q *QueryService) RecordsAndMilestones() (*RecordsData, error) {
	sessions, err := q.Sessions()
	if err != nil {
		return nil, err
	}

	data := &RecordsData{
		Records:       analysis.FindRecords(sessions),
		Milestones:    analysis.NextMilestones(sessions),
		TotalSessions: len(sessions),
	}
	for _, s := range sessions {
		data.TotalDistance += s.Distance
	}
	return data, nil
}
