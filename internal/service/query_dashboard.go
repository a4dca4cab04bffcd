package service

import (
	"time"

	"swimtracker/internal/analysis"
	"swimtracker/internal/store"
)

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// This week (Monday start)
	WeekSwimCount int
	WeekDistance  float64 // meters
	WeekDuration  float64 // minutes
	WeekAvgPace   float64 // min/100m, 0 when unknown

	// Training direction
	Momentum analysis.Momentum
	Streak   analysis.Streak
	Progress analysis.Progress

	// Recent sessions
	RecentSessions []store.Session

	// Lifetime totals
	TotalSessions int
	TotalDistance float64 // meters

	// For charts: one slot per week, oldest first
	WeeklyDistance []float64 // meters
	WeeklyPace     []float64 // min/100m, 0 for idle weeks
	WeekLabels     []string  // e.g. "Jan 06"
}

// Dashboard fetches all data needed for the dashboard
func (q *QueryService) Dashboard() (*DashboardData, error) {
	sessions, err := q.Sessions()
	if err != nil {
		return nil, err
	}
	now := q.now()

	data := &DashboardData{
		Momentum:      analysis.ComputeMomentum(sessions, now),
		Streak:        analysis.ComputeStreak(sessions, now),
		Progress:      analysis.AnalyzeProgress(sessions),
		TotalSessions: len(sessions),
	}

	for _, s := range sessions {
		data.TotalDistance += s.Distance
	}

	if len(sessions) > RecentSessionsShown {
		data.RecentSessions = sessions[:RecentSessionsShown]
	} else {
		data.RecentSessions = sessions
	}

	data.WeekSwimCount, data.WeekDistance, data.WeekDuration, data.WeekAvgPace = weekStats(sessions, now)
	data.WeeklyDistance, data.WeeklyPace, data.WeekLabels = buildWeeklyCharts(sessions, now)

	return data, nil
}

// weekStats sums the current calendar week, Monday start
func weekStats(sessions []store.Session, now time.Time) (count int, distance, duration, avgPace float64) {
	weekStart := analysis.WeekStart(now)

	var paceSum float64
	var paceCount int
	for _, s := range sessions {
		if s.StartTimeLocal.Before(weekStart) || s.StartTime.After(now) {
			continue
		}
		count++
		distance += s.Distance
		duration += s.Duration
		if s.HasValidPace() {
			paceSum += s.Pace
			paceCount++
		}
	}

	if paceCount > 0 {
		avgPace = paceSum / float64(paceCount)
	}
	return
}

// buildWeeklyCharts maps the weekly aggregates onto a fixed window of
// trailing weeks ending at the current one. Idle weeks keep zero slots
// so the distance chart shows gaps honestly.
func buildWeeklyCharts(sessions []store.Session, now time.Time) (distance, pace []float64, labels []string) {
	currentWeek := analysis.WeekStart(now)

	distance = make([]float64, ChartWeeks)
	pace = make([]float64, ChartWeeks)
	labels = make([]string, ChartWeeks)

	weekStarts := make([]time.Time, ChartWeeks)
	for i := 0; i < ChartWeeks; i++ {
		weekStarts[i] = currentWeek.AddDate(0, 0, -7*(ChartWeeks-1-i))
		labels[i] = weekStarts[i].Format("Jan 02")
	}

	// Bucket keys may carry a different location than now, so match
	// with Equal rather than map lookup.
	for _, b := range analysis.GroupByWeek(sessions) {
		for i, ws := range weekStarts {
			if b.Key.Equal(ws) {
				distance[i] = b.TotalDistance
				pace[i] = b.AvgPace
				break
			}
		}
	}
	return
}
