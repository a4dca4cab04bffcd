package analysis

import (
	"math"
	"time"

	"swimtracker/internal/store"
)

// Momentum windows: the last two weeks measured against the four
// weeks before them.
const (
	momentumRecentDays  = 14
	momentumCompareDays = 28
)

// Momentum blend weights. Frequency change carries the most signal;
// volume and pace split the rest.
const (
	momentumFrequencyWeight = 0.4
	momentumVolumeWeight    = 0.3
	momentumPaceWeight      = 0.3
)

// MomentumBreakdown carries the per-metric change percentages behind
// the blended score. Pace change is already inverted (positive means
// swimming faster).
type MomentumBreakdown struct {
	Frequency int
	Volume    int
	Pace      int
}

// Momentum is the weighted two-window comparison of training activity.
// Trend is "insufficient-data" unless both windows contain a session.
type Momentum struct {
	Trend     string // up | down | steady | insufficient-data
	Score     int
	Breakdown MomentumBreakdown
}

// windowStats summarizes one momentum window.
type windowStats struct {
	count     int
	frequency float64 // sessions per week
	distance  float64 // mean meters
	pace      float64 // mean valid pace, 0 if none
}

// ComputeMomentum compares the last 14 days against the 28 days before
// them. All time arithmetic hangs off the supplied now.
func ComputeMomentum(sessions []store.Session, now time.Time) Momentum {
	recentStart := now.AddDate(0, 0, -momentumRecentDays)
	compareStart := recentStart.AddDate(0, 0, -momentumCompareDays)

	var recent, compare []store.Session
	for _, s := range sessions {
		switch {
		case s.StartTime.After(now):
			// Clock skew in the log; ignore future entries.
		case s.StartTime.After(recentStart):
			recent = append(recent, s)
		case s.StartTime.After(compareStart):
			compare = append(compare, s)
		}
	}

	if len(recent) == 0 || len(compare) == 0 {
		return Momentum{Trend: StatusInsufficientData}
	}

	r := statsForWindow(recent)
	c := statsForWindow(compare)

	freqChange := percentChange(r.frequency, c.frequency)
	volumeChange := percentChange(r.distance, c.distance)
	paceChange := 0.0
	if c.pace > 0 && r.pace > 0 {
		// Inverted: a pace drop is an improvement.
		paceChange = (c.pace - r.pace) / c.pace * 100
	}

	score := momentumFrequencyWeight*freqChange +
		momentumVolumeWeight*volumeChange +
		momentumPaceWeight*paceChange

	m := Momentum{
		Score: int(math.Round(score)),
		Breakdown: MomentumBreakdown{
			Frequency: int(math.Round(freqChange)),
			Volume:    int(math.Round(volumeChange)),
			Pace:      int(math.Round(paceChange)),
		},
	}
	switch {
	case score > 10:
		m.Trend = DirectionUp
	case score < -10:
		m.Trend = DirectionDown
	default:
		m.Trend = DirectionSteady
	}
	return m
}

func statsForWindow(sessions []store.Session) windowStats {
	stats := windowStats{count: len(sessions)}

	first := sessions[0].StartTime
	last := sessions[0].StartTime
	var distSum float64
	for _, s := range sessions {
		if s.StartTime.Before(first) {
			first = s.StartTime
		}
		if s.StartTime.After(last) {
			last = s.StartTime
		}
		distSum += s.Distance
	}

	// Span floored at one day so a single-session window never
	// divides by zero.
	spanDays := last.Sub(first).Hours() / 24
	if spanDays < 1 {
		spanDays = 1
	}
	stats.frequency = float64(stats.count) / (spanDays / 7)
	stats.distance = distSum / float64(stats.count)
	stats.pace = meanValid(sessions, func(s store.Session) float64 { return s.Pace })

	return stats
}

func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
