package analysis

import (
	"math"
	"sort"

	"swimtracker/internal/store"
)

// Records holds the best-ever session per metric. Entries stay nil
// when no session carries a valid value for the metric.
type Records struct {
	FastestPace     *store.Session
	LongestDistance *store.Session
	BestSwolf       *store.Session
}

// Milestone is the next round-number target beyond a current best,
// with progress through the current band.
type Milestone struct {
	Metric   string  // "pace", "distance", "swolf", "total-distance"
	Current  float64 // current best in the metric's display unit
	Target   float64 // next round-number value
	Progress int     // 0-100 through the band toward the target
}

// Milestone step sizes and how many milestones surface at once.
const (
	paceStepSeconds   = 5.0  // seconds per 100m
	distanceStepKm    = 0.5  // single-session km
	swolfStep         = 5.0  // points
	totalDistanceStep = 10.0 // cumulative km
	maxMilestones     = 3
)

// FindRecords reduces the full history to its personal bests. Sessions
// with an invalid value for a metric never count toward that record.
func FindRecords(sessions []store.Session) Records {
	var r Records
	for i := range sessions {
		s := &sessions[i]
		if s.Pace > 0 && (r.FastestPace == nil || s.Pace < r.FastestPace.Pace) {
			r.FastestPace = s
		}
		if s.Distance > 0 && (r.LongestDistance == nil || s.Distance > r.LongestDistance.Distance) {
			r.LongestDistance = s
		}
		if s.Swolf > 0 && (r.BestSwolf == nil || s.Swolf < r.BestSwolf.Swolf) {
			r.BestSwolf = s
		}
	}
	return r
}

// NextMilestones computes the next round-number target per metric and
// keeps the three closest to completion.
func NextMilestones(sessions []store.Session) []Milestone {
	records := FindRecords(sessions)

	var milestones []Milestone

	if records.FastestPace != nil {
		paceSeconds := records.FastestPace.Pace * 60
		if m, ok := milestoneDown("pace", paceSeconds, paceStepSeconds); ok {
			milestones = append(milestones, m)
		}
	}

	if records.LongestDistance != nil {
		km := records.LongestDistance.Distance / 1000
		milestones = append(milestones, milestoneUp("distance", km, distanceStepKm))
	}

	if records.BestSwolf != nil {
		if m, ok := milestoneDown("swolf", records.BestSwolf.Swolf, swolfStep); ok {
			milestones = append(milestones, m)
		}
	}

	var totalKm float64
	for _, s := range sessions {
		totalKm += s.Distance / 1000
	}
	if totalKm > 0 {
		milestones = append(milestones, milestoneUp("total-distance", totalKm, totalDistanceStep))
	}

	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].Progress > milestones[j].Progress
	})
	if len(milestones) > maxMilestones {
		milestones = milestones[:maxMilestones]
	}
	return milestones
}

// milestoneUp targets the next multiple of step above current.
// Progress is how far current has advanced through the band below the
// target.
func milestoneUp(metric string, current, step float64) Milestone {
	target := math.Floor(current/step)*step + step
	into := current - (target - step)
	return Milestone{
		Metric:   metric,
		Current:  current,
		Target:   target,
		Progress: clampScore(into / step * 100),
	}
}

// milestoneDown targets the next multiple of step below current, for
// lower-is-better metrics. Progress grows as current closes in on the
// target. No milestone when the value can't go lower than a step.
func milestoneDown(metric string, current, step float64) (Milestone, bool) {
	target := math.Floor(current/step) * step
	if target == current {
		target -= step
	}
	if target <= 0 {
		return Milestone{}, false
	}
	remaining := current - target
	return Milestone{
		Metric:   metric,
		Current:  current,
		Target:   target,
		Progress: clampScore((step - remaining) / step * 100),
	}, true
}
