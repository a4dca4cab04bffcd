package analysis

import (
	"errors"
	"math"
	"time"

	"swimtracker/internal/store"
)

// ErrNoSession is returned when the orchestrator is asked to analyze
// without a target session.
var ErrNoSession = errors.New("no session to analyze")

// Comparative windows.
const (
	recentComparisonCount    = 10  // sessions behind the "recent average"
	similarDistanceTolerance = 100 // meters either side for same-distance history
)

// Comparison relates the target session's pace to a reference pace.
// Diff is improvement-signed: positive means the target was faster.
type Comparison struct {
	ReferencePace float64
	Diff          int
	Session       *store.Session // reference session, when one exists
}

// DeepAnalysis is the full insight bundle for one target session.
// Every comparative field degrades to nil on its own when its
// prerequisite data is missing; the bundle itself only fails when
// there is no target at all.
type DeepAnalysis struct {
	Session         store.Session
	Pacing          *PacingResult
	Fatigue         *FatigueResult
	VsRecent        *Comparison // vs mean pace of the 10 most recent other sessions
	VsBest          *Comparison // vs the all-time fastest-pace session
	VsSimilar       *Comparison // vs best prior session at a similar distance
	PacePercentile  *int
	Patterns        *Patterns
	Streak          Streak
	DaysSinceLast   *int
	Recommendations []Recommendation
}

// Analyze builds the DeepAnalysis bundle for target against the full
// history. Sessions arrive newest-first and are never mutated. When
// target is nil the orchestrator refuses with ErrNoSession instead of
// guessing.
func Analyze(sessions []store.Session, target *store.Session, now time.Time) (*DeepAnalysis, error) {
	if target == nil {
		return nil, ErrNoSession
	}

	deep := &DeepAnalysis{Session: *target}

	if len(target.Laps) > 0 {
		pacing := AnalyzePacing(target.Laps)
		deep.Pacing = &pacing
		deep.Fatigue = AnalyzeFatigue(target.Laps)
	}

	others := withoutSession(sessions, target.ID)

	deep.VsRecent = compareToRecent(target, others)
	deep.VsBest = compareToBest(target, sessions)
	deep.VsSimilar = compareToSimilar(target, others)
	deep.PacePercentile = pacePercentile(target, sessions)
	deep.Patterns = DetectPatterns(sessions)
	deep.Streak = ComputeStreak(sessions, now)
	deep.DaysSinceLast = daysSincePrevious(target, others)

	deep.Recommendations = Recommend(deep, sessions, now)

	return deep, nil
}

// withoutSession filters out the target itself without touching the
// caller's slice.
func withoutSession(sessions []store.Session, id string) []store.Session {
	others := make([]store.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.ID != id {
			others = append(others, s)
		}
	}
	return others
}

// compareToRecent measures the target against the mean pace of its ten
// most recent predecessors with a valid pace.
func compareToRecent(target *store.Session, others []store.Session) *Comparison {
	if target.Pace <= 0 {
		return nil
	}

	var paces []float64
	for _, s := range others {
		if s.Pace > 0 {
			paces = append(paces, s.Pace)
		}
		if len(paces) == recentComparisonCount {
			break
		}
	}
	if len(paces) == 0 {
		return nil
	}

	avg := meanOf(paces)
	return &Comparison{
		ReferencePace: avg,
		Diff:          PaceTrend(target.Pace, avg),
	}
}

// compareToBest measures the target against the all-time fastest pace,
// target included. When the target is the personal best the diff is 0.
func compareToBest(target *store.Session, sessions []store.Session) *Comparison {
	if target.Pace <= 0 || len(sessions) < 2 {
		return nil
	}

	records := FindRecords(sessions)
	if records.FastestPace == nil {
		return nil
	}

	return &Comparison{
		ReferencePace: records.FastestPace.Pace,
		Diff:          PaceTrend(target.Pace, records.FastestPace.Pace),
		Session:       records.FastestPace,
	}
}

// compareToSimilar measures the target against the fastest prior
// session within ±100m of its distance.
func compareToSimilar(target *store.Session, others []store.Session) *Comparison {
	if target.Pace <= 0 {
		return nil
	}

	var best *store.Session
	for i := range others {
		s := &others[i]
		if s.Pace <= 0 {
			continue
		}
		if math.Abs(s.Distance-target.Distance) > similarDistanceTolerance {
			continue
		}
		if best == nil || s.Pace < best.Pace {
			best = s
		}
	}
	if best == nil {
		return nil
	}

	return &Comparison{
		ReferencePace: best.Pace,
		Diff:          PaceTrend(target.Pace, best.Pace),
		Session:       best,
	}
}

// pacePercentile ranks the target pace among all valid paces. Because
// pace is lower-is-better, the rank is flipped so that 100 means the
// fastest swim on record.
func pacePercentile(target *store.Session, sessions []store.Session) *int {
	if target.Pace <= 0 {
		return nil
	}
	var paces []float64
	for _, s := range sessions {
		if s.Pace > 0 {
			paces = append(paces, s.Pace)
		}
	}
	if len(paces) < 2 {
		return nil
	}
	rank := 100 - Percentile(target.Pace, paces)
	return &rank
}

// daysSincePrevious finds the whole days between the target and the
// session immediately before it.
func daysSincePrevious(target *store.Session, others []store.Session) *int {
	var prev *store.Session
	for i := range others {
		s := &others[i]
		if !s.StartTime.Before(target.StartTime) {
			continue
		}
		if prev == nil || s.StartTime.After(prev.StartTime) {
			prev = s
		}
	}
	if prev == nil {
		return nil
	}
	days := int(target.StartTime.Sub(prev.StartTime).Hours() / 24)
	return &days
}
