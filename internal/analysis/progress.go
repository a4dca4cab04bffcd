package analysis

import (
	"math"

	"swimtracker/internal/store"
)

// Progress weights mirror the momentum blend: pace carries the most
// signal, volume and frequency round it out.
const (
	progressPaceWeight      = 0.4
	progressVolumeWeight    = 0.3
	progressFrequencyWeight = 0.3
)

// StatusInsufficientData marks results computed from too little history.
const StatusInsufficientData = "insufficient-data"

// Progress summarizes the long-term direction of training across
// weekly pace, volume and frequency regressions.
type Progress struct {
	Status    string // improving | declining | stable | insufficient-data
	Score     int    // weighted improvement percentage
	Pace      *RegressionResult
	Volume    *RegressionResult
	Frequency *RegressionResult
	Weeks     int
}

// AnalyzeProgress fits weekly aggregates over the full history and
// blends them into a single direction. Needs at least two active weeks.
func AnalyzeProgress(sessions []store.Session) Progress {
	weeks := GroupByWeek(sessions)
	if len(weeks) < 2 {
		return Progress{Status: StatusInsufficientData, Weeks: len(weeks)}
	}

	paces := make([]float64, len(weeks))
	volumes := make([]float64, len(weeks))
	counts := make([]float64, len(weeks))
	for i, w := range weeks {
		paces[i] = w.AvgPace
		volumes[i] = w.TotalDistance
		counts[i] = float64(len(w.Sessions))
	}

	p := Progress{
		Pace:      LinearRegression(paces, true),
		Volume:    LinearRegression(volumes, false),
		Frequency: LinearRegression(counts, false),
		Weeks:     len(weeks),
	}

	var score float64
	if p.Pace != nil {
		score += progressPaceWeight * -p.Pace.Change // pace: lower is better
	}
	if p.Volume != nil {
		score += progressVolumeWeight * p.Volume.Change
	}
	if p.Frequency != nil {
		score += progressFrequencyWeight * p.Frequency.Change
	}
	p.Score = int(math.Round(score))

	switch {
	case float64(p.Score) > regressionThreshold:
		p.Status = TrendImproving
	case float64(p.Score) < -regressionThreshold:
		p.Status = TrendDeclining
	default:
		p.Status = TrendStable
	}
	return p
}
