package analysis

import (
	"math"

	"swimtracker/internal/store"
)

// Pacing strategy labels.
const (
	PacingEven     = "even"
	PacingNegative = "negative" // finishing faster
	PacingPositive = "positive" // finishing slower
	PacingErratic  = "erratic"
	PacingUnknown  = "unknown"
)

const (
	minLapsForPacing  = 3
	minLapsForFatigue = 5

	// CV above this reads as erratic regardless of the split direction.
	erraticCVThreshold = 15.0
	// Split changes inside ±3% read as even pacing.
	splitThreshold = 3.0
	// Final-segment laps this far over baseline count as fading.
	fadingLapFactor = 1.05
)

// PacingResult classifies how a session's laps were distributed.
type PacingResult struct {
	Strategy    string
	Consistency int     // 0-100, derived from CV
	Variation   float64 // coefficient of variation, percent
	PaceChange  float64 // percent change first third -> last third
}

// FatigueResult measures within-session slowdown against an early-lap
// baseline.
type FatigueResult struct {
	Index       float64 // percent over baseline
	FadingLaps  int
	Description string
}

// lapPaces extracts a usable pace per lap: the explicit pace when
// present, otherwise derived from duration over distance. Laps with
// neither are skipped, not errored.
func lapPaces(laps []store.Lap) []float64 {
	var paces []float64
	for _, lap := range laps {
		switch {
		case lap.Pace > 0:
			paces = append(paces, lap.Pace)
		case lap.Duration > 0 && lap.Distance > 0:
			paces = append(paces, lap.Duration/(lap.Distance/100))
		}
	}
	return paces
}

// AnalyzePacing classifies the pacing strategy of a lap sequence.
// Needs at least three laps with a derivable pace; otherwise the
// strategy is unknown and the scores stay zero.
func AnalyzePacing(laps []store.Lap) PacingResult {
	paces := lapPaces(laps)
	if len(paces) < minLapsForPacing {
		return PacingResult{Strategy: PacingUnknown}
	}

	mean, stddev := meanStddev(paces)
	cv := 0.0
	if mean > 0 {
		cv = stddev / mean * 100
	}

	third := len(paces) / 3
	if third < 1 {
		third = 1
	}
	firstAvg := meanOf(paces[:third])
	lastAvg := meanOf(paces[len(paces)-third:])

	paceChange := 0.0
	if firstAvg > 0 {
		paceChange = (lastAvg - firstAvg) / firstAvg * 100
	}

	result := PacingResult{
		Variation:  cv,
		PaceChange: paceChange,
	}

	// First match wins.
	switch {
	case cv > erraticCVThreshold:
		result.Strategy = PacingErratic
	case paceChange < -splitThreshold:
		result.Strategy = PacingNegative
	case paceChange > splitThreshold:
		result.Strategy = PacingPositive
	default:
		result.Strategy = PacingEven
	}

	result.Consistency = clampScore(100 - cv*5)
	return result
}

// AnalyzeFatigue measures how much the closing laps slow down relative
// to an early baseline. The very first lap is treated as warmup and
// excluded from the baseline. Returns nil below five usable laps.
func AnalyzeFatigue(laps []store.Lap) *FatigueResult {
	paces := lapPaces(laps)
	if len(paces) < minLapsForFatigue {
		return nil
	}

	// Baseline: laps 1-3 (0-indexed), skipping the warmup lap.
	baseline := meanOf(paces[1:4])
	if baseline == 0 {
		return nil
	}

	third := len(paces) / 3
	if third < 1 {
		third = 1
	}
	final := paces[len(paces)-third:]

	index := (meanOf(final) - baseline) / baseline * 100

	fading := 0
	for _, p := range final {
		if p > baseline*fadingLapFactor {
			fading++
		}
	}

	return &FatigueResult{
		Index:       index,
		FadingLaps:  fading,
		Description: fatigueDescription(index),
	}
}

// fatigueDescription bands the fatigue index into coaching language.
func fatigueDescription(index float64) string {
	switch {
	case index < 2:
		return "excellent endurance"
	case index < 5:
		return "good endurance"
	case index < 10:
		return "moderate fatigue"
	default:
		return "significant fatigue"
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanStddev(values []float64) (mean, stddev float64) {
	mean = meanOf(values)
	if len(values) < 2 {
		return mean, 0
	}
	var sumSq float64
	for _, v := range values {
		sumSq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sumSq / float64(len(values)))
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
