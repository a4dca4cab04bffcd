package analysis

import (
	"math"
	"sort"
)

// Trend direction labels shared by trend, regression and momentum results.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionSteady = "steady"
)

// TrendResult pairs a rounded percentage change with its direction.
type TrendResult struct {
	Change    int
	Direction string
}

// Trend returns the rounded percentage change from previous to current.
// A zero previous value means there is no baseline to compare against,
// which is reported as no change rather than an error.
func Trend(current, previous float64) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round(100 * (current - previous) / previous))
}

// PaceTrend returns the improvement percentage for a pace value, where
// lower is better: a pace drop yields a positive result.
func PaceTrend(current, previous float64) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round(100 * (previous - current) / previous))
}

// SwolfTrend returns the improvement percentage for an efficiency score.
// SWOLF is lower-is-better, so the operands are swapped like pace.
func SwolfTrend(current, previous float64) int {
	return PaceTrend(current, previous)
}

// TrendOf wraps Trend with a direction label.
func TrendOf(current, previous float64) TrendResult {
	change := Trend(current, previous)
	return TrendResult{Change: change, Direction: directionOf(change)}
}

func directionOf(change int) string {
	switch {
	case change > 0:
		return DirectionUp
	case change < 0:
		return DirectionDown
	default:
		return DirectionSteady
	}
}

// Percentile ranks value against all supplied values on a 0-100 scale.
// Ties take the lowest rank among equals: the first entry >= value wins.
// A value larger than every entry ranks 100.
func Percentile(value float64, all []float64) int {
	if len(all) == 0 {
		return 0
	}

	sorted := make([]float64, len(all))
	copy(sorted, all)
	sort.Float64s(sorted)

	for i, v := range sorted {
		if v >= value {
			return int(math.Round(100 * float64(i) / float64(len(sorted))))
		}
	}
	return 100
}
