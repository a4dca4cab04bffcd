package analysis

import (
	"math"
	"sort"
	"time"

	"swimtracker/internal/store"
)

// Bucket is a group of sessions sharing a calendar day or week,
// with totals and averages over valid values only.
type Bucket struct {
	Key           time.Time // midnight of the day, or the Monday of the week
	Sessions      []store.Session
	TotalDistance float64 // meters
	TotalDuration float64 // minutes
	AvgPace       float64 // over sessions with a valid pace
	AvgSwolf      float64 // over sessions with a valid SWOLF
}

// GroupByDay buckets sessions by calendar day, ascending by day.
func GroupByDay(sessions []store.Session) []Bucket {
	return groupBy(sessions, func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	})
}

// GroupByWeek buckets sessions by the Monday-anchored week containing
// the session date, ascending by week.
func GroupByWeek(sessions []store.Session) []Bucket {
	return groupBy(sessions, WeekStart)
}

func groupBy(sessions []store.Session, keyFn func(time.Time) time.Time) []Bucket {
	byKey := make(map[time.Time]*Bucket)
	for _, s := range sessions {
		key := keyFn(s.StartTimeLocal)
		b, ok := byKey[key]
		if !ok {
			b = &Bucket{Key: key}
			byKey[key] = b
		}
		b.Sessions = append(b.Sessions, s)
		b.TotalDistance += s.Distance
		b.TotalDuration += s.Duration
	}

	buckets := make([]Bucket, 0, len(byKey))
	for _, b := range byKey {
		b.AvgPace = meanValid(b.Sessions, func(s store.Session) float64 { return s.Pace })
		b.AvgSwolf = meanValid(b.Sessions, func(s store.Session) float64 { return s.Swolf })
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key.Before(buckets[j].Key)
	})
	return buckets
}

// meanValid averages a metric over sessions with a positive value for it.
// Invalid (zero) values leave the denominator entirely.
func meanValid(sessions []store.Session, metric func(store.Session) float64) float64 {
	var sum float64
	var count int
	for _, s := range sessions {
		if v := metric(s); v > 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// WeekStart returns the Monday midnight of the week containing t,
// in t's location. Monday is the canonical week start everywhere here.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// RollingAverage computes the trailing-window mean ending at each
// position. A window of k averages positions i-k+1..i; the first
// positions average whatever predecessors exist.
func RollingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		var sum float64
		for j := start; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(i-start+1)
	}
	return out
}

// RollingAverageDays computes a date-bounded trailing mean: each
// position averages the values whose timestamps fall within the
// preceding `days` days, the position itself included. Positions with
// no qualifying predecessors keep their raw value.
func RollingAverageDays(times []time.Time, values []float64, days int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		cutoff := times[i].AddDate(0, 0, -days)
		var sum float64
		var count int
		for j := 0; j <= i; j++ {
			if times[j].Before(cutoff) {
				continue
			}
			sum += values[j]
			count++
		}
		if count == 0 {
			out[i] = values[i]
			continue
		}
		out[i] = sum / float64(count)
	}
	return out
}

// Regression trend labels.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// regressionThreshold is the percent-change band treated as stable.
const regressionThreshold = 3.0

// RegressionResult holds an ordinary-least-squares fit over an ordered
// metric series plus its trend classification.
type RegressionResult struct {
	Slope     float64
	Intercept float64
	R2        float64
	Change    float64 // percent change from fitted start to fitted end
	Trend     string
	Points    int // values actually used after filtering
}

// LinearRegression fits values against their positions, excluding
// non-positive values. Classification uses a ±3% band on the percent
// change between the fitted endpoints; for lower-is-better metrics the
// improving/declining sign is inverted. Returns nil with fewer than
// two usable points.
func LinearRegression(values []float64, lowerIsBetter bool) *RegressionResult {
	var xs, ys []float64
	for i, v := range values {
		if v <= 0 {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}

	n := float64(len(xs))
	if len(xs) < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	// R² from the textbook definition: 1 - SSres/SStot.
	meanY := sumY / n
	var ssRes, ssTot float64
	for i := range xs {
		fitted := intercept + slope*xs[i]
		ssRes += (ys[i] - fitted) * (ys[i] - fitted)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	result := &RegressionResult{
		Slope:     slope,
		Intercept: intercept,
		R2:        r2,
		Points:    len(xs),
	}

	fittedStart := intercept + slope*xs[0]
	fittedEnd := intercept + slope*xs[len(xs)-1]
	if fittedStart != 0 {
		result.Change = (fittedEnd - fittedStart) / math.Abs(fittedStart) * 100
	}

	improvement := result.Change
	if lowerIsBetter {
		improvement = -improvement
	}
	switch {
	case improvement > regressionThreshold:
		result.Trend = TrendImproving
	case improvement < -regressionThreshold:
		result.Trend = TrendDeclining
	default:
		result.Trend = TrendStable
	}

	return result
}
