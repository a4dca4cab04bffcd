package analysis

import (
	"fmt"
	"time"

	"swimtracker/internal/store"
)

// swim builds a synthetic session for tests. Times are UTC; local and
// UTC start times coincide so weekday/slot assertions stay simple.
func swim(id string, start time.Time, distance, pace float64) store.Session {
	return store.Session{
		ID:             id,
		Name:           "swim " + id,
		StartTime:      start,
		StartTimeLocal: start,
		PoolLength:     25,
		Distance:       distance,
		Duration:       pace * distance / 100,
		Pace:           pace,
		Swolf:          40,
	}
}

// weeklySwims builds n sessions one week apart starting at start,
// applying perSession to customize each (index 0 = oldest). The result
// is newest-first like the store delivers.
func weeklySwims(n int, start time.Time, perSession func(i int, s *store.Session)) []store.Session {
	sessions := make([]store.Session, 0, n)
	for i := 0; i < n; i++ {
		s := swim(fmt.Sprintf("w%d", i), start.AddDate(0, 0, 7*i), 1000, 2.0)
		if perSession != nil {
			perSession(i, &s)
		}
		sessions = append(sessions, s)
	}
	// newest first
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return sessions
}

// lapsWithPaces builds laps carrying explicit paces.
func lapsWithPaces(paces ...float64) []store.Lap {
	laps := make([]store.Lap, len(paces))
	for i, p := range paces {
		laps[i] = store.Lap{LapIndex: i, Pace: p, Distance: 100, Duration: p}
	}
	return laps
}
