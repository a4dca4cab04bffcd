package analysis

import (
	"sort"
	"time"

	"swimtracker/internal/store"
)

// Streak describes consecutive weekly training activity. Weeks are
// identified by their Monday date; a streak is a maximal run of weeks
// exactly seven days apart, each with at least one session.
type Streak struct {
	Current int
	Longest int
	Weeks   []time.Time // distinct active Mondays, ascending
}

// ComputeStreak scans the distinct active weeks in the history.
// The trailing run only counts as the current streak when the most
// recent active week is this week or last week; an older run still
// shows up in Longest but Current resets to 0.
func ComputeStreak(sessions []store.Session, now time.Time) Streak {
	seen := make(map[time.Time]bool)
	for _, s := range sessions {
		seen[WeekStart(s.StartTimeLocal)] = true
	}

	weeks := make([]time.Time, 0, len(seen))
	for w := range seen {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	streak := Streak{Weeks: weeks}
	if len(weeks) == 0 {
		return streak
	}

	run := 1
	longest := 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i-1].AddDate(0, 0, 7).Equal(weeks[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	streak.Longest = longest

	// The trailing run is only "current" while it reaches into this
	// week or the one before.
	thisWeek := WeekStart(now)
	lastActive := weeks[len(weeks)-1]
	if !lastActive.Before(thisWeek.AddDate(0, 0, -7)) {
		streak.Current = run
	}

	return streak
}
