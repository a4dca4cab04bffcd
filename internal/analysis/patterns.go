package analysis

import (
	"sort"
	"time"

	"swimtracker/internal/store"
)

// Time-of-day slot labels.
const (
	SlotMorning   = "morning"   // before 12:00
	SlotAfternoon = "afternoon" // 12:00-17:00
	SlotEvening   = "evening"   // 17:00 onward
)

const (
	minSessionsForPatterns = 5
	minSessionsPerGroup    = 2
)

// GroupPace is the average pace of one day-of-week or time-of-day group.
type GroupPace struct {
	Label    string
	Sessions int
	AvgPace  float64
}

// Patterns reports when the swimmer tends to perform best. Best picks
// only consider groups with enough sessions to mean something; smaller
// groups still appear in the listings.
type Patterns struct {
	BestDay  string // weekday name, "" when undetermined
	BestTime string // slot label, "" when undetermined
	ByDay    []GroupPace
	ByTime   []GroupPace
}

// DetectPatterns groups valid-pace sessions by weekday and time slot.
// Returns nil below five valid-pace sessions.
func DetectPatterns(sessions []store.Session) *Patterns {
	var valid []store.Session
	for _, s := range sessions {
		if s.Pace > 0 {
			valid = append(valid, s)
		}
	}
	if len(valid) < minSessionsForPatterns {
		return nil
	}

	byDay := make(map[string][]float64)
	bySlot := make(map[string][]float64)
	for _, s := range valid {
		local := s.StartTimeLocal
		byDay[local.Weekday().String()] = append(byDay[local.Weekday().String()], s.Pace)
		slot := TimeSlot(local)
		bySlot[slot] = append(bySlot[slot], s.Pace)
	}

	p := &Patterns{
		ByDay:  groupPaces(byDay, weekdayOrder),
		ByTime: groupPaces(bySlot, slotOrder),
	}
	p.BestDay = bestGroup(p.ByDay)
	p.BestTime = bestGroup(p.ByTime)
	return p
}

// TimeSlot buckets a local timestamp into morning/afternoon/evening.
func TimeSlot(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return SlotMorning
	case hour < 17:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

var weekdayOrder = []string{
	time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(),
	time.Thursday.String(), time.Friday.String(), time.Saturday.String(),
	time.Sunday.String(),
}

var slotOrder = []string{SlotMorning, SlotAfternoon, SlotEvening}

func groupPaces(groups map[string][]float64, order []string) []GroupPace {
	var out []GroupPace
	for _, label := range order {
		paces, ok := groups[label]
		if !ok {
			continue
		}
		out = append(out, GroupPace{
			Label:    label,
			Sessions: len(paces),
			AvgPace:  meanOf(paces),
		})
	}
	return out
}

// bestGroup picks the lowest average pace among groups with at least
// two sessions. Pace is lower-is-better.
func bestGroup(groups []GroupPace) string {
	var candidates []GroupPace
	for _, g := range groups {
		if g.Sessions >= minSessionsPerGroup {
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].AvgPace < candidates[j].AvgPace
	})
	return candidates[0].Label
}
