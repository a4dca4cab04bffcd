package analysis

import (
	"testing"
	"time"

	"swimtracker/internal/store"
)

func TestFindRecords(t *testing.T) {
	base := time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)

	fast := swim("fast", base, 1000, 1.8)
	fast.Swolf = 42
	long := swim("long", base.AddDate(0, 0, 2), 3000, 2.2)
	long.Swolf = 35
	invalid := swim("invalid", base.AddDate(0, 0, 4), 1500, 0)
	invalid.Swolf = 0

	records := FindRecords([]store.Session{invalid, long, fast})

	if records.FastestPace == nil || records.FastestPace.ID != "fast" {
		t.Errorf("FastestPace = %v, want session fast", records.FastestPace)
	}
	if records.LongestDistance == nil || records.LongestDistance.ID != "long" {
		t.Errorf("LongestDistance = %v, want session long", records.LongestDistance)
	}
	if records.BestSwolf == nil || records.BestSwolf.ID != "long" {
		t.Errorf("BestSwolf = %v, want session long (lowest SWOLF)", records.BestSwolf)
	}
}

func TestFindRecordsEmptyHistory(t *testing.T) {
	records := FindRecords(nil)
	if records.FastestPace != nil || records.LongestDistance != nil || records.BestSwolf != nil {
		t.Errorf("want all-nil records for empty history, got %+v", records)
	}
}

func TestNextMilestones(t *testing.T) {
	base := time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)

	s := swim("s", base, 1800, 2.06) // 123.6 s/100m, 1.8 km
	s.Swolf = 38

	milestones := NextMilestones([]store.Session{s})

	if len(milestones) > maxMilestones {
		t.Fatalf("len(milestones) = %d, want <= %d", len(milestones), maxMilestones)
	}
	if len(milestones) == 0 {
		t.Fatal("want milestones, got none")
	}

	byMetric := make(map[string]Milestone)
	for _, m := range milestones {
		byMetric[m.Metric] = m
	}

	if m, ok := byMetric["pace"]; ok {
		if m.Target != 120 {
			t.Errorf("pace target = %v, want 120 s/100m", m.Target)
		}
		// 3.6s of a 5s band remain: 28% through.
		if m.Progress != 28 {
			t.Errorf("pace progress = %d, want 28", m.Progress)
		}
	}

	// Progress ordering is descending.
	for i := 1; i < len(milestones); i++ {
		if milestones[i].Progress > milestones[i-1].Progress {
			t.Errorf("milestones not sorted by progress: %+v", milestones)
		}
	}

	// All progress values clamped to [0, 100].
	for _, m := range milestones {
		if m.Progress < 0 || m.Progress > 100 {
			t.Errorf("progress %d outside [0,100]: %+v", m.Progress, m)
		}
	}
}

func TestNextMilestonesDistanceBands(t *testing.T) {
	base := time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)

	// 1.25 km session: next single-session target is 1.5 km, halfway
	// through the 0.5 km band.
	s := swim("s", base, 1250, 0)
	s.Swolf = 0

	milestones := NextMilestones([]store.Session{s})

	var distance, total *Milestone
	for i := range milestones {
		switch milestones[i].Metric {
		case "distance":
			distance = &milestones[i]
		case "total-distance":
			total = &milestones[i]
		}
	}

	if distance == nil {
		t.Fatal("distance milestone missing")
	}
	if distance.Target != 1.5 {
		t.Errorf("distance target = %v, want 1.5", distance.Target)
	}
	if distance.Progress != 50 {
		t.Errorf("distance progress = %d, want 50", distance.Progress)
	}

	if total == nil {
		t.Fatal("total-distance milestone missing")
	}
	if total.Target != 10 {
		t.Errorf("total-distance target = %v, want 10", total.Target)
	}
}

func TestNextMilestonesEmptyHistory(t *testing.T) {
	if got := NextMilestones(nil); len(got) != 0 {
		t.Errorf("want no milestones for empty history, got %+v", got)
	}
}
