package analysis

import (
	"testing"
	"time"

	"swimtracker/internal/store"
)

func TestComputeStreak(t *testing.T) {
	// Monday anchors.
	w0 := time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)
	now := w0.AddDate(0, 0, 16) // Wednesday two weeks after w0

	tests := []struct {
		name        string
		sessions    []store.Session
		now         time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:     "empty history",
			sessions: nil,
			now:      now,
		},
		{
			name: "three consecutive weeks ending now",
			sessions: []store.Session{
				swim("a", w0, 1000, 2.0),
				swim("b", w0.AddDate(0, 0, 7), 1000, 2.0),
				swim("c", w0.AddDate(0, 0, 14), 1000, 2.0),
			},
			now:         now,
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "gap splits the run",
			sessions: []store.Session{
				swim("a", w0, 1000, 2.0),
				swim("b", w0.AddDate(0, 0, 7), 1000, 2.0),
				swim("c", w0.AddDate(0, 0, 21), 1000, 2.0),
			},
			now:         w0.AddDate(0, 0, 23),
			wantCurrent: 1,
			wantLongest: 2,
		},
		{
			name: "old streak does not count as current",
			sessions: []store.Session{
				swim("a", w0, 1000, 2.0),
				swim("b", w0.AddDate(0, 0, 7), 1000, 2.0),
				swim("c", w0.AddDate(0, 0, 14), 1000, 2.0),
			},
			now:         w0.AddDate(0, 0, 45),
			wantCurrent: 0,
			wantLongest: 3,
		},
		{
			name: "last week still keeps the streak alive",
			sessions: []store.Session{
				swim("a", w0, 1000, 2.0),
				swim("b", w0.AddDate(0, 0, 7), 1000, 2.0),
			},
			now:         w0.AddDate(0, 0, 15), // tuesday of the following week
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name: "multiple sessions in one week count once",
			sessions: []store.Session{
				swim("a", w0, 1000, 2.0),
				swim("b", w0.AddDate(0, 0, 2), 1000, 2.0),
				swim("c", w0.AddDate(0, 0, 7), 1000, 2.0),
			},
			now:         w0.AddDate(0, 0, 9),
			wantCurrent: 2,
			wantLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreak(tt.sessions, tt.now)
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", got.Longest, tt.wantLongest)
			}
		})
	}
}

func TestComputeStreakWeekKeysSorted(t *testing.T) {
	w0 := time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)
	sessions := []store.Session{
		swim("new", w0.AddDate(0, 0, 14), 1000, 2.0),
		swim("old", w0, 1000, 2.0),
	}

	got := ComputeStreak(sessions, w0.AddDate(0, 0, 16))
	if len(got.Weeks) != 2 {
		t.Fatalf("len(Weeks) = %d, want 2", len(got.Weeks))
	}
	if !got.Weeks[0].Before(got.Weeks[1]) {
		t.Errorf("Weeks not ascending: %v", got.Weeks)
	}
	if got.Weeks[0].Weekday() != time.Monday {
		t.Errorf("week key weekday = %v, want Monday", got.Weeks[0].Weekday())
	}
}
