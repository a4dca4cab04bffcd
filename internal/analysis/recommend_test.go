package analysis

import (
	"strings"
	"testing"
	"time"

	"swimtracker/internal/store"
)

func categories(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Category
	}
	return out
}

func hasCategory(recs []Recommendation, category, priority string) bool {
	for _, r := range recs {
		if r.Category == category && r.Priority == priority {
			return true
		}
	}
	return false
}

func TestRecommendNeverEmpty(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	target := swim("only", now.AddDate(0, 0, -1), 1000, 2.0)
	deep := &DeepAnalysis{Session: target}

	recs := Recommend(deep, []store.Session{target}, now)
	if len(recs) == 0 {
		t.Fatal("want at least the fallback recommendation")
	}
	if len(recs) == 1 && recs[0].Category != "general" {
		t.Errorf("lone recommendation = %+v, want the generic fallback", recs[0])
	}
}

func TestRecommendNilBundle(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	if recs := Recommend(nil, nil, now); recs != nil {
		t.Errorf("Recommend(nil) = %+v, want nil", recs)
	}
}

func TestRecommendPacingRules(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	target := swim("s", now.AddDate(0, 0, -1), 1000, 2.0)

	tests := []struct {
		name         string
		pacing       PacingResult
		wantPriority string
		wantAbsent   bool
	}{
		{
			name:         "bad positive split",
			pacing:       PacingResult{Strategy: PacingPositive, PaceChange: 8, Consistency: 80},
			wantPriority: PriorityHigh,
		},
		{
			name:       "mild positive split stays quiet",
			pacing:     PacingResult{Strategy: PacingPositive, PaceChange: 4, Consistency: 80},
			wantAbsent: true,
		},
		{
			name:         "negative split praised",
			pacing:       PacingResult{Strategy: PacingNegative, PaceChange: -6, Consistency: 80},
			wantPriority: PriorityPositive,
		},
		{
			name:         "erratic pacing flagged",
			pacing:       PacingResult{Strategy: PacingErratic, Variation: 22, Consistency: 80},
			wantPriority: PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deep := &DeepAnalysis{Session: target, Pacing: &tt.pacing}
			recs := Recommend(deep, []store.Session{target}, now)

			if tt.wantAbsent {
				for _, r := range recs {
					if r.Category == "pacing" {
						t.Errorf("unexpected pacing recommendation: %+v", r)
					}
				}
				return
			}
			if !hasCategory(recs, "pacing", tt.wantPriority) {
				t.Errorf("want pacing/%s in %v", tt.wantPriority, categories(recs))
			}
		})
	}
}

func TestRecommendFatigueRules(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	target := swim("s", now.AddDate(0, 0, -1), 1000, 2.0)

	deep := &DeepAnalysis{
		Session: target,
		Fatigue: &FatigueResult{Index: 14, FadingLaps: 3, Description: "significant fatigue"},
	}
	recs := Recommend(deep, []store.Session{target}, now)
	if !hasCategory(recs, "endurance", PriorityHigh) {
		t.Errorf("want endurance/high in %v", categories(recs))
	}

	deep.Fatigue = &FatigueResult{Index: 1, Description: "excellent endurance"}
	recs = Recommend(deep, []store.Session{target}, now)
	if !hasCategory(recs, "endurance", PriorityPositive) {
		t.Errorf("want endurance/positive in %v", categories(recs))
	}
}

func TestRecommendComparativeRules(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("far off the personal best", func(t *testing.T) {
		target := swim("s", now.AddDate(0, 0, -1), 1000, 2.4)
		deep := &DeepAnalysis{
			Session: target,
			VsBest:  &Comparison{ReferencePace: 2.0, Diff: -20},
		}
		recs := Recommend(deep, []store.Session{target}, now)
		if !hasCategory(recs, "performance", PriorityMedium) {
			t.Fatalf("want performance/medium in %v", categories(recs))
		}

		// The computed target pace bridges 30% of the gap:
		// 2.0 + (2.4-2.0)*0.3 = 2.12 -> 2:07/100m.
		var msg string
		for _, r := range recs {
			if r.Category == "performance" {
				msg = r.Action
			}
		}
		if !strings.Contains(msg, "2:07") {
			t.Errorf("action %q, want target pace 2:07", msg)
		}
	})

	t.Run("within reach of the personal best", func(t *testing.T) {
		target := swim("s", now.AddDate(0, 0, -1), 1000, 2.04)
		deep := &DeepAnalysis{
			Session: target,
			VsBest:  &Comparison{ReferencePace: 2.0, Diff: -2},
		}
		recs := Recommend(deep, []store.Session{target}, now)
		if !hasCategory(recs, "performance", PriorityPositive) {
			t.Errorf("want performance/positive in %v", categories(recs))
		}
	})
}

func TestRecommendTimingAndConsistency(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	// Session swum Tuesday morning; history says Friday evenings are best.
	target := swim("s", time.Date(2025, 4, 1, 7, 0, 0, 0, time.UTC), 1000, 2.0)
	deep := &DeepAnalysis{
		Session:  target,
		Patterns: &Patterns{BestDay: "Friday", BestTime: SlotEvening},
		Pacing:   &PacingResult{Strategy: PacingEven, Consistency: 55},
	}

	recs := Recommend(deep, []store.Session{target}, now)

	if !hasCategory(recs, "schedule", PriorityLow) {
		t.Errorf("want schedule/low in %v", categories(recs))
	}
	if !hasCategory(recs, "technique", PriorityMedium) {
		t.Errorf("want technique/medium in %v", categories(recs))
	}

	// Swimming inside the best window silences the timing rule.
	deep.Session.StartTimeLocal = time.Date(2025, 4, 4, 19, 0, 0, 0, time.UTC) // Friday evening
	recs = Recommend(deep, []store.Session{target}, now)
	if hasCategory(recs, "schedule", PriorityLow) {
		t.Errorf("timing rule fired inside the best window: %v", categories(recs))
	}
}

func TestRecommendStreakRules(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	target := swim("s", now.AddDate(0, 0, -1), 1000, 2.0)

	tests := []struct {
		name    string
		current int
		want    bool
	}{
		{"long streak", 9, true},
		{"building streak", 5, true},
		{"short streak stays quiet", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deep := &DeepAnalysis{Session: target, Streak: Streak{Current: tt.current}}
			recs := Recommend(deep, []store.Session{target}, now)
			if got := hasCategory(recs, "consistency", PriorityPositive); got != tt.want {
				t.Errorf("consistency/positive present = %v, want %v (%v)", got, tt.want, categories(recs))
			}
		})
	}
}

func TestRecommendActivityGapRules(t *testing.T) {
	// Thursday with nothing swum this week.
	now := time.Date(2025, 4, 3, 12, 0, 0, 0, time.UTC)
	lastWeek := swim("s", time.Date(2025, 3, 27, 7, 0, 0, 0, time.UTC), 1000, 2.0)

	days := 7
	deep := &DeepAnalysis{Session: lastWeek, DaysSinceLast: &days}

	recs := Recommend(deep, []store.Session{lastWeek}, now)

	if !hasCategory(recs, "activity", PriorityMedium) {
		t.Errorf("want activity/medium (no swims this week + comeback) in %v", categories(recs))
	}

	// Comeback rule text mentions easing back in.
	var found bool
	for _, r := range recs {
		if r.Category == "activity" && strings.Contains(r.Action, "60-70%") {
			found = true
		}
	}
	if !found {
		t.Errorf("want the 60-70%% comeback action in %v", recs)
	}
}

func TestRecommendOrderFollowsRuleEvaluation(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	target := swim("s", now.AddDate(0, 0, -1), 1000, 2.0)

	deep := &DeepAnalysis{
		Session: target,
		Pacing:  &PacingResult{Strategy: PacingErratic, Variation: 25, Consistency: 50},
		Fatigue: &FatigueResult{Index: 15, Description: "significant fatigue"},
		Streak:  Streak{Current: 9},
	}

	recs := Recommend(deep, []store.Session{target}, now)

	// Pacing rules evaluate before fatigue, fatigue before technique,
	// technique before streak, regardless of priority labels.
	idx := map[string]int{}
	for i, r := range recs {
		if _, seen := idx[r.Category]; !seen {
			idx[r.Category] = i
		}
	}
	if !(idx["pacing"] < idx["endurance"] && idx["endurance"] < idx["technique"] && idx["technique"] < idx["consistency"]) {
		t.Errorf("rule order broken: %v", categories(recs))
	}
}
