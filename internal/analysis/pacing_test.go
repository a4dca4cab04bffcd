package analysis

import (
	"math"
	"testing"

	"swimtracker/internal/store"
)

func TestAnalyzePacing(t *testing.T) {
	tests := []struct {
		name    string
		laps    []store.Lap
		checkFn func(t *testing.T, r PacingResult)
	}{
		{
			name: "too few usable laps is unknown",
			laps: lapsWithPaces(2.0, 2.1),
			checkFn: func(t *testing.T, r PacingResult) {
				if r.Strategy != PacingUnknown {
					t.Errorf("Strategy = %q, want unknown", r.Strategy)
				}
				if r.Consistency != 0 {
					t.Errorf("Consistency = %d, want 0", r.Consistency)
				}
			},
		},
		{
			name: "no laps at all",
			laps: nil,
			checkFn: func(t *testing.T, r PacingResult) {
				if r.Strategy != PacingUnknown {
					t.Errorf("Strategy = %q, want unknown", r.Strategy)
				}
			},
		},
		{
			name: "even pacing",
			laps: lapsWithPaces(2.0, 2.01, 1.99, 2.0, 2.0, 2.01),
			checkFn: func(t *testing.T, r PacingResult) {
				if r.Strategy != PacingEven {
					t.Errorf("Strategy = %q, want even", r.Strategy)
				}
				if r.Consistency < 90 {
					t.Errorf("Consistency = %d, want >= 90 for near-identical laps", r.Consistency)
				}
			},
		},
		{
			name: "negative split finishes faster",
			laps: lapsWithPaces(2.2, 2.2, 2.1, 2.1, 2.0, 2.0),
			checkFn: func(t *testing.T, r PacingResult) {
				if r.Strategy != PacingNegative {
					t.Errorf("Strategy = %q, want negative (change %.1f, cv %.1f)",
						r.Strategy, r.PaceChange, r.Variation)
				}
				if r.PaceChange >= -3 {
					t.Errorf("PaceChange = %v, want < -3", r.PaceChange)
				}
			},
		},
		{
			name: "positive split finishes slower",
			laps: lapsWithPaces(2.0, 2.0, 2.0, 2.3, 2.4, 2.5),
			checkFn: func(t *testing.T, r PacingResult) {
				if r.Strategy != PacingPositive {
					t.Errorf("Strategy = %q, want positive", r.Strategy)
				}
			},
		},
		{
			name: "high variation is erratic before split direction",
			laps: lapsWithPaces(1.5, 2.8, 1.6, 2.9, 1.4, 2.7),
			checkFn: func(t *testing.T, r PacingResult) {
				if r.Strategy != PacingErratic {
					t.Errorf("Strategy = %q, want erratic (cv %.1f)", r.Strategy, r.Variation)
				}
				if r.Variation <= erraticCVThreshold {
					t.Errorf("Variation = %v, want > %v", r.Variation, erraticCVThreshold)
				}
			},
		},
		{
			name: "pace derived from duration and distance",
			laps: []store.Lap{
				{Duration: 2.2, Distance: 100},
				{Duration: 2.2, Distance: 100},
				{Duration: 2.0, Distance: 100},
				{Duration: 2.0, Distance: 100},
				{Pace: 0}, // underivable, skipped
			},
			checkFn: func(t *testing.T, r PacingResult) {
				if r.Strategy != PacingNegative {
					t.Errorf("Strategy = %q, want negative from derived paces", r.Strategy)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkFn(t, AnalyzePacing(tt.laps))
		})
	}
}

func TestAnalyzePacingConsistencyClamped(t *testing.T) {
	// Wild variation drives 100 - CV*5 far below zero; the score clamps.
	r := AnalyzePacing(lapsWithPaces(1.0, 4.0, 1.0, 4.0, 1.0, 4.0))
	if r.Consistency != 0 {
		t.Errorf("Consistency = %d, want clamped to 0", r.Consistency)
	}
}

func TestAnalyzeFatigue(t *testing.T) {
	tests := []struct {
		name    string
		laps    []store.Lap
		checkFn func(t *testing.T, r *FatigueResult)
	}{
		{
			name: "too few laps returns nil",
			laps: lapsWithPaces(2.0, 2.0, 2.0, 2.0),
			checkFn: func(t *testing.T, r *FatigueResult) {
				if r != nil {
					t.Errorf("want nil, got %+v", r)
				}
			},
		},
		{
			name: "pronounced fade",
			laps: lapsWithPaces(2.0, 2.0, 2.0, 2.3, 2.4, 2.5),
			checkFn: func(t *testing.T, r *FatigueResult) {
				if r == nil {
					t.Fatal("want result, got nil")
				}
				// Baseline is laps 1-3 (2.0, 2.0, 2.3) = 2.1; final
				// third (2.4, 2.5) averages 2.45: ~16.7% over.
				if r.Index <= 10 {
					t.Errorf("Index = %v, want > 10", r.Index)
				}
				if math.Abs(r.Index-16.666) > 0.1 {
					t.Errorf("Index = %v, want ~16.67", r.Index)
				}
				if r.Description != "significant fatigue" {
					t.Errorf("Description = %q, want significant fatigue", r.Description)
				}
				if r.FadingLaps != 2 {
					t.Errorf("FadingLaps = %d, want 2", r.FadingLaps)
				}
			},
		},
		{
			name: "steady swim is excellent",
			laps: lapsWithPaces(2.4, 2.0, 2.0, 2.0, 2.0, 2.0),
			checkFn: func(t *testing.T, r *FatigueResult) {
				if r == nil {
					t.Fatal("want result, got nil")
				}
				if r.Index >= 2 {
					t.Errorf("Index = %v, want < 2", r.Index)
				}
				if r.Description != "excellent endurance" {
					t.Errorf("Description = %q, want excellent endurance", r.Description)
				}
				if r.FadingLaps != 0 {
					t.Errorf("FadingLaps = %d, want 0", r.FadingLaps)
				}
			},
		},
		{
			name: "warmup lap excluded from baseline",
			laps: lapsWithPaces(3.0, 2.0, 2.0, 2.0, 2.1, 2.1),
			checkFn: func(t *testing.T, r *FatigueResult) {
				if r == nil {
					t.Fatal("want result, got nil")
				}
				// A slow opening lap must not inflate the baseline:
				// baseline is 2.0, final third 2.1 -> 5% fatigue.
				if math.Abs(r.Index-5) > 0.1 {
					t.Errorf("Index = %v, want ~5 (warmup excluded)", r.Index)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkFn(t, AnalyzeFatigue(tt.laps))
		})
	}
}
