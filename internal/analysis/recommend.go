package analysis

import (
	"fmt"
	"time"

	"swimtracker/internal/store"
)

// Recommendation priorities. Priority is descriptive only: the list
// keeps rule-evaluation order and is never sorted by priority.
// Consumers that want priority ordering must opt in explicitly.
const (
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
	PriorityPositive = "positive"
	PriorityInfo     = "info"
)

// Recommendation is one piece of coaching guidance derived from the
// insight bundle.
type Recommendation struct {
	Category string
	Priority string
	Title    string
	Message  string
	Action   string
}

// Rule thresholds.
const (
	positiveSplitAlert   = 5.0  // percent slowdown worth coaching on
	fatigueAlertIndex    = 10.0 // percent over baseline
	fatiguePraiseIndex   = 2.0
	pbGapAlert           = 10 // percent off the personal best
	pbNearMiss           = 3
	consistencyAlert     = 70
	longStreakWeeks      = 8
	buildingStreakWeeks  = 4
	momentumSwingPercent = 20
	idleDaysNudge        = 2
	idleDaysComeback     = 5
)

// Recommend walks the rule set over a deep-analysis bundle. Every
// matching rule fires; the result keeps insertion order. A non-nil
// bundle always yields at least one entry.
func Recommend(deep *DeepAnalysis, sessions []store.Session, now time.Time) []Recommendation {
	if deep == nil {
		return nil
	}

	var recs []Recommendation

	recs = append(recs, pacingRules(deep)...)
	recs = append(recs, fatigueRules(deep)...)
	recs = append(recs, comparativeRules(deep)...)
	recs = append(recs, timingRule(deep)...)
	recs = append(recs, consistencyRule(deep)...)
	recs = append(recs, streakRules(deep)...)
	recs = append(recs, momentumRules(sessions, now)...)
	recs = append(recs, activityGapRules(deep, sessions, now)...)

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Category: "general",
			Priority: PriorityInfo,
			Title:    "Keep building",
			Message:  "Solid session. Keep stacking consistent swims and the trends will follow.",
			Action:   "Plan your next swim within the next two days.",
		})
	}

	return recs
}

func pacingRules(deep *DeepAnalysis) []Recommendation {
	if deep.Pacing == nil {
		return nil
	}

	var recs []Recommendation
	switch deep.Pacing.Strategy {
	case PacingPositive:
		if deep.Pacing.PaceChange > positiveSplitAlert {
			recs = append(recs, Recommendation{
				Category: "pacing",
				Priority: PriorityHigh,
				Title:    "Control your early pace",
				Message: fmt.Sprintf("You slowed %.0f%% from your opening laps to your closing laps. Going out too fast costs more than it gains.",
					deep.Pacing.PaceChange),
				Action: "Start your next swim 3-5 seconds per 100m easier and aim to finish at the same pace you started.",
			})
		}
	case PacingNegative:
		recs = append(recs, Recommendation{
			Category: "pacing",
			Priority: PriorityPositive,
			Title:    "Textbook negative split",
			Message:  "You finished faster than you started. That's exactly how distance swims should be paced.",
			Action:   "Keep this pattern; try holding the faster back half a little longer.",
		})
	case PacingErratic:
		recs = append(recs, Recommendation{
			Category: "pacing",
			Priority: PriorityMedium,
			Title:    "Smooth out your laps",
			Message: fmt.Sprintf("Lap-to-lap variation was %.0f%%, which makes every length cost more. A steadier rhythm is faster for the same effort.",
				deep.Pacing.Variation),
			Action: "Pick one target pace per 100m and hold it for the whole main set.",
		})
	}
	return recs
}

func fatigueRules(deep *DeepAnalysis) []Recommendation {
	if deep.Fatigue == nil {
		return nil
	}

	var recs []Recommendation
	if deep.Fatigue.Index > fatigueAlertIndex {
		recs = append(recs, Recommendation{
			Category: "endurance",
			Priority: PriorityHigh,
			Title:    "Late-session fade",
			Message: fmt.Sprintf("Your closing laps ran %.0f%% over your early baseline (%d laps fading). Endurance is the limiter right now.",
				deep.Fatigue.Index, deep.Fatigue.FadingLaps),
			Action: "Add one longer easy swim per week and shorten rest intervals gradually.",
		})
	} else if deep.Fatigue.Index < fatiguePraiseIndex {
		recs = append(recs, Recommendation{
			Category: "endurance",
			Priority: PriorityPositive,
			Title:    "Strong to the wall",
			Message:  "Almost no slowdown between your early and closing laps. Your endurance base is doing its job.",
			Action:   "You can afford a harder main set next time.",
		})
	}
	return recs
}

func comparativeRules(deep *DeepAnalysis) []Recommendation {
	if deep.VsBest == nil || deep.VsBest.ReferencePace <= 0 {
		return nil
	}

	cur := deep.Session.Pace
	pb := deep.VsBest.ReferencePace
	gap := Trend(cur, pb) // raw: positive means slower than PB

	var recs []Recommendation
	if gap > pbGapAlert {
		// Bridge a third of the gap at a time.
		targetPace := pb + (cur-pb)*0.3
		recs = append(recs, Recommendation{
			Category: "performance",
			Priority: PriorityMedium,
			Title:    "Close in on your best",
			Message: fmt.Sprintf("This swim was %d%% off your fastest pace (%s/100m). That gap closes in steps, not leaps.",
				gap, formatPace(pb)),
			Action: fmt.Sprintf("Target %s/100m on your next comparable swim.", formatPace(targetPace)),
		})
	} else if gap <= pbNearMiss {
		recs = append(recs, Recommendation{
			Category: "performance",
			Priority: PriorityPositive,
			Title:    "Knocking on your PB",
			Message:  fmt.Sprintf("Within %d%% of your fastest-ever pace. A good day and it falls.", gap),
			Action:   "Schedule a fresh, rested attempt at your best time this week.",
		})
	}
	return recs
}

func timingRule(deep *DeepAnalysis) []Recommendation {
	if deep.Patterns == nil {
		return nil
	}

	day := deep.Session.StartTimeLocal.Weekday().String()
	slot := TimeSlot(deep.Session.StartTimeLocal)

	bestDay := deep.Patterns.BestDay
	bestTime := deep.Patterns.BestTime
	if bestDay == "" && bestTime == "" {
		return nil
	}
	if (bestDay == "" || bestDay == day) && (bestTime == "" || bestTime == slot) {
		return nil
	}

	when := describeSlot(bestDay, bestTime)
	return []Recommendation{{
		Category: "schedule",
		Priority: PriorityLow,
		Title:    "Swim when you're fastest",
		Message:  fmt.Sprintf("Your history says you swim fastest on %s. This session was outside that window.", when),
		Action:   fmt.Sprintf("Try booking your key sessions for %s.", when),
	}}
}

func consistencyRule(deep *DeepAnalysis) []Recommendation {
	if deep.Pacing == nil || deep.Pacing.Strategy == PacingUnknown {
		return nil
	}
	if deep.Pacing.Consistency >= consistencyAlert {
		return nil
	}
	return []Recommendation{{
		Category: "technique",
		Priority: PriorityMedium,
		Title:    "Work on pace feel",
		Message: fmt.Sprintf("Pacing consistency scored %d/100. Swimmers who can hit a requested pace blind race far better.",
			deep.Pacing.Consistency),
		Action: "Add a set of 8x100m all at the same target pace, checking the clock only at the end of each.",
	}}
}

func streakRules(deep *DeepAnalysis) []Recommendation {
	switch {
	case deep.Streak.Current >= longStreakWeeks:
		return []Recommendation{{
			Category: "consistency",
			Priority: PriorityPositive,
			Title:    fmt.Sprintf("%d-week streak", deep.Streak.Current),
			Message: fmt.Sprintf("%d straight weeks in the water. Consistency like this is what moves every other number on this screen.",
				deep.Streak.Current),
			Action: "Protect the streak: even one short swim keeps a busy week alive.",
		}}
	case deep.Streak.Current >= buildingStreakWeeks:
		return []Recommendation{{
			Category: "consistency",
			Priority: PriorityPositive,
			Title:    "Streak building",
			Message: fmt.Sprintf("That's %d weeks in a row. Two more and this becomes a real habit.",
				deep.Streak.Current),
			Action: "Put next week's sessions in the calendar now.",
		}}
	}
	return nil
}

func momentumRules(sessions []store.Session, now time.Time) []Recommendation {
	momentum := ComputeMomentum(sessions, now)

	switch {
	case momentum.Trend == DirectionDown && momentum.Score < -momentumSwingPercent:
		return []Recommendation{{
			Category: "momentum",
			Priority: PriorityMedium,
			Title:    "Rebuild momentum",
			Message: fmt.Sprintf("Training momentum is down %d%% versus the previous month. The fastest fix is frequency, not heroics.",
				-momentum.Score),
			Action: "Schedule two easy swims this week before worrying about pace.",
		}}
	case momentum.Trend == DirectionUp && momentum.Score > momentumSwingPercent:
		return []Recommendation{{
			Category: "momentum",
			Priority: PriorityPositive,
			Title:    "Momentum is rolling",
			Message: fmt.Sprintf("Training momentum is up %d%% on the previous month. Ride it, but don't spend it all at once.",
				momentum.Score),
			Action: "Keep one genuinely easy swim per week so the build stays sustainable.",
		}}
	}
	return nil
}

func activityGapRules(deep *DeepAnalysis, sessions []store.Session, now time.Time) []Recommendation {
	var recs []Recommendation

	weekStart := WeekStart(now)
	thisWeek := 0
	for _, s := range sessions {
		if !s.StartTimeLocal.Before(weekStart) && !s.StartTime.After(now) {
			thisWeek++
		}
	}

	// "Wednesday or later" within a Monday-start week, so Sunday counts.
	wd := now.Weekday()
	if thisWeek == 0 && (wd == time.Sunday || wd >= time.Wednesday) {
		recs = append(recs, Recommendation{
			Category: "activity",
			Priority: PriorityMedium,
			Title:    "No swims yet this week",
			Message:  "The week is half gone with nothing logged. A short session today keeps the habit intact.",
			Action:   "Get in for 20-30 easy minutes today or tomorrow.",
		})
	}

	if deep.DaysSinceLast != nil {
		days := *deep.DaysSinceLast
		if days >= idleDaysNudge && deep.Patterns != nil &&
			(deep.Patterns.BestDay != "" || deep.Patterns.BestTime != "") {
			when := describeSlot(deep.Patterns.BestDay, deep.Patterns.BestTime)
			recs = append(recs, Recommendation{
				Category: "schedule",
				Priority: PriorityLow,
				Title:    "Book the next one",
				Message:  fmt.Sprintf("It's been %d days between swims. Your best window is %s.", days, when),
				Action:   fmt.Sprintf("Reserve a lane for %s.", when),
			})
		}
		if days >= idleDaysComeback {
			recs = append(recs, Recommendation{
				Category: "activity",
				Priority: PriorityMedium,
				Title:    "Ease back in",
				Message:  fmt.Sprintf("%d days off means the first swim back should be a gentle one.", days),
				Action:   "Swim 60-70% of your normal distance at a relaxed pace, then resume as usual.",
			})
		}
	}

	return recs
}

// describeSlot renders a best day/time pair as prose, tolerating
// either half being unknown.
func describeSlot(day, slot string) string {
	switch {
	case day != "" && slot != "":
		return fmt.Sprintf("%s %ss", day, slot)
	case day != "":
		return day
	default:
		return fmt.Sprintf("%ss", slot)
	}
}

// formatPace renders minutes-per-100m as m:ss.
func formatPace(pace float64) string {
	totalSeconds := int(pace*60 + 0.5)
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
