package store

import "time"

// Session represents a single recorded swim workout.
// Numeric fields that can be unknown use 0 as the "no value" marker:
// a pace or SWOLF of 0 is never treated as a real measurement.
type Session struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	StartTime      time.Time `db:"start_time"`       // UTC
	StartTimeLocal time.Time `db:"start_time_local"` // wall clock at the pool
	PoolLength     float64   `db:"pool_length"`      // meters
	Distance       float64   `db:"distance"`         // meters
	Duration       float64   `db:"duration"`         // minutes
	Pace           float64   `db:"pace"`             // minutes per 100m, 0 = unknown
	Swolf          float64   `db:"swolf"`            // strokes + seconds per length, 0 = unknown
	StrokeCount    int       `db:"stroke_count"`
	Calories       *int      `db:"calories"` // nullable
	Laps           []Lap
}

// Lap is one length-group split within a session. Any subset of the
// numeric fields may be zero; a lap is only usable for pacing analysis
// when a pace can be derived from what it carries.
type Lap struct {
	SessionID string  `db:"session_id"`
	LapIndex  int     `db:"lap_index"`
	Duration  float64 `db:"duration"` // minutes
	Distance  float64 `db:"distance"` // meters
	Pace      float64 `db:"pace"`     // minutes per 100m, 0 = unknown
}

// HasValidPace reports whether the session carries a usable pace value.
func (s *Session) HasValidPace() bool {
	return s.Pace > 0
}

// HasValidSwolf reports whether the session carries a usable SWOLF score.
func (s *Session) HasValidSwolf() bool {
	return s.Swolf > 0
}
