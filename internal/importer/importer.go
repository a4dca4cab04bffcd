// Package importer loads exported swim session logs into the store.
// The log format is a JSON array of session records, newest or oldest
// first; ordering is irrelevant since the store sorts on read.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"swimtracker/internal/store"
)

// FileSession is one session record in an exported log
type FileSession struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartTime   time.Time `json:"start_time"`
	Timezone    string    `json:"timezone"`
	PoolLength  float64   `json:"pool_length"`
	Distance    float64   `json:"distance"`
	Duration    float64   `json:"duration"`
	Pace        float64   `json:"pace"`
	Swolf       float64   `json:"swolf"`
	StrokeCount int       `json:"stroke_count"`
	Calories    *int      `json:"calories"`
	Laps        []FileLap `json:"laps"`
}

// FileLap is one lap split in an exported log
type FileLap struct {
	Duration float64 `json:"duration"`
	Distance float64 `json:"distance"`
	Pace     float64 `json:"pace"`
}

// Result summarizes an import run
type Result struct {
	Imported int
	Skipped  int
}

// ImportFile reads a JSON session log and upserts its contents.
// Records without an ID get one minted; records without a start time
// are skipped rather than rejected wholesale.
func ImportFile(db *store.DB, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session log: %w", err)
	}

	var fileSessions []FileSession
	if err := json.Unmarshal(data, &fileSessions); err != nil {
		return nil, fmt.Errorf("parsing session log: %w", err)
	}

	return Import(db, fileSessions)
}

// Import upserts the given records into the store
func Import(db *store.DB, fileSessions []FileSession) (*Result, error) {
	result := &Result{}

	for _, fs := range fileSessions {
		if fs.StartTime.IsZero() {
			result.Skipped++
			continue
		}

		s := toSession(fs)
		if err := db.UpsertSession(&s); err != nil {
			return result, fmt.Errorf("storing session %s: %w", s.ID, err)
		}
		if err := db.ReplaceLaps(s.ID, s.Laps); err != nil {
			return result, fmt.Errorf("storing laps for %s: %w", s.ID, err)
		}
		result.Imported++
	}

	return result, nil
}

// toSession maps a log record onto the store model, normalizing
// negative numerics to the "no value" zero marker.
func toSession(fs FileSession) store.Session {
	id := fs.ID
	if id == "" {
		id = uuid.NewString()
	}

	local := fs.StartTime
	if fs.Timezone != "" {
		if loc, err := time.LoadLocation(fs.Timezone); err == nil {
			local = fs.StartTime.In(loc)
		}
	}

	s := store.Session{
		ID:             id,
		Name:           fs.Name,
		StartTime:      fs.StartTime.UTC(),
		StartTimeLocal: local,
		PoolLength:     nonNegative(fs.PoolLength),
		Distance:       nonNegative(fs.Distance),
		Duration:       nonNegative(fs.Duration),
		Pace:           nonNegative(fs.Pace),
		Swolf:          nonNegative(fs.Swolf),
		StrokeCount:    fs.StrokeCount,
		Calories:       fs.Calories,
	}
	if s.Name == "" {
		s.Name = "Swim"
	}

	for i, fl := range fs.Laps {
		s.Laps = append(s.Laps, store.Lap{
			SessionID: id,
			LapIndex:  i,
			Duration:  nonNegative(fl.Duration),
			Distance:  nonNegative(fl.Distance),
			Pace:      nonNegative(fl.Pace),
		})
	}

	return s
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
