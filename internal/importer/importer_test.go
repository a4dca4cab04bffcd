package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"swimtracker/internal/store"
)

func openTestStore(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestImport(t *testing.T) {
	db := openTestStore(t)

	start := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	records := []FileSession{
		{
			ID:        "s1",
			Name:      "Morning swim",
			StartTime: start,
			Distance:  1500,
			Duration:  32,
			Pace:      2.13,
			Swolf:     38,
			Laps: []FileLap{
				{Duration: 2.1, Distance: 100},
				{Duration: 2.2, Distance: 100},
			},
		},
		{
			// No ID: one gets minted.
			Name:      "Lunch swim",
			StartTime: start.AddDate(0, 0, 1),
			Distance:  1000,
			Duration:  22,
			Pace:      -3, // malformed numeric, normalized to invalid
		},
		{
			// No start time: skipped.
			ID:       "broken",
			Distance: 500,
		},
	}

	result, err := Import(db, records)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}

	sessions, err := db.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("stored sessions = %d, want 2", len(sessions))
	}

	// Newest first: the lunch swim leads.
	lunch := sessions[0]
	if lunch.ID == "" {
		t.Error("minted ID is empty")
	}
	if lunch.Pace != 0 {
		t.Errorf("negative pace = %v, want normalized to 0", lunch.Pace)
	}

	morning := sessions[1]
	if morning.ID != "s1" {
		t.Errorf("ID = %q, want s1", morning.ID)
	}
	if len(morning.Laps) != 2 {
		t.Errorf("laps = %d, want 2", len(morning.Laps))
	}
}

func TestImportIsIdempotent(t *testing.T) {
	db := openTestStore(t)

	start := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	records := []FileSession{
		{ID: "s1", Name: "Swim", StartTime: start, Distance: 1000, Duration: 20, Pace: 2.0},
	}

	for i := 0; i < 2; i++ {
		if _, err := Import(db, records); err != nil {
			t.Fatalf("Import round %d failed: %v", i, err)
		}
	}

	count, err := db.CountSessions()
	if err != nil {
		t.Fatalf("CountSessions failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountSessions = %d, want 1 after re-import", count)
	}
}

func TestImportFile(t *testing.T) {
	db := openTestStore(t)

	path := filepath.Join(t.TempDir(), "log.json")
	payload := `[
		{"id": "f1", "name": "Swim", "start_time": "2025-03-10T07:00:00Z",
		 "distance": 1200, "duration": 25, "pace": 2.08,
		 "laps": [{"duration": 2.0, "distance": 100}]}
	]`
	if err := os.WriteFile(path, []byte(payload), 0600); err != nil {
		t.Fatalf("writing log: %v", err)
	}

	result, err := ImportFile(db, path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}

	s, err := db.GetSession("f1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(s.Laps) != 1 || s.Laps[0].Duration != 2.0 {
		t.Errorf("laps = %+v, want one 2.0-minute lap", s.Laps)
	}
}

func TestImportFileErrors(t *testing.T) {
	db := openTestStore(t)

	if _, err := ImportFile(db, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("want error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
		t.Fatalf("writing bad log: %v", err)
	}
	if _, err := ImportFile(db, bad); err == nil {
		t.Error("want error for malformed JSON")
	}
}
