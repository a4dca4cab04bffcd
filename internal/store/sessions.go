package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertSession inserts or updates a session summary row.
// Laps are stored separately via ReplaceLaps.
func (db *DB) UpsertSession(s *Session) error {
	_, err := db.Exec(`
		INSERT INTO sessions (
			id, name, start_time, start_time_local, pool_length,
			distance, duration, pace, swolf, stroke_count, calories, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_time = excluded.start_time,
			start_time_local = excluded.start_time_local,
			pool_length = excluded.pool_length,
			distance = excluded.distance,
			duration = excluded.duration,
			pace = excluded.pace,
			swolf = excluded.swolf,
			stroke_count = excluded.stroke_count,
			calories = excluded.calories,
			updated_at = CURRENT_TIMESTAMP
	`,
		s.ID, s.Name,
		s.StartTime.Format(time.RFC3339), s.StartTimeLocal.Format(time.RFC3339),
		s.PoolLength, s.Distance, s.Duration, s.Pace, s.Swolf,
		s.StrokeCount, s.Calories,
	)
	return err
}

// ReplaceLaps replaces all laps for a session with the given set
func (db *DB) ReplaceLaps(sessionID string, laps []Lap) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM laps WHERE session_id = ?`, sessionID); err != nil {
		return err
	}

	for i, lap := range laps {
		_, err := tx.Exec(`
			INSERT INTO laps (session_id, lap_index, duration, distance, pace)
			VALUES (?, ?, ?, ?, ?)
		`, sessionID, i, lap.Duration, lap.Distance, lap.Pace)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSession retrieves a session by ID, laps included
func (db *DB) GetSession(id string) (*Session, error) {
	row := db.QueryRow(`
		SELECT id, name, start_time, start_time_local, pool_length,
			distance, duration, pace, swolf, stroke_count, calories
		FROM sessions
		WHERE id = ?
	`, id)

	s, err := scanSession(row)
	if err != nil {
		return nil, err
	}

	laps, err := db.getLaps(id)
	if err != nil {
		return nil, err
	}
	s.Laps = laps

	return s, nil
}

// ListSessions returns all sessions ordered by start time descending,
// laps attached. The analysis engine expects newest-first input.
func (db *DB) ListSessions() ([]Session, error) {
	rows, err := db.Query(`
		SELECT id, name, start_time, start_time_local, pool_length,
			distance, duration, pace, swolf, stroke_count, calories
		FROM sessions
		ORDER BY start_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach laps per session. Session counts are small enough that a
	// query per session beats maintaining a join scanner.
	for i := range sessions {
		laps, err := db.getLaps(sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Laps = laps
	}

	return sessions, nil
}

// CountSessions returns the total number of stored sessions
func (db *DB) CountSessions() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}

// DeleteSession removes a session and its laps
func (db *DB) DeleteSession(id string) error {
	result, err := db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// getLaps returns the laps for a session ordered by lap index
func (db *DB) getLaps(sessionID string) ([]Lap, error) {
	rows, err := db.Query(`
		SELECT session_id, lap_index, duration, distance, pace
		FROM laps
		WHERE session_id = ?
		ORDER BY lap_index
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var laps []Lap
	for rows.Next() {
		var l Lap
		if err := rows.Scan(&l.SessionID, &l.LapIndex, &l.Duration, &l.Distance, &l.Pace); err != nil {
			return nil, err
		}
		laps = append(laps, l)
	}
	return laps, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanSession
type scanner interface {
	Scan(dest ...any) error
}

// scanSession scans a session row into a Session
func scanSession(row scanner) (*Session, error) {
	var s Session
	var startTime, startTimeLocal string

	err := row.Scan(
		&s.ID, &s.Name, &startTime, &startTimeLocal, &s.PoolLength,
		&s.Distance, &s.Duration, &s.Pace, &s.Swolf, &s.StrokeCount, &s.Calories,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	s.StartTime, err = time.Parse(time.RFC3339, startTime)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.StartTimeLocal, err = time.Parse(time.RFC3339, startTimeLocal)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time_local: %w", err)
	}

	return &s, nil
}
