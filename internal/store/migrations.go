package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Swim sessions
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			start_time TEXT NOT NULL,
			start_time_local TEXT NOT NULL,
			pool_length REAL,
			distance REAL NOT NULL,
			duration REAL NOT NULL,
			pace REAL,
			swolf REAL,
			stroke_count INTEGER,
			calories INTEGER,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_start_time ON sessions(start_time)`,

		// Per-session lap splits
		`CREATE TABLE IF NOT EXISTS laps (
			session_id TEXT NOT NULL,
			lap_index INTEGER NOT NULL,
			duration REAL,
			distance REAL,
			pace REAL,
			PRIMARY KEY (session_id, lap_index),
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_laps_session ON laps(session_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
