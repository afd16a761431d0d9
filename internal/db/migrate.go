package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; every statement is idempotent so the
// whole list can re-run on startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS meetings (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		title           TEXT NOT NULL,
		duration_min    INTEGER NOT NULL CHECK(duration_min > 0),
		meeting_type    TEXT NOT NULL
		                CHECK(meeting_type IN ('collaborative','deep_work','routine','creative','administrative')),
		participants    TEXT NOT NULL DEFAULT '',
		priority        INTEGER NOT NULL CHECK(priority BETWEEN 1 AND 10),
		flexibility     TEXT NOT NULL CHECK(flexibility IN ('low','medium','high')),
		scheduled_start TEXT,
		scheduled_end   TEXT,
		scheduled_score REAL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_user ON meetings(user_id)`,

	`CREATE TABLE IF NOT EXISTS calendar_blocks (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		start_at   TEXT NOT NULL,
		end_at     TEXT NOT NULL,
		block_type TEXT NOT NULL
		           CHECK(block_type IN ('no_meeting_day','existing_booking','focus_time','personal_time')),
		reason     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blocks_user_window ON calendar_blocks(user_id, start_at, end_at)`,

	`CREATE TABLE IF NOT EXISTS no_meeting_rules (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		weekday    INTEGER NOT NULL CHECK(weekday BETWEEN 0 AND 6),
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		UNIQUE(user_id, weekday)
	)`,

	`CREATE TABLE IF NOT EXISTS energy_samples (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		level       REAL NOT NULL CHECK(level BETWEEN 0 AND 100)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_energy_user_time ON energy_samples(user_id, recorded_at)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
