package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every statement in migrations. Statements are written to
// be re-runnable; an ALTER TABLE that finds its column already present is
// skipped.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := backfillTotals(db); err != nil {
		return fmt.Errorf("backfilling schedule totals: %w", err)
	}
	return nil
}

// backfillTotals fills total_credits for schedules saved before the column
// existed.
func backfillTotals(db *sql.DB) error {
	_, err := db.Exec(`UPDATE saved_schedules
		SET total_credits = (
			SELECT COALESCE(SUM(credits), 0) FROM schedule_items
			WHERE schedule_items.session_id = saved_schedules.session_id
		)
		WHERE total_credits = 0 AND item_count > 0`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS saved_schedules (
		session_id TEXT PRIMARY KEY,
		item_count INTEGER NOT NULL DEFAULT 0,
		saved_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_items (
		session_id TEXT NOT NULL REFERENCES saved_schedules(session_id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		code       TEXT NOT NULL,
		name       TEXT NOT NULL,
		credits    REAL NOT NULL DEFAULT 0 CHECK(credits >= 0),
		period     TEXT NOT NULL CHECK(period IN ('P1','P2','P3','P4')),
		PRIMARY KEY (session_id, position),
		UNIQUE (session_id, code)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_items_session ON schedule_items(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_schedules_saved_at ON saved_schedules(saved_at)`,

	`CREATE TABLE IF NOT EXISTS filter_states (
		session_id TEXT PRIMARY KEY,
		period     TEXT NOT NULL DEFAULT '',
		credits    TEXT NOT NULL DEFAULT '',
		programme  TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS dialogue_log (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		kind       TEXT NOT NULL CHECK(kind IN ('turn','failure')),
		seq        INTEGER NOT NULL,
		reason     TEXT NOT NULL DEFAULT '',
		utterance  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dialogue_log_session ON dialogue_log(session_id, created_at)`,

	`ALTER TABLE saved_schedules ADD COLUMN total_credits REAL NOT NULL DEFAULT 0`,
}
