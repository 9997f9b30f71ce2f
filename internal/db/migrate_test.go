package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"saved_schedules", "schedule_items", "filter_states", "dialogue_log"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_schedule_items_session", "idx_saved_schedules_saved_at", "idx_dialogue_log_session"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsTotalCreditsColumn(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO saved_schedules (session_id, item_count, saved_at, total_credits) VALUES ('s1', 0, '2026-01-01T00:00:00Z', 7.5)`)
	require.NoError(t, err)

	var total float64
	require.NoError(t, db.QueryRow(`SELECT total_credits FROM saved_schedules WHERE session_id = 's1'`).Scan(&total))
	assert.Equal(t, 7.5, total)
}

func TestMigrate_BackfillsTotals(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO saved_schedules (session_id, item_count, saved_at) VALUES ('s1', 2, '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO schedule_items (session_id, position, code, name, credits, period) VALUES
		('s1', 0, 'DD2424', 'Deep Learning', 7.5, 'P2'),
		('s1', 1, 'DT2212', 'Music Acoustics', 6, 'P3')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var total float64
	require.NoError(t, db.QueryRow(`SELECT total_credits FROM saved_schedules WHERE session_id = 's1'`).Scan(&total))
	assert.Equal(t, 13.5, total)
}

func TestSchema_RejectsUnknownPeriod(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO saved_schedules (session_id, saved_at) VALUES ('s1', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO schedule_items (session_id, position, code, name, period) VALUES ('s1', 0, 'X', 'Y', 'P9')`)
	assert.Error(t, err)
}

func TestSchema_CascadesItemsOnDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO saved_schedules (session_id, saved_at) VALUES ('s1', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO schedule_items (session_id, position, code, name, period) VALUES ('s1', 0, 'X', 'Y', 'P1')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM saved_schedules WHERE session_id = 's1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schedule_items`).Scan(&n))
	assert.Zero(t, n)
}
