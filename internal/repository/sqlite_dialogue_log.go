package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/db"
	"github.com/google/uuid"
)

type SQLiteDialogueLogRepo struct {
	db db.DBTX
}

// NewSQLiteDialogueLogRepo creates a new SQLiteDialogueLogRepo.
func NewSQLiteDialogueLogRepo(conn db.DBTX) *SQLiteDialogueLogRepo {
	return &SQLiteDialogueLogRepo{db: conn}
}

// Append stores e, filling in ID and CreatedAt when they are empty.
func (r *SQLiteDialogueLogRepo) Append(ctx context.Context, e *LogEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO dialogue_log (id, session_id, kind, seq, reason, utterance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, string(e.Kind), e.Seq, e.Reason, e.Utterance, formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting dialogue log entry: %w", err)
	}
	return nil
}

func (r *SQLiteDialogueLogRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]LogEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	const cols = `id, session_id, kind, seq, reason, utterance, created_at`
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, `SELECT `+cols+` FROM (
				SELECT `+cols+`, rowid AS rid FROM dialogue_log WHERE session_id = ?
				ORDER BY created_at DESC, rid DESC LIMIT ?
			) ORDER BY created_at, rid`, sessionID, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+cols+` FROM dialogue_log
			WHERE session_id = ? ORDER BY created_at, rowid`, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing dialogue log: %w", err)
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var (
			e         LogEntry
			kind      string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.Seq, &e.Reason, &e.Utterance, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning dialogue log entry: %w", err)
		}
		e.Kind = LogKind(kind)
		e.CreatedAt = parseTime(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteDialogueLogRepo) Counts(ctx context.Context, sessionID string) (LogCounts, error) {
	var c LogCounts
	err := r.db.QueryRowContext(ctx, `SELECT
			COALESCE(SUM(CASE WHEN kind = 'turn' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'failure' THEN 1 ELSE 0 END), 0)
		FROM dialogue_log WHERE session_id = ?`, sessionID).Scan(&c.Turns, &c.Failures)
	if err != nil {
		return LogCounts{}, fmt.Errorf("counting dialogue log: %w", err)
	}
	return c, nil
}
