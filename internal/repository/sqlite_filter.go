package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/courseadvisor/internal/db"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

type SQLiteFilterRepo struct {
	db db.DBTX
}

// NewSQLiteFilterRepo creates a new SQLiteFilterRepo.
func NewSQLiteFilterRepo(conn db.DBTX) *SQLiteFilterRepo {
	return &SQLiteFilterRepo{db: conn}
}

func (r *SQLiteFilterRepo) Upsert(ctx context.Context, sessionID string, f domain.FilterState) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO filter_states (session_id, period, credits, programme, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			period = excluded.period,
			credits = excluded.credits,
			programme = excluded.programme,
			updated_at = excluded.updated_at`,
		sessionID, f.Period, f.Credits, f.Programme, nowUTC())
	if err != nil {
		return fmt.Errorf("upserting filter state: %w", err)
	}
	return nil
}

func (r *SQLiteFilterRepo) Get(ctx context.Context, sessionID string) (domain.FilterState, error) {
	var f domain.FilterState
	err := r.db.QueryRowContext(ctx, `SELECT period, credits, programme FROM filter_states WHERE session_id = ?`, sessionID).
		Scan(&f.Period, &f.Credits, &f.Programme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FilterState{}, fmt.Errorf("filter state %s: %w", sessionID, ErrNotFound)
		}
		return domain.FilterState{}, fmt.Errorf("scanning filter state: %w", err)
	}
	return f, nil
}
