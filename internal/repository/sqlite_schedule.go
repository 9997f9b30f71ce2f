package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/courseadvisor/internal/db"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

func (r *SQLiteScheduleRepo) Replace(ctx context.Context, sessionID string, items []domain.ScheduledCourse) error {
	var total float64
	for _, it := range items {
		total += it.Credits
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO saved_schedules (session_id, item_count, total_credits, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			item_count = excluded.item_count,
			total_credits = excluded.total_credits,
			saved_at = excluded.saved_at`,
		sessionID, len(items), total, nowUTC())
	if err != nil {
		return fmt.Errorf("upserting saved schedule: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_items WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing schedule items: %w", err)
	}
	for i, it := range items {
		_, err := r.db.ExecContext(ctx, `INSERT INTO schedule_items (session_id, position, code, name, credits, period)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, i, it.Code, it.Name, it.Credits, string(it.Period))
		if err != nil {
			return fmt.Errorf("inserting schedule item %s: %w", it.Code, err)
		}
	}
	return nil
}

func (r *SQLiteScheduleRepo) Get(ctx context.Context, sessionID string) (*SavedSchedule, error) {
	row := r.db.QueryRowContext(ctx, `SELECT session_id, item_count, total_credits, saved_at
		FROM saved_schedules WHERE session_id = ?`, sessionID)
	sum, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("saved schedule %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning saved schedule: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT code, name, credits, period
		FROM schedule_items WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule items: %w", err)
	}
	defer rows.Close()

	s := &SavedSchedule{
		SessionID:    sum.SessionID,
		TotalCredits: sum.TotalCredits,
		SavedAt:      sum.SavedAt,
		Items:        make([]domain.ScheduledCourse, 0, sum.ItemCount),
	}
	for rows.Next() {
		var (
			it     domain.ScheduledCourse
			period string
		)
		if err := rows.Scan(&it.Code, &it.Name, &it.Credits, &period); err != nil {
			return nil, fmt.Errorf("scanning schedule item: %w", err)
		}
		it.Period = domain.Period(period)
		s.Items = append(s.Items, it)
	}
	return s, rows.Err()
}

func (r *SQLiteScheduleRepo) LatestSessionID(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT session_id FROM saved_schedules
		ORDER BY saved_at DESC, rowid DESC LIMIT 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("latest saved schedule: %w", ErrNotFound)
		}
		return "", fmt.Errorf("querying latest saved schedule: %w", err)
	}
	return id, nil
}

func (r *SQLiteScheduleRepo) ListSessions(ctx context.Context) ([]ScheduleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT session_id, item_count, total_credits, saved_at
		FROM saved_schedules ORDER BY saved_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing saved schedules: %w", err)
	}
	defer rows.Close()

	var out []ScheduleSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning saved schedule: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_schedules WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting saved schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("saved schedule %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteScheduleRepo) DeleteAll(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_schedules`)
	if err != nil {
		return 0, fmt.Errorf("deleting saved schedules: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted schedules: %w", err)
	}
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(s scanner) (ScheduleSummary, error) {
	var (
		sum     ScheduleSummary
		savedAt string
	)
	if err := s.Scan(&sum.SessionID, &sum.ItemCount, &sum.TotalCredits, &savedAt); err != nil {
		return ScheduleSummary{}, err
	}
	sum.SavedAt = parseTime(savedAt)
	return sum, nil
}
