// Package postgres mirrors chat sessions into a shared PostgreSQL database.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/alexanderramin/courseadvisor/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ dialogue.Sink = (*Sink)(nil)

// Plan is one session row of course_plans.
type Plan struct {
	SessionID string
	Items     []domain.ScheduledCourse
	Filters   domain.FilterState
	UpdatedAt time.Time
}

// Sink upserts the cart and filters of one session.
type Sink struct {
	pool      *pgxpool.Pool
	sessionID string
}

// Connect opens a pool and checks that the server answers.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return pool, nil
}

func NewSink(pool *pgxpool.Pool, sessionID string) *Sink {
	return &Sink{pool: pool, sessionID: sessionID}
}

// EnsureSchema creates course_plans if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS course_plans (
			session_id TEXT PRIMARY KEY,
			items JSONB NOT NULL DEFAULT '[]',
			filters JSONB NOT NULL DEFAULT '{}',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_course_plans_updated_at ON course_plans (updated_at);
	`)
	if err != nil {
		return fmt.Errorf("creating course_plans: %w", err)
	}
	return nil
}

func (s *Sink) PersistCart(ctx context.Context, items []domain.ScheduledCourse) error {
	if items == nil {
		items = []domain.ScheduledCourse{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO course_plans (session_id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id) DO UPDATE SET
			items = EXCLUDED.items,
			updated_at = EXCLUDED.updated_at
	`, s.sessionID, data)
	if err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

func (s *Sink) PersistFilters(ctx context.Context, f domain.FilterState) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding filters: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO course_plans (session_id, filters, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id) DO UPDATE SET
			filters = EXCLUDED.filters,
			updated_at = EXCLUDED.updated_at
	`, s.sessionID, data)
	if err != nil {
		return fmt.Errorf("saving filters: %w", err)
	}
	return nil
}

// Load reads the plan of sessionID.
func Load(ctx context.Context, pool *pgxpool.Pool, sessionID string) (*Plan, error) {
	var (
		p                 = Plan{SessionID: sessionID}
		itemsRaw, filters []byte
	)
	err := pool.QueryRow(ctx, `
		SELECT items, filters, updated_at FROM course_plans WHERE session_id = $1
	`, sessionID).Scan(&itemsRaw, &filters, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("course plan %s: %w", sessionID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("loading course plan: %w", err)
	}
	if err := json.Unmarshal(itemsRaw, &p.Items); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	if err := json.Unmarshal(filters, &p.Filters); err != nil {
		return nil, fmt.Errorf("decoding filters: %w", err)
	}
	return &p, nil
}
