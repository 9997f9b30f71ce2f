package service

import (
	"context"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/db"
	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/alexanderramin/courseadvisor/internal/repository"
)

var _ dialogue.Sink = (*ScheduleStore)(nil)

// ScheduleStore persists the cart and filters of one chat session to SQLite.
type ScheduleStore struct {
	sessionID string
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

// NewScheduleStore binds a store to sessionID. Without observers, use cases
// go unobserved.
func NewScheduleStore(sessionID string, uow db.UnitOfWork, observers ...UseCaseObserver) *ScheduleStore {
	return &ScheduleStore{
		sessionID: sessionID,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *ScheduleStore) SessionID() string { return s.sessionID }

// PersistCart replaces the saved schedule of the session in one transaction.
func (s *ScheduleStore) PersistCart(ctx context.Context, items []domain.ScheduledCourse) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "persist-cart", startedAt, map[string]any{
			"session": s.sessionID,
			"items":   len(items),
		}, err)
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteScheduleRepo(tx).Replace(ctx, s.sessionID, items)
	})
}

func (s *ScheduleStore) PersistFilters(ctx context.Context, f domain.FilterState) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "persist-filters", startedAt, map[string]any{
			"session": s.sessionID,
		}, err)
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteFilterRepo(tx).Upsert(ctx, s.sessionID, f)
	})
}
