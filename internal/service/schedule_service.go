package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/db"
	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/alexanderramin/courseadvisor/internal/repository"
)

// ResumedSession is what a chat needs to pick up a saved session.
type ResumedSession struct {
	SessionID string
	Items     []domain.ScheduledCourse
	Filters   domain.FilterState
	SavedAt   time.Time
}

// ScheduleService answers questions about saved schedules for the CLI.
type ScheduleService struct {
	schedules repository.ScheduleRepo
	filters   repository.FilterRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(schedules repository.ScheduleRepo, filters repository.FilterRepo, uow db.UnitOfWork, observers ...UseCaseObserver) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		filters:   filters,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Resume loads a saved session, or the most recent one when sessionID is
// empty. Missing filters are not an error.
func (s *ScheduleService) Resume(ctx context.Context, sessionID string) (*ResumedSession, error) {
	if sessionID == "" {
		latest, err := s.schedules.LatestSessionID(ctx)
		if err != nil {
			return nil, err
		}
		sessionID = latest
	}
	saved, err := s.schedules.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	filters, err := s.filters.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading filters: %w", err)
	}
	return &ResumedSession{
		SessionID: saved.SessionID,
		Items:     saved.Items,
		Filters:   filters,
		SavedAt:   saved.SavedAt,
	}, nil
}

func (s *ScheduleService) List(ctx context.Context) ([]repository.ScheduleSummary, error) {
	return s.schedules.ListSessions(ctx)
}

// Reset deletes every saved schedule and returns how many there were.
func (s *ScheduleService) Reset(ctx context.Context) (n int, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "reset-schedules", startedAt, map[string]any{"deleted": n}, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		n, txErr = repository.NewSQLiteScheduleRepo(tx).DeleteAll(ctx)
		return txErr
	})
	return n, err
}
