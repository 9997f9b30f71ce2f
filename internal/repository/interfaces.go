package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// SavedSchedule is the last persisted cart of a session.
type SavedSchedule struct {
	SessionID    string
	Items        []domain.ScheduledCourse
	TotalCredits float64
	SavedAt      time.Time
}

type ScheduleSummary struct {
	SessionID    string
	ItemCount    int
	TotalCredits float64
	SavedAt      time.Time
}

type LogKind string

const (
	LogTurn    LogKind = "turn"
	LogFailure LogKind = "failure"
)

// LogEntry is one row of the dialogue log. Seq is the turn number for turns
// and the failure count for failures.
type LogEntry struct {
	ID        string
	SessionID string
	Kind      LogKind
	Seq       int
	Reason    string
	Utterance string
	CreatedAt time.Time
}

type LogCounts struct {
	Turns    int
	Failures int
}

type ScheduleRepo interface {
	// Replace overwrites the saved cart of a session. Callers run it inside
	// a UnitOfWork.
	Replace(ctx context.Context, sessionID string, items []domain.ScheduledCourse) error
	Get(ctx context.Context, sessionID string) (*SavedSchedule, error)
	LatestSessionID(ctx context.Context) (string, error)
	ListSessions(ctx context.Context) ([]ScheduleSummary, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteAll(ctx context.Context) (int, error)
}

type FilterRepo interface {
	Upsert(ctx context.Context, sessionID string, f domain.FilterState) error
	Get(ctx context.Context, sessionID string) (domain.FilterState, error)
}

type DialogueLogRepo interface {
	Append(ctx context.Context, e *LogEntry) error
	// ListBySession returns the newest limit entries in chronological order.
	// A limit of 0 returns everything.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]LogEntry, error)
	Counts(ctx context.Context, sessionID string) (LogCounts, error)
}
