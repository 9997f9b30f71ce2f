package dialogue

import (
	"context"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// Conversation is the speech or text front end. Calls are fire-and-forget;
// the reply arrives later as a separate event.
type Conversation interface {
	Ask(prompt string)
	Say(prompt string)
	Gesture(g Gesture)
	Listen()
}

// Sink receives cart and filter snapshots. A failed write is reported but
// never rolls back the in-memory state.
type Sink interface {
	PersistCart(ctx context.Context, items []domain.ScheduledCourse) error
	PersistFilters(ctx context.Context, filters domain.FilterState) error
}

// Diagnostics is the append-only turn and failure log.
type Diagnostics interface {
	RecordTurn(ctx context.Context, turn int, utterance string) error
	RecordFailure(ctx context.Context, count int, reason, utterance string) error
}

// Classifier turns a raw utterance into an event.
type Classifier interface {
	Classify(text string) Event
}

// NopSink discards every snapshot.
type NopSink struct{}

func (NopSink) PersistCart(context.Context, []domain.ScheduledCourse) error { return nil }
func (NopSink) PersistFilters(context.Context, domain.FilterState) error    { return nil }

// NopDiagnostics discards every record.
type NopDiagnostics struct{}

func (NopDiagnostics) RecordTurn(context.Context, int, string) error            { return nil }
func (NopDiagnostics) RecordFailure(context.Context, int, string, string) error { return nil }
