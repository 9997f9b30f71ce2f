package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/courseadvisor/internal/cart"
	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/alexanderramin/courseadvisor/internal/export"
	"github.com/alexanderramin/courseadvisor/internal/nlu"
	"github.com/alexanderramin/courseadvisor/internal/postgres"
	"github.com/alexanderramin/courseadvisor/internal/repository"
	"github.com/alexanderramin/courseadvisor/internal/service"
	"github.com/google/uuid"
)

// chatSession is the identity and starting cart of one chat.
type chatSession struct {
	id   string
	cart *cart.Cart
	note string
}

// openSession picks the session a chat writes to. An explicit ID continues
// that session (or starts it when unknown); resume continues the latest one.
func (a *App) openSession(ctx context.Context, sessionID string, resume bool) (chatSession, error) {
	s := chatSession{id: sessionID, cart: cart.New(a.Config.UndoDepth)}
	if sessionID == "" && !resume {
		s.id = uuid.New().String()
		return s, nil
	}

	saved, err := a.Schedules.Resume(ctx, sessionID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if s.id == "" {
			s.id = uuid.New().String()
			s.note = "No saved schedule to resume; starting a new session."
		}
		return s, nil
	case err != nil:
		return chatSession{}, fmt.Errorf("resuming session: %w", err)
	}

	s.id = saved.SessionID
	s.cart.Restore(saved.Items)
	s.note = fmt.Sprintf("Resumed session %s with %d courses.", saved.SessionID, len(saved.Items))
	return s, nil
}

// newRuntime wires a dialogue runtime for s. Every configured store receives
// the cart and filter snapshots.
func (a *App) newRuntime(s chatSession, conv dialogue.Conversation) (*dialogue.Runtime, error) {
	sinks := []dialogue.Sink{
		service.NewScheduleStore(s.id, a.UoW, service.NewLogUseCaseObserver(a.Logger)),
	}
	if dir := a.Config.DisplayDir; dir != "" {
		display, err := export.NewDisplaySink(dir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, display)
	}
	if a.Postgres != nil {
		sinks = append(sinks, postgres.NewSink(a.Postgres, s.id))
	}

	machine := dialogue.NewMachine(a.Resolver, s.cart,
		cart.OverloadPolicy{Threshold: a.Config.OverloadThreshold},
		dialogue.Options{WaitTimeout: a.Config.WaitTimeout})

	return dialogue.NewRuntime(
		machine,
		nlu.New(nlu.WithCourseMatcher(a.Resolver)),
		conv,
		service.NewFanoutSink(sinks...),
		service.NewDiagnosticsRecorder(s.id, a.Logs),
		a.Logger.With().Str("session", s.id).Logger(),
	), nil
}
