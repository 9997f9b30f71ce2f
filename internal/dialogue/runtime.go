package dialogue

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Runtime feeds events into a Machine and performs the resulting effects.
// It is not safe for concurrent use; one utterance is handled to completion
// before the next is accepted.
type Runtime struct {
	machine    *Machine
	classifier Classifier
	conv       Conversation
	sink       Sink
	diag       Diagnostics
	logger     zerolog.Logger

	timer      time.Duration
	timerArmed bool
}

// NewRuntime wires m to its collaborators. Utterances are classified with
// classifier before they reach the machine.
func NewRuntime(m *Machine, classifier Classifier, conv Conversation, sink Sink, diag Diagnostics, logger zerolog.Logger) *Runtime {
	if sink == nil {
		sink = NopSink{}
	}
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &Runtime{
		machine:    m,
		classifier: classifier,
		conv:       conv,
		sink:       sink,
		diag:       diag,
		logger:     logger.With().Str("component", "dialogue").Logger(),
	}
}

func (r *Runtime) Machine() *Machine { return r.machine }

// Done reports whether the session reached Terminal.
func (r *Runtime) Done() bool { return r.machine.State().IsTerminal() }

func (r *Runtime) Start(ctx context.Context) error {
	return r.Deliver(ctx, Event{Kind: EventUserPresent})
}

// Utter classifies text and delivers it. Blank text is delivered as silence.
func (r *Runtime) Utter(ctx context.Context, text string) error {
	return r.Deliver(ctx, r.classifier.Classify(text))
}

// Timeout delivers the expiry of the Waiting timer.
func (r *Runtime) Timeout(ctx context.Context) error {
	return r.Deliver(ctx, Event{Kind: EventTimeout})
}

// PendingTimer reports a timer requested by the last transition and clears
// the request. The caller delivers Timeout when it fires.
func (r *Runtime) PendingTimer() (time.Duration, bool) {
	d, ok := r.timer, r.timerArmed
	r.timer, r.timerArmed = 0, false
	return d, ok
}

func (r *Runtime) Deliver(ctx context.Context, ev Event) error {
	if r.Done() {
		return ErrSessionEnded
	}
	from := r.machine.State()
	effects := r.machine.Handle(ev)
	to := r.machine.State()
	if from != to {
		r.logger.Debug().
			Str("from", from.String()).
			Str("to", to.String()).
			Str("event", string(ev.Kind)).
			Msg("state transition")
	}
	for _, e := range effects {
		r.perform(ctx, e)
	}
	if to != StateWaiting {
		r.timer, r.timerArmed = 0, false
	}
	return nil
}

func (r *Runtime) perform(ctx context.Context, e Effect) {
	switch e.Kind {
	case EffectAsk:
		r.conv.Ask(e.Text)
	case EffectSay:
		r.conv.Say(e.Text)
	case EffectGesture:
		r.conv.Gesture(e.Gesture)
	case EffectListen:
		r.conv.Listen()
	case EffectPersistCart:
		if err := r.sink.PersistCart(ctx, e.Cart); err != nil {
			r.persistFailed(ctx, "cart", err)
		}
	case EffectPersistFilters:
		if err := r.sink.PersistFilters(ctx, e.Filters); err != nil {
			r.persistFailed(ctx, "filters", err)
		}
	case EffectRecordTurn:
		r.logger.Info().Int("turn", e.Count).Str("utterance", e.Text).Msg("dialogue turn")
		if err := r.diag.RecordTurn(ctx, e.Count, e.Text); err != nil {
			r.logger.Warn().Err(err).Msg("record turn")
		}
	case EffectRecordFailure:
		r.logger.Info().Int("failure", e.Count).Str("reason", e.Reason).Str("utterance", e.Text).Msg("dialogue failure")
		if err := r.diag.RecordFailure(ctx, e.Count, e.Reason, e.Text); err != nil {
			r.logger.Warn().Err(err).Msg("record failure")
		}
	case EffectStartTimer:
		r.timer, r.timerArmed = e.Delay, true
	case EffectEnd:
		r.logger.Info().Int("turns", r.machine.Turns()).Int("failures", r.machine.Failures()).Msg("session ended")
	}
}

func (r *Runtime) persistFailed(ctx context.Context, sink string, err error) {
	r.logger.Error().Err(err).Str("sink", sink).Msg("persistence failure")
	n := r.machine.countFailure()
	if derr := r.diag.RecordFailure(ctx, n, "persistence failure", err.Error()); derr != nil {
		r.logger.Warn().Err(derr).Msg("record failure")
	}
}

// Run drives a session from a stream of input lines until Terminal, the
// input closes or ctx is cancelled. The Waiting timeout is armed with a
// time.Timer.
func (r *Runtime) Run(ctx context.Context, lines <-chan string) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	var (
		timer   *time.Timer
		expired <-chan time.Time
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
		timer, expired = nil, nil
	}
	defer stop()

	for !r.Done() {
		if d, ok := r.PendingTimer(); ok {
			stop()
			timer = time.NewTimer(d)
			expired = timer.C
		} else if r.machine.State() != StateWaiting {
			stop()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := r.Utter(ctx, line); err != nil {
				return err
			}
		case <-expired:
			timer, expired = nil, nil
			if err := r.Timeout(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
