// Package dialogue implements the course planning conversation as an
// explicit state machine. Machine is the pure core: it consumes one Event at
// a time and returns the Effects to perform. Runtime executes those effects
// against the conversation, persistence and diagnostics collaborators.
package dialogue

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/cart"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// ErrSessionEnded is returned when an event is delivered after the session
// reached StateTerminal.
var ErrSessionEnded = errors.New("dialogue session ended")

// DefaultWaitTimeout is how long Waiting listens before falling back to Idle.
const DefaultWaitTimeout = 2 * time.Minute

// Resolver maps a course mention to a catalog record.
type Resolver interface {
	Resolve(query string) (domain.CourseRecord, bool)
}

// Options tune a Machine. Zero values fall back to defaults.
type Options struct {
	WaitTimeout time.Duration
	// Pick returns an index in [0, n). It selects the main planning opener.
	Pick func(n int) int
}

// Pending is the candidate a confirmation state is asking about. Record is
// only set for adds.
type Pending struct {
	Record domain.CourseRecord
	Entry  domain.ScheduledCourse
	Check  cart.OverloadCheck
}

// Machine is the pure transition core of a session. Handle consumes one
// event and returns the effects to perform; it does no I/O itself.
type Machine struct {
	state    State
	resolver Resolver
	cart     *cart.Cart
	policy   cart.OverloadPolicy
	filters  domain.FilterState
	opts     Options

	pending    Pending
	hasPending bool
	guidedInit bool

	turns    int
	failures int

	out    []Effect
	failed bool
}

// NewMachine creates a machine in Idle. A nil cart starts empty and a policy
// without a positive threshold uses the default overload threshold.
func NewMachine(r Resolver, c *cart.Cart, policy cart.OverloadPolicy, opts Options) *Machine {
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = DefaultWaitTimeout
	}
	if opts.Pick == nil {
		opts.Pick = rand.Intn
	}
	if c == nil {
		c = cart.New(cart.DefaultUndoDepth)
	}
	if policy.Threshold <= 0 {
		policy = cart.DefaultOverloadPolicy()
	}
	return &Machine{
		state:    StateIdle,
		resolver: r,
		cart:     c,
		policy:   policy,
		opts:     opts,
	}
}

func (m *Machine) State() State { return m.state }

// Cart exposes the live cart. Callers must not mutate it while a session is
// running.
func (m *Machine) Cart() *cart.Cart { return m.cart }

func (m *Machine) Filters() domain.FilterState { return m.filters }

func (m *Machine) Pending() (Pending, bool) { return m.pending, m.hasPending }

func (m *Machine) Turns() int { return m.turns }

func (m *Machine) Failures() int { return m.failures }

// Start announces the user as present.
func (m *Machine) Start() []Effect {
	return m.Handle(Event{Kind: EventUserPresent})
}

// Handle runs one transition. Every utterance that is not logged as a failure
// is recorded as a turn ahead of the other effects. Events delivered after
// Terminal produce no effects.
func (m *Machine) Handle(ev Event) []Effect {
	if m.state.IsTerminal() {
		return nil
	}
	m.out = nil
	m.failed = false

	if ev.Kind == EventFinish && m.state != StateIdle {
		m.finish(m.byeText())
	} else {
		m.dispatch(ev)
	}

	out := m.out
	if ev.IsUtterance() && !m.failed {
		m.turns++
		out = append([]Effect{RecordTurn(m.turns, ev.Text)}, out...)
	}
	m.out = nil
	return out
}

func (m *Machine) dispatch(ev Event) {
	switch m.state {
	case StateIdle:
		m.onIdle(ev)
	case StateGreeting:
		m.onGreeting(ev)
	case StateWaiting:
		m.onWaiting(ev)
	case StateGuidedFilterIntro:
		m.onGuidedFilterIntro(ev)
	case StateFilterAskPeriod:
		m.onFilterAskPeriod(ev)
	case StateFilterAskCredits:
		m.onFilterAskCredits(ev)
	case StateFilterAskProgramme:
		m.onFilterAskProgramme(ev)
	case StateMainPlanning:
		m.onMainPlanning(ev)
	case StateConfirmAdd:
		m.onConfirmAdd(ev)
	case StateOverloadWarning:
		m.onOverloadWarning(ev)
	case StateConfirmRemove:
		m.onConfirmRemove(ev)
	}
}

func (m *Machine) emit(effs ...Effect) {
	m.out = append(m.out, effs...)
}

func (m *Machine) fail(reason, text string) {
	m.failures++
	m.failed = true
	m.emit(RecordFailure(m.failures, reason, text))
}

// countFailure bumps the failure counter for failures raised outside a
// transition, such as a sink write error.
func (m *Machine) countFailure() int {
	m.failures++
	return m.failures
}

// enter switches to s and emits its entry actions.
func (m *Machine) enter(s State) {
	m.state = s
	switch s {
	case StateIdle:
		m.emit(Listen())
	case StateGreeting:
		m.emit(Ask(promptGreeting))
	case StateWaiting:
		m.emit(Gest(GestureSmile), StartTimer(m.opts.WaitTimeout), Listen())
	case StateGuidedFilterIntro:
		if !m.guidedInit {
			m.guidedInit = true
			m.filters.Reset()
			m.emit(PersistFilters(m.filters), PersistCart(m.cart.Items()))
		}
		if !m.cart.IsEmpty() {
			m.enter(StateMainPlanning)
			return
		}
		m.emit(Ask(promptGuidedWelcome))
	case StateFilterAskPeriod:
		m.emit(Ask(promptAskPeriod))
	case StateFilterAskCredits:
		m.emit(Ask(promptAskCredits))
	case StateFilterAskProgramme:
		m.emit(Ask(promptAskProgramme))
	case StateMainPlanning:
		m.clearPending()
		m.emit(Ask(planningOpener(m.cart.Len(), m.opts.Pick)))
	case StateConfirmAdd:
		m.emit(Ask(confirmAddPrompt(m.pending.Entry)))
	case StateOverloadWarning:
		chk := m.pending.Check
		m.emit(Gest(GestureOh), Ask(overloadPrompt(chk.Threshold, chk.Projected, chk.Period)))
	case StateConfirmRemove:
		m.emit(Ask(confirmRemovePrompt(m.pending.Entry)))
	case StateTerminal:
		m.clearPending()
		m.emit(End())
	}
}

// finish persists the cart and ends the session.
func (m *Machine) finish(bye string) {
	m.emit(PersistCart(m.cart.Items()), Gest(GestureBigSmile), Say(bye))
	m.enter(StateTerminal)
}

func (m *Machine) byeText() string {
	switch m.state {
	case StateConfirmAdd, StateOverloadWarning:
		return promptStopHere
	case StateConfirmRemove:
		return promptStop
	}
	return promptSaved
}

func (m *Machine) clearPending() {
	m.pending = Pending{}
	m.hasPending = false
}

func (m *Machine) stateReason(base string) string {
	return fmt.Sprintf("%s in %s", base, stateLabel(m.state))
}

// stateLabel is the state name used in failure reasons.
func stateLabel(s State) string {
	parts := strings.Split(string(s), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}
