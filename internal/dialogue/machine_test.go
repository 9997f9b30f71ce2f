package dialogue

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/cart"
	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	courseA = domain.CourseRecord{Code: "AA1001", Name: "Course A", Credits: 7.5, Periods: []domain.Period{domain.PeriodP1}}
	courseB = domain.CourseRecord{Code: "BB1002", Name: "Course B", Credits: 8.5, Periods: []domain.Period{domain.PeriodP1}}
	courseC = domain.CourseRecord{Code: "CC1003", Name: "Course C", Credits: 6, Periods: []domain.Period{domain.PeriodP3, domain.PeriodP2}}
)

// mapResolver resolves exact codes and names, ignoring case.
type mapResolver []domain.CourseRecord

func (r mapResolver) Resolve(query string) (domain.CourseRecord, bool) {
	for _, rec := range r {
		if strings.EqualFold(rec.Code, query) || strings.EqualFold(rec.Name, query) {
			return rec, true
		}
	}
	return domain.CourseRecord{}, false
}

func newTestMachine(c *cart.Cart) *Machine {
	return NewMachine(mapResolver{courseA, courseB, courseC}, c, cart.DefaultOverloadPolicy(), Options{
		WaitTimeout: time.Minute,
		Pick:        func(int) int { return 0 },
	})
}

// planning drives a fresh machine to MainPlanning through the greeting.
func planning(t *testing.T) *Machine {
	t.Helper()
	m := newTestMachine(cart.New(cart.DefaultUndoDepth))
	m.Start()
	m.Handle(Said(EventYes, "yes"))
	m.Handle(Said(EventDone, "I'm done"))
	require.Equal(t, StateMainPlanning, m.State())
	return m
}

func addEvent(slot string) Event {
	return Event{Kind: EventAddCourse, Text: "add " + slot, Slot: slot}
}

func texts(effs []Effect) []string {
	var out []string
	for _, e := range effs {
		if e.Kind == EffectAsk || e.Kind == EffectSay {
			out = append(out, e.Text)
		}
	}
	return out
}

func find(effs []Effect, kind EffectKind) (Effect, bool) {
	for _, e := range effs {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

func gestures(effs []Effect) []Gesture {
	var out []Gesture
	for _, e := range effs {
		if e.Kind == EffectGesture {
			out = append(out, e.Gesture)
		}
	}
	return out
}

func TestMachine_StartGreets(t *testing.T) {
	m := newTestMachine(nil)
	assert.Equal(t, StateIdle, m.State())

	effs := m.Start()
	assert.Equal(t, StateGreeting, m.State())
	assert.Equal(t, []string{promptGreeting}, texts(effs))
	_, recorded := find(effs, EffectRecordTurn)
	assert.False(t, recorded, "presence is not a turn")
}

func TestMachine_IdleTreatsAnyUtteranceAsPresence(t *testing.T) {
	m := newTestMachine(nil)

	assert.Empty(t, m.Handle(Event{Kind: EventSilence}))
	assert.Empty(t, m.Handle(Event{Kind: EventTimeout}))
	assert.Equal(t, StateIdle, m.State())

	effs := m.Handle(Said(EventUnrecognized, "hello there"))
	assert.Equal(t, StateGreeting, m.State())
	turn, ok := find(effs, EffectRecordTurn)
	require.True(t, ok)
	assert.Equal(t, 1, turn.Count)
	assert.Equal(t, "hello there", turn.Text)
}

func TestMachine_GreetingRetriesUnrecognized(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()

	effs := m.Handle(Said(EventUnrecognized, "blah"))
	assert.Equal(t, StateGreeting, m.State())
	assert.Equal(t, []EffectKind{EffectRecordFailure, EffectAsk}, Kinds(effs))
	assert.Equal(t, "Unrecognized Intent in Greeting", effs[0].Reason)
	assert.Equal(t, 1, m.Failures())
	assert.Equal(t, 0, m.Turns())

	effs = m.Handle(Said(EventStartPlanning, "let's plan my schedule"))
	assert.Equal(t, StateGuidedFilterIntro, m.State())
	assert.Equal(t, promptLookAtSchedule, texts(effs)[0])
}

func TestMachine_DeclineWaitsThenTimesOut(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()

	effs := m.Handle(Said(EventNo, "no"))
	assert.Equal(t, StateWaiting, m.State())
	timer, ok := find(effs, EffectStartTimer)
	require.True(t, ok)
	assert.Equal(t, time.Minute, timer.Delay)
	assert.Equal(t, []Gesture{GestureSmile}, gestures(effs))

	// Chatter while waiting keeps listening without re-arming.
	effs = m.Handle(Said(EventUnrecognized, "hmm"))
	assert.Equal(t, StateWaiting, m.State())
	_, rearmed := find(effs, EffectStartTimer)
	assert.False(t, rearmed)

	effs = m.Handle(Event{Kind: EventTimeout})
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, []string{promptChatLater}, texts(effs))
}

func TestMachine_WaitingAcceptsDoneAsYes(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()
	m.Handle(Said(EventNo, "not now"))

	effs := m.Handle(Said(EventDone, "okay"))
	assert.Equal(t, StateGuidedFilterIntro, m.State())
	assert.Contains(t, texts(effs), promptLetsGoAgain)
}

func TestMachine_GuidedIntroInitialisesFiltersOnce(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()
	effs := m.Handle(Said(EventYes, "yes"))

	assert.Equal(t, StateGuidedFilterIntro, m.State())
	filters, ok := find(effs, EffectPersistFilters)
	require.True(t, ok)
	assert.True(t, filters.Filters.IsZero())
	_, ok = find(effs, EffectPersistCart)
	assert.True(t, ok)
	assert.Contains(t, texts(effs), promptGuidedWelcome)

	effs = m.Handle(Said(EventNo, "no"))
	assert.Equal(t, StateGuidedFilterIntro, m.State())
	assert.Equal(t, []string{promptGuidedSelf, promptGuidedTrack}, texts(effs))
	_, ok = find(effs, EffectPersistFilters)
	assert.False(t, ok)
}

func TestMachine_GuidedIntroSkipsWhenCartHasCourses(t *testing.T) {
	c := cart.New(cart.DefaultUndoDepth)
	c.Restore([]domain.ScheduledCourse{domain.Schedule(courseA, domain.PeriodP1)})
	m := newTestMachine(c)
	m.Start()

	effs := m.Handle(Said(EventYes, "sure"))
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Contains(t, texts(effs), "You have 1 courses so far. What's next?")
}

func TestMachine_GuidedIntroForwardsAdd(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()
	m.Handle(Said(EventYes, "yes"))

	effs := m.Handle(addEvent("AA1001"))
	assert.Equal(t, StateConfirmAdd, m.State())
	assert.Equal(t, []string{
		promptGuidedFoundAdd,
		"I found Course A. It is 7.5 credits and runs in P1. Do you want to add it?",
	}, texts(effs))

	p, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, "AA1001", p.Entry.Code)
}

func TestMachine_GuidedIntroFailures(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()
	m.Handle(Said(EventYes, "yes"))

	effs := m.Handle(Event{Kind: EventSilence})
	assert.Equal(t, "No Response in GuidedSearch", effs[0].Reason)
	assert.Equal(t, []string{promptGuidedStillThere}, texts(effs))

	effs = m.Handle(Said(EventUnrecognized, "purple"))
	assert.Equal(t, "Unrecognized Intent in GuidedSearch", effs[0].Reason)
	assert.Equal(t, []Gesture{GestureBrowFrown}, gestures(effs))
	assert.Equal(t, StateGuidedFilterIntro, m.State())
	assert.Equal(t, 2, m.Failures())
}

func TestMachine_FilterWalkthrough(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()
	m.Handle(Said(EventYes, "yes"))
	effs := m.Handle(Said(EventYes, "please help"))
	require.Equal(t, StateFilterAskPeriod, m.State())
	assert.Contains(t, texts(effs), promptAskPeriod)

	effs = m.Handle(Said(EventUnrecognized, "no idea"))
	assert.Equal(t, StateFilterAskPeriod, m.State())
	assert.Equal(t, []string{promptPeriodRetry}, texts(effs))
	failure, ok := find(effs, EffectRecordFailure)
	require.True(t, ok, "an unusable period answer is logged as a failure")
	assert.Equal(t, "no idea", failure.Text)
	assert.True(t, strings.HasPrefix(failure.Reason, reasonUnrecognized))

	effs = m.Handle(Event{Kind: EventTellPeriod, Text: "period 2", Period: domain.PeriodP2})
	require.Equal(t, StateFilterAskCredits, m.State())
	persisted, ok := find(effs, EffectPersistFilters)
	require.True(t, ok)
	assert.Equal(t, "P2", persisted.Filters.Period)

	effs = m.Handle(Said(EventUnrecognized, "lots"))
	assert.Equal(t, StateFilterAskCredits, m.State())
	_, ok = find(effs, EffectRecordFailure)
	assert.True(t, ok, "an unusable credits answer is logged as a failure")

	m.Handle(Said(EventUnrecognized, "seven and a half"))
	require.Equal(t, StateFilterAskProgramme, m.State())
	assert.Equal(t, "7.5", m.Filters().Credits)

	effs = m.Handle(Said(EventUnrecognized, "ok"))
	assert.Equal(t, []string{promptProgrammeRetry}, texts(effs))
	assert.Equal(t, 3, m.Failures())

	effs = m.Handle(Event{Kind: EventTellProgramme, Text: "programme interactive media technology", Slot: "Interactive Media Technology"})
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Equal(t, domain.FilterState{Period: "P2", Credits: "7.5", Programme: "Interactive Media Technology"}, m.Filters())
	assert.Contains(t, texts(effs), "Filtering for Interactive Media Technology.")
}

func TestMachine_FilterAnyClearsField(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()
	m.Handle(Said(EventYes, "yes"))
	m.Handle(Said(EventYes, "yes"))

	m.Handle(Said(EventUnrecognized, "3 please"))
	assert.Equal(t, "P3", m.Filters().Period, "lenient digit fallback")

	effs := m.Handle(Said(EventAny, "any"))
	assert.Contains(t, texts(effs), promptAnyCredits)
	_, ok := find(effs, EffectPersistFilters)
	assert.True(t, ok)

	m.Handle(Said(EventAny, "doesn't matter"))
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Equal(t, domain.FilterState{Period: "P3"}, m.Filters())
}

func TestMachine_OverloadScenario(t *testing.T) {
	m := planning(t)

	m.Handle(addEvent("AA1001"))
	require.Equal(t, StateConfirmAdd, m.State())
	effs := m.Handle(Said(EventYes, "yes"))
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Contains(t, texts(effs), promptAdded)
	assert.Equal(t, []string{"AA1001"}, m.Cart().Codes())

	effs = m.Handle(addEvent("BB1002"))
	require.Equal(t, StateOverloadWarning, m.State())
	assert.Contains(t, texts(effs),
		"Wait, adding this course will exceed 15 credits in P1. Your total would be 16.0 credits. That is a heavy workload. Are you sure you want to add it?")
	p, ok := m.Pending()
	require.True(t, ok)
	assert.InDelta(t, 16.0, p.Check.Projected, 1e-9)

	effs = m.Handle(Said(EventNo, "no"))
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Contains(t, texts(effs), promptOverloadDeclined)
	assert.Equal(t, []string{"AA1001"}, m.Cart().Codes())
	_, ok = m.Pending()
	assert.False(t, ok)

	m.Handle(addEvent("BB1002"))
	require.Equal(t, StateOverloadWarning, m.State())
	effs = m.Handle(Said(EventYes, "yes"))
	assert.Equal(t, []string{"AA1001", "BB1002"}, m.Cart().Codes())
	persisted, ok := find(effs, EffectPersistCart)
	require.True(t, ok)
	assert.Len(t, persisted.Cart, 2)
}

func TestMachine_AddUnderThresholdConfirmsDirectly(t *testing.T) {
	m := planning(t)
	m.Handle(addEvent("AA1001"))
	m.Handle(Said(EventYes, "yes"))

	m.Handle(addEvent("CC1003"))
	assert.Equal(t, StateConfirmAdd, m.State(), "CC1003 runs in P2 first, so P1's load is irrelevant")
	p, _ := m.Pending()
	assert.Equal(t, domain.PeriodP2, p.Entry.Period)
}

func TestMachine_ZeroPolicyUsesDefaultThreshold(t *testing.T) {
	m := NewMachine(mapResolver{courseA}, nil, cart.OverloadPolicy{}, Options{Pick: func(int) int { return 0 }})
	m.Start()
	m.Handle(Said(EventYes, "yes"))
	m.Handle(Said(EventDone, "done"))

	m.Handle(addEvent("AA1001"))
	assert.Equal(t, StateConfirmAdd, m.State())
	p, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, cart.DefaultOverloadThreshold, p.Check.Threshold)
}

func TestMachine_AddMissesAndDuplicates(t *testing.T) {
	m := planning(t)

	effs := m.Handle(addEvent("quantum basket weaving"))
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Equal(t, []Gesture{GestureBrowFrown}, gestures(effs))
	assert.Contains(t, texts(effs), "I heard quantum basket weaving, but I couldn't verify the details.")

	effs = m.Handle(Event{Kind: EventAddCourse, Text: "add"})
	assert.Equal(t, []string{promptWhichCourse}, texts(effs))

	m.Handle(addEvent("AA1001"))
	m.Handle(Said(EventYes, "yes"))
	effs = m.Handle(addEvent("course a"))
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Equal(t, []Gesture{GestureSurprise}, gestures(effs))
	assert.Contains(t, texts(effs), "You already have Course A.")
	assert.Equal(t, 1, m.Cart().Len())
}

func TestMachine_ConfirmationImplicitNo(t *testing.T) {
	m := planning(t)
	m.Handle(addEvent("AA1001"))

	effs := m.Handle(Said(EventUnrecognized, "banana"))
	assert.Equal(t, StateMainPlanning, m.State())
	assert.True(t, m.Cart().IsEmpty())
	assert.Equal(t, EffectRecordFailure, effs[0].Kind)
	assert.Equal(t, "Unrecognized in ConfirmAdd", effs[0].Reason)
	assert.Equal(t, "banana", effs[0].Text)
	assert.Contains(t, texts(effs), promptTakeAsNo)
	_, turn := find(effs, EffectRecordTurn)
	assert.False(t, turn, "a failed utterance is not a turn")
}

func TestMachine_ConfirmationSilenceReasks(t *testing.T) {
	m := planning(t)
	m.Handle(addEvent("AA1001"))
	m.Handle(Said(EventYes, "yes"))
	m.Handle(addEvent("BB1002"))

	effs := m.Handle(Event{Kind: EventSilence})
	assert.Equal(t, StateOverloadWarning, m.State())
	assert.Equal(t, "No Response in OverloadWarning", effs[0].Reason)
	assert.Equal(t, []Gesture{GestureOh}, gestures(effs))
	_, pending := m.Pending()
	assert.True(t, pending)
}

func TestMachine_FinishPersistsFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		drive func(m *Machine)
		bye   string
	}{
		{"greeting", func(m *Machine) {}, promptSaved},
		{"main planning", func(m *Machine) {
			m.Handle(Said(EventYes, "yes"))
			m.Handle(Said(EventDone, "done"))
		}, promptSaved},
		{"confirm add", func(m *Machine) {
			m.Handle(Said(EventYes, "yes"))
			m.Handle(addEvent("AA1001"))
		}, promptStopHere},
		{"waiting", func(m *Machine) {
			m.Handle(Said(EventNo, "no"))
		}, promptSaved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New(cart.DefaultUndoDepth)
			c.Restore([]domain.ScheduledCourse{domain.Schedule(courseC, domain.PeriodP2)})
			m := newTestMachine(c)
			m.Start()
			tt.drive(m)

			effs := m.Handle(Said(EventFinish, "that's all"))
			assert.Equal(t, StateTerminal, m.State())
			persisted, ok := find(effs, EffectPersistCart)
			require.True(t, ok)
			assert.Equal(t, []domain.ScheduledCourse{domain.Schedule(courseC, domain.PeriodP2)}, persisted.Cart)
			assert.Contains(t, texts(effs), tt.bye)
			assert.Equal(t, EffectEnd, effs[len(effs)-1].Kind)

			assert.Nil(t, m.Handle(Said(EventYes, "hello?")))
		})
	}
}

func TestMachine_NoInMainPlanningFinishes(t *testing.T) {
	m := planning(t)
	effs := m.Handle(Said(EventNo, "no"))
	assert.Equal(t, StateTerminal, m.State())
	assert.Equal(t, []Gesture{GestureBigSmile}, gestures(effs))
}

func TestMachine_RemoveFlow(t *testing.T) {
	m := planning(t)
	m.Handle(addEvent("AA1001"))
	m.Handle(Said(EventYes, "yes"))

	effs := m.Handle(Event{Kind: EventRemoveCourse, Text: "remove BB1002", Slot: "BB1002"})
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Equal(t, []Gesture{GestureShake}, gestures(effs))
	assert.Contains(t, texts(effs), "You don't have BB1002 in your schedule.")

	effs = m.Handle(Event{Kind: EventRemoveCourse, Text: "drop course a", Slot: "course a"})
	require.Equal(t, StateConfirmRemove, m.State())
	assert.Equal(t, []string{"Are you sure you want to remove Course A?"}, texts(effs))

	effs = m.Handle(Said(EventNo, "no"))
	assert.Equal(t, []string{"AA1001"}, m.Cart().Codes())
	assert.Contains(t, texts(effs), promptKept)

	m.Handle(Event{Kind: EventRemoveCourse, Text: "remove aa 1001", Slot: "aa 1001"})
	require.Equal(t, StateConfirmRemove, m.State())
	effs = m.Handle(Said(EventYes, "yes"))
	assert.True(t, m.Cart().IsEmpty())
	persisted, ok := find(effs, EffectPersistCart)
	require.True(t, ok)
	assert.Empty(t, persisted.Cart)
}

func TestMachine_RemoveUnrecognizedCancels(t *testing.T) {
	m := planning(t)
	m.Handle(addEvent("AA1001"))
	m.Handle(Said(EventYes, "yes"))
	m.Handle(Event{Kind: EventRemoveCourse, Text: "remove AA1001", Slot: "AA1001"})

	effs := m.Handle(Said(EventUnrecognized, "what"))
	assert.Contains(t, texts(effs), promptRemoveCancelled)
	assert.Equal(t, 1, m.Cart().Len())
}

func TestMachine_CartCommands(t *testing.T) {
	m := planning(t)

	effs := m.Handle(Said(EventUndo, "undo"))
	assert.Contains(t, texts(effs), promptNothingToUndo)
	effs = m.Handle(Said(EventCheckCart, "check my schedule"))
	assert.Contains(t, texts(effs), promptEmptySchedule)
	effs = m.Handle(Said(EventClearAll, "clear all"))
	assert.Contains(t, texts(effs), promptAlreadyEmpty)

	m.Handle(addEvent("AA1001"))
	m.Handle(Said(EventYes, "yes"))
	m.Handle(addEvent("CC1003"))
	m.Handle(Said(EventYes, "yes"))

	effs = m.Handle(Said(EventCheckCart, "what courses do I have"))
	assert.Contains(t, texts(effs), "You have: AA1001, CC1003.")

	effs = m.Handle(Event{Kind: EventClearPeriod, Text: "clear", Slot: ""})
	assert.Equal(t, []string{promptWhichPeriodClear}, texts(effs))

	effs = m.Handle(Event{Kind: EventClearPeriod, Text: "clear P4", Period: domain.PeriodP4})
	assert.Contains(t, texts(effs), "P4 is already empty.")

	effs = m.Handle(Event{Kind: EventClearPeriod, Text: "clear P1", Period: domain.PeriodP1})
	assert.Contains(t, texts(effs), "Cleared all courses from P1.")
	assert.Equal(t, []string{"CC1003"}, m.Cart().Codes())

	effs = m.Handle(Said(EventUndo, "go back"))
	assert.Contains(t, texts(effs), promptUndone)
	assert.Equal(t, []string{"AA1001", "CC1003"}, m.Cart().Codes())
	_, ok := find(effs, EffectPersistCart)
	assert.True(t, ok)

	effs = m.Handle(Said(EventClearAll, "reset my schedule"))
	assert.Contains(t, texts(effs), promptClearedAll)
	assert.True(t, m.Cart().IsEmpty())
	assert.Equal(t, StateMainPlanning, m.State())
}

func TestMachine_MainPlanningFailuresNeverEnd(t *testing.T) {
	m := planning(t)

	effs := m.Handle(Event{Kind: EventSilence})
	assert.Equal(t, []EffectKind{EffectRecordFailure, EffectListen}, Kinds(effs))
	assert.Equal(t, reasonNoResponse, effs[0].Reason)

	effs = m.Handle(Said(EventUnrecognized, "sing me a song"))
	assert.Equal(t, reasonUnrecognized, effs[0].Reason)
	assert.Contains(t, texts(effs), promptNotCaught)
	assert.Equal(t, StateMainPlanning, m.State())
	assert.Equal(t, 2, m.Failures())

	assert.Empty(t, m.Handle(Event{Kind: EventTimeout}), "only Waiting has a timeout")
}

func TestMachine_TurnCounterIsMonotonic(t *testing.T) {
	m := newTestMachine(nil)
	m.Start()
	m.Handle(Said(EventYes, "yes"))
	m.Handle(Said(EventUnrecognized, "eh"))
	effs := m.Handle(Said(EventDone, "done"))

	turn, ok := find(effs, EffectRecordTurn)
	require.True(t, ok)
	assert.Equal(t, 2, turn.Count)
	assert.Equal(t, 2, m.Turns())
	assert.Equal(t, 1, m.Failures())
}

func TestPlanningOpener_Variants(t *testing.T) {
	assert.Equal(t, "Which course should we add to your plan first?", planningOpener(0, func(int) int { return 1 }))
	assert.Equal(t, "We have 3 items in the list. What course do you want to add another?", planningOpener(3, func(int) int { return 2 }))
}

func TestState_Predicates(t *testing.T) {
	assert.True(t, StateTerminal.IsTerminal())
	assert.True(t, StateOverloadWarning.IsConfirmation())
	assert.False(t, StateMainPlanning.IsConfirmation())
	assert.True(t, StateFilterAskCredits.IsFilterStep())
	assert.True(t, StateWaiting.IsValid())
	assert.False(t, State("lost").IsValid())
	assert.Len(t, AllStates(), 12)
}
