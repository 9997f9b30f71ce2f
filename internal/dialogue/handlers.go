package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/cart"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

func (m *Machine) onIdle(ev Event) {
	switch ev.Kind {
	case EventTimeout, EventSilence:
		return
	}
	m.enter(StateGreeting)
}

func (m *Machine) onGreeting(ev Event) {
	switch ev.Kind {
	case EventYes, EventDone:
		m.emit(Gest(GestureOh), Say(promptLetsGo))
		m.enter(StateGuidedFilterIntro)
	case EventStartPlanning:
		m.emit(Say(promptLookAtSchedule))
		m.enter(StateGuidedFilterIntro)
	case EventNo:
		m.emit(Say(promptLater))
		m.enter(StateWaiting)
	case EventTimeout, EventUserPresent:
	case EventSilence:
		m.fail(m.stateReason(reasonNoResponse), "")
		m.emit(Ask(promptGreeting))
	default:
		m.fail(m.stateReason(reasonUnrecognized), ev.Text)
		m.emit(Ask(promptGreetingRetry))
	}
}

func (m *Machine) onWaiting(ev Event) {
	switch ev.Kind {
	case EventYes, EventDone:
		m.emit(Gest(GestureOh), Say(promptLetsGoAgain))
		m.enter(StateGuidedFilterIntro)
	case EventStartPlanning:
		m.emit(Say(promptLookAtSchedule))
		m.enter(StateGuidedFilterIntro)
	case EventTimeout:
		m.emit(Say(promptChatLater))
		m.enter(StateIdle)
	case EventUserPresent:
	default:
		m.emit(Listen())
	}
}

func (m *Machine) onGuidedFilterIntro(ev Event) {
	switch ev.Kind {
	case EventYes:
		m.emit(Say(promptGuidedHelp))
		m.enter(StateFilterAskPeriod)
	case EventNo:
		m.emit(Say(promptGuidedSelf), Ask(promptGuidedTrack))
	case EventDone:
		m.emit(Gest(GestureSmile), Say(promptGuidedDone))
		m.enter(StateMainPlanning)
	case EventAddCourse:
		m.emit(Say(promptGuidedFoundAdd))
		m.state = StateMainPlanning
		m.addCourse(ev)
	case EventTimeout, EventUserPresent:
	case EventSilence:
		m.fail("No Response in GuidedSearch", "")
		m.emit(Ask(promptGuidedStillThere))
	default:
		m.fail("Unrecognized Intent in GuidedSearch", ev.Text)
		m.emit(Gest(GestureBrowFrown), Ask(promptGuidedRetry))
	}
}

func (m *Machine) onFilterAskPeriod(ev Event) {
	switch ev.Kind {
	case EventTimeout, EventUserPresent:
		return
	case EventSilence:
		m.fail(m.stateReason(reasonNoResponse), "")
		m.emit(Ask(promptAskPeriod))
		return
	case EventAny:
		m.filters.Period = ""
		m.emit(Say(promptAllPeriods), PersistFilters(m.filters))
		m.enter(StateFilterAskCredits)
		return
	}
	p := ev.Period
	if !p.Valid() {
		var ok bool
		if p, ok = domain.ContainsPeriodDigit(ev.Text); !ok {
			m.fail(m.stateReason(reasonUnrecognized), ev.Text)
			m.emit(Ask(promptPeriodRetry))
			return
		}
	}
	m.filters.Period = string(p)
	m.emit(PersistFilters(m.filters), Gest(GestureNod))
	m.enter(StateFilterAskCredits)
}

func (m *Machine) onFilterAskCredits(ev Event) {
	switch ev.Kind {
	case EventTimeout, EventUserPresent:
		return
	case EventSilence:
		m.fail(m.stateReason(reasonNoResponse), "")
		m.emit(Ask(promptAskCredits))
		return
	case EventAny:
		m.filters.Credits = ""
		m.emit(Say(promptAnyCredits), PersistFilters(m.filters))
		m.enter(StateFilterAskProgramme)
		return
	}
	value, ok := domain.ParseCreditFilter(ev.Slot)
	if !ok {
		value, ok = domain.ParseCreditFilter(ev.Text)
	}
	if !ok {
		m.fail(m.stateReason(reasonUnrecognized), ev.Text)
		m.emit(Ask(promptCreditsRetry))
		return
	}
	m.filters.Credits = value
	m.emit(PersistFilters(m.filters), Gest(GestureNod))
	m.enter(StateFilterAskProgramme)
}

func (m *Machine) onFilterAskProgramme(ev Event) {
	switch ev.Kind {
	case EventTimeout, EventUserPresent:
		return
	case EventSilence:
		m.fail(m.stateReason(reasonNoResponse), "")
		m.emit(Ask(promptAskProgramme))
		return
	case EventAny:
		m.filters.Programme = ""
		m.emit(Say(promptAllProgrammes), PersistFilters(m.filters))
		m.enter(StateMainPlanning)
		return
	}
	programme := strings.TrimSpace(ev.Slot)
	if programme == "" {
		programme = strings.TrimSpace(ev.Text)
	}
	if len(programme) <= 2 {
		m.fail(m.stateReason(reasonUnrecognized), ev.Text)
		m.emit(Ask(promptProgrammeRetry))
		return
	}
	m.filters.Programme = programme
	m.emit(Say(fmt.Sprintf("Filtering for %s.", programme)), PersistFilters(m.filters))
	m.enter(StateMainPlanning)
}

func (m *Machine) onMainPlanning(ev Event) {
	switch ev.Kind {
	case EventNo:
		m.finish(promptSaved)
	case EventAddCourse:
		m.addCourse(ev)
	case EventRemoveCourse:
		m.removeCourse(ev)
	case EventClearPeriod:
		m.clearPeriod(ev)
	case EventClearAll:
		if m.cart.ClearAll() > 0 {
			m.emit(Gest(GestureNod), Say(promptClearedAll), PersistCart(m.cart.Items()))
		} else {
			m.emit(Say(promptAlreadyEmpty))
		}
		m.enter(StateMainPlanning)
	case EventUndo:
		if err := m.cart.Undo(); err != nil {
			m.emit(Say(promptNothingToUndo))
		} else {
			m.emit(Gest(GestureNod), Say(promptUndone), PersistCart(m.cart.Items()))
		}
		m.enter(StateMainPlanning)
	case EventCheckCart:
		m.emit(Say(cartListing(m.cart.Codes())))
		m.enter(StateMainPlanning)
	case EventTimeout, EventUserPresent:
	case EventSilence:
		m.fail(reasonNoResponse, "")
		m.emit(Listen())
	default:
		m.fail(reasonUnrecognized, ev.Text)
		m.emit(Gest(GestureBrowFrown), Say(promptNotCaught), Listen())
	}
}

// addCourse resolves the mention and routes to the overload warning or the
// plain confirmation.
func (m *Machine) addCourse(ev Event) {
	query := strings.TrimSpace(ev.Slot)
	if query == "" {
		m.emit(Ask(promptWhichCourse))
		return
	}
	rec, ok := m.resolver.Resolve(query)
	if !ok {
		m.emit(Gest(GestureBrowFrown), Say(fmt.Sprintf("I heard %s, but I couldn't verify the details.", query)), Listen())
		return
	}
	if m.cart.Contains(rec.Code) {
		m.emit(Gest(GestureSurprise), Say(fmt.Sprintf("You already have %s.", rec.Name)), Listen())
		return
	}
	chk := m.policy.Check(m.cart, rec)
	m.pending = Pending{Record: rec, Entry: domain.Schedule(rec, chk.Period), Check: chk}
	m.hasPending = true
	if chk.Overloaded {
		m.enter(StateOverloadWarning)
		return
	}
	m.enter(StateConfirmAdd)
}

func (m *Machine) removeCourse(ev Event) {
	query := strings.TrimSpace(ev.Slot)
	if query == "" {
		m.emit(Ask(promptWhichRemove))
		return
	}
	entry, ok := m.cart.Find(query)
	if !ok {
		if rec, resolved := m.resolver.Resolve(query); resolved {
			entry, ok = m.cart.Find(rec.Code)
		}
	}
	if !ok {
		m.emit(Gest(GestureShake), Say(fmt.Sprintf("You don't have %s in your schedule.", query)), Listen())
		return
	}
	m.pending = Pending{Entry: entry}
	m.hasPending = true
	m.enter(StateConfirmRemove)
}

func (m *Machine) clearPeriod(ev Event) {
	p := ev.Period
	if !p.Valid() {
		m.emit(Ask(promptWhichPeriodClear))
		return
	}
	if m.cart.ClearPeriod(p) > 0 {
		m.emit(Gest(GestureNod), Say(fmt.Sprintf("Cleared all courses from %s.", p)), PersistCart(m.cart.Items()))
	} else {
		m.emit(Say(fmt.Sprintf("%s is already empty.", p)))
	}
	m.enter(StateMainPlanning)
}

// answer is a yes/no reply to a confirmation question.
type answer int

const (
	answerOther answer = iota
	answerYes
	answerNo
	answerSilence
	answerIgnored
)

func classifyAnswer(ev Event) answer {
	switch ev.Kind {
	case EventYes, EventDone:
		return answerYes
	case EventNo:
		return answerNo
	case EventSilence:
		return answerSilence
	case EventTimeout, EventUserPresent:
		return answerIgnored
	}
	return answerOther
}

// confirm handles the reply shared by the three confirmation states. It
// returns the answer only for yes and no. Silence re-asks, and anything else
// is taken as an implicit no.
func (m *Machine) confirm(ev Event) answer {
	switch a := classifyAnswer(ev); a {
	case answerYes, answerNo:
		return a
	case answerSilence:
		m.fail(m.stateReason(reasonNoResponse), "")
		m.enter(m.state)
		return answerIgnored
	case answerIgnored:
		return a
	}
	m.fail(m.stateReason("Unrecognized"), ev.Text)
	if m.state == StateConfirmRemove {
		m.emit(Say(promptRemoveCancelled))
	} else {
		m.emit(Say(promptTakeAsNo))
	}
	m.enter(StateMainPlanning)
	return answerOther
}

func (m *Machine) onConfirmAdd(ev Event) {
	switch m.confirm(ev) {
	case answerYes:
		m.commitAdd(promptAdded)
	case answerNo:
		m.emit(Gest(GestureSmile), Say(promptAddCancelled))
		m.enter(StateMainPlanning)
	}
}

func (m *Machine) onOverloadWarning(ev Event) {
	switch m.confirm(ev) {
	case answerYes:
		m.commitAdd(promptOverloadAdded)
	case answerNo:
		m.emit(Gest(GestureNod), Say(promptOverloadDeclined))
		m.enter(StateMainPlanning)
	}
}

func (m *Machine) onConfirmRemove(ev Event) {
	switch m.confirm(ev) {
	case answerYes:
		if _, err := m.cart.Remove(m.pending.Entry.Code); err != nil {
			m.emit(Say(fmt.Sprintf("You don't have %s in your schedule.", m.pending.Entry.Name)))
		} else {
			m.emit(PersistCart(m.cart.Items()), Gest(GestureNod), Say(promptRemoved))
		}
		m.enter(StateMainPlanning)
	case answerNo:
		m.emit(Say(promptKept))
		m.enter(StateMainPlanning)
	}
}

func (m *Machine) commitAdd(confirmation string) {
	p := m.pending
	_, err := m.cart.Add(p.Record, p.Entry.Period)
	switch {
	case errors.Is(err, cart.ErrAlreadyPresent):
		m.emit(Gest(GestureSurprise), Say(fmt.Sprintf("You already have %s.", p.Entry.Name)))
	case err != nil:
		m.emit(Say(promptNotCaught))
	default:
		m.emit(PersistCart(m.cart.Items()), Gest(GestureNod), Say(confirmation))
	}
	m.enter(StateMainPlanning)
}
