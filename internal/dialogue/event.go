package dialogue

import "github.com/alexanderramin/courseadvisor/internal/domain"

// EventKind is the classified intent of an inbound event.
type EventKind string

const (
	// Non-utterance events.
	EventUserPresent EventKind = "user_present"
	EventTimeout     EventKind = "timeout"
	EventSilence     EventKind = "silence"

	EventUnrecognized  EventKind = "unrecognized"
	EventYes           EventKind = "yes"
	EventNo            EventKind = "no"
	EventStartPlanning EventKind = "start_planning"
	EventDone          EventKind = "done"
	EventFinish        EventKind = "finish"
	EventAddCourse     EventKind = "add_course"
	EventRemoveCourse  EventKind = "remove_course"
	EventClearPeriod   EventKind = "clear_period"
	EventClearAll      EventKind = "clear_all"
	EventUndo          EventKind = "undo"
	EventCheckCart     EventKind = "check_cart"
	EventTellPeriod    EventKind = "tell_period"
	EventTellCredits   EventKind = "tell_credits"
	EventTellProgramme EventKind = "tell_programme"
	EventAny           EventKind = "any"
)

// Event is one inbound turn. Text is the raw utterance. Slot carries the
// course mention, credits value or programme name when the classifier found
// one; Period carries a recognised period.
type Event struct {
	Kind   EventKind
	Text   string
	Slot   string
	Period domain.Period
}

// IsUtterance reports whether the event carries something the user said.
func (e Event) IsUtterance() bool {
	switch e.Kind {
	case EventUserPresent, EventTimeout, EventSilence:
		return false
	}
	return true
}

// Said builds an utterance event of the given kind.
func Said(kind EventKind, text string) Event {
	return Event{Kind: kind, Text: text}
}
