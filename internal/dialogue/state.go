package dialogue

// State is a node of the dialogue state machine.
type State string

const (
	StateIdle               State = "idle"
	StateGreeting           State = "greeting"
	StateWaiting            State = "waiting"
	StateGuidedFilterIntro  State = "guided_filter_intro"
	StateFilterAskPeriod    State = "filter_ask_period"
	StateFilterAskCredits   State = "filter_ask_credits"
	StateFilterAskProgramme State = "filter_ask_programme"
	StateMainPlanning       State = "main_planning"
	StateConfirmAdd         State = "confirm_add"
	StateOverloadWarning    State = "overload_warning"
	StateConfirmRemove      State = "confirm_remove"
	StateTerminal           State = "terminal"
)

func (s State) String() string { return string(s) }

// IsTerminal reports whether the session has ended.
func (s State) IsTerminal() bool { return s == StateTerminal }

// IsConfirmation reports whether s asks a yes/no question about a pending
// course.
func (s State) IsConfirmation() bool {
	switch s {
	case StateConfirmAdd, StateOverloadWarning, StateConfirmRemove:
		return true
	}
	return false
}

// IsFilterStep reports whether s is one of the guided filter questions.
func (s State) IsFilterStep() bool {
	switch s {
	case StateFilterAskPeriod, StateFilterAskCredits, StateFilterAskProgramme:
		return true
	}
	return false
}

// IsValid reports whether s is one of the states listed by AllStates.
func (s State) IsValid() bool {
	for _, v := range AllStates() {
		if s == v {
			return true
		}
	}
	return false
}

// AllStates returns every state in the order a session passes through them.
func AllStates() []State {
	return []State{
		StateIdle,
		StateGreeting,
		StateWaiting,
		StateGuidedFilterIntro,
		StateFilterAskPeriod,
		StateFilterAskCredits,
		StateFilterAskProgramme,
		StateMainPlanning,
		StateConfirmAdd,
		StateOverloadWarning,
		StateConfirmRemove,
		StateTerminal,
	}
}
