package dialogue

import (
	"time"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// EffectKind names an action the runtime performs on behalf of the machine.
type EffectKind string

const (
	EffectAsk            EffectKind = "ask"
	EffectSay            EffectKind = "say"
	EffectGesture        EffectKind = "gesture"
	EffectListen         EffectKind = "listen"
	EffectPersistCart    EffectKind = "persist_cart"
	EffectPersistFilters EffectKind = "persist_filters"
	EffectRecordTurn     EffectKind = "record_turn"
	EffectRecordFailure  EffectKind = "record_failure"
	EffectStartTimer     EffectKind = "start_timer"
	EffectEnd            EffectKind = "end"
)

// Gesture is a nonverbal cue for the conversation front end.
type Gesture string

const (
	GestureSmile     Gesture = "smile"
	GestureBigSmile  Gesture = "big_smile"
	GestureNod       Gesture = "nod"
	GestureShake     Gesture = "shake"
	GestureBrowFrown Gesture = "brow_frown"
	GestureSurprise  Gesture = "surprise"
	GestureOh        Gesture = "oh"
)

// Effect is one output of a transition. Only the fields relevant to Kind are
// set. Cart and Filters are copies taken when the effect was produced.
type Effect struct {
	Kind    EffectKind
	Text    string
	Gesture Gesture
	Cart    []domain.ScheduledCourse
	Filters domain.FilterState
	// Count is the turn or failure counter value for Record effects.
	Count  int
	Reason string
	Delay  time.Duration
}

// Ask poses a question and waits for a reply. Say, Gest and Listen are the
// other conversation effects; Say does not wait.
func Ask(text string) Effect { return Effect{Kind: EffectAsk, Text: text} }

func Say(text string) Effect { return Effect{Kind: EffectSay, Text: text} }

func Gest(g Gesture) Effect { return Effect{Kind: EffectGesture, Gesture: g} }

func Listen() Effect { return Effect{Kind: EffectListen} }

// PersistCart carries a copy of items, so later cart changes never reach a
// queued effect.
func PersistCart(items []domain.ScheduledCourse) Effect {
	return Effect{Kind: EffectPersistCart, Cart: append([]domain.ScheduledCourse(nil), items...)}
}

func PersistFilters(f domain.FilterState) Effect {
	return Effect{Kind: EffectPersistFilters, Filters: f}
}

// RecordTurn and RecordFailure carry the counter value after the increment.
func RecordTurn(count int, text string) Effect {
	return Effect{Kind: EffectRecordTurn, Count: count, Text: text}
}

func RecordFailure(count int, reason, text string) Effect {
	return Effect{Kind: EffectRecordFailure, Count: count, Reason: reason, Text: text}
}

// StartTimer arms the Waiting inactivity timer; a Timeout event follows d
// later unless the user speaks first.
func StartTimer(d time.Duration) Effect { return Effect{Kind: EffectStartTimer, Delay: d} }

func End() Effect { return Effect{Kind: EffectEnd} }

// Kinds lists the kinds of effs in order.
func Kinds(effs []Effect) []EffectKind {
	out := make([]EffectKind, len(effs))
	for i, e := range effs {
		out[i] = e.Kind
	}
	return out
}
