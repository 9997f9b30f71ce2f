// Package nlu turns a raw utterance into a dialogue event with a keyword
// classifier. It covers the intent vocabulary the advisor was trained on and
// extracts the course, period, credit and programme slots.
package nlu

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// CourseMatcher confirms that a bare utterance names a catalog course.
type CourseMatcher interface {
	Resolve(query string) (domain.CourseRecord, bool)
}

type Classifier struct {
	matcher CourseMatcher
}

type Option func(*Classifier)

// WithCourseMatcher lets a bare course mention ("deep learning") count as an
// add.
func WithCourseMatcher(m CourseMatcher) Option {
	return func(c *Classifier) { c.matcher = m }
}

func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// utterance is the input in the two shapes the rules need.
type utterance struct {
	raw   string // trimmed, original casing
	lower string
	words []string
}

func newUtterance(text string) utterance {
	raw := strings.TrimRight(strings.TrimSpace(text), ".!?, ")
	lower := strings.ToLower(raw)
	lower = strings.ReplaceAll(lower, "’", "'")
	return utterance{raw: raw, lower: lower, words: strings.Fields(lower)}
}

func (u utterance) first() string {
	if len(u.words) == 0 {
		return ""
	}
	return strings.Trim(u.words[0], ",.!?")
}

type rule struct {
	kind  dialogue.EventKind
	match func(c *Classifier, u utterance, ev *dialogue.Event) bool
}

// rules are tried in order; the first match wins.
var rules = []rule{
	{dialogue.EventFinish, matchFinish},
	{dialogue.EventUndo, matchUndo},
	{dialogue.EventClearAll, matchClear},
	{dialogue.EventCheckCart, matchCheck},
	{dialogue.EventRemoveCourse, matchRemove},
	{dialogue.EventStartPlanning, matchStartPlanning},
	{dialogue.EventAny, matchAny},
	{dialogue.EventNo, matchNo},
	{dialogue.EventYes, matchYes},
	{dialogue.EventDone, matchDone},
	{dialogue.EventTellPeriod, matchPeriod},
	{dialogue.EventTellCredits, matchCredits},
	{dialogue.EventTellProgramme, matchProgramme},
	{dialogue.EventAddCourse, matchAdd},
	{dialogue.EventAddCourse, matchBareCourse},
}

// Classify maps text to an event. Empty text is silence. A rule may override
// the kind it is listed under; the clear rule does so for ClearPeriod.
func (c *Classifier) Classify(text string) dialogue.Event {
	u := newUtterance(text)
	if u.lower == "" {
		return dialogue.Event{Kind: dialogue.EventSilence, Text: text}
	}
	for _, r := range rules {
		ev := dialogue.Event{Kind: r.kind, Text: u.raw}
		if r.match(c, u, &ev) {
			return ev
		}
	}
	return dialogue.Event{Kind: dialogue.EventUnrecognized, Text: u.raw}
}

var finishPhrases = []string{
	"i am finished", "i'm finished", "im finished", "i finished planning",
	"i'm done planning", "i am done planning", "im done planning",
	"goodbye", "good bye", "end session", "no more courses",
	"i don't want to add anything else", "i do not want to add anything else",
}

// closingPhrases end the session unless they follow an affirmative:
// "yes, that's it" answers a confirmation.
var closingPhrases = []string{"that's all", "thats all", "that is all", "that is it", "that's it", "thats it"}

func matchFinish(c *Classifier, u utterance, ev *dialogue.Event) bool {
	switch u.lower {
	case "stop", "bye", "finish", "finished", "end":
		return true
	}
	if containsAny(u.lower, finishPhrases) {
		return true
	}
	return containsAny(u.lower, closingPhrases) && !matchYes(c, u, ev)
}

func matchUndo(_ *Classifier, u utterance, _ *dialogue.Event) bool {
	return containsAny(u.lower, []string{"undo", "go back", "i made a mistake", "cancel that", "revert"})
}

var clearTriggers = []string{
	"clear", "reset", "remove everything", "delete everything", "remove all", "delete all", "empty",
}

var allWords = []string{"all", "everything", "schedule", "cart", "plan", "list"}

func matchClear(_ *Classifier, u utterance, ev *dialogue.Event) bool {
	if !startsWithAny(u.lower, clearTriggers) && !containsAny(u.lower, []string{"remove everything", "delete everything"}) {
		return false
	}
	if p, ok := domain.ParsePeriod(u.lower); ok {
		ev.Kind = dialogue.EventClearPeriod
		ev.Period = p
		return true
	}
	for _, w := range u.words {
		for _, a := range allWords {
			if w == a {
				return true
			}
		}
	}
	ev.Kind = dialogue.EventClearPeriod
	return true
}

func matchCheck(_ *Classifier, u utterance, _ *dialogue.Event) bool {
	return containsAny(u.lower, []string{
		"check my", "check the cart", "check cart", "what courses do i have", "what do i have",
		"show my schedule", "show me my schedule", "what's in my", "what is in my",
	})
}

var removePrefixes = []string{"remove ", "delete ", "drop ", "take out ", "i want to remove ", "i want to drop "}

func matchRemove(_ *Classifier, u utterance, ev *dialogue.Event) bool {
	rest, ok := cutAnyPrefixFold(u.raw, removePrefixes)
	if !ok {
		if !isOneOf(u.lower, "remove", "delete", "drop") {
			return false
		}
		rest = ""
	}
	ev.Slot = courseSlot(rest)
	return true
}

func matchStartPlanning(_ *Classifier, u utterance, _ *dialogue.Event) bool {
	return containsAny(u.lower, []string{"plan my", "start planning", "let's plan", "lets plan", "let's start", "lets start"})
}

func matchAny(_ *Classifier, u utterance, _ *dialogue.Event) bool {
	if containsAny(u.lower, []string{"doesn't matter", "does not matter", "no preference", "whatever", "all of them"}) {
		return true
	}
	for _, w := range u.words {
		switch strings.Trim(w, ",.!?") {
		case "any", "anything", "either":
			return true
		}
	}
	return false
}

func matchNo(_ *Classifier, u utterance, _ *dialogue.Event) bool {
	if isOneOf(u.first(), "no", "nope", "nah", "negative") {
		return true
	}
	return startsWithAny(u.lower, []string{"not now", "not yet", "not really", "i don't", "don't", "i do not", "no thanks"})
}

func matchYes(_ *Classifier, u utterance, _ *dialogue.Event) bool {
	if isOneOf(u.first(), "yes", "yeah", "yep", "yup", "sure", "absolutely", "correct", "definitely") {
		return true
	}
	return startsWithAny(u.lower, []string{"of course", "please do", "go ahead", "let's do it", "lets do it", "help me"})
}

func matchDone(_ *Classifier, u utterance, _ *dialogue.Event) bool {
	if isOneOf(u.lower, "ready", "okay", "ok", "next", "alright", "all right", "done", "i'm ready", "i am ready") {
		return true
	}
	return containsAny(u.lower, []string{"i'm done", "im done", "i am done", "i have selected", "i've selected", "i found it"})
}

func matchPeriod(_ *Classifier, u utterance, ev *dialogue.Event) bool {
	if len(u.words) > 4 {
		return false
	}
	p, ok := domain.ParsePeriod(u.lower)
	if !ok {
		return false
	}
	ev.Period = p
	ev.Slot = string(p)
	return true
}

var creditsPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:credits?|hp|ects)\b`)

func matchCredits(_ *Classifier, u utterance, ev *dialogue.Event) bool {
	m := creditsPattern.FindStringSubmatch(u.lower)
	if m == nil {
		return false
	}
	ev.Slot = strings.ReplaceAll(m[1], ",", ".")
	return true
}

var programmePrefixes = []string{
	"my programme is ", "my program is ", "programme ", "program ", "track ",
	"i study ", "i'm in ", "i am in ", "i'm studying ", "i am studying ",
}

func matchProgramme(_ *Classifier, u utterance, ev *dialogue.Event) bool {
	rest, ok := cutAnyPrefixFold(u.raw, programmePrefixes)
	if !ok || strings.TrimSpace(rest) == "" {
		return false
	}
	ev.Slot = strings.TrimSpace(rest)
	return true
}

var addPrefixes = []string{
	"i want to take ", "i want to add ", "i would like to take ", "i would like to add ",
	"i'd like to take ", "i'd like to add ", "sign me up for ", "can you add ",
	"please add ", "add ", "i want ", "take ", "course ",
}

var addSuffixes = []string{" to my schedule", " to my plan", " to the schedule", " to my cart", " please"}

func matchAdd(_ *Classifier, u utterance, ev *dialogue.Event) bool {
	rest, ok := cutAnyPrefixFold(u.raw, addPrefixes)
	if !ok {
		return false
	}
	for _, s := range addSuffixes {
		if len(rest) >= len(s) && strings.EqualFold(rest[len(rest)-len(s):], s) {
			rest = rest[:len(rest)-len(s)]
		}
	}
	ev.Slot = courseSlot(rest)
	return true
}

func matchBareCourse(c *Classifier, u utterance, ev *dialogue.Event) bool {
	if c.matcher == nil {
		return false
	}
	if _, ok := c.matcher.Resolve(u.raw); !ok {
		return false
	}
	ev.Slot = u.raw
	return true
}

// courseSlot strips the filler that precedes a course mention.
func courseSlot(s string) string {
	s = strings.TrimSpace(s)
	for {
		rest, ok := cutAnyPrefixFold(s, []string{"the ", "course ", "code ", "course code "})
		if !ok {
			return s
		}
		s = strings.TrimSpace(rest)
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func isOneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// cutAnyPrefixFold removes the first prefix of s that matches one of
// prefixes ignoring case, keeping the casing of the remainder.
func cutAnyPrefixFold(s string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			return s[len(p):], true
		}
	}
	return "", false
}
