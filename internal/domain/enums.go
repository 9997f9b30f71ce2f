package domain

import (
	"sort"
	"strings"
)

// Period is one of the four teaching periods a course offering may run in.
type Period string

const (
	PeriodP1 Period = "P1"
	PeriodP2 Period = "P2"
	PeriodP3 Period = "P3"
	PeriodP4 Period = "P4"
)

// Periods returns all periods in calendar order.
func Periods() []Period {
	return []Period{PeriodP1, PeriodP2, PeriodP3, PeriodP4}
}

func (p Period) Valid() bool {
	switch p {
	case PeriodP1, PeriodP2, PeriodP3, PeriodP4:
		return true
	}
	return false
}

func (p Period) String() string { return string(p) }

// periodSynonyms maps spoken forms to period tags. Multi-word phrases are
// matched before single words so "spring 1" is not read as P1.
var periodSynonyms = []struct {
	phrase string
	period Period
}{
	{"autumn 1", PeriodP1},
	{"autumn 2", PeriodP2},
	{"spring 1", PeriodP3},
	{"spring 2", PeriodP4},
	{"first period", PeriodP1},
	{"second period", PeriodP2},
	{"third period", PeriodP3},
	{"fourth period", PeriodP4},
	{"period 1", PeriodP1},
	{"period 2", PeriodP2},
	{"period 3", PeriodP3},
	{"period 4", PeriodP4},
	{"period one", PeriodP1},
	{"period two", PeriodP2},
	{"period three", PeriodP3},
	{"period four", PeriodP4},
}

var periodWords = map[string]Period{
	"p1": PeriodP1, "1": PeriodP1, "one": PeriodP1, "first": PeriodP1,
	"p2": PeriodP2, "2": PeriodP2, "two": PeriodP2, "second": PeriodP2,
	"p3": PeriodP3, "3": PeriodP3, "three": PeriodP3, "third": PeriodP3,
	"p4": PeriodP4, "4": PeriodP4, "four": PeriodP4, "fourth": PeriodP4,
}

// ParsePeriod extracts a period tag from free text such as "P2",
// "period 3", "spring 1" or "the first one".
func ParsePeriod(text string) (Period, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return "", false
	}
	for _, s := range periodSynonyms {
		if strings.Contains(lower, s.phrase) {
			return s.period, true
		}
	}
	for _, word := range strings.FieldsFunc(lower, isWordSeparator) {
		if p, ok := periodWords[word]; ok {
			return p, true
		}
	}
	return "", false
}

// ContainsPeriodDigit is the lenient fallback used when a user answers a
// period question with arbitrary text: any mention of 1-4 (as a digit or a
// word, anywhere in the text) picks that period, lowest first.
func ContainsPeriodDigit(text string) (Period, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "1") || strings.Contains(lower, "one"):
		return PeriodP1, true
	case strings.Contains(lower, "2") || strings.Contains(lower, "two"):
		return PeriodP2, true
	case strings.Contains(lower, "3") || strings.Contains(lower, "three"):
		return PeriodP3, true
	case strings.Contains(lower, "4") || strings.Contains(lower, "four"):
		return PeriodP4, true
	}
	return "", false
}

// SortPeriods returns the distinct valid periods of ps in calendar order.
func SortPeriods(ps []Period) []Period {
	seen := make(map[Period]bool, len(ps))
	out := make([]Period, 0, len(ps))
	for _, p := range ps {
		if !p.Valid() || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func isWordSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}
