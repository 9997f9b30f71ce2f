package resolver

import (
	"math"
	"strings"
	"unicode"
)

// ScoringWeights are the tunable constants of name scoring.
type ScoringWeights struct {
	// LengthPenalty is subtracted per token of difference between the
	// query and the course name.
	LengthPenalty float64
	// FullStringBonus is added when the whole query appears verbatim in the
	// course name.
	FullStringBonus float64
}

func defaultWeights() ScoringWeights {
	return ScoringWeights{
		LengthPenalty:   0.1,
		FullStringBonus: 0.5,
	}
}

// ScoreInput is one query/name comparison.
type ScoreInput struct {
	QueryTokens []string
	NameTokens  []string
	// RawQuery and Name are lowercased full strings for the substring bonus.
	RawQuery string
	Name     string
	Weights  ScoringWeights
}

// ScoredName is the result of scoring one catalog name.
type ScoredName struct {
	Matched   int
	Precision float64
	Recall    float64
	Bonus     float64
	Penalty   float64
	Score     float64
}

// ScoreName computes precision + recall + bonus - penalty. A query token
// matches when some name token equals it or starts with it, so "acoustic"
// matches "acoustics". No matched token means a score of zero.
func ScoreName(in ScoreInput) ScoredName {
	var res ScoredName
	if len(in.QueryTokens) == 0 || len(in.NameTokens) == 0 {
		return res
	}
	for _, qt := range in.QueryTokens {
		if tokenMatches(qt, in.NameTokens) {
			res.Matched++
		}
	}
	if res.Matched == 0 {
		return res
	}

	m := float64(res.Matched)
	res.Precision = m / float64(len(in.QueryTokens))
	res.Recall = m / float64(len(in.NameTokens))
	res.Penalty = in.Weights.LengthPenalty * math.Abs(float64(len(in.NameTokens)-len(in.QueryTokens)))
	if in.RawQuery != "" && strings.Contains(in.Name, in.RawQuery) {
		res.Bonus = in.Weights.FullStringBonus
	}
	res.Score = res.Precision + res.Recall + res.Bonus - res.Penalty
	return res
}

func tokenMatches(qt string, nameTokens []string) bool {
	for _, ct := range nameTokens {
		if ct == qt || strings.HasPrefix(ct, qt) {
			return true
		}
	}
	return false
}

// Tokenize lowercases s, drops punctuation and symbols, splits on whitespace
// and removes duplicate tokens. Punctuation is deleted rather than turned
// into a separator, so "xyzzy-no-such-course" stays a single token.
func Tokenize(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)

	fields := strings.Fields(cleaned)
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// DefaultStopWords are dropped from both sides of name scoring: the
// conversational filler around a course mention and the function words of
// course titles.
var DefaultStopWords = []string{
	"i", "id", "im", "want", "wanna", "would", "like", "to", "add", "take",
	"please", "me", "my", "sign", "up", "for", "the", "a", "an", "can", "you",
	"schedule", "plan", "that", "this", "one",
	"and", "of", "in", "on", "with",
}

// DefaultBoilerplate are title words shared by so many courses that they
// identify nothing on their own. They still score, so "advanced algorithms"
// prefers Advanced Algorithms over Algorithms, but a query made only of them
// resolves to nothing.
var DefaultBoilerplate = []string{
	"course", "courses", "advanced", "introduction", "intro", "basic", "basics", "part", "project",
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

// onlyBoilerplate reports whether every token is a boilerplate word.
func onlyBoilerplate(tokens []string, boilerplate map[string]bool) bool {
	for _, t := range tokens {
		if !boilerplate[t] {
			return false
		}
	}
	return true
}

func filterTokens(tokens []string, stop map[string]bool) []string {
	if len(stop) == 0 {
		return tokens
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !stop[t] {
			out = append(out, t)
		}
	}
	return out
}
