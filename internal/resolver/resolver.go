// Package resolver maps free-form course mentions ("DD 2424", "music
// acoustic") to at most one catalog course.
//
// Resolution runs in two phases. The code phase normalizes the query and
// looks for a catalog code inside it; it wins outright when it matches. The
// name phase scores every course name against the query tokens and accepts
// the best one above a threshold. A miss is a normal outcome, not an error.
package resolver

import (
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/catalog"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// Phase identifies which step of resolution produced a result.
type Phase string

const (
	PhaseNone Phase = "none"
	PhaseCode Phase = "code"
	PhaseName Phase = "name"
)

// Config holds the resolution constants. They are tunable, not calibrated
// against real user data.
type Config struct {
	// MinCodeLength stops short codes from matching numbers inside
	// unrelated utterances ("I am 20").
	MinCodeLength int
	// Threshold is the name score a match must exceed.
	Threshold float64
	Weights   ScoringWeights
	StopWords []string
	// Boilerplate words score normally but cannot make up a query alone.
	Boilerplate []string
}

func DefaultConfig() Config {
	return Config{
		MinCodeLength: 4,
		Threshold:     0.6,
		Weights:       defaultWeights(),
		StopWords:     DefaultStopWords,
		Boilerplate:   DefaultBoilerplate,
	}
}

// Resolution explains one resolve call.
type Resolution struct {
	Query    string
	Phase    Phase
	Course   domain.CourseRecord
	Score    float64
	Resolved bool
}

type entry struct {
	record     domain.CourseRecord
	code       string
	nameLower  string
	nameTokens []string
}

// Resolver is safe for concurrent use; it never changes after New.
type Resolver struct {
	cfg         Config
	entries     []entry
	stop        map[string]bool
	boilerplate map[string]bool
	observer    Observer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithObserver reports every resolution to o.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// New indexes cat for resolution. The catalog is read once; later catalogs
// need a new Resolver.
func New(cat *catalog.Catalog, cfg Config, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:         cfg,
		stop:        toSet(cfg.StopWords),
		boilerplate: toSet(cfg.Boilerplate),
		observer:    NoopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}

	records := cat.All()
	r.entries = make([]entry, len(records))
	for i, rec := range records {
		nameTokens := filterTokens(Tokenize(rec.Name), r.stop)
		if len(nameTokens) == 0 {
			nameTokens = Tokenize(rec.Name)
		}
		r.entries[i] = entry{
			record:     rec,
			code:       catalog.Normalize(rec.Code),
			nameLower:  strings.ToLower(rec.Name),
			nameTokens: nameTokens,
		}
	}
	return r
}

// Resolve returns the course the query refers to, if any.
func (r *Resolver) Resolve(query string) (domain.CourseRecord, bool) {
	res := r.Explain(query)
	if !res.Resolved {
		return domain.CourseRecord{}, false
	}
	return res.Course, true
}

// Explain resolves query and reports how the result was reached.
func (r *Resolver) Explain(query string) Resolution {
	res := r.explain(query)
	r.observer.OnResolve(ResolveEvent{
		Query:    query,
		Phase:    res.Phase,
		Code:     res.Course.Code,
		Score:    res.Score,
		Resolved: res.Resolved,
	})
	return res
}

func (r *Resolver) explain(query string) Resolution {
	res := Resolution{Query: query, Phase: PhaseNone}

	if i, ok := r.matchCode(catalog.Normalize(query)); ok {
		res.Phase = PhaseCode
		res.Course = r.entries[i].record.Clone()
		res.Score = 1
		res.Resolved = true
		return res
	}

	i, score := r.matchName(query)
	if i < 0 {
		return res
	}
	res.Score = score
	if score > r.cfg.Threshold {
		res.Phase = PhaseName
		res.Course = r.entries[i].record.Clone()
		res.Resolved = true
	}
	return res
}

// matchCode returns the first entry, in catalog order, whose normalized code
// is long enough and appears inside the normalized query.
func (r *Resolver) matchCode(normalized string) (int, bool) {
	if normalized == "" {
		return 0, false
	}
	for i, e := range r.entries {
		if len(e.code) < r.cfg.MinCodeLength {
			continue
		}
		if strings.Contains(normalized, e.code) {
			return i, true
		}
	}
	return 0, false
}

// matchName returns the best scoring entry and its score, or -1 when no
// name shares a token with the query. The first entry wins ties.
func (r *Resolver) matchName(query string) (int, float64) {
	queryTokens := filterTokens(Tokenize(query), r.stop)
	if onlyBoilerplate(queryTokens, r.boilerplate) {
		return -1, 0
	}
	raw := strings.ToLower(strings.TrimSpace(query))

	best, bestScore := -1, 0.0
	for i, e := range r.entries {
		scored := ScoreName(ScoreInput{
			QueryTokens: queryTokens,
			NameTokens:  e.nameTokens,
			RawQuery:    raw,
			Name:        e.nameLower,
			Weights:     r.cfg.Weights,
		})
		if scored.Matched == 0 {
			continue
		}
		if best < 0 || scored.Score > bestScore {
			best, bestScore = i, scored.Score
		}
	}
	return best, bestScore
}
