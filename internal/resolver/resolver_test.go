package resolver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alexanderramin/courseadvisor/internal/catalog"
	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		domain.CourseRecord{Code: "DD2424", Name: "Deep Learning, Advanced Course", Credits: 7.5, Periods: []domain.Period{domain.PeriodP2}},
		domain.CourseRecord{Code: "DT2212", Name: "Music Acoustics", Credits: 7.5, Periods: []domain.Period{domain.PeriodP3}},
		domain.CourseRecord{Code: "DH2320", Name: "Introduction to Visualization and Computer Graphics", Credits: 7.5},
		domain.CourseRecord{Code: "DT2140", Name: "Multimodal Interaction and Interfaces", Credits: 7.5, Periods: []domain.Period{domain.PeriodP4}},
		domain.CourseRecord{Code: "DT2300", Name: "Sound and Vibration", Credits: 6},
		domain.CourseRecord{Code: "SF1625", Name: "Calculus in One Variable", Credits: 7.5},
		domain.CourseRecord{Code: "M20", Name: "Kendo", Credits: 1.5},
	)
}

type recordingObserver struct {
	events []ResolveEvent
}

func (o *recordingObserver) OnResolve(e ResolveEvent) { o.events = append(o.events, e) }

func TestResolve_DeepLearningScenario(t *testing.T) {
	r := New(testCatalog(), DefaultConfig())

	res := r.Explain("I want deep learning")
	require.True(t, res.Resolved)
	assert.Equal(t, PhaseName, res.Phase)
	assert.Equal(t, "DD2424", res.Course.Code)
	assert.Greater(t, res.Score, 0.6)

	res = r.Explain("DD 2 4 2 4")
	require.True(t, res.Resolved)
	assert.Equal(t, PhaseCode, res.Phase)
	assert.Equal(t, "DD2424", res.Course.Code)

	_, ok := r.Resolve("advanced")
	assert.False(t, ok, "a lone generic title word must not resolve")
}

func TestResolve_NoMatch(t *testing.T) {
	r := New(testCatalog(), DefaultConfig())

	for _, q := range []string{"", "   ", "xyzzy-no-such-course", "hmm", "!!!"} {
		_, ok := r.Resolve(q)
		assert.False(t, ok, "query %q", q)
	}
}

func TestResolve_CodeVariants(t *testing.T) {
	cat := testCatalog()
	r := New(cat, DefaultConfig())

	for _, rec := range cat.All() {
		if len(catalog.Normalize(rec.Code)) < DefaultConfig().MinCodeLength {
			continue
		}
		spaced := strings.Join(strings.Split(rec.Code, ""), " ")
		for _, q := range []string{rec.Code, strings.ToLower(rec.Code), spaced, "course " + rec.Code + "!"} {
			got, ok := r.Resolve(q)
			require.True(t, ok, "query %q", q)
			assert.Equal(t, rec.Code, got.Code, "query %q", q)
		}
	}
}

func TestResolve_CodePhaseDominatesName(t *testing.T) {
	r := New(testCatalog(), DefaultConfig())

	res := r.Explain("DT2212 deep learning")
	require.True(t, res.Resolved)
	assert.Equal(t, PhaseCode, res.Phase)
	assert.Equal(t, "DT2212", res.Course.Code)
}

func TestResolve_ShortCodeFloor(t *testing.T) {
	r := New(testCatalog(), DefaultConfig())
	_, ok := r.Resolve("I am 20")
	assert.False(t, ok, "three character code is below the floor")

	cfg := DefaultConfig()
	cfg.MinCodeLength = 3
	r = New(testCatalog(), cfg)
	got, ok := r.Resolve("I am 20")
	require.True(t, ok)
	assert.Equal(t, "M20", got.Code)
}

func TestResolve_PrefixTokenMatch(t *testing.T) {
	r := New(testCatalog(), DefaultConfig())

	got, ok := r.Resolve("music acoustic")
	require.True(t, ok)
	assert.Equal(t, "DT2212", got.Code)

	got, ok = r.Resolve("sound")
	require.True(t, ok)
	assert.Equal(t, "DT2300", got.Code)

	got, ok = r.Resolve("visualization and graphics")
	require.True(t, ok)
	assert.Equal(t, "DH2320", got.Code)
}

func TestResolve_BelowThreshold(t *testing.T) {
	r := New(testCatalog(), DefaultConfig())

	res := r.Explain("deep banana kiwi mango")
	assert.False(t, res.Resolved)
	assert.Equal(t, PhaseNone, res.Phase)
	assert.InDelta(t, 0.5, res.Score, 1e-9)
}

func TestResolve_BoilerplateWordsStillDistinguish(t *testing.T) {
	cat := catalog.New(
		domain.CourseRecord{Code: "DD2440", Name: "Advanced Algorithms", Credits: 7.5},
		domain.CourseRecord{Code: "DD2352", Name: "Algorithms", Credits: 7.5},
		domain.CourseRecord{Code: "II1305", Name: "Project in Information Technology", Credits: 7.5},
	)
	r := New(cat, DefaultConfig())

	got, ok := r.Resolve("advanced algorithms")
	require.True(t, ok)
	assert.Equal(t, "DD2440", got.Code)

	got, ok = r.Resolve("I want to take algorithms")
	require.True(t, ok)
	assert.Equal(t, "DD2352", got.Code)

	for _, q := range []string{"advanced", "the advanced course", "project"} {
		_, ok = r.Resolve(q)
		assert.False(t, ok, "query %q", q)
	}
}

func TestResolve_TiesGoToFirstInCatalogOrder(t *testing.T) {
	cat := catalog.New(
		domain.CourseRecord{Code: "AA1111", Name: "Deep Learning"},
		domain.CourseRecord{Code: "BB2222", Name: "Deep Learning"},
		domain.CourseRecord{Code: "DD2424", Name: "Other"},
		domain.CourseRecord{Code: "DD24245", Name: "Longer Code"},
	)
	r := New(cat, DefaultConfig())

	got, ok := r.Resolve("deep learning")
	require.True(t, ok)
	assert.Equal(t, "AA1111", got.Code)

	got, ok = r.Resolve("DD24245")
	require.True(t, ok)
	assert.Equal(t, "DD2424", got.Code, "first code contained in the query wins")
}

func TestResolve_EmptyCatalog(t *testing.T) {
	r := New(catalog.Empty(), DefaultConfig())
	_, ok := r.Resolve("deep learning")
	assert.False(t, ok)
}

func TestResolve_ReturnsCopy(t *testing.T) {
	r := New(testCatalog(), DefaultConfig())
	got, ok := r.Resolve("DD2424")
	require.True(t, ok)
	got.Periods[0] = domain.PeriodP4

	again, _ := r.Resolve("DD2424")
	assert.Equal(t, domain.PeriodP2, again.Periods[0])
}

func TestResolve_ObserverSeesEveryAttempt(t *testing.T) {
	obs := &recordingObserver{}
	r := New(testCatalog(), DefaultConfig(), WithObserver(obs))

	r.Resolve("DD2424")
	r.Resolve("music acoustics")
	r.Resolve("nothing here")

	require.Len(t, obs.events, 3)
	assert.Equal(t, ResolveEvent{Query: "DD2424", Phase: PhaseCode, Code: "DD2424", Score: 1, Resolved: true}, obs.events[0])
	assert.Equal(t, PhaseName, obs.events[1].Phase)
	assert.False(t, obs.events[2].Resolved)
}

func TestLogObserver_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	r := New(testCatalog(), DefaultConfig(), WithObserver(NewLogObserver(logger)))

	r.Resolve("music acoustic")
	out := buf.String()
	assert.Contains(t, out, `"query":"music acoustic"`)
	assert.Contains(t, out, `"phase":"name"`)
	assert.Contains(t, out, `"code":"DT2212"`)
	assert.Contains(t, out, `"resolved":true`)
}

func TestScoreName_Formula(t *testing.T) {
	scored := ScoreName(ScoreInput{
		QueryTokens: []string{"music", "acoustic"},
		NameTokens:  []string{"music", "acoustics"},
		RawQuery:    "music acoustic",
		Name:        "music acoustics",
		Weights:     defaultWeights(),
	})
	assert.Equal(t, 2, scored.Matched)
	assert.InDelta(t, 2.5, scored.Score, 1e-9)

	scored = ScoreName(ScoreInput{
		QueryTokens: []string{"sound"},
		NameTokens:  []string{"sound", "vibration"},
		RawQuery:    "sound",
		Name:        "sound and vibration",
		Weights:     defaultWeights(),
	})
	assert.InDelta(t, 1+0.5+0.5-0.1, scored.Score, 1e-9)

	scored = ScoreName(ScoreInput{
		QueryTokens: []string{"xyz"},
		NameTokens:  []string{"sound"},
		Weights:     defaultWeights(),
	})
	assert.Zero(t, scored.Score)
	assert.Zero(t, scored.Matched)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"deep", "learning", "advanced", "course"}, Tokenize("Deep Learning, Advanced Course"))
	assert.Equal(t, []string{"xyzzynosuchcourse"}, Tokenize("xyzzy-no-such-course"))
	assert.Equal(t, []string{"im", "done"}, Tokenize("I'm done done"))
	assert.Empty(t, Tokenize(" ... "))
}
