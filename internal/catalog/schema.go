package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// CourseEntry is one element of the course export: the top-level JSON value is
// an array of these.
type CourseEntry struct {
	DetailedInformation *DetailedInformation `json:"detailedInformation"`
}

// DetailedInformation groups the course facts with its offering rounds.
type DetailedInformation struct {
	Course     *CourseFacts `json:"course"`
	RoundInfos []RoundInfo  `json:"roundInfos"`
}

// CourseFacts are the per-course fields the catalog reads. The export carries
// many more (syllabus, grading scale) that are ignored.
type CourseFacts struct {
	CourseCode *string  `json:"courseCode"`
	Title      *string  `json:"title"`
	Credits    *float64 `json:"credits"`
}

type RoundInfo struct {
	Round *Round `json:"round"`
}

type Round struct {
	CourseRoundTerms []RoundTerm `json:"courseRoundTerms"`
}

// RoundTerm is the credit split of one round term over the four periods.
type RoundTerm struct {
	CreditsP1 *float64 `json:"creditsP1"`
	CreditsP2 *float64 `json:"creditsP2"`
	CreditsP3 *float64 `json:"creditsP3"`
	CreditsP4 *float64 `json:"creditsP4"`
}

// Descriptor is the flattened, source-independent form of a course entry.
// Both the JSON export and the HTML listing are reduced to descriptors before
// validation and conversion.
type Descriptor struct {
	Code    string          `json:"code" validate:"required"`
	Title   string          `json:"title" validate:"required"`
	Credits float64         `json:"credits" validate:"gte=0"`
	Periods []domain.Period `json:"periods" validate:"dive,oneof=P1 P2 P3 P4"`
}

// DecodeEntries reads the course export array.
func DecodeEntries(r io.Reader) ([]CourseEntry, error) {
	var entries []CourseEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing course export: %w", err)
	}
	return entries, nil
}

// Flatten reduces a course entry to a descriptor. A period is included when
// any round term gives it a positive credit value. Missing fields become zero
// values and are caught by validation.
func (e CourseEntry) Flatten() Descriptor {
	var d Descriptor
	info := e.DetailedInformation
	if info == nil {
		return d
	}
	if c := info.Course; c != nil {
		d.Code = strings.TrimSpace(deref(c.CourseCode))
		d.Title = strings.TrimSpace(deref(c.Title))
		if c.Credits != nil {
			d.Credits = *c.Credits
		}
	}
	for _, ri := range info.RoundInfos {
		if ri.Round == nil {
			continue
		}
		for _, t := range ri.Round.CourseRoundTerms {
			d.Periods = append(d.Periods, t.periods()...)
		}
	}
	d.Periods = domain.SortPeriods(d.Periods)
	return d
}

func (t RoundTerm) periods() []domain.Period {
	var out []domain.Period
	for _, pc := range []struct {
		credits *float64
		period  domain.Period
	}{
		{t.CreditsP1, domain.PeriodP1},
		{t.CreditsP2, domain.PeriodP2},
		{t.CreditsP3, domain.PeriodP3},
		{t.CreditsP4, domain.PeriodP4},
	} {
		if pc.credits != nil && *pc.credits > 0 {
			out = append(out, pc.period)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
