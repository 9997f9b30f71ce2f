// Package catalog holds the read-only course index used by the resolver and
// the dialogue engine. A Catalog is built once at startup and passed around
// by pointer; nothing mutates it after construction.
package catalog

import (
	"strings"
	"unicode"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// Skipped records a source entry that was left out of the catalog.
type Skipped struct {
	Index  int
	Code   string
	Reason string
}

// Catalog is an immutable, ordered course index.
type Catalog struct {
	records []domain.CourseRecord
	byCode  map[string]int
	skipped []Skipped
}

// New builds a catalog from records in the given order. Records without a
// code or name, and records whose normalized code is already taken, are
// skipped. Records without periods default to P1.
func New(records ...domain.CourseRecord) *Catalog {
	c := &Catalog{byCode: make(map[string]int, len(records))}
	for i, rec := range records {
		c.add(i, rec)
	}
	return c
}

// Empty returns a catalog with no courses.
func Empty() *Catalog {
	return New()
}

func (c *Catalog) add(index int, rec domain.CourseRecord) {
	rec.Code = strings.TrimSpace(rec.Code)
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Code == "" || rec.Name == "" {
		c.skip(index, rec.Code, "missing code or name")
		return
	}
	key := Normalize(rec.Code)
	if key == "" {
		c.skip(index, rec.Code, "code has no letters or digits")
		return
	}
	if _, dup := c.byCode[key]; dup {
		c.skip(index, rec.Code, "duplicate code")
		return
	}
	rec.Periods = domain.SortPeriods(rec.Periods)
	if len(rec.Periods) == 0 {
		rec.Periods = []domain.Period{domain.PeriodP1}
	}
	c.byCode[key] = len(c.records)
	c.records = append(c.records, rec)
}

func (c *Catalog) skip(index int, code, reason string) {
	c.skipped = append(c.skipped, Skipped{Index: index, Code: code, Reason: reason})
}

// All returns every course in load order. The slice and its records are
// copies.
func (c *Catalog) All() []domain.CourseRecord {
	out := make([]domain.CourseRecord, len(c.records))
	for i, r := range c.records {
		out[i] = r.Clone()
	}
	return out
}

// ByCode looks a course up by code, ignoring case, spacing and punctuation.
func (c *Catalog) ByCode(code string) (domain.CourseRecord, bool) {
	i, ok := c.byCode[Normalize(code)]
	if !ok {
		return domain.CourseRecord{}, false
	}
	return c.records[i].Clone(), true
}

func (c *Catalog) Len() int { return len(c.records) }

// Skipped returns the source entries that were not loaded.
func (c *Catalog) Skipped() []Skipped {
	return append([]Skipped(nil), c.skipped...)
}

// Keywords returns all course names followed by all codes, the vocabulary a
// speech front end needs to recognise course mentions.
func (c *Catalog) Keywords() []string {
	out := make([]string, 0, 2*len(c.records))
	for _, r := range c.records {
		out = append(out, r.Name)
	}
	for _, r := range c.records {
		out = append(out, r.Code)
	}
	return out
}

// Normalize strips everything except letters and digits and lowercases the
// rest: "DD 2424", "dd-2424" and "D D 2 4 2 4" all become "dd2424".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
