package domain

import (
	"fmt"
	"strings"
)

// CourseRecord is one catalog entry. Records are built once when the catalog
// loads and never change afterwards.
type CourseRecord struct {
	Code    string
	Name    string
	Credits float64
	// Periods is non-empty, sorted and free of duplicates.
	Periods []Period
}

// FirstPeriod is the period a course is scheduled under when added to a cart.
func (c CourseRecord) FirstPeriod() Period {
	sorted := SortPeriods(c.Periods)
	if len(sorted) == 0 {
		return PeriodP1
	}
	return sorted[0]
}

// OffersIn reports whether the course runs in period p.
func (c CourseRecord) OffersIn(p Period) bool {
	for _, cp := range c.Periods {
		if cp == p {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no backing array with c.
func (c CourseRecord) Clone() CourseRecord {
	out := c
	out.Periods = append([]Period(nil), c.Periods...)
	return out
}

// PeriodLabel joins the periods for display, e.g. "P1, P3".
func (c CourseRecord) PeriodLabel() string {
	parts := make([]string, len(c.Periods))
	for i, p := range c.Periods {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}

func (c CourseRecord) String() string {
	return fmt.Sprintf("[%s] %s", c.Code, c.Name)
}

// ScheduledCourse is a cart entry: a snapshot of a CourseRecord taken when it
// was added, pinned to a single period.
type ScheduledCourse struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Credits float64 `json:"credits"`
	Period  Period  `json:"period"`
}

// Schedule copies the fields of rec into a cart entry for period p.
func Schedule(rec CourseRecord, p Period) ScheduledCourse {
	return ScheduledCourse{
		Code:    rec.Code,
		Name:    rec.Name,
		Credits: rec.Credits,
		Period:  p,
	}
}

// FormatCredits renders credits the way they are spoken: "7.5", "6.0".
func FormatCredits(c float64) string {
	return fmt.Sprintf("%.1f", c)
}
