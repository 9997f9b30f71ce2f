package testutil

import (
	"github.com/alexanderramin/courseadvisor/internal/cart"
	"github.com/alexanderramin/courseadvisor/internal/catalog"
	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/google/uuid"
)

type CourseOption func(*domain.CourseRecord)

func WithCredits(c float64) CourseOption {
	return func(r *domain.CourseRecord) {
		r.Credits = c
	}
}

func WithPeriods(ps ...domain.Period) CourseOption {
	return func(r *domain.CourseRecord) {
		r.Periods = domain.SortPeriods(ps)
	}
}

// NewTestCourse returns a 7.5 credit course running in P1 unless options
// say otherwise.
func NewTestCourse(code, name string, opts ...CourseOption) domain.CourseRecord {
	r := domain.CourseRecord{
		Code:    code,
		Name:    name,
		Credits: 7.5,
		Periods: []domain.Period{domain.PeriodP1},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// SampleCatalog is a small catalog shaped like the real course export.
func SampleCatalog() *catalog.Catalog {
	return catalog.New(
		NewTestCourse("DD2424", "Deep Learning, Advanced Course", WithPeriods(domain.PeriodP2)),
		NewTestCourse("DT2212", "Music Acoustics", WithPeriods(domain.PeriodP3)),
		NewTestCourse("DH2320", "Introduction to Visualization and Computer Graphics", WithPeriods(domain.PeriodP1, domain.PeriodP2)),
		NewTestCourse("DT2140", "Multimodal Interaction and Interfaces", WithPeriods(domain.PeriodP4)),
		NewTestCourse("DM2350", "Human Perception for Information Technology", WithCredits(6), WithPeriods(domain.PeriodP1)),
		NewTestCourse("DA2205", "Introduction to the Philosophy of Science", WithCredits(8.5), WithPeriods(domain.PeriodP1)),
	)
}

// NewTestCart returns a cart seeded with items and an empty undo history.
func NewTestCart(items ...domain.ScheduledCourse) *cart.Cart {
	c := cart.New(cart.DefaultUndoDepth)
	c.Restore(items)
	return c
}

func Scheduled(code, name string, credits float64, p domain.Period) domain.ScheduledCourse {
	return domain.ScheduledCourse{Code: code, Name: name, Credits: credits, Period: p}
}

func NewSessionID() string {
	return uuid.New().String()
}
