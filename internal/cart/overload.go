package cart

import "github.com/alexanderramin/courseadvisor/internal/domain"

// DefaultOverloadThreshold is the per-period credit load above which an add
// needs explicit confirmation.
const DefaultOverloadThreshold = 15.0

// OverloadPolicy is a single per-period credit threshold. It does not look
// at other periods or at prerequisites.
type OverloadPolicy struct {
	Threshold float64
}

// DefaultOverloadPolicy uses DefaultOverloadThreshold.
func DefaultOverloadPolicy() OverloadPolicy {
	return OverloadPolicy{Threshold: DefaultOverloadThreshold}
}

// OverloadCheck is the outcome of checking one candidate course.
type OverloadCheck struct {
	Period      domain.Period
	CurrentLoad float64
	Projected   float64
	Threshold   float64
	Overloaded  bool
}

// Check computes the load of the period rec would be added under (its first
// period) with and without rec.
func (p OverloadPolicy) Check(c *Cart, rec domain.CourseRecord) OverloadCheck {
	period := rec.FirstPeriod()
	current := c.CreditsIn(period)
	projected := current + rec.Credits
	return OverloadCheck{
		Period:      period,
		CurrentLoad: current,
		Projected:   projected,
		Threshold:   p.Threshold,
		Overloaded:  projected > p.Threshold,
	}
}
