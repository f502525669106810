package catalog

import (
	"strings"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/parsers"
)

// defaultDepartments is the static per-reason catalog the hospital offers.
// Slot strings are kept raw on purpose (mixed 24-hour and meridiem forms) and
// normalized on every read; the catalog never assumes its own data is
// pre-normalized.
var defaultDepartments = []model.Department{
	{
		Reason:  "flu",
		Doctors: []string{"Dr. Smith", "Dr. Patel"},
		Slots:   []string{"10:00", "11:00", "2:00 PM", "3:00 PM"},
	},
	{
		Reason:  "checkup",
		Doctors: []string{"Dr. Lee", "Dr. Garcia"},
		Slots:   []string{"09:00", "10:00"},
	},
	{
		Reason:  "fever",
		Doctors: []string{"Dr. Adams"},
		Slots:   []string{"4 PM", "5 PM"},
	},
}

// Catalog is the immutable reason -> (doctors, slots) mapping. All lookups are
// case-insensitive and substring-tolerant in both directions so that small
// extraction noise ("flu shot" vs "flu") still resolves. A failed lookup is a
// normal outcome, reported through the ok return, never an error.
type Catalog struct {
	departments []model.Department
}

// New builds a catalog from the given departments, preserving their order.
func New(departments []model.Department) *Catalog {
	deps := make([]model.Department, len(departments))
	copy(deps, departments)
	return &Catalog{departments: deps}
}

// Default returns a catalog with the hospital's built-in departments.
func Default() *Catalog {
	return New(defaultDepartments)
}

// Reasons returns the ordered reason tags.
func (c *Catalog) Reasons() []string {
	reasons := make([]string, 0, len(c.departments))
	for _, d := range c.departments {
		reasons = append(reasons, d.Reason)
	}
	return reasons
}

// Resolve finds the department for the requested reason. The reason key may
// be a substring of the request or vice versa; matching ignores case.
func (c *Catalog) Resolve(reason string) (model.Department, bool) {
	requested := strings.ToLower(strings.TrimSpace(reason))
	if requested == "" {
		return model.Department{}, false
	}
	for _, d := range c.departments {
		tag := strings.ToLower(d.Reason)
		if strings.Contains(requested, tag) || strings.Contains(tag, requested) {
			return d, true
		}
	}
	return model.Department{}, false
}

// SlotsFor returns the ordered doctors and raw offered times for a reason.
func (c *Catalog) SlotsFor(reason string) (doctors []string, times []string, ok bool) {
	d, ok := c.Resolve(reason)
	if !ok {
		return nil, nil, false
	}
	return append([]string(nil), d.Doctors...), append([]string(nil), d.Slots...), true
}

// FirstDoctor returns the department's first listed doctor.
func (c *Catalog) FirstDoctor(reason string) (string, bool) {
	d, ok := c.Resolve(reason)
	if !ok || len(d.Doctors) == 0 {
		return "", false
	}
	return d.Doctors[0], true
}

// CanonicalTimes returns the department's offered times normalized to HH:MM.
func (c *Catalog) CanonicalTimes(reason string) ([]string, bool) {
	d, ok := c.Resolve(reason)
	if !ok {
		return nil, false
	}
	times := make([]string, 0, len(d.Slots))
	for _, s := range d.Slots {
		times = append(times, parsers.NormalizeTime(s))
	}
	return times, true
}

// OffersTime reports whether the canonical time is offered for the reason.
func (c *Catalog) OffersTime(reason, canonicalTime string) bool {
	times, ok := c.CanonicalTimes(reason)
	if !ok {
		return false
	}
	for _, t := range times {
		if t == canonicalTime {
			return true
		}
	}
	return false
}

// Departments returns a copy of the ordered department list.
func (c *Catalog) Departments() []model.Department {
	deps := make([]model.Department, len(c.departments))
	copy(deps, c.departments)
	return deps
}
