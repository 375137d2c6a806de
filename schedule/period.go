package schedule

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is an inclusive [Start, End] range of calendar days.
// Analysis windows (a month, a simulation range, a task's remaining
// lifetime) are all periods.
type Period struct {
	Start Date
	End   Date
}

// Valid reports whether the period is well-formed (End not before Start).
func (p Period) Valid() bool {
	return !p.End.Before(p.Start)
}

// Contains returns true if the date is within the period [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns all days in the period as a slice of Dates.
func (p Period) Days() []Date {
	var days []Date
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Intersect returns the overlap of two periods. The second return value
// is false when they do not overlap.
func (p Period) Intersect(other Period) (Period, bool) {
	start := p.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := p.End
	if other.End.Before(end) {
		end = other.End
	}
	if end.Before(start) {
		return Period{}, false
	}
	return Period{Start: start, End: end}, true
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
