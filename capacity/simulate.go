/*
simulate.go - Day-by-day allocation projection

PURPOSE:
  Spreads the collaborator's workload across individual calendar days,
  producing the per-day breakdown (planned / continuous / buffer) behind
  the allocation heatmap and the release forecaster.

INVARIANT:
  plannedHours + continuousHours + bufferHours == capacity for every day
  that is not overloaded. When combined demand exceeds the day's capacity
  the day is flagged overloaded and the buffer clamps to zero; work is
  never silently truncated.

SEE ALSO:
  - aggregate.go: the monthly view of the same tiers
  - forecast.go: walks these daily capacities forward past month end
*/
package capacity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/capacity-engine/schedule"
)

// DailyAllocation is one day of the simulated allocation.
type DailyAllocation struct {
	Date            schedule.Date
	PlannedHours    Hours
	ContinuousHours Hours
	BufferHours     Hours
	Capacity        Hours
	Overloaded      bool
}

// taskSpread carries a planned task's even per-working-day rate across the
// working days of its window intersected with the simulation range.
type taskSpread struct {
	window schedule.Period
	rate   Hours
	fixed  bool // window has no working days left; dump remainder on first available day
	rest   Hours
}

// SimulateDaily spreads the collaborator's hours across every calendar day
// in [start, end]. Planned task remainders spread evenly over each task's
// remaining working days; Continuous fills the reserve share of days that
// carry no Planned work.
func (e *Engine) SimulateDaily(collaboratorID string, start, end schedule.Date, snap Snapshot, dailyCapacity Hours) ([]DailyAllocation, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("simulate [%s, %s]: %w", start, end, schedule.ErrInvalidRange)
	}

	simRange := schedule.Period{Start: start, End: end}
	daily := dailyCapacity
	if !daily.IsPositive() {
		daily = e.Policy.DailyFallbackHours
	}

	planned := snap.plannedProjects()
	var spreads []taskSpread
	hasContinuous := false

	for _, t := range relevantTasks(collaboratorID, snap) {
		remaining := remainingHours(t, collaboratorID, snap.Entries, &simRange)
		if !remaining.IsPositive() {
			continue
		}
		if !planned[t.ProjectID] {
			hasContinuous = true
			continue
		}

		window, ok := taskWindow(t, simRange).Intersect(simRange)
		if !ok {
			continue
		}
		days, err := schedule.WorkingDaysInPeriod(window, snap.Holidays)
		if err != nil {
			return nil, err
		}
		if days.IsPositive() {
			spreads = append(spreads, taskSpread{window: window, rate: remaining.Div(days)})
		} else {
			spreads = append(spreads, taskSpread{window: window, fixed: true, rest: remaining})
		}
	}

	var out []DailyAllocation
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		fraction := schedule.WorkingFraction(d, snap.Holidays, snap.Absences, collaboratorID)
		dayCap := daily.Mul(fraction)

		plannedDay := ZeroHours()
		for i := range spreads {
			plannedDay = plannedDay.Add(spreads[i].onDay(d, fraction))
		}

		continuousDay := ZeroHours()
		if !plannedDay.IsPositive() && hasContinuous && dayCap.IsPositive() {
			continuousDay = dayCap.Mul(e.Policy.ReserveShare)
		}

		demand := plannedDay.Add(continuousDay)
		out = append(out, DailyAllocation{
			Date:            d,
			PlannedHours:    plannedDay,
			ContinuousHours: continuousDay,
			BufferHours:     dayCap.Sub(demand).ClampZero(),
			Capacity:        dayCap,
			Overloaded:      demand.GreaterThan(dayCap),
		})
	}
	return out, nil
}

// onDay returns the spread's contribution on one day, the per-day rate
// weighted by the day's working fraction. Personal absences inside the
// window reduce the days they cover without inflating the others, so the
// slip stays visible instead of being averaged away.
func (s *taskSpread) onDay(d schedule.Date, fraction decimal.Decimal) Hours {
	if !s.window.Contains(d) {
		return ZeroHours()
	}
	if s.fixed {
		// No working days left in the window: the whole remainder lands
		// on the window's first day inside the range (an overload, not a
		// silent truncation).
		if d.Equal(s.window.Start) {
			return s.rest
		}
		return ZeroHours()
	}
	return s.rate.Mul(fraction)
}
