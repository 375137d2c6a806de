/*
aggregate.go - Monthly tier aggregation

PURPOSE:
  Partitions a collaborator's relevant hours for one month into the two
  priority tiers:

  Planned:    remaining hours of tasks whose project carries a committed
              delivery window, attributed to the month in proportion to
              the share of the task's remaining working days that fall
              inside it
  Continuous: ongoing/reserve work with no hard deadline

CONTINUOUS SIZING:
  When no Planned hours land in the month and at least one Continuous
  task exists, the Continuous tier defaults to the policy reserve share
  of the collaborator's capacity target for the month, net of weekends,
  holidays and approved absences (a standing-reserve assumption). When
  Planned hours exist they pre-empt the reserve and the tier is zero;
  the breakdown still lists each Continuous source with its literal
  remaining hours so callers can explain where reserve pressure comes
  from.

SEE ALSO:
  - engine.go: task selection and sizing helpers shared with simulation
  - calculate.go: occupancy scoring of the aggregated tiers
*/
package capacity

import (
	"fmt"

	"github.com/warp/capacity-engine/schedule"
)

// =============================================================================
// BREAKDOWN - Per-source attribution
// =============================================================================

// AllocationItem attributes hours to one contributing task.
type AllocationItem struct {
	ID    string
	Name  string
	Hours Hours
}

// Breakdown explains where the tier hours originate, one entry per
// contributing task, for both tiers.
type Breakdown struct {
	Planned    []AllocationItem
	Continuous []AllocationItem
}

// MonthlyAllocation is the aggregated workload for one collaborator-month.
type MonthlyAllocation struct {
	PlannedHours    Hours
	ContinuousHours Hours
	Breakdown       Breakdown
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregate partitions the collaborator's relevant hours for the month
// into the Planned and Continuous tiers.
func (e *Engine) Aggregate(collab Collaborator, month schedule.Period, snap Snapshot) (MonthlyAllocation, error) {
	if !month.Valid() {
		return MonthlyAllocation{}, fmt.Errorf("aggregate %s: %w", month, schedule.ErrInvalidRange)
	}

	planned := snap.plannedProjects()
	alloc := MonthlyAllocation{PlannedHours: ZeroHours(), ContinuousHours: ZeroHours()}
	continuousSum := ZeroHours()

	for _, t := range relevantTasks(collab.ID, snap) {
		remaining := remainingHours(t, collab.ID, snap.Entries, &month)
		if !remaining.IsPositive() {
			continue
		}

		if !planned[t.ProjectID] {
			continuousSum = continuousSum.Add(remaining)
			alloc.Breakdown.Continuous = append(alloc.Breakdown.Continuous, AllocationItem{
				ID:    t.ID,
				Name:  displayName(t, snap),
				Hours: remaining,
			})
			continue
		}

		attributed := monthShare(t, remaining, month, snap.Holidays)
		if !attributed.IsPositive() {
			continue
		}
		alloc.PlannedHours = alloc.PlannedHours.Add(attributed)
		alloc.Breakdown.Planned = append(alloc.Breakdown.Planned, AllocationItem{
			ID:    t.ID,
			Name:  displayName(t, snap),
			Hours: attributed,
		})
	}

	// Continuous is a standing reserve, not a literal sum: it only sizes
	// the tier when no Planned work competes for the month. The reserve
	// shares the absence-adjusted day sum with the capacity target, so a
	// pure-reserve month always scores at exactly the reserve share.
	if !alloc.PlannedHours.IsPositive() && continuousSum.IsPositive() {
		daily := collab.DailyCapacity(e.Policy.DailyFallbackHours)
		days := availableDays(collab.ID, month, snap.Holidays, snap.Absences)
		alloc.ContinuousHours = daily.Mul(days).Mul(e.Policy.ReserveShare)
	}

	return alloc, nil
}

// monthShare attributes a task's remaining hours to the analysis month in
// proportion to the remaining working days that fall inside it. A task
// whose window has no working days left contributes its whole remainder
// as long as the window touches the month.
func monthShare(t Task, remaining Hours, month schedule.Period, holidays []schedule.Holiday) Hours {
	window := taskWindow(t, month)

	inMonth, ok := window.Intersect(month)
	if !ok {
		return ZeroHours()
	}

	totalDays, err := schedule.WorkingDaysInPeriod(window, holidays)
	if err != nil || !totalDays.IsPositive() {
		return remaining
	}

	monthDays, err := schedule.WorkingDaysInPeriod(inMonth, holidays)
	if err != nil {
		return ZeroHours()
	}
	return remaining.Mul(monthDays).Div(totalDays)
}
