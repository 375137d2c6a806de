/*
forecast.go - Release date projection

PURPOSE:
  Walks daily capacity forward from an explicit "today" to find the first
  date on which the collaborator's full Planned backlog is exhausted,
  under two utilization assumptions:

  ideal:     100% of every working day's capacity goes to the backlog
  realistic: only the non-reserve share does (the collaborator also
             carries standing Continuous work in parallel)

TERMINATION:
  The walk is capped at the policy forecast horizon. A realistic
  projection that exceeds the cap is reported as saturated rather than
  looped indefinitely.

DETERMINISM:
  "today" is a parameter, never an ambient clock read, so identical
  inputs always produce identical forecasts.
*/
package capacity

import (
	"github.com/shopspring/decimal"

	"github.com/warp/capacity-engine/schedule"
)

// ReleaseForecast is the projected date at which the collaborator's
// Planned backlog is fully absorbed. Nil dates mean no backlog exists
// (ideal/realistic) or the horizon was exceeded.
type ReleaseForecast struct {
	Ideal       *schedule.Date
	Realistic   *schedule.Date
	IsSaturated bool
}

// ReleaseForecast projects when the collaborator becomes free for new
// planned work. The backlog is the full remaining Planned workload, with
// no month boundary: every open planned task, net of all logged hours.
func (e *Engine) ReleaseForecast(collab Collaborator, today schedule.Date, snap Snapshot) ReleaseForecast {
	planned := snap.plannedProjects()

	backlog := ZeroHours()
	for _, t := range relevantTasks(collab.ID, snap) {
		if !planned[t.ProjectID] {
			continue
		}
		backlog = backlog.Add(remainingHours(t, collab.ID, snap.Entries, nil))
	}
	if !backlog.IsPositive() {
		return ReleaseForecast{}
	}

	daily := collab.DailyCapacity(e.Policy.DailyFallbackHours)
	realisticShare := decimal.NewFromInt(1).Sub(e.Policy.ReserveShare)

	var forecast ReleaseForecast
	idealSum := ZeroHours()
	realisticSum := ZeroHours()

	d := today
	for i := 0; i <= e.Policy.ForecastHorizonDays; i++ {
		dayCap := daily.Mul(schedule.WorkingFraction(d, snap.Holidays, snap.Absences, collab.ID))

		if forecast.Ideal == nil {
			idealSum = idealSum.Add(dayCap)
			if !idealSum.LessThan(backlog) {
				day := d
				forecast.Ideal = &day
			}
		}
		if forecast.Realistic == nil {
			realisticSum = realisticSum.Add(dayCap.Mul(realisticShare))
			if !realisticSum.LessThan(backlog) {
				day := d
				forecast.Realistic = &day
			}
		}
		if forecast.Ideal != nil && forecast.Realistic != nil {
			return forecast
		}
		d = d.AddDays(1)
	}

	// The realistic walk ran past the horizon: the backlog is not
	// realistically clearable.
	forecast.IsSaturated = forecast.Realistic == nil
	return forecast
}
