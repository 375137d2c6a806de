package capacity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/capacity-engine/schedule"
)

// =============================================================================
// CAPACITY CALCULATOR - Occupancy, buffer and status tier
// =============================================================================

var hundred = decimal.NewFromInt(100)

// CapacityReport scores aggregated tier hours against the collaborator's
// personal capacity target for the month.
type CapacityReport struct {
	// Allocated hours over target hours, as a percentage. Zero when the
	// target itself is zero.
	OccupancyRate decimal.Decimal

	// Hours still free for additional Planned work, floored at zero.
	Balance Hours

	// Daily target times the month's working days, net of the
	// collaborator's own approved absences.
	TargetHours Hours

	Status Status
}

// Capacity combines the aggregated tiers with the collaborator's capacity
// target: occupancy percentage, qualitative status tier and residual
// buffer. The target already discounts weekends, holidays and the
// collaborator's approved absences.
func (e *Engine) Capacity(planned, continuous Hours, collab Collaborator, month schedule.Period, holidays []schedule.Holiday, absences []schedule.Absence) (CapacityReport, error) {
	if !month.Valid() {
		return CapacityReport{}, fmt.Errorf("capacity %s: %w", month, schedule.ErrInvalidRange)
	}

	daily := collab.DailyCapacity(e.Policy.DailyFallbackHours)
	target := daily.Mul(availableDays(collab.ID, month, holidays, absences))

	allocated := planned.Add(continuous)

	occupancy := decimal.Zero
	if target.IsPositive() {
		occupancy = allocated.Value.Div(target.Value).Mul(hundred)
	}

	return CapacityReport{
		OccupancyRate: occupancy,
		Balance:       target.Sub(allocated).ClampZero(),
		TargetHours:   target,
		Status:        e.Policy.StatusFor(occupancy),
	}, nil
}

// availableDays sums the collaborator's per-day working fractions over
// the period. Summing fractions applies holidays and absences together
// with the clamp, so a day covered by both is not subtracted twice.
// Both the capacity target and the standing Continuous reserve are sized
// from this sum.
func availableDays(collaboratorID string, period schedule.Period, holidays []schedule.Holiday, absences []schedule.Absence) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range period.Days() {
		sum = sum.Add(schedule.WorkingFraction(d, holidays, absences, collaboratorID))
	}
	return sum
}
