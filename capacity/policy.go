package capacity

import "github.com/shopspring/decimal"

// =============================================================================
// POLICY - Organizational tuning, not algorithmic necessity
// =============================================================================

// Policy carries the values that are organizational policy rather than
// algorithm: status thresholds, the standing-reserve share, the capacity
// fallback and the forecast horizon. All injectable; call sites never
// hard-code them.
type Policy struct {
	// Substituted when a collaborator's daily target is missing.
	DailyFallbackHours Hours

	// Share of capacity reserved for Continuous work when no Planned
	// work competes for a day or month. In (0, 1].
	ReserveShare decimal.Decimal

	// Occupancy percentage thresholds for status tiers.
	// occupancy <  ComfortThreshold -> StatusNormal
	// occupancy <= HighThreshold    -> StatusHigh
	// above                         -> StatusOverloaded
	ComfortThreshold decimal.Decimal
	HighThreshold    decimal.Decimal

	// Cap on the release-forecast walk; beyond it the backlog is
	// reported as saturated instead of walking forever.
	ForecastHorizonDays int
}

// DefaultPolicy returns the stock organizational policy.
func DefaultPolicy() Policy {
	return Policy{
		DailyFallbackHours:  NewHours(8),
		ReserveShare:        decimal.RequireFromString("0.5"),
		ComfortThreshold:    decimal.NewFromInt(70),
		HighThreshold:       decimal.NewFromInt(100),
		ForecastHorizonDays: 365,
	}
}

// normalized fills zero-valued fields from the defaults so a partially
// configured policy degrades gracefully instead of dividing by zero.
func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if !p.DailyFallbackHours.IsPositive() {
		p.DailyFallbackHours = def.DailyFallbackHours
	}
	if !p.ReserveShare.IsPositive() {
		p.ReserveShare = def.ReserveShare
	}
	if !p.ComfortThreshold.IsPositive() {
		p.ComfortThreshold = def.ComfortThreshold
	}
	if !p.HighThreshold.IsPositive() {
		p.HighThreshold = def.HighThreshold
	}
	if p.ForecastHorizonDays <= 0 {
		p.ForecastHorizonDays = def.ForecastHorizonDays
	}
	return p
}

// =============================================================================
// STATUS - Qualitative occupancy tier
// =============================================================================

type Status string

const (
	StatusNormal     Status = "normal"
	StatusHigh       Status = "high"
	StatusOverloaded Status = "overloaded"
)

// StatusFor tiers an occupancy percentage against the policy thresholds.
func (p Policy) StatusFor(occupancy decimal.Decimal) Status {
	switch {
	case occupancy.LessThan(p.ComfortThreshold):
		return StatusNormal
	case occupancy.LessThanOrEqual(p.HighThreshold):
		return StatusHigh
	default:
		return StatusOverloaded
	}
}
