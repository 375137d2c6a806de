/*
Package factory provides JSON to Go planning-policy conversion.

PURPOSE:
  Converts JSON policy documents into capacity.Policy values. Status
  thresholds, the standing-reserve share and the forecast horizon are
  organizational policy, not algorithm - operations teams tune them in
  JSON without code changes.

JSON SCHEMA:
  {
    "daily_fallback_hours": 8,
    "reserve_share": 0.5,
    "comfort_threshold": 70,
    "high_threshold": 100,
    "forecast_horizon_days": 365
  }

KEY FEATURES:
  - Omitted fields fall back to the stock defaults
  - Validates ordering (comfort < high) and the reserve range

USAGE:
  factory := factory.NewPolicyFactory()
  policy, err := factory.ParsePolicy(jsonStr)
  engine := capacity.NewEngine(policy)

SEE ALSO:
  - capacity/policy.go: Policy type and defaults
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/capacity-engine/capacity"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PolicyJSON is the JSON representation of a planning policy.
type PolicyJSON struct {
	DailyFallbackHours  float64 `json:"daily_fallback_hours,omitempty"`
	ReserveShare        float64 `json:"reserve_share,omitempty"`
	ComfortThreshold    float64 `json:"comfort_threshold,omitempty"`
	HighThreshold       float64 `json:"high_threshold,omitempty"`
	ForecastHorizonDays int     `json:"forecast_horizon_days,omitempty"`
}

// =============================================================================
// POLICY FACTORY
// =============================================================================

// PolicyFactory converts JSON policy documents to Go structs.
type PolicyFactory struct{}

// NewPolicyFactory creates a new policy factory.
func NewPolicyFactory() *PolicyFactory {
	return &PolicyFactory{}
}

// ParsePolicy parses a JSON string into a capacity.Policy.
func (f *PolicyFactory) ParsePolicy(jsonStr string) (capacity.Policy, error) {
	var pj PolicyJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return capacity.Policy{}, fmt.Errorf("failed to parse policy JSON: %w", err)
	}
	return f.FromJSON(pj)
}

// FromJSON converts PolicyJSON to a capacity.Policy, filling omitted
// fields from the defaults and validating the rest.
func (f *PolicyFactory) FromJSON(pj PolicyJSON) (capacity.Policy, error) {
	policy := capacity.DefaultPolicy()

	if pj.DailyFallbackHours != 0 {
		if pj.DailyFallbackHours < 0 {
			return capacity.Policy{}, fmt.Errorf("daily_fallback_hours must be positive, got %v", pj.DailyFallbackHours)
		}
		policy.DailyFallbackHours = capacity.NewHours(pj.DailyFallbackHours)
	}

	if pj.ReserveShare != 0 {
		if pj.ReserveShare < 0 || pj.ReserveShare > 1 {
			return capacity.Policy{}, fmt.Errorf("reserve_share must be in (0, 1], got %v", pj.ReserveShare)
		}
		policy.ReserveShare = decimal.NewFromFloat(pj.ReserveShare)
	}

	if pj.ComfortThreshold != 0 {
		policy.ComfortThreshold = decimal.NewFromFloat(pj.ComfortThreshold)
	}
	if pj.HighThreshold != 0 {
		policy.HighThreshold = decimal.NewFromFloat(pj.HighThreshold)
	}
	if policy.HighThreshold.LessThan(policy.ComfortThreshold) {
		return capacity.Policy{}, fmt.Errorf("high_threshold (%s) must not be below comfort_threshold (%s)",
			policy.HighThreshold, policy.ComfortThreshold)
	}

	if pj.ForecastHorizonDays != 0 {
		if pj.ForecastHorizonDays < 0 {
			return capacity.Policy{}, fmt.Errorf("forecast_horizon_days must be positive, got %d", pj.ForecastHorizonDays)
		}
		policy.ForecastHorizonDays = pj.ForecastHorizonDays
	}

	return policy, nil
}
