// Package projection turns an anchor value and a growth assumption into a forward sequence.
// Core Philosophy: "Deterministic Paths"
// - One strategy per scenario, applied uniformly across the whole horizon
// - No path dependence, no stochastic variation, no mean reversion
package projection

import (
	"math"

	"dcf_fanchart/pkg/core/validate"
)

// =============================================================================
// PROJECTION STRATEGY INTERFACE
// =============================================================================

// Context provides data needed for strategy calculations
type Context struct {
	Period     int     // Target period, 0 = anchor
	StartValue float64 // Anchor value shared by every period
}

// ProjectionStrategy defines a pluggable forecasting rule for a single period
type ProjectionStrategy interface {
	// Name returns the strategy identifier
	Name() string

	// Calculate computes the projected value for a given context
	Calculate(ctx Context) (float64, error)

	// Validate checks if necessary inputs are available
	Validate(ctx Context) error
}

// =============================================================================
// BUILT-IN STRATEGIES
// =============================================================================

// CompoundGrowthStrategy implements discrete single-period compounding
// Formula: Value(i) = Start * (1 + GrowthRatePct/100)^i
type CompoundGrowthStrategy struct {
	GrowthRatePct float64 `json:"growth_rate_pct"` // e.g., 8.0 for 8%
	multiplier    float64
}

// NewCompoundGrowthStrategy converts the percentage rate to a multiplier once.
func NewCompoundGrowthStrategy(growthRatePct float64) (*CompoundGrowthStrategy, error) {
	if err := validate.Finite("growth rate", growthRatePct); err != nil {
		return nil, err
	}
	return &CompoundGrowthStrategy{
		GrowthRatePct: growthRatePct,
		multiplier:    1 + growthRatePct/100,
	}, nil
}

func (s *CompoundGrowthStrategy) Name() string { return "CompoundGrowth" }

func (s *CompoundGrowthStrategy) Validate(ctx Context) error {
	if ctx.Period < 0 {
		return validate.Invalid("period must be non-negative, got %d", ctx.Period)
	}
	return validate.Finite("start value", ctx.StartValue)
}

func (s *CompoundGrowthStrategy) Calculate(ctx Context) (float64, error) {
	if err := s.Validate(ctx); err != nil {
		return 0, err
	}
	if ctx.Period == 0 {
		return ctx.StartValue, nil
	}
	return ctx.StartValue * math.Pow(s.multiplier, float64(ctx.Period)), nil
}
