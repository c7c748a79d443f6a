package projection

import (
	"dcf_fanchart/pkg/core/validate"
)

// Project produces the forward sequence for one scenario.
// Element 0 is startValue; element i is startValue * (1 + growthRatePct/100)^i.
// The result has horizon.Len() elements.
func Project(startValue, growthRatePct float64, horizon Horizon) ([]float64, error) {
	if err := validate.Finite("start value", startValue); err != nil {
		return nil, err
	}
	strategy, err := NewCompoundGrowthStrategy(growthRatePct)
	if err != nil {
		return nil, err
	}
	return ProjectWith(strategy, startValue, horizon)
}

// ProjectWith runs an arbitrary strategy over every period of the horizon.
func ProjectWith(strategy ProjectionStrategy, startValue float64, horizon Horizon) ([]float64, error) {
	values := make([]float64, horizon.Len())
	for i := range values {
		v, err := strategy.Calculate(Context{Period: i, StartValue: startValue})
		if err != nil {
			return nil, err
		}
		if !validate.IsFinite(v) {
			return nil, validate.Invalid("%s produced a non-finite value at period %d", strategy.Name(), i)
		}
		values[i] = v
	}
	return values, nil
}
