// Package scenario derives named growth-rate cases from a single baseline assumption.
package scenario

import (
	"dcf_fanchart/pkg/core/validate"
)

// Offset is a named delta, in percentage points, applied to the baseline rate
type Offset struct {
	Name  string  `json:"name" yaml:"name"`
	Delta float64 `json:"delta" yaml:"delta"`
}

// Case is a named growth rate produced by Generate
type Case struct {
	Name       string  `json:"name"`
	GrowthRate float64 `json:"growth_rate"` // %
}

// Default case names
const (
	BullCase = "Bull Case"
	BaseCase = "Base Case"
	BearCase = "Bear Case"
)

// DefaultOffsets returns the Bull/Base/Bear policy: +2, 0, -2 percentage points.
// Order determines line draw order, not the envelope.
func DefaultOffsets() []Offset {
	return []Offset{
		{Name: BullCase, Delta: 2},
		{Name: BaseCase, Delta: 0},
		{Name: BearCase, Delta: -2},
	}
}

// Generate applies each offset to the baseline, preserving offset order.
// Zero and negative deltas are allowed; downstream components tolerate degenerate
// or inverted cases.
func Generate(baseline float64, offsets []Offset) ([]Case, error) {
	if err := validate.Finite("baseline growth rate", baseline); err != nil {
		return nil, err
	}
	if err := validate.NonEmpty("scenario offsets", len(offsets)); err != nil {
		return nil, err
	}

	cases := make([]Case, len(offsets))
	for i, o := range offsets {
		if err := validate.Finite("offset '"+o.Name+"' delta", o.Delta); err != nil {
			return nil, err
		}
		cases[i] = Case{Name: o.Name, GrowthRate: baseline + o.Delta}
	}
	return cases, nil
}
