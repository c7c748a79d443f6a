package valuation

import (
	"fmt"
	"sort"

	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/scenario"
	"dcf_fanchart/pkg/core/validate"
)

// ValuationLineItem is one row of the per-scenario summary table
type ValuationLineItem struct {
	Scenario   string  `json:"scenario"`
	GrowthRate float64 `json:"growth_rate"`
	SharePrice float64 `json:"share_price"`
}

// ValueScenarios runs one DCF per case, substituting the case's growth rate for the
// set's baseline. All other rates come from the set unchanged.
func ValueScenarios(company Company, set *assumption.Set, cases []scenario.Case, terminal Terminal) ([]ValuationLineItem, error) {
	base, err := InputFromAssumptions(set, terminal)
	if err != nil {
		return nil, err
	}

	results := make([]ValuationLineItem, 0, len(cases))
	for _, c := range cases {
		in := base
		in.RevenueGrowth = c.GrowthRate
		res, err := CalculateDCF(company, in)
		if err != nil {
			return nil, fmt.Errorf("scenario '%s': %w", c.Name, err)
		}
		results = append(results, ValuationLineItem{
			Scenario:   c.Name,
			GrowthRate: c.GrowthRate,
			SharePrice: res.FairValuePerShare,
		})
	}
	return results, nil
}

// =============================================================================
// FOOTBALL FIELD
// =============================================================================

// FieldMarker is one scenario placed on the football field scale
type FieldMarker struct {
	Name      string  `json:"name"`
	FairValue float64 `json:"fair_value"`
	Upside    float64 `json:"upside_pct"`   // vs current price, %
	Label     string  `json:"upside_label"` // "+x.x%" / "-x.x%"
	Position  float64 `json:"position_pct"` // 0..100 on the scale
}

// FootballField is the range chart of scenario fair values against the current price
type FootballField struct {
	CurrentPrice    float64       `json:"current_price"`
	CurrentPosition float64       `json:"current_position_pct"`
	Min             float64       `json:"min"`
	Max             float64       `json:"max"`
	Markers         []FieldMarker `json:"markers"`
}

// BuildFootballField sorts scenarios by fair value and positions every marker, and the
// current price, on a 0..100 scale spanning their combined range. A zero range puts
// everything at 50.
func BuildFootballField(currentPrice float64, items []ValuationLineItem) (FootballField, error) {
	if err := validate.Finite("current price", currentPrice); err != nil {
		return FootballField{}, err
	}
	if currentPrice <= 0 {
		return FootballField{}, validate.Invalid("current price must be positive, got %v", currentPrice)
	}
	if err := validate.NonEmpty("scenarios", len(items)); err != nil {
		return FootballField{}, err
	}

	sorted := make([]ValuationLineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SharePrice < sorted[j].SharePrice })

	lo, hi := currentPrice, currentPrice
	for _, it := range sorted {
		if err := validate.Finite(fmt.Sprintf("fair value of '%s'", it.Scenario), it.SharePrice); err != nil {
			return FootballField{}, err
		}
		if it.SharePrice < lo {
			lo = it.SharePrice
		}
		if it.SharePrice > hi {
			hi = it.SharePrice
		}
	}

	position := func(v float64) float64 {
		if hi == lo {
			return 50
		}
		return (v - lo) / (hi - lo) * 100
	}

	markers := make([]FieldMarker, len(sorted))
	for i, it := range sorted {
		upside := validate.CalculateChange(it.SharePrice, currentPrice)
		markers[i] = FieldMarker{
			Name:      it.Scenario,
			FairValue: it.SharePrice,
			Upside:    upside,
			Label:     FormatChange(upside),
			Position:  position(it.SharePrice),
		}
	}

	return FootballField{
		CurrentPrice:    currentPrice,
		CurrentPosition: position(currentPrice),
		Min:             lo,
		Max:             hi,
		Markers:         markers,
	}, nil
}
