package analysis

import (
	"dcf_fanchart/pkg/core/pipeline"
	"dcf_fanchart/pkg/core/valuation"
)

// Input is one analysis request: the fan chart parameters plus optional valuation
// overrides. Nil overrides fall back to the engine's model.
type Input struct {
	pipeline.Params
	Terminal     *valuation.Terminal `json:"terminal,omitempty"`
	CurrentPrice *float64            `json:"current_price,omitempty"`
}

// Result is the fan chart with a DCF fair value per scenario.
type Result struct {
	*pipeline.FanChart
	Valuations    []valuation.ValuationLineItem `json:"valuations"`
	FootballField valuation.FootballField       `json:"football_field"`
}
