// Package analysis combines the fan chart with a per-scenario DCF so one request yields
// the projection band and the fair values it implies.
package analysis

import (
	"fmt"

	"github.com/rs/zerolog"

	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/config"
	"dcf_fanchart/pkg/core/pipeline"
	"dcf_fanchart/pkg/core/scenario"
	"dcf_fanchart/pkg/core/valuation"
)

// Engine is safe for concurrent use
type Engine struct {
	orch  *pipeline.Orchestrator
	model config.Model
	log   zerolog.Logger
}

// NewEngine builds an engine whose orchestrator uses the model's pipeline defaults.
func NewEngine(model config.Model, log zerolog.Logger) *Engine {
	return &Engine{
		orch:  pipeline.NewOrchestrator(model.Pipeline, log),
		model: model,
		log:   log.With().Str("component", "analysis").Logger(),
	}
}

// Model returns the configuration the engine was built with
func (e *Engine) Model() config.Model {
	return e.model
}

// Analyze runs the pipeline, then values every scenario. The scenario growth rate
// replaces the baseline; the other rates come from the resolved assumption set.
func (e *Engine) Analyze(in Input) (*Result, error) {
	req, err := in.Request(e.model.Pipeline)
	if err != nil {
		return nil, err
	}
	chart, err := e.orch.Run(req)
	if err != nil {
		return nil, err
	}

	terminal := e.model.Terminal
	if in.Terminal != nil {
		terminal = *in.Terminal
	}
	price := e.model.CurrentPrice
	if in.CurrentPrice != nil {
		price = *in.CurrentPrice
	}

	cases := make([]scenario.Case, len(chart.Scenarios))
	for i, s := range chart.Scenarios {
		cases[i] = scenario.Case{Name: s.Name, GrowthRate: s.GrowthRate}
	}
	items, err := valuation.ValueScenarios(e.model.Company, assumption.NewSet(chart.Assumptions), cases, terminal)
	if err != nil {
		return nil, fmt.Errorf("valuation: %w", err)
	}
	field, err := valuation.BuildFootballField(price, items)
	if err != nil {
		return nil, err
	}

	e.log.Debug().
		Str("id", chart.ID).
		Int("valuations", len(items)).
		Float64("current_price", price).
		Msg("Analysis complete")

	return &Result{FanChart: chart, Valuations: items, FootballField: field}, nil
}
