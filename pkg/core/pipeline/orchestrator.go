// Package pipeline runs the fan chart end to end:
// Scenario Generator -> Projection Engine (per scenario) -> Envelope Aggregator -> Fan Polygon Builder.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/envelope"
	"dcf_fanchart/pkg/core/fan"
	"dcf_fanchart/pkg/core/history"
	"dcf_fanchart/pkg/core/projection"
	"dcf_fanchart/pkg/core/scenario"
)

// Request carries one update. Nil fields fall back to the orchestrator's defaults;
// a non-nil but empty Offsets slice is rejected.
type Request struct {
	Assumptions *assumption.Set
	Offsets     []scenario.Offset
	Horizon     *projection.Horizon
	History     history.Provider
}

// Scenario is a named case with its projected sequence
type Scenario struct {
	Name       string    `json:"name"`
	GrowthRate float64   `json:"growth_rate"`
	Projected  []float64 `json:"projected"`
}

// FanChart is the complete, consistent output of one run.
type FanChart struct {
	ID             string             `json:"id"`
	GeneratedAt    time.Time          `json:"generated_at"`
	Horizon        int                `json:"horizon"`
	Anchor         float64            `json:"anchor"`
	AnchorIndex    int                `json:"anchor_index"`
	Historical     []float64          `json:"historical"`
	Scenarios      []Scenario         `json:"scenarios"`
	Envelope       envelope.Envelope  `json:"envelope"`
	XPositions     []float64          `json:"x_positions"`
	Polygon        []fan.Vertex       `json:"polygon"`
	HistoricalLine fan.Line           `json:"historical_line"`
	ScenarioLines  []fan.Line         `json:"scenario_lines"`
	Assumptions    map[string]float64 `json:"assumptions"`
	InertFields    []string           `json:"inert_fields"`
}

// Defaults are the fallbacks used when a Request leaves a field nil.
type Defaults struct {
	Reference assumption.Reference
	Offsets   []scenario.Offset
	Horizon   projection.Horizon
	History   history.Provider
}

// DefaultDefaults returns the reference behaviour: demo assumptions, Bull/Base/Bear,
// five periods and a seeded random-walk history.
func DefaultDefaults() Defaults {
	return Defaults{
		Reference: assumption.DefaultReference(),
		Offsets:   scenario.DefaultOffsets(),
		Horizon:   projection.MustHorizon(projection.DefaultHorizon),
		History:   history.DefaultRandomWalk(),
	}
}

// Orchestrator holds no per-request state; Run may be called concurrently.
type Orchestrator struct {
	defaults Defaults
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewOrchestrator creates an orchestrator with the given defaults
func NewOrchestrator(defaults Defaults, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		defaults: defaults,
		log:      log.With().Str("component", "pipeline").Logger(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Defaults returns the orchestrator's fallbacks
func (o *Orchestrator) Defaults() Defaults {
	return o.defaults
}

// Run executes the full pipeline. Either every stage succeeds and a consistent chart is
// returned, or the first failure is returned and nothing else.
func (o *Orchestrator) Run(req Request) (*FanChart, error) {
	start := o.now()

	// 0. Resolve inputs
	set, cases, err := o.resolve(req)
	if err != nil {
		return nil, err
	}
	horizon := o.defaults.Horizon
	if req.Horizon != nil {
		horizon = *req.Horizon
	}
	provider := o.defaults.History
	if req.History != nil {
		provider = req.History
	}
	if provider == nil {
		provider = history.DefaultRandomWalk()
	}

	// 1. Historical series and anchor
	series, err := provider.Series()
	if err != nil {
		return nil, fmt.Errorf("historical series: %w", err)
	}
	anchor, err := history.Anchor(series)
	if err != nil {
		return nil, err
	}

	// 2. Projection, once per scenario
	scenarios := make([]Scenario, len(cases))
	paths := make([][]float64, len(cases))
	named := make([]fan.NamedSeries, len(cases))
	for i, c := range cases {
		projected, err := projection.Project(anchor, c.GrowthRate, horizon)
		if err != nil {
			return nil, fmt.Errorf("scenario '%s': %w", c.Name, err)
		}
		scenarios[i] = Scenario{Name: c.Name, GrowthRate: c.GrowthRate, Projected: projected}
		paths[i] = projected
		named[i] = fan.NamedSeries{Name: c.Name, Values: projected}
	}

	// 3. Envelope
	env, err := envelope.Aggregate(paths)
	if err != nil {
		return nil, err
	}

	// 4. Geometry
	x, err := fan.ProjectionXPositions(len(series), horizon.Periods())
	if err != nil {
		return nil, err
	}
	polygon, err := fan.BuildPolygon(x, env.Upper, env.Lower)
	if err != nil {
		return nil, err
	}
	lines, err := fan.ScenarioLines(x, named)
	if err != nil {
		return nil, err
	}
	anchorIndex := len(series)
	histLine, err := fan.HistoricalLine(series, anchor, anchorIndex)
	if err != nil {
		return nil, err
	}

	inert := set.Inert()
	inertKeys := make([]string, 0, len(inert))
	for _, k := range set.Keys() {
		if _, ok := inert[k]; ok {
			inertKeys = append(inertKeys, k)
		}
	}

	chart := &FanChart{
		ID:             o.newID(),
		GeneratedAt:    start.UTC(),
		Horizon:        horizon.Periods(),
		Anchor:         anchor,
		AnchorIndex:    anchorIndex,
		Historical:     series,
		Scenarios:      scenarios,
		Envelope:       env,
		XPositions:     x,
		Polygon:        polygon,
		HistoricalLine: histLine,
		ScenarioLines:  lines,
		Assumptions:    set.Values,
		InertFields:    inertKeys,
	}

	o.log.Debug().
		Str("id", chart.ID).
		Int("scenarios", len(scenarios)).
		Int("horizon", chart.Horizon).
		Float64("anchor", anchor).
		Dur("elapsed", time.Since(start)).
		Msg("Fan chart computed")

	return chart, nil
}

// resolve fills missing assumptions from the reference defaults, validates them and
// generates the scenario cases.
func (o *Orchestrator) resolve(req Request) (*assumption.Set, []scenario.Case, error) {
	set := o.defaults.Reference.DefaultSet()
	if req.Assumptions != nil {
		set = req.Assumptions.WithDefaults(o.defaults.Reference.Defaults())
	}
	if err := set.Validate(); err != nil {
		return nil, nil, err
	}
	baseline, err := set.BaselineGrowth()
	if err != nil {
		return nil, nil, err
	}
	offsets := o.defaults.Offsets
	if req.Offsets != nil {
		offsets = req.Offsets
	}
	cases, err := scenario.Generate(baseline, offsets)
	if err != nil {
		return nil, nil, err
	}
	return set, cases, nil
}
