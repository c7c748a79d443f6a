package analysis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcf_fanchart/pkg/core/config"
	"dcf_fanchart/pkg/core/pipeline"
	"dcf_fanchart/pkg/core/scenario"
	"dcf_fanchart/pkg/core/validate"
	"dcf_fanchart/pkg/core/valuation"
)

func newTestEngine() *Engine {
	return NewEngine(config.DefaultModel(), zerolog.Nop())
}

func TestAnalyze_Defaults(t *testing.T) {
	res, err := newTestEngine().Analyze(Input{})
	require.NoError(t, err)

	require.Len(t, res.Scenarios, 3)
	require.Len(t, res.Valuations, 3)
	assert.Equal(t, scenario.BullCase, res.Valuations[0].Scenario)
	assert.InDelta(t, 12.2727272727, res.Valuations[0].SharePrice, 1e-9)
	assert.InDelta(t, 11.5719703681, res.Valuations[1].SharePrice, 1e-9)
	assert.InDelta(t, 10.8984124800, res.Valuations[2].SharePrice, 1e-9)

	assert.Equal(t, config.DefaultCurrentPrice, res.FootballField.CurrentPrice)
	assert.Len(t, res.FootballField.Markers, 3)
}

func TestAnalyze_Overrides(t *testing.T) {
	price := 10.0
	res, err := newTestEngine().Analyze(Input{
		Params: pipeline.Params{
			Offsets: []scenario.Offset{{Name: "Flat", Delta: 0}},
		},
		Terminal:     &valuation.Terminal{Method: valuation.TerminalMultiple, ExitMultiple: 10, MultipleType: valuation.MultiplePE},
		CurrentPrice: &price,
	})
	require.NoError(t, err)

	require.Len(t, res.Valuations, 1)
	assert.InDelta(t, 12.6574826056, res.Valuations[0].SharePrice, 1e-9)
	assert.Equal(t, 10.0, res.FootballField.CurrentPrice)
}

func TestAnalyze_Errors(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name string
		in   Input
	}{
		{"negative horizon", Input{Params: pipeline.Params{Horizon: intPtr(-2)}}},
		{"gordon spread", Input{Params: pipeline.Params{Assumptions: map[string]float64{"discount_rate": 2, "terminal_growth_rate": 3}}}},
		{"bad multiple type", Input{Terminal: &valuation.Terminal{Method: valuation.TerminalMultiple, ExitMultiple: 8, MultipleType: "ev_sales"}}},
		{"zero price", Input{CurrentPrice: &zero}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestEngine().Analyze(tt.in)
			assert.Nil(t, res)
			require.Error(t, err)
			assert.True(t, errors.Is(err, validate.ErrInvalidInput), err.Error())
		})
	}
}

func TestResult_JSONFlattensChart(t *testing.T) {
	res, err := newTestEngine().Analyze(Input{})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &body))
	for _, key := range []string{"id", "envelope", "polygon", "valuations", "football_field"} {
		assert.Contains(t, body, key)
	}
}

func TestInput_JSONAcceptsFlatParams(t *testing.T) {
	var in Input
	require.NoError(t, json.Unmarshal([]byte(`{"horizon": 3, "assumptions": {"revenue_growth_cagr": 4}, "current_price": 20}`), &in))

	require.NotNil(t, in.Horizon)
	assert.Equal(t, 3, *in.Horizon)
	assert.Equal(t, 4.0, in.Assumptions["revenue_growth_cagr"])
	require.NotNil(t, in.CurrentPrice)
	assert.Equal(t, 20.0, *in.CurrentPrice)
}

func intPtr(v int) *int { return &v }
