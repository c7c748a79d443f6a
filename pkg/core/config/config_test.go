package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/history"
	"dcf_fanchart/pkg/core/scenario"
	"dcf_fanchart/pkg/core/valuation"
)

// =============================================================================
// SERVER CONFIG
// =============================================================================

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadServerConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FANCHART_PORT", "9090")
	t.Setenv("FANCHART_LOG_PRETTY", "true")
	t.Setenv("FANCHART_CACHE_TTL", "30s")

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoadServerConfig_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FANCHART_REDIS_ADDR=localhost:6379\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FANCHART_REDIS_ADDR") })

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadServerConfig_Errors(t *testing.T) {
	t.Setenv("FANCHART_PORT", "not-an-int")
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse env:"), err.Error())

	t.Setenv("FANCHART_PORT", "70000")
	_, err = LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

// =============================================================================
// MODEL CONFIG
// =============================================================================

func TestLoadModel_MissingFileUsesDefaults(t *testing.T) {
	m, err := LoadModel(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultCurrentPrice, m.CurrentPrice)
	assert.Equal(t, scenario.DefaultOffsets(), m.Pipeline.Offsets)
	assert.Equal(t, 5, m.Pipeline.Horizon.Periods())
	assert.Equal(t, history.DefaultRandomWalk(), m.Pipeline.History)
	assert.Equal(t, valuation.DefaultCompany(), m.Company)
}

func TestParseModel_Overrides(t *testing.T) {
	data := []byte(`
reference:
  defaults:
    revenue_growth_cagr: 6
  consensus:
    "Tax Rate (%)": 21
offsets:
  - name: Upside
    delta: 3
  - name: Downside
    delta: -3
horizon: 10
history:
  kind: seasonal
  seasonal:
    points: 24
terminal:
  method: multiple
  exit_multiple: 12
  multiple_type: ebitda
current_price: 38.5
`)
	m, err := ParseModel(data)
	require.NoError(t, err)

	assert.Equal(t, 6.0, m.Pipeline.Reference.Defaults()[assumption.RevenueGrowthCAGR])
	assert.Equal(t, 15.0, m.Pipeline.Reference.Defaults()[assumption.OperatingMargin])
	assert.Equal(t, 21.0, m.Pipeline.Reference.Consensus()[assumption.TaxRate])
	require.Len(t, m.Pipeline.Offsets, 2)
	assert.Equal(t, "Upside", m.Pipeline.Offsets[0].Name)
	assert.Equal(t, 10, m.Pipeline.Horizon.Periods())

	seasonal, ok := m.Pipeline.History.(history.Seasonal)
	require.True(t, ok)
	assert.Equal(t, 24, seasonal.Points)
	assert.Equal(t, 30.0, seasonal.Base)

	assert.Equal(t, valuation.TerminalMultiple, m.Terminal.Method)
	assert.Equal(t, valuation.DefaultCompany(), m.Company)
	assert.Equal(t, 38.5, m.CurrentPrice)
}

func TestParseModel_PartialRandomWalkKeepsDefaults(t *testing.T) {
	m, err := ParseModel([]byte("history:\n  random_walk:\n    seed: 7\n"))
	require.NoError(t, err)

	rw, ok := m.Pipeline.History.(history.RandomWalk)
	require.True(t, ok)
	assert.Equal(t, uint64(7), rw.Seed)
	assert.Equal(t, history.DefaultPoints, rw.Points)
	assert.Equal(t, 0.5, rw.Sigma)
}

func TestParseModel_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "horizen: 5\n"},
		{"negative horizon", "horizon: -1\n"},
		{"empty offsets", "offsets: []\n"},
		{"unknown history", "history:\n  kind: brownian\n"},
		{"bad seasonal period", "history:\n  kind: seasonal\n  seasonal:\n    period: 0\n"},
		{"gordon without spread", "reference:\n  defaults:\n    discount_rate: 2\n    terminal_growth_rate: 3\n"},
		{"negative price", "current_price: -4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModel([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadModel_SampleFile(t *testing.T) {
	m, err := LoadModel(filepath.Join("..", "..", "..", "config", "fanchart.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultModel().Company, m.Company)
	assert.Equal(t, history.DefaultRandomWalk(), m.Pipeline.History)
	assert.Equal(t, scenario.DefaultOffsets(), m.Pipeline.Offsets)
	assert.Equal(t, 45.0, m.CurrentPrice)
}
