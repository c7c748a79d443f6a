package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcf_fanchart/pkg/core/analysis"
	"dcf_fanchart/pkg/core/validate"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "none.yaml")
	err := run(append([]string{"-config", missing}, args...), &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_JSON(t *testing.T) {
	out, err := runCLI(t, "-horizon", "3", "-seed", "9")
	require.NoError(t, err)

	var res analysis.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Horizon)
	assert.Len(t, res.Envelope.Upper, 4)
	assert.Len(t, res.Valuations, 3)
}

func TestRun_InlineHjsonAssumptions(t *testing.T) {
	out, err := runCLI(t, "-assumptions", "{\n  \"Revenue Growth CAGR (%)\": 4\n  tax_rate: 21\n}")
	require.NoError(t, err)

	var res analysis.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 6.0, res.Scenarios[0].GrowthRate)
	assert.Equal(t, 21.0, res.Assumptions["tax_rate"])
}

func TestRun_AssumptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assumptions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"revenue_growth_cagr": 12}`), 0o600))

	out, err := runCLI(t, "-assumptions", path, "-format", "markdown", "-title", "ACME")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# ACME"))
	assert.Contains(t, out, "| Bull Case | 14.0% |")
}

func TestRun_HTML(t *testing.T) {
	out, err := runCLI(t, "-format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<title>DCF Fan Chart</title>")
}

func TestRun_Errors(t *testing.T) {
	_, err := runCLI(t, "-horizon", "-2")
	assert.True(t, errors.Is(err, validate.ErrInvalidInput))

	_, err = runCLI(t, "-assumptions", `{"revenue_growth_cagr": "fast"}`)
	assert.True(t, errors.Is(err, validate.ErrInvalidInput))

	_, err = runCLI(t, "-format", "pdf")
	assert.Error(t, err)

	_, err = runCLI(t, "-bogus")
	assert.Error(t, err)
}
