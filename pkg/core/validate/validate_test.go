package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// FINITE TESTS
// =============================================================================

func TestFinite(t *testing.T) {
	assert.NoError(t, Finite("growth", 8.0))
	assert.NoError(t, Finite("growth", -2.5))

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := Finite("growth", v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Contains(t, err.Error(), "growth")
	}
}

func TestFiniteSeries(t *testing.T) {
	assert.NoError(t, FiniteSeries("series", []float64{1, 2, 3}))
	assert.NoError(t, FiniteSeries("series", nil))

	err := FiniteSeries("series", []float64{1, math.NaN(), 3})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "series[1]")

	err = FiniteSeries("series", []float64{1, 2, math.Inf(-1)})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "series[2]")
}

func TestStrictlyIncreasing(t *testing.T) {
	assert.NoError(t, StrictlyIncreasing("x", []float64{0, 1, 2}))
	assert.NoError(t, StrictlyIncreasing("x", []float64{7}))

	err := StrictlyIncreasing("x", []float64{0, 1, 1})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "index 2")

	assert.ErrorIs(t, StrictlyIncreasing("x", []float64{3, 2}), ErrInvalidInput)
}

func TestLengthChecks(t *testing.T) {
	assert.NoError(t, NonEmpty("scenarios", 1))
	assert.ErrorIs(t, NonEmpty("scenarios", 0), ErrInvalidInput)

	assert.NoError(t, SameLength("upper", 6, 6))
	err := SameLength("upper", 5, 6)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "upper has length 5, expected 6: invalid input", err.Error())
}

// =============================================================================
// CHANGE TESTS
// =============================================================================

func TestCalculateChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		prior    float64
		expected float64
	}{
		{"growth", 33, 30, 10},
		{"decline", 27, 30, -10},
		{"flat", 30, 30, 0},
		{"both zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CalculateChange(tt.current, tt.prior), 1e-9)
		})
	}

	assert.True(t, math.IsInf(CalculateChange(5, 0), 1))
}

func TestCalculateCAGR(t *testing.T) {
	// 30 compounded at 10% for 5 periods
	end := 30 * math.Pow(1.1, 5)
	assert.InDelta(t, 10.0, CalculateCAGR(30, end, 5), 1e-9)

	assert.Equal(t, 0.0, CalculateCAGR(0, 10, 5))
	assert.Equal(t, 0.0, CalculateCAGR(10, 20, 0))
}
