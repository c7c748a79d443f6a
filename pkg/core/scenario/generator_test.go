package scenario

import (
	"math"
	"testing"

	"dcf_fanchart/pkg/core/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DefaultPolicy(t *testing.T) {
	cases, err := Generate(8.0, DefaultOffsets())
	require.NoError(t, err)

	expected := []Case{
		{Name: "Bull Case", GrowthRate: 10},
		{Name: "Base Case", GrowthRate: 8},
		{Name: "Bear Case", GrowthRate: 6},
	}
	assert.Equal(t, expected, cases)
}

func TestGenerate_PreservesOrderAndAllowsAnyDelta(t *testing.T) {
	offsets := []Offset{
		{Name: "Crash", Delta: -15},
		{Name: "Flat", Delta: 0},
		{Name: "Same", Delta: 0},
		{Name: "Moon", Delta: 25.5},
	}
	cases, err := Generate(-1, offsets)
	require.NoError(t, err)
	require.Len(t, cases, 4)

	assert.Equal(t, "Crash", cases[0].Name)
	assert.Equal(t, -16.0, cases[0].GrowthRate)
	assert.Equal(t, cases[1].GrowthRate, cases[2].GrowthRate)
	assert.Equal(t, 24.5, cases[3].GrowthRate)
}

func TestGenerate_SingleOffset(t *testing.T) {
	cases, err := Generate(3, []Offset{{Name: "Only", Delta: 0}})
	require.NoError(t, err)
	assert.Equal(t, []Case{{Name: "Only", GrowthRate: 3}}, cases)
}

func TestGenerate_InvalidInput(t *testing.T) {
	_, err := Generate(8, nil)
	assert.ErrorIs(t, err, validate.ErrInvalidInput)

	_, err = Generate(math.NaN(), DefaultOffsets())
	assert.ErrorIs(t, err, validate.ErrInvalidInput)

	_, err = Generate(8, []Offset{{Name: "Broken", Delta: math.Inf(-1)}})
	require.ErrorIs(t, err, validate.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Broken")
}

func TestDefaultOffsets_ReturnsFreshSlice(t *testing.T) {
	a := DefaultOffsets()
	a[0].Delta = 99
	assert.Equal(t, 2.0, DefaultOffsets()[0].Delta)
}
