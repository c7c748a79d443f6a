package projection_test

import (
	"math"
	"testing"

	"dcf_fanchart/pkg/core/projection"
	"dcf_fanchart/pkg/core/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_BullCase(t *testing.T) {
	got, err := projection.Project(30, 10, projection.MustHorizon(5))
	require.NoError(t, err)

	expected := []float64{30, 33, 36.3, 39.93, 43.923, 48.3153}
	require.Len(t, got, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i], got[i], 1e-9, "index %d", i)
	}
}

func TestProject_ZeroGrowthIsConstant(t *testing.T) {
	for _, h := range []int{0, 1, 5, 36} {
		got, err := projection.Project(42.5, 0, projection.MustHorizon(h))
		require.NoError(t, err)
		require.Len(t, got, h+1)
		for _, v := range got {
			assert.Equal(t, 42.5, v)
		}
	}
}

func TestProject_MatchesClosedForm(t *testing.T) {
	rates := []float64{-50, -2, 0.5, 6, 8, 10, 35}
	for _, g := range rates {
		got, err := projection.Project(17.3, g, projection.MustHorizon(12))
		require.NoError(t, err)
		for i, v := range got {
			want := 17.3 * math.Pow(1+g/100, float64(i))
			assert.InDelta(t, want, v, 1e-9*math.Max(1, math.Abs(want)), "g=%v i=%d", g, i)
		}
	}
}

func TestProject_ZeroHorizon(t *testing.T) {
	got, err := projection.Project(30, 8, projection.Horizon{})
	require.NoError(t, err)
	assert.Equal(t, []float64{30}, got)
}

func TestProject_NonFiniteInput(t *testing.T) {
	_, err := projection.Project(math.NaN(), 8, projection.MustHorizon(5))
	assert.ErrorIs(t, err, validate.ErrInvalidInput)

	_, err = projection.Project(30, math.Inf(1), projection.MustHorizon(5))
	assert.ErrorIs(t, err, validate.ErrInvalidInput)
}

func TestNewHorizon(t *testing.T) {
	h, err := projection.NewHorizon(5)
	require.NoError(t, err)
	assert.Equal(t, 5, h.Periods())
	assert.Equal(t, 6, h.Len())

	tests := []struct {
		name    string
		n       int
		wantErr string
	}{
		{"zero", 0, ""},
		{"max", projection.MaxHorizon, ""},
		{"negative", -1, "non-negative"},
		{"above max", projection.MaxHorizon + 1, "at most"},
		{"max int", math.MaxInt, "at most"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := projection.NewHorizon(tt.n)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.n+1, h.Len())
				return
			}
			require.ErrorIs(t, err, validate.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Panics(t, func() { projection.MustHorizon(-3) })
	assert.Panics(t, func() { projection.MustHorizon(math.MaxInt) })
}

func TestCompoundGrowthStrategy(t *testing.T) {
	s, err := projection.NewCompoundGrowthStrategy(5)
	require.NoError(t, err)
	assert.Equal(t, "CompoundGrowth", s.Name())

	v, err := s.Calculate(projection.Context{Period: 1, StartValue: 100})
	require.NoError(t, err)
	assert.InDelta(t, 105.0, v, 1e-12)

	_, err = s.Calculate(projection.Context{Period: -1, StartValue: 100})
	assert.ErrorIs(t, err, validate.ErrInvalidInput)
}

type overflowStrategy struct{}

func (overflowStrategy) Name() string { return "Overflow" }

func (overflowStrategy) Validate(projection.Context) error { return nil }

func (overflowStrategy) Calculate(projection.Context) (float64, error) { return math.Inf(1), nil }

func TestProjectWith_RejectsNonFiniteOutput(t *testing.T) {
	_, err := projection.ProjectWith(overflowStrategy{}, 1, projection.MustHorizon(2))
	require.ErrorIs(t, err, validate.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Overflow")
}
