// Package history supplies the historical price series a fan chart is anchored to.
// Providers are explicit values: every call rebuilds its state from its own fields,
// so the same provider always yields the same series.
package history

import (
	"math"
	"math/rand/v2"

	"dcf_fanchart/pkg/core/validate"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultPoints is three years of monthly observations
const DefaultPoints = 36

// MaxPoints bounds the length of any series a provider produces
const MaxPoints = 10000

// Provider kinds, as named in config files and requests
const (
	KindRandomWalk = "random_walk"
	KindSeasonal   = "seasonal"
	KindStatic     = "static"
)

// Provider produces a historical series. Implementations must be deterministic.
type Provider interface {
	Series() ([]float64, error)
}

// Anchor returns the last value of a series, the common start of every projection.
func Anchor(series []float64) (float64, error) {
	if err := validate.NonEmpty("historical series", len(series)); err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

func checkPoints(label string, n int) error {
	if err := validate.NonEmpty(label, n); err != nil {
		return err
	}
	if n > MaxPoints {
		return validate.Invalid("%s must be at most %d, got %d", label, MaxPoints, n)
	}
	return nil
}

// =============================================================================
// RANDOM WALK
// =============================================================================

// RandomWalk is a seeded Gaussian random walk: Start + cumsum(N(0, Sigma)).
type RandomWalk struct {
	Seed   uint64  `json:"seed" yaml:"seed"`
	Start  float64 `json:"start" yaml:"start"`
	Sigma  float64 `json:"sigma" yaml:"sigma"`
	Points int     `json:"points" yaml:"points"`
}

// DefaultRandomWalk mirrors the demo series: 36 monthly steps of N(0, 0.5) around 30.
func DefaultRandomWalk() RandomWalk {
	return RandomWalk{Seed: 42, Start: 30, Sigma: 0.5, Points: DefaultPoints}
}

// Series draws the walk from a source seeded on every call.
func (w RandomWalk) Series() ([]float64, error) {
	if err := checkPoints("random walk points", w.Points); err != nil {
		return nil, err
	}
	if err := validate.Finite("random walk start", w.Start); err != nil {
		return nil, err
	}
	if !(w.Sigma >= 0) || math.IsInf(w.Sigma, 0) {
		return nil, validate.Invalid("random walk sigma must be a finite non-negative number, got %v", w.Sigma)
	}

	steps := make([]float64, w.Points)
	if w.Sigma > 0 {
		dist := distuv.Normal{
			Mu:    0,
			Sigma: w.Sigma,
			Src:   rand.NewPCG(w.Seed, w.Seed),
		}
		for i := range steps {
			steps[i] = dist.Rand()
		}
	}

	series := make([]float64, w.Points)
	floats.CumSum(series, steps)
	floats.AddConst(w.Start, series)
	return series, nil
}

// =============================================================================
// SEASONAL
// =============================================================================

// Seasonal is a deterministic trend-plus-cycle series:
// Base + Amplitude*sin(i/Period) + Drift*i.
type Seasonal struct {
	Base      float64 `json:"base" yaml:"base"`
	Amplitude float64 `json:"amplitude" yaml:"amplitude"`
	Period    float64 `json:"period" yaml:"period"`
	Drift     float64 `json:"drift" yaml:"drift"`
	Points    int     `json:"points" yaml:"points"`
}

// DefaultSeasonal is 30 + 2*sin(i/6) + 0.2*i over 36 points.
func DefaultSeasonal() Seasonal {
	return Seasonal{Base: 30, Amplitude: 2, Period: 6, Drift: 0.2, Points: DefaultPoints}
}

// Series evaluates the formula at i = 0..Points-1.
func (s Seasonal) Series() ([]float64, error) {
	if err := checkPoints("seasonal points", s.Points); err != nil {
		return nil, err
	}
	if s.Period == 0 {
		return nil, validate.Invalid("seasonal period must be non-zero")
	}
	series := make([]float64, s.Points)
	for i := range series {
		fi := float64(i)
		series[i] = s.Base + s.Amplitude*math.Sin(fi/s.Period) + s.Drift*fi
	}
	if err := validate.FiniteSeries("seasonal series", series); err != nil {
		return nil, err
	}
	return series, nil
}

// =============================================================================
// STATIC
// =============================================================================

// Static serves a caller-supplied series, copied so the caller keeps ownership.
type Static []float64

func (s Static) Series() ([]float64, error) {
	if err := checkPoints("historical series", len(s)); err != nil {
		return nil, err
	}
	if err := validate.FiniteSeries("historical series", s); err != nil {
		return nil, err
	}
	out := make([]float64, len(s))
	copy(out, s)
	return out, nil
}
