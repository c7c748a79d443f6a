package projection

import (
	"dcf_fanchart/pkg/core/validate"
)

// DefaultHorizon is the number of forward periods projected when none is given
const DefaultHorizon = 5

// MaxHorizon bounds the forward periods of one projection
const MaxHorizon = 1200

// Horizon is a validated, non-negative count of forward periods beyond the anchor point.
// The zero value is a valid horizon of 0 (anchor only).
type Horizon struct {
	periods int
}

// NewHorizon validates n at the API boundary. Negative values are rejected, never coerced.
func NewHorizon(n int) (Horizon, error) {
	if n < 0 {
		return Horizon{}, validate.Invalid("horizon must be a non-negative integer, got %d", n)
	}
	if n > MaxHorizon {
		return Horizon{}, validate.Invalid("horizon must be at most %d, got %d", MaxHorizon, n)
	}
	return Horizon{periods: n}, nil
}

// MustHorizon is like NewHorizon but panics on an out-of-range value. Use for constants.
func MustHorizon(n int) Horizon {
	h, err := NewHorizon(n)
	if err != nil {
		panic(err)
	}
	return h
}

// Periods returns the number of forward periods.
func (h Horizon) Periods() int { return h.periods }

// Len returns the projected sequence length, including the anchor point.
func (h Horizon) Len() int { return h.periods + 1 }
