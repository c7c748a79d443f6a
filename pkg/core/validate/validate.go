// Package validate provides reusable numeric validation utilities.
// These functions are called from the projection core, API handlers and the CLI
// to reject bad input before any output is produced.
package validate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is the single failure kind of the fan chart core.
// Every contract violation wraps it, so callers test with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Invalid builds an ErrInvalidInput-wrapping error with a formatted reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// =============================================================================
// FINITE CHECKS
// =============================================================================

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite rejects NaN and ±Inf values.
func Finite(label string, v float64) error {
	if !IsFinite(v) {
		return Invalid("%s must be a finite number, got %v", label, v)
	}
	return nil
}

// FiniteSeries rejects any non-finite element and reports the first offending index.
func FiniteSeries(label string, values []float64) error {
	for i, v := range values {
		if !IsFinite(v) {
			return Invalid("%s[%d] must be a finite number, got %v", label, i, v)
		}
	}
	return nil
}

// NonEmpty rejects a zero-length series.
func NonEmpty(label string, n int) error {
	if n < 1 {
		return Invalid("%s must not be empty", label)
	}
	return nil
}

// SameLength rejects series whose lengths differ from want.
func SameLength(label string, got, want int) error {
	if got != want {
		return Invalid("%s has length %d, expected %d", label, got, want)
	}
	return nil
}

// StrictlyIncreasing rejects series where any element is not greater than its predecessor.
func StrictlyIncreasing(label string, values []float64) error {
	for i := 1; i < len(values); i++ {
		if !(values[i] > values[i-1]) {
			return Invalid("%s must be strictly increasing (index %d: %v after %v)", label, i, values[i], values[i-1])
		}
	}
	return nil
}

// =============================================================================
// CHANGE CALCULATIONS
// =============================================================================

// CalculateChange returns percentage change: (current - prior) / prior * 100
func CalculateChange(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1) // Infinite growth from zero
	}
	return (current - prior) / prior * 100
}

// CalculateCAGR calculates compound annual growth rate as a percentage.
// CAGR = ((EndValue / StartValue) ^ (1/periods)) - 1
func CalculateCAGR(startValue, endValue float64, periods int) float64 {
	if startValue <= 0 || periods <= 0 {
		return 0
	}
	return (math.Pow(endValue/startValue, 1.0/float64(periods)) - 1) * 100
}
