// Package envelope reduces a set of equal-length scenario paths to their pointwise band.
package envelope

import (
	"fmt"

	"dcf_fanchart/pkg/core/validate"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Envelope is the pointwise min/max band across scenario paths.
// Invariant: Lower[i] <= Upper[i] for every i.
type Envelope struct {
	Upper []float64 `json:"upper"`
	Lower []float64 `json:"lower"`
}

// Len returns the number of points in the band.
func (e Envelope) Len() int { return len(e.Upper) }

// Width returns Upper[i] - Lower[i] for every i.
func (e Envelope) Width() []float64 {
	w := make([]float64, len(e.Upper))
	floats.SubTo(w, e.Upper, e.Lower)
	return w
}

// Aggregate computes upper[i] = max over paths of path[i] and lower[i] = min over paths of path[i].
// All paths must share one length L >= 1; a mismatch is reported, never truncated or padded.
// The reduction is commutative, so input order does not affect the result.
func Aggregate(paths [][]float64) (Envelope, error) {
	if err := validate.NonEmpty("scenario paths", len(paths)); err != nil {
		return Envelope{}, err
	}
	length := len(paths[0])
	if err := validate.NonEmpty("scenario path 0", length); err != nil {
		return Envelope{}, err
	}
	for i, p := range paths {
		label := fmt.Sprintf("scenario path %d", i)
		if err := validate.SameLength(label, len(p), length); err != nil {
			return Envelope{}, err
		}
		if err := validate.FiniteSeries(label, p); err != nil {
			return Envelope{}, err
		}
	}

	// Rows are scenarios, columns are horizon steps.
	m := mat.NewDense(len(paths), length, nil)
	for i, p := range paths {
		m.SetRow(i, p)
	}

	env := Envelope{
		Upper: make([]float64, length),
		Lower: make([]float64, length),
	}
	col := make([]float64, len(paths))
	for j := 0; j < length; j++ {
		mat.Col(col, j, m)
		env.Upper[j] = floats.Max(col)
		env.Lower[j] = floats.Min(col)
	}
	return env, nil
}
