// Package fan assembles the renderer-facing geometry of a fan chart:
// the closed envelope polygon, the per-scenario lines and the historical line.
// Nothing here renders; every function is a pure recomputation from its inputs.
package fan

import (
	"dcf_fanchart/pkg/core/validate"
)

// Vertex is one (x, y) point of a polygon or line
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BuildPolygon walks forward along upper, then backward along lower, producing a single
// closed ring of 2*L vertices for a filled-region primitive:
//
//	(x0,u0) ... (xL-1,uL-1) (xL-1,lL-1) ... (x0,l0)
//
// x must be strictly increasing so that the ring does not self-intersect when upper >= lower.
func BuildPolygon(x, upper, lower []float64) ([]Vertex, error) {
	if err := validate.NonEmpty("x positions", len(x)); err != nil {
		return nil, err
	}
	if err := validate.SameLength("upper", len(upper), len(x)); err != nil {
		return nil, err
	}
	if err := validate.SameLength("lower", len(lower), len(x)); err != nil {
		return nil, err
	}
	if err := validate.StrictlyIncreasing("x positions", x); err != nil {
		return nil, err
	}

	n := len(x)
	ring := make([]Vertex, 0, 2*n)
	for i := 0; i < n; i++ {
		ring = append(ring, Vertex{X: x[i], Y: upper[i]})
	}
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, Vertex{X: x[i], Y: lower[i]})
	}
	return ring, nil
}
