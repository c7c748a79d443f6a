package fan

import (
	"fmt"

	"dcf_fanchart/pkg/core/validate"
)

// Line is a named open series of vertices
type Line struct {
	Name   string   `json:"name"`
	Points []Vertex `json:"points"`
}

// NamedSeries is a projected sequence with its scenario name
type NamedSeries struct {
	Name   string
	Values []float64
}

// HistoricalLineName labels the historical series
const HistoricalLineName = "Historical Price"

// ProjectionXPositions returns the x positions of the projected columns. The first column
// sits on the last historical index, so projections start where history ends.
func ProjectionXPositions(historyLen, periods int) ([]float64, error) {
	if err := validate.NonEmpty("historical series", historyLen); err != nil {
		return nil, err
	}
	if periods < 0 {
		return nil, validate.Invalid("horizon must be a non-negative integer, got %d", periods)
	}
	x := make([]float64, periods+1)
	for i := range x {
		x[i] = float64(historyLen - 1 + i)
	}
	return x, nil
}

// ScenarioLines pairs x with each scenario's own projected sequence, in input order.
func ScenarioLines(x []float64, scenarios []NamedSeries) ([]Line, error) {
	lines := make([]Line, len(scenarios))
	for i, s := range scenarios {
		if err := validate.SameLength(fmt.Sprintf("scenario '%s'", s.Name), len(s.Values), len(x)); err != nil {
			return nil, err
		}
		points := make([]Vertex, len(x))
		for j := range x {
			points[j] = Vertex{X: x[j], Y: s.Values[j]}
		}
		lines[i] = Line{Name: s.Name, Points: points}
	}
	return lines, nil
}

// HistoricalLine places the historical values at x = 0..n-1 and appends the shared anchor
// point at anchorIndex. anchorIndex must not fall before the last historical column.
func HistoricalLine(historical []float64, anchor float64, anchorIndex int) (Line, error) {
	if err := validate.NonEmpty("historical series", len(historical)); err != nil {
		return Line{}, err
	}
	if anchorIndex < len(historical)-1 {
		return Line{}, validate.Invalid("anchor index %d precedes last historical index %d", anchorIndex, len(historical)-1)
	}
	points := make([]Vertex, 0, len(historical)+1)
	for i, v := range historical {
		points = append(points, Vertex{X: float64(i), Y: v})
	}
	points = append(points, Vertex{X: float64(anchorIndex), Y: anchor})
	return Line{Name: HistoricalLineName, Points: points}, nil
}
