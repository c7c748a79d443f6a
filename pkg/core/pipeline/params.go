package pipeline

import (
	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/history"
	"dcf_fanchart/pkg/core/projection"
	"dcf_fanchart/pkg/core/scenario"
	"dcf_fanchart/pkg/core/validate"
)

// Params is the wire form of a Request, shared by the HTTP API and the CLI.
type Params struct {
	Assumptions map[string]float64 `json:"assumptions,omitempty"`
	Offsets     []scenario.Offset  `json:"offsets"` // null keeps the defaults, [] is rejected
	Horizon     *int               `json:"horizon,omitempty"`
	History     *HistoryParams     `json:"history,omitempty"`
}

// HistoryParams picks the historical series for one request
type HistoryParams struct {
	Kind   string    `json:"kind,omitempty"` // random_walk (default), seasonal, static
	Seed   *uint64   `json:"seed,omitempty"`
	Points int       `json:"points,omitempty"`
	Values []float64 `json:"values,omitempty"` // static only
}

// Request converts the params, starting from defaults for anything omitted.
func (p Params) Request(defaults Defaults) (Request, error) {
	var req Request
	if p.Assumptions != nil {
		req.Assumptions = assumption.NewSet(p.Assumptions)
	}
	req.Offsets = p.Offsets

	if p.Horizon != nil {
		h, err := projection.NewHorizon(*p.Horizon)
		if err != nil {
			return Request{}, err
		}
		req.Horizon = &h
	}

	if p.History != nil {
		provider, err := p.History.provider(defaults.History)
		if err != nil {
			return Request{}, err
		}
		req.History = provider
	}
	return req, nil
}

func (hp HistoryParams) provider(fallback history.Provider) (history.Provider, error) {
	if hp.Points < 0 || hp.Points > history.MaxPoints {
		return nil, validate.Invalid("history points must be between 1 and %d, got %d", history.MaxPoints, hp.Points)
	}
	switch hp.Kind {
	case "", history.KindRandomWalk:
		rw, ok := fallback.(history.RandomWalk)
		if !ok {
			rw = history.DefaultRandomWalk()
		}
		if hp.Seed != nil {
			rw.Seed = *hp.Seed
		}
		if hp.Points > 0 {
			rw.Points = hp.Points
		}
		return rw, nil
	case history.KindSeasonal:
		s, ok := fallback.(history.Seasonal)
		if !ok {
			s = history.DefaultSeasonal()
		}
		if hp.Points > 0 {
			s.Points = hp.Points
		}
		return s, nil
	case history.KindStatic:
		return history.Static(hp.Values), nil
	default:
		return nil, validate.Invalid("unknown history kind '%s'", hp.Kind)
	}
}
