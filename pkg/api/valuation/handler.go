package valuation

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"dcf_fanchart/pkg/api/respond"
	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/config"
	"dcf_fanchart/pkg/core/validate"
	"dcf_fanchart/pkg/core/valuation"
)

// Handlers serves standalone DCF valuations
type Handlers struct {
	model config.Model
	log   zerolog.Logger
}

// NewHandlers creates valuation handlers over the given model
func NewHandlers(model config.Model, log zerolog.Logger) *Handlers {
	return &Handlers{
		model: model,
		log:   log.With().Str("module", "valuation_handlers").Logger(),
	}
}

// RegisterRoutes registers the valuation routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/valuation", func(r chi.Router) {
		r.Post("/dcf", h.HandleDCF)
		r.Post("/football-field", h.HandleFootballField)
	})
}

// DCFRequest values one assumption set. Omitted assumptions take the reference defaults.
type DCFRequest struct {
	Assumptions map[string]float64  `json:"assumptions"`
	Terminal    *valuation.Terminal `json:"terminal,omitempty"`
	Company     *valuation.Company  `json:"company,omitempty"`
}

// DCFResponse is the result with display strings alongside the raw numbers
type DCFResponse struct {
	valuation.DCFResult
	Formatted FormattedDCF `json:"formatted"`
}

// FormattedDCF holds the headline figures as display strings
type FormattedDCF struct {
	EnterpriseValue   string `json:"enterprise_value"`
	TerminalValue     string `json:"terminal_value"`
	PVTerminal        string `json:"pv_terminal"`
	PVForecast        string `json:"pv_forecast"`
	FairValuePerShare string `json:"fair_value_per_share"`
	DiscountRate      string `json:"discount_rate"`
}

// HandleDCF runs a single DCF
func (h *Handlers) HandleDCF(w http.ResponseWriter, r *http.Request) {
	var req DCFRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, h.log, err)
		return
	}

	set, company, terminal := h.resolve(req.Assumptions, req.Company, req.Terminal)
	in, err := valuation.InputFromAssumptions(set, terminal)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	res, err := valuation.CalculateDCF(company, in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.JSON(w, http.StatusOK, DCFResponse{
		DCFResult: res,
		Formatted: FormattedDCF{
			EnterpriseValue:   valuation.FormatCurrency(res.EnterpriseValue),
			TerminalValue:     valuation.FormatCurrency(res.TerminalValue),
			PVTerminal:        valuation.FormatCurrency(res.PVTerminal),
			PVForecast:        valuation.FormatCurrency(res.PVForecast),
			FairValuePerShare: valuation.FormatPrice(res.FairValuePerShare),
			DiscountRate:      valuation.FormatPercentage(res.Input.DiscountRate),
		},
	})
}

// ScenarioAssumptions is one named assumption set for the football field
type ScenarioAssumptions struct {
	Name        string             `json:"name"`
	Assumptions map[string]float64 `json:"assumptions"`
}

// FootballFieldRequest values several named scenarios against a current price
type FootballFieldRequest struct {
	CurrentPrice *float64              `json:"current_price,omitempty"`
	Scenarios    []ScenarioAssumptions `json:"scenarios"`
	Terminal     *valuation.Terminal   `json:"terminal,omitempty"`
	Company      *valuation.Company    `json:"company,omitempty"`
}

// HandleFootballField values each scenario with its own assumptions and places the
// fair values on one scale with the current price.
func (h *Handlers) HandleFootballField(w http.ResponseWriter, r *http.Request) {
	var req FootballFieldRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	if err := validate.NonEmpty("scenarios", len(req.Scenarios)); err != nil {
		respond.Error(w, h.log, err)
		return
	}

	items := make([]valuation.ValuationLineItem, 0, len(req.Scenarios))
	for i, sc := range req.Scenarios {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}
		set, company, terminal := h.resolve(sc.Assumptions, req.Company, req.Terminal)
		in, err := valuation.InputFromAssumptions(set, terminal)
		if err == nil {
			var res valuation.DCFResult
			res, err = valuation.CalculateDCF(company, in)
			if err == nil {
				items = append(items, valuation.ValuationLineItem{
					Scenario:   name,
					GrowthRate: in.RevenueGrowth,
					SharePrice: res.FairValuePerShare,
				})
			}
		}
		if err != nil {
			respond.Error(w, h.log, fmt.Errorf("scenario '%s': %w", name, err))
			return
		}
	}

	price := h.model.CurrentPrice
	if req.CurrentPrice != nil {
		price = *req.CurrentPrice
	}
	field, err := valuation.BuildFootballField(price, items)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, field)
}

func (h *Handlers) resolve(values map[string]float64, company *valuation.Company, terminal *valuation.Terminal) (*assumption.Set, valuation.Company, valuation.Terminal) {
	set := assumption.NewSet(values).WithDefaults(h.model.Pipeline.Reference.Defaults())
	c, t := h.model.Company, h.model.Terminal
	if company != nil {
		c = *company
	}
	if terminal != nil {
		t = *terminal
	}
	return set, c, t
}
