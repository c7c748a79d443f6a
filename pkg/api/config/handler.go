package config

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"dcf_fanchart/pkg/api/respond"
	"dcf_fanchart/pkg/core/assumption"
	coreconfig "dcf_fanchart/pkg/core/config"
	"dcf_fanchart/pkg/core/scenario"
	"dcf_fanchart/pkg/core/valuation"
)

// Response describes the inputs a client needs to build the assumption form.
type Response struct {
	Fields       []assumption.Row   `json:"fields"`
	Offsets      []scenario.Offset  `json:"offsets"`
	Horizon      int                `json:"horizon"`
	CurrentPrice float64            `json:"current_price"`
	Terminal     valuation.Terminal `json:"terminal"`
	Company      valuation.Company  `json:"company"`
}

// Handler serves the active model configuration
type Handler struct {
	model coreconfig.Model
	log   zerolog.Logger
}

// NewHandler creates a new config handler
func NewHandler(model coreconfig.Model, log zerolog.Logger) *Handler {
	return &Handler{
		model: model,
		log:   log.With().Str("module", "config_handlers").Logger(),
	}
}

// RegisterRoutes registers the config routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/assumptions/reference", h.HandleReference)
}

// HandleReference returns the field catalogue joined with the default, consensus and
// historical tables, plus the scenario and valuation defaults.
func (h *Handler) HandleReference(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, Response{
		Fields:       h.model.Pipeline.Reference.Rows(),
		Offsets:      h.model.Pipeline.Offsets,
		Horizon:      h.model.Pipeline.Horizon.Periods(),
		CurrentPrice: h.model.CurrentPrice,
		Terminal:     h.model.Terminal,
		Company:      h.model.Company,
	})
}
