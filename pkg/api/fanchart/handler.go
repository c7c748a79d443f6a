package fanchart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"dcf_fanchart/pkg/api/respond"
	"dcf_fanchart/pkg/core/analysis"
	"dcf_fanchart/pkg/core/cache"
	"dcf_fanchart/pkg/core/report"
)

const cacheNamespace = "analysis"

// Handlers serves fan chart computations and reports
type Handlers struct {
	engine *analysis.Engine
	cache  cache.Repository
	log    zerolog.Logger
}

// NewHandlers creates fan chart handlers. A nil cache disables caching.
func NewHandlers(engine *analysis.Engine, repo cache.Repository, log zerolog.Logger) *Handlers {
	if repo == nil {
		repo = cache.Nop{}
	}
	return &Handlers{
		engine: engine,
		cache:  repo,
		log:    log.With().Str("module", "fanchart_handlers").Logger(),
	}
}

// RegisterRoutes registers the fan chart routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/fanchart", func(r chi.Router) {
		r.Post("/", h.HandleFanChart)
		r.Post("/report", h.HandleReport)
	})
}

// HandleFanChart computes the fan chart and scenario valuations for the posted
// assumptions. Identical requests are served from the cache.
func (h *Handlers) HandleFanChart(w http.ResponseWriter, r *http.Request) {
	var in analysis.Input
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}

	canonical, err := json.Marshal(in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	key := cache.Key(cacheNamespace, canonical)
	if body, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("X-Cache", "HIT")
		respond.Raw(w, "application/json", body)
		return
	}

	res, err := h.engine.Analyze(in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	body, err := json.Marshal(res)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	if err := h.cache.Set(r.Context(), key, string(body)); err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("Failed to cache fan chart")
	}

	w.Header().Set("X-Cache", "MISS")
	respond.Raw(w, "application/json", string(body))
}

// HandleReport renders the same computation as a document. ?format=markdown returns
// the Markdown source; anything else returns HTML. ?title= sets the heading.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	var in analysis.Input
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	res, err := h.engine.Analyze(in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	doc := report.Input{
		Title:      r.URL.Query().Get("title"),
		Chart:      res.FanChart,
		Valuations: res.Valuations,
		Field:      &res.FootballField,
	}
	if r.URL.Query().Get("format") == "markdown" {
		md, err := report.Markdown(doc)
		if err != nil {
			respond.Error(w, h.log, err)
			return
		}
		respond.Raw(w, "text/markdown; charset=utf-8", md)
		return
	}
	html, err := report.HTML(doc)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.Raw(w, "text/html; charset=utf-8", html)
}
