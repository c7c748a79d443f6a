package valuation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcf_fanchart/pkg/api/respond"
	"dcf_fanchart/pkg/core/config"
	"dcf_fanchart/pkg/core/valuation"
)

func setupRouter() http.Handler {
	r := chi.NewRouter()
	NewHandlers(config.DefaultModel(), zerolog.Nop()).RegisterRoutes(r)
	return r
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleDCF_Defaults(t *testing.T) {
	w := post(setupRouter(), "/valuation/dcf", `{}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp DCFResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.InDelta(t, 11.5719703681, resp.FairValuePerShare, 1e-9)
	assert.Len(t, resp.Years, 5)
	assert.Equal(t, "$11.57", resp.Formatted.FairValuePerShare)
	assert.Equal(t, "$1.16B", resp.Formatted.EnterpriseValue)
	assert.Equal(t, "10.0%", resp.Formatted.DiscountRate)
}

func TestHandleDCF_ExitMultipleByLabel(t *testing.T) {
	body := `{
		"assumptions": {"Revenue Growth CAGR (%)": 8},
		"terminal": {"method": "multiple", "exit_multiple": 8, "multiple_type": "ebitda"}
	}`
	w := post(setupRouter(), "/valuation/dcf", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp DCFResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.InDelta(t, 16.9910839895, resp.FairValuePerShare, 1e-9)
	assert.Equal(t, valuation.TerminalMultiple, resp.Input.Terminal.Method)
}

func TestHandleDCF_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"gordon spread", `{"assumptions": {"discount_rate": 3, "terminal_growth_rate": 3}}`},
		{"unknown method", `{"terminal": {"method": "apv"}}`},
		{"no shares", `{"company": {"base_revenue": 1e9, "forecast_years": 5}}`},
		{"growth overflows", `{"assumptions": {"revenue_growth_cagr": 1e200}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(setupRouter(), "/valuation/dcf", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp respond.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleFootballField(t *testing.T) {
	body := `{
		"current_price": 11.5719703681,
		"scenarios": [
			{"name": "Low", "assumptions": {"revenue_growth_cagr": 6}},
			{"name": "Mid", "assumptions": {"revenue_growth_cagr": 8}},
			{"name": "High", "assumptions": {"revenue_growth_cagr": 10}}
		]
	}`
	w := post(setupRouter(), "/valuation/football-field", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var field valuation.FootballField
	require.NoError(t, json.NewDecoder(w.Body).Decode(&field))
	require.Len(t, field.Markers, 3)
	assert.InDelta(t, 10.8984124800, field.Min, 1e-9)
	assert.InDelta(t, 12.2727272727, field.Max, 1e-9)

	for _, m := range field.Markers {
		if m.Name == "Mid" {
			assert.InDelta(t, 0, m.Upside, 1e-6)
		}
	}
}

func TestHandleFootballField_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no scenarios", `{"scenarios": []}`},
		{"bad price", `{"current_price": -1, "scenarios": [{"name": "A"}]}`},
		{"bad scenario", `{"scenarios": [{"name": "A", "assumptions": {"discount_rate": 1, "terminal_growth_rate": 2}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(setupRouter(), "/valuation/football-field", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
