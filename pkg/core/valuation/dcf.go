package valuation

import (
	"math"

	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/validate"
)

// Company is the illustrative base-year company every DCF starts from.
type Company struct {
	BaseRevenue       float64 `json:"base_revenue" yaml:"base_revenue"`
	BaseDepreciation  float64 `json:"base_depreciation" yaml:"base_depreciation"`
	SharesOutstanding float64 `json:"shares_outstanding" yaml:"shares_outstanding"`
	ForecastYears     int     `json:"forecast_years" yaml:"forecast_years"`
}

// MaxForecastYears bounds the explicit forecast period
const MaxForecastYears = 100

// DefaultCompany is $1B revenue, $50M depreciation, 100M shares, five forecast years.
func DefaultCompany() Company {
	return Company{
		BaseRevenue:       1_000_000_000,
		BaseDepreciation:  50_000_000,
		SharesOutstanding: 100_000_000,
		ForecastYears:     5,
	}
}

// TerminalMethod selects how the value beyond the forecast is capitalised
type TerminalMethod string

const (
	TerminalGordon   TerminalMethod = "gordon"
	TerminalMultiple TerminalMethod = "multiple"
)

// MultipleType selects the metric an exit multiple applies to
type MultipleType string

const (
	MultiplePE     MultipleType = "pe"     // Year-N NOPAT as earnings proxy
	MultipleEBITDA MultipleType = "ebitda" // Year-N operating profit + depreciation
)

// Terminal configures the terminal value
type Terminal struct {
	Method       TerminalMethod `json:"method" yaml:"method"`
	ExitMultiple float64        `json:"exit_multiple,omitempty" yaml:"exit_multiple"`
	MultipleType MultipleType   `json:"multiple_type,omitempty" yaml:"multiple_type"`
}

// DCFInput holds the rates, all in percent
type DCFInput struct {
	RevenueGrowth           float64  `json:"revenue_growth"`
	OperatingMargin         float64  `json:"operating_margin"`
	DiscountRate            float64  `json:"discount_rate"`
	CapexIntensity          float64  `json:"capex_intensity"`
	WorkingCapitalIntensity float64  `json:"working_capital_intensity"`
	TaxRate                 float64  `json:"tax_rate"`
	TerminalGrowth          float64  `json:"terminal_growth"`
	Terminal                Terminal `json:"terminal"`
}

// InputFromAssumptions maps a complete assumption set to DCF rates.
func InputFromAssumptions(set *assumption.Set, terminal Terminal) (DCFInput, error) {
	in := DCFInput{Terminal: terminal}
	targets := []struct {
		key string
		dst *float64
	}{
		{assumption.RevenueGrowthCAGR, &in.RevenueGrowth},
		{assumption.OperatingMargin, &in.OperatingMargin},
		{assumption.DiscountRate, &in.DiscountRate},
		{assumption.CapexIntensity, &in.CapexIntensity},
		{assumption.WorkingCapitalIntensity, &in.WorkingCapitalIntensity},
		{assumption.TaxRate, &in.TaxRate},
		{assumption.TerminalGrowthRate, &in.TerminalGrowth},
	}
	for _, t := range targets {
		v, err := set.Get(t.key)
		if err != nil {
			return DCFInput{}, validate.Invalid("%v", err)
		}
		*t.dst = v
	}
	return in, nil
}

// YearCalc is one forecast year of the DCF
type YearCalc struct {
	Year                 int     `json:"year"`
	Revenue              float64 `json:"revenue"`
	OperatingProfit      float64 `json:"operating_profit"`
	Taxes                float64 `json:"taxes"`
	NOPAT                float64 `json:"nopat"`
	Depreciation         float64 `json:"depreciation"`
	Capex                float64 `json:"capex"`
	WorkingCapitalChange float64 `json:"working_capital_change"`
	FreeCashFlow         float64 `json:"free_cash_flow"`
	PresentValue         float64 `json:"present_value"`
}

// DCFResult holds the valuation outputs
type DCFResult struct {
	Input             DCFInput   `json:"input"`
	Years             []YearCalc `json:"years"`
	TerminalValue     float64    `json:"terminal_value"`
	PVTerminal        float64    `json:"pv_terminal"`
	PVForecast        float64    `json:"pv_forecast"`
	EnterpriseValue   float64    `json:"enterprise_value"`
	SharesOutstanding float64    `json:"shares_outstanding"`
	FairValuePerShare float64    `json:"fair_value_per_share"`
}

// CalculateDCF performs a two-stage unlevered DCF:
// explicit forecast of free cash flow, then a Gordon-growth or exit-multiple terminal value.
func CalculateDCF(company Company, input DCFInput) (DCFResult, error) {
	if err := validateDCF(company, input); err != nil {
		return DCFResult{}, err
	}

	g := input.RevenueGrowth / 100
	r := input.DiscountRate / 100

	years := make([]YearCalc, 0, company.ForecastYears)
	var pvForecast, priorWC float64

	for year := 1; year <= company.ForecastYears; year++ {
		growth := math.Pow(1+g, float64(year))
		revenue := company.BaseRevenue * growth

		opProfit := revenue * input.OperatingMargin / 100
		taxes := opProfit * input.TaxRate / 100
		nopat := opProfit - taxes

		// Depreciation grows with revenue
		depn := company.BaseDepreciation * growth
		capex := revenue * input.CapexIntensity / 100

		wc := revenue * input.WorkingCapitalIntensity / 100
		wcChange := wc - priorWC
		priorWC = wc

		fcf := nopat + depn - capex - wcChange
		pv := fcf / math.Pow(1+r, float64(year))
		pvForecast += pv

		years = append(years, YearCalc{
			Year:                 year,
			Revenue:              revenue,
			OperatingProfit:      opProfit,
			Taxes:                taxes,
			NOPAT:                nopat,
			Depreciation:         depn,
			Capex:                capex,
			WorkingCapitalChange: wcChange,
			FreeCashFlow:         fcf,
			PresentValue:         pv,
		})
	}

	last := years[len(years)-1]
	var tv float64
	switch input.Terminal.Method {
	case TerminalMultiple:
		switch input.Terminal.MultipleType {
		case MultiplePE:
			tv = last.NOPAT * input.Terminal.ExitMultiple
		case MultipleEBITDA:
			tv = (last.OperatingProfit + last.Depreciation) * input.Terminal.ExitMultiple
		}
	default:
		tg := input.TerminalGrowth / 100
		tv = last.FreeCashFlow * (1 + tg) / (r - tg)
	}

	pvTerminal := tv / math.Pow(1+r, float64(company.ForecastYears))
	ev := pvForecast + pvTerminal
	fair := ev / company.SharesOutstanding

	for _, out := range []struct {
		label string
		v     float64
	}{
		{"terminal value", tv},
		{"present value of forecast", pvForecast},
		{"enterprise value", ev},
		{"fair value per share", fair},
	} {
		if err := validate.Finite(out.label, out.v); err != nil {
			return DCFResult{}, err
		}
	}

	return DCFResult{
		Input:             input,
		Years:             years,
		TerminalValue:     tv,
		PVTerminal:        pvTerminal,
		PVForecast:        pvForecast,
		EnterpriseValue:   ev,
		SharesOutstanding: company.SharesOutstanding,
		FairValuePerShare: fair,
	}, nil
}

func validateDCF(company Company, input DCFInput) error {
	if company.ForecastYears < 1 || company.ForecastYears > MaxForecastYears {
		return validate.Invalid("forecast years must be between 1 and %d, got %d", MaxForecastYears, company.ForecastYears)
	}
	if !(company.SharesOutstanding > 0) {
		return validate.Invalid("shares outstanding must be positive, got %v", company.SharesOutstanding)
	}
	for _, f := range []struct {
		label string
		v     float64
	}{
		{"base revenue", company.BaseRevenue},
		{"base depreciation", company.BaseDepreciation},
		{"revenue growth", input.RevenueGrowth},
		{"operating margin", input.OperatingMargin},
		{"discount rate", input.DiscountRate},
		{"capex intensity", input.CapexIntensity},
		{"working capital intensity", input.WorkingCapitalIntensity},
		{"tax rate", input.TaxRate},
		{"terminal growth", input.TerminalGrowth},
	} {
		if err := validate.Finite(f.label, f.v); err != nil {
			return err
		}
	}
	if input.DiscountRate <= -100 {
		return validate.Invalid("discount rate must be greater than -100%%, got %v", input.DiscountRate)
	}

	switch input.Terminal.Method {
	case "", TerminalGordon:
		if input.DiscountRate <= input.TerminalGrowth {
			return validate.Invalid("discount rate (%v%%) must exceed terminal growth rate (%v%%) for the Gordon growth terminal value",
				input.DiscountRate, input.TerminalGrowth)
		}
	case TerminalMultiple:
		if err := validate.Finite("exit multiple", input.Terminal.ExitMultiple); err != nil {
			return err
		}
		if input.Terminal.MultipleType != MultiplePE && input.Terminal.MultipleType != MultipleEBITDA {
			return validate.Invalid("exit multiple type must be '%s' or '%s', got '%s'", MultiplePE, MultipleEBITDA, input.Terminal.MultipleType)
		}
	default:
		return validate.Invalid("unknown terminal method '%s'", input.Terminal.Method)
	}
	return nil
}
