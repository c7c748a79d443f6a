package valuation

import (
	"github.com/shopspring/decimal"

	"dcf_fanchart/pkg/core/validate"
)

// notAvailable stands in for NaN and ±Inf, which decimal cannot represent
const notAvailable = "n/a"

var (
	billion  = decimal.NewFromInt(1_000_000_000)
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// FormatCurrency abbreviates to $B, $M or $K with two decimals. Negative values
// keep their sign in front of the dollar sign.
func FormatCurrency(value float64) string {
	if !validate.IsFinite(value) {
		return notAvailable
	}
	d := decimal.NewFromFloat(value)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case d.GreaterThanOrEqual(billion):
		return sign + "$" + d.Div(billion).StringFixed(2) + "B"
	case d.GreaterThanOrEqual(million):
		return sign + "$" + d.Div(million).StringFixed(2) + "M"
	case d.GreaterThanOrEqual(thousand):
		return sign + "$" + d.Div(thousand).StringFixed(2) + "K"
	default:
		return sign + "$" + d.StringFixed(2)
	}
}

// FormatPercentage renders a percent value with one decimal
func FormatPercentage(value float64) string {
	if !validate.IsFinite(value) {
		return notAvailable
	}
	return decimal.NewFromFloat(value).StringFixed(1) + "%"
}

// FormatPrice renders a per-share price
func FormatPrice(value float64) string {
	if !validate.IsFinite(value) {
		return notAvailable
	}
	d := decimal.NewFromFloat(value)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatChange renders a signed percent change, "+" for gains
func FormatChange(pct float64) string {
	if !validate.IsFinite(pct) {
		return notAvailable
	}
	s := decimal.NewFromFloat(pct).StringFixed(1)
	if pct > 0 {
		return "+" + s + "%"
	}
	return s + "%"
}
