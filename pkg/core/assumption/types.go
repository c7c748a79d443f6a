// Package assumption implements the valuation AssumptionSet consumed by the fan chart.
// Only the baseline growth rate drives the projection; every other field is carried
// through for display and for the stand-alone DCF calculator.
package assumption

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"dcf_fanchart/pkg/core/utils"
	"dcf_fanchart/pkg/core/validate"
)

// =============================================================================
// FIELD CATALOGUE
// =============================================================================

// Field keys
const (
	RevenueGrowthCAGR       = "revenue_growth_cagr"
	OperatingMargin         = "operating_margin"
	DiscountRate            = "discount_rate"
	CapexIntensity          = "capex_intensity"
	WorkingCapitalIntensity = "working_capital_intensity"
	TaxRate                 = "tax_rate"
	TerminalGrowthRate      = "terminal_growth_rate"
)

// BaselineGrowthKey is the only field the projection engine reads
const BaselineGrowthKey = RevenueGrowthCAGR

// SliderRange is display metadata for an input widget. It is never enforced.
type SliderRange struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// Field describes one assumption input
type Field struct {
	Key      string      `json:"key"`
	Label    string      `json:"label"`
	Unit     string      `json:"unit"`
	Slider   SliderRange `json:"slider"`
	Advanced bool        `json:"advanced"` // Hidden behind "advanced settings" in the UI
	Inert    bool        `json:"inert"`    // Not consumed by the fan projection
	Tooltip  string      `json:"tooltip,omitempty"`
}

// Catalogue returns the known fields in display order.
func Catalogue() []Field {
	return []Field{
		{Key: RevenueGrowthCAGR, Label: "Revenue Growth CAGR (%)", Unit: "%", Slider: SliderRange{0, 20, 0.1},
			Tooltip: "How fast sales are expected to grow each year."},
		{Key: OperatingMargin, Label: "Operating Margin (%)", Unit: "%", Slider: SliderRange{0, 40, 0.1}, Inert: true,
			Tooltip: "Operating profit after operating expenses, before interest and taxes."},
		{Key: DiscountRate, Label: "Discount Rate (%)", Unit: "%", Slider: SliderRange{5, 20, 0.1}, Advanced: true, Inert: true,
			Tooltip: "Rate used to bring future cash flows back to today, typically the cost of capital."},
		{Key: CapexIntensity, Label: "CAPEX Intensity (%)", Unit: "%", Slider: SliderRange{0, 20, 0.1}, Advanced: true, Inert: true,
			Tooltip: "Capital expenditures as a percentage of revenue."},
		{Key: WorkingCapitalIntensity, Label: "Working Capital Intensity (%)", Unit: "%", Slider: SliderRange{0, 20, 0.1}, Advanced: true, Inert: true,
			Tooltip: "Working capital requirements as a percentage of revenue."},
		{Key: TaxRate, Label: "Tax Rate (%)", Unit: "%", Slider: SliderRange{0, 50, 0.1}, Advanced: true, Inert: true,
			Tooltip: "Effective corporate tax rate applied to operating profit."},
		{Key: TerminalGrowthRate, Label: "Terminal Growth Rate (%)", Unit: "%", Slider: SliderRange{0, 5, 0.1}, Advanced: true, Inert: true,
			Tooltip: "Perpetual growth after the forecast period; usually below GDP growth."},
	}
}

// LookupField finds a field by key or by display label (case-insensitive).
func LookupField(name string) (Field, bool) {
	needle := strings.TrimSpace(name)
	for _, f := range Catalogue() {
		if f.Key == needle || strings.EqualFold(f.Label, needle) {
			return f, true
		}
	}
	return Field{}, false
}

// =============================================================================
// ASSUMPTION SET
// =============================================================================

// Set maps assumption key -> percentage value.
// Unknown keys are kept as pass-through display values.
type Set struct {
	Values map[string]float64 `json:"values"`
}

// NewSet creates a set from a map, normalising display labels to field keys.
func NewSet(values map[string]float64) *Set {
	s := &Set{Values: make(map[string]float64, len(values))}
	for name, v := range values {
		s.Values[normaliseKey(name)] = v
	}
	return s
}

func normaliseKey(name string) string {
	if f, ok := LookupField(name); ok {
		return f.Key
	}
	return strings.TrimSpace(name)
}

// Get retrieves a value by key or label
func (s *Set) Get(name string) (float64, error) {
	v, ok := s.Values[normaliseKey(name)]
	if !ok {
		return 0, fmt.Errorf("assumption '%s' not found", name)
	}
	return v, nil
}

// BaselineGrowth returns the growth rate the scenario generator starts from.
func (s *Set) BaselineGrowth() (float64, error) {
	v, ok := s.Values[BaselineGrowthKey]
	if !ok {
		return 0, validate.Invalid("assumption '%s' is required", BaselineGrowthKey)
	}
	if err := validate.Finite(BaselineGrowthKey, v); err != nil {
		return 0, err
	}
	return v, nil
}

// Validate checks every value is finite. No range is enforced.
func (s *Set) Validate() error {
	for _, k := range s.Keys() {
		if err := validate.Finite("assumption '"+k+"'", s.Values[k]); err != nil {
			return err
		}
	}
	return nil
}

// WithDefaults returns a copy with missing fields filled from defaults.
func (s *Set) WithDefaults(defaults map[string]float64) *Set {
	out := &Set{Values: make(map[string]float64, len(defaults)+len(s.Values))}
	for k, v := range defaults {
		out.Values[normaliseKey(k)] = v
	}
	for k, v := range s.Values {
		out.Values[k] = v
	}
	return out
}

// Keys returns the keys in sorted order
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Inert returns the fields present in the set that the projection does not consume.
func (s *Set) Inert() map[string]float64 {
	out := make(map[string]float64)
	for k, v := range s.Values {
		if k != BaselineGrowthKey {
			out[k] = v
		}
	}
	return out
}

// ToJSON serializes the assumption set
func (s *Set) ToJSON() ([]byte, error) {
	return json.Marshal(s.Values)
}

// FromJSON parses a flat name -> value document. Input may be strict JSON, Hjson, or
// JSON with common mistakes; keys may be field keys or display labels.
func FromJSON(data []byte) (*Set, error) {
	var raw map[string]float64
	if _, err := utils.SmartParse(string(data), &raw); err != nil {
		return nil, validate.Invalid("assumptions could not be parsed: %v", err)
	}
	return NewSet(raw), nil
}
