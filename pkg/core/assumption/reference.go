package assumption

// Reference holds the immutable comparison tables shown next to each input.
// Values are copied in and out, so callers cannot mutate a shared instance.
type Reference struct {
	defaults   map[string]float64
	consensus  map[string]float64
	historical map[string]float64
}

// NewReference builds a reference from explicit tables; keys may be field keys or labels.
func NewReference(defaults, consensus, historical map[string]float64) Reference {
	return Reference{
		defaults:   NewSet(defaults).Values,
		consensus:  NewSet(consensus).Values,
		historical: NewSet(historical).Values,
	}
}

// DefaultReference returns the demo tables.
func DefaultReference() Reference {
	return NewReference(
		map[string]float64{
			RevenueGrowthCAGR:       8.0,
			OperatingMargin:         15.0,
			DiscountRate:            10.0,
			CapexIntensity:          8.0,
			WorkingCapitalIntensity: 12.0,
			TaxRate:                 25.0,
			TerminalGrowthRate:      2.5,
		},
		map[string]float64{
			RevenueGrowthCAGR:       7.5,
			OperatingMargin:         14.2,
			DiscountRate:            9.8,
			CapexIntensity:          7.9,
			WorkingCapitalIntensity: 11.5,
			TaxRate:                 24.5,
			TerminalGrowthRate:      2.2,
		},
		map[string]float64{
			RevenueGrowthCAGR:       6.2,
			OperatingMargin:         13.1,
			DiscountRate:            10.5,
			CapexIntensity:          8.2,
			WorkingCapitalIntensity: 12.0,
			TaxRate:                 25.0,
			TerminalGrowthRate:      2.0,
		},
	)
}

// Override returns a copy with the given values laid over the receiver's tables.
// Keys absent from an override keep their current value.
func (r Reference) Override(defaults, consensus, historical map[string]float64) Reference {
	return Reference{
		defaults:   overlay(r.defaults, defaults),
		consensus:  overlay(r.consensus, consensus),
		historical: overlay(r.historical, historical),
	}
}

func (r Reference) Defaults() map[string]float64   { return copyMap(r.defaults) }
func (r Reference) Consensus() map[string]float64  { return copyMap(r.consensus) }
func (r Reference) Historical() map[string]float64 { return copyMap(r.historical) }

// DefaultSet returns a fresh assumption set holding the default values
func (r Reference) DefaultSet() *Set {
	return &Set{Values: r.Defaults()}
}

// Row is one catalogue entry joined with its reference values, for display
type Row struct {
	Field
	Default    *float64 `json:"default,omitempty"`
	Consensus  *float64 `json:"consensus,omitempty"`
	Historical *float64 `json:"historical,omitempty"`
}

// Rows joins the catalogue with the reference tables in display order.
func (r Reference) Rows() []Row {
	fields := Catalogue()
	rows := make([]Row, len(fields))
	for i, f := range fields {
		rows[i] = Row{
			Field:      f,
			Default:    lookup(r.defaults, f.Key),
			Consensus:  lookup(r.consensus, f.Key),
			Historical: lookup(r.historical, f.Key),
		}
	}
	return rows
}

func lookup(m map[string]float64, key string) *float64 {
	if v, ok := m[key]; ok {
		return &v
	}
	return nil
}

func overlay(base, top map[string]float64) map[string]float64 {
	out := copyMap(base)
	for k, v := range NewSet(top).Values {
		out[k] = v
	}
	return out
}

func copyMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
