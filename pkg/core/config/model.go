package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"

	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/history"
	"dcf_fanchart/pkg/core/pipeline"
	"dcf_fanchart/pkg/core/projection"
	"dcf_fanchart/pkg/core/scenario"
	"dcf_fanchart/pkg/core/valuation"
)

// HistoryConfig selects and parameterises the historical series provider
type HistoryConfig struct {
	Kind       string              `yaml:"kind"`
	RandomWalk *history.RandomWalk `yaml:"random_walk"`
	Seasonal   *history.Seasonal   `yaml:"seasonal"`
}

// ReferenceConfig overrides the comparison tables. Keys may be field keys or labels.
type ReferenceConfig struct {
	Defaults   map[string]float64 `yaml:"defaults"`
	Consensus  map[string]float64 `yaml:"consensus"`
	Historical map[string]float64 `yaml:"historical"`
}

// ModelConfig is the optional YAML model file. Every section is optional.
type ModelConfig struct {
	Reference    ReferenceConfig     `yaml:"reference"`
	Offsets      []scenario.Offset   `yaml:"offsets"`
	Horizon      *int                `yaml:"horizon"`
	History      HistoryConfig       `yaml:"history"`
	Company      *valuation.Company  `yaml:"company"`
	Terminal     *valuation.Terminal `yaml:"terminal"`
	CurrentPrice float64             `yaml:"current_price"`
}

// Model is the resolved, immutable configuration handed to the surfaces.
type Model struct {
	Pipeline     pipeline.Defaults
	Company      valuation.Company
	Terminal     valuation.Terminal
	CurrentPrice float64
}

// DefaultCurrentPrice is the demo share price the football field compares against
const DefaultCurrentPrice = 45.0

// DefaultModel returns the built-in configuration
func DefaultModel() Model {
	return Model{
		Pipeline:     pipeline.DefaultDefaults(),
		Company:      valuation.DefaultCompany(),
		Terminal:     valuation.Terminal{Method: valuation.TerminalGordon},
		CurrentPrice: DefaultCurrentPrice,
	}
}

// LoadModel reads the YAML file at path. A missing file (or empty path) yields the
// built-in defaults; a malformed one is an error.
func LoadModel(path string) (Model, error) {
	if path == "" {
		return DefaultModel(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultModel(), nil
	}
	if err != nil {
		return Model{}, fmt.Errorf("read model config %s: %w", path, err)
	}
	return ParseModel(data)
}

// ParseModel decodes YAML and applies it over the defaults. Sections that are present
// but partial keep the default value of every field they omit.
func ParseModel(data []byte) (Model, error) {
	def := DefaultModel()
	rw, seasonal := history.DefaultRandomWalk(), history.DefaultSeasonal()
	mc := ModelConfig{
		History:  HistoryConfig{RandomWalk: &rw, Seasonal: &seasonal},
		Company:  &def.Company,
		Terminal: &def.Terminal,
	}
	if err := yaml.UnmarshalStrict(data, &mc); err != nil {
		return Model{}, fmt.Errorf("parse model config: %w", err)
	}
	return mc.Resolve()
}

// Resolve applies the file's sections over DefaultModel and validates the result.
func (mc ModelConfig) Resolve() (Model, error) {
	m := DefaultModel()

	m.Pipeline.Reference = m.Pipeline.Reference.Override(
		mc.Reference.Defaults, mc.Reference.Consensus, mc.Reference.Historical)
	if err := assumption.NewSet(m.Pipeline.Reference.Defaults()).Validate(); err != nil {
		return Model{}, fmt.Errorf("reference defaults: %w", err)
	}
	if _, err := m.Pipeline.Reference.DefaultSet().BaselineGrowth(); err != nil {
		return Model{}, fmt.Errorf("reference defaults: %w", err)
	}

	if mc.Offsets != nil {
		if _, err := scenario.Generate(0, mc.Offsets); err != nil {
			return Model{}, fmt.Errorf("offsets: %w", err)
		}
		m.Pipeline.Offsets = mc.Offsets
	}

	if mc.Horizon != nil {
		h, err := projection.NewHorizon(*mc.Horizon)
		if err != nil {
			return Model{}, err
		}
		m.Pipeline.Horizon = h
	}

	provider, err := mc.History.provider()
	if err != nil {
		return Model{}, err
	}
	if _, err := provider.Series(); err != nil {
		return Model{}, fmt.Errorf("history: %w", err)
	}
	m.Pipeline.History = provider

	if mc.Company != nil {
		m.Company = *mc.Company
	}
	if mc.Terminal != nil {
		m.Terminal = *mc.Terminal
	}
	if mc.CurrentPrice != 0 {
		if mc.CurrentPrice < 0 {
			return Model{}, fmt.Errorf("current_price must be positive, got %v", mc.CurrentPrice)
		}
		m.CurrentPrice = mc.CurrentPrice
	}

	in, err := valuation.InputFromAssumptions(m.Pipeline.Reference.DefaultSet(), m.Terminal)
	if err == nil {
		_, err = valuation.CalculateDCF(m.Company, in)
	}
	if err != nil {
		return Model{}, fmt.Errorf("valuation defaults: %w", err)
	}
	return m, nil
}

func (hc HistoryConfig) provider() (history.Provider, error) {
	switch hc.Kind {
	case "", history.KindRandomWalk:
		if hc.RandomWalk != nil {
			return *hc.RandomWalk, nil
		}
		return history.DefaultRandomWalk(), nil
	case history.KindSeasonal:
		if hc.Seasonal != nil {
			return *hc.Seasonal, nil
		}
		return history.DefaultSeasonal(), nil
	default:
		return nil, fmt.Errorf("unknown history kind '%s' (want %s or %s)", hc.Kind, history.KindRandomWalk, history.KindSeasonal)
	}
}
