package lead

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Pseudo-factor names accepted next to flag names in a weight mapping
const (
	FactorKeywordFit   = "keywordFit"
	FactorLocationBias = "locationBias"
	FactorRecencyBoost = "recencyBoost"
)

var factorAliases = map[string]string{
	"keywordfit":    FactorKeywordFit,
	"keyword_fit":   FactorKeywordFit,
	"locationbias":  FactorLocationBias,
	"location_bias": FactorLocationBias,
	"germanybias":   FactorLocationBias,
	"recencyboost":  FactorRecencyBoost,
	"recency_boost": FactorRecencyBoost,
}

// Weights holds the non-negative multipliers used by the scorer.
// A flag without an explicit weight contributes zero.
type Weights struct {
	Flags        [NumFlags]float64
	KeywordFit   float64
	LocationBias float64
	RecencyBoost float64
}

// DefaultWeights returns the hand-tuned default weights
func DefaultWeights() Weights {
	var w Weights
	w.Flags[FundingAnnounced] = 2.0
	w.Flags[TradeRegisterEntry] = 1.6
	w.Flags[LeadershipHire] = 2.2
	w.Flags[CareersPageAnomaly] = 1.1
	w.Flags[EventsHosted] = 0.9
	w.Flags[CustomerDemandPull] = 1.7
	w.KeywordFit = 1.8
	w.LocationBias = 1.3
	w.RecencyBoost = 1.3
	return w
}

// Flag returns the weight of a single flag
func (w Weights) Flag(f Flag) float64 {
	if f < 0 || f >= NumFlags {
		return 0
	}
	return w.Flags[f]
}

// Set assigns a weight by flag or factor name
func (w *Weights) Set(name string, value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("weight %q must be a non-negative number, got %g", name, value)
	}
	if f, ok := ParseFlag(name); ok {
		w.Flags[f] = value
		return nil
	}
	switch canonicalFactor(name) {
	case FactorKeywordFit:
		w.KeywordFit = value
	case FactorLocationBias:
		w.LocationBias = value
	case FactorRecencyBoost:
		w.RecencyBoost = value
	default:
		return fmt.Errorf("unknown weight %q", name)
	}
	return nil
}

// Map returns the weights keyed by canonical name
func (w Weights) Map() map[string]float64 {
	m := make(map[string]float64, NumFlags+3)
	for _, f := range AllFlags() {
		m[f.String()] = w.Flags[f]
	}
	m[FactorKeywordFit] = w.KeywordFit
	m[FactorLocationBias] = w.LocationBias
	m[FactorRecencyBoost] = w.RecencyBoost
	return m
}

// WeightNames returns the canonical weight names: flags first, then pseudo-factors
func WeightNames() []string {
	names := make([]string, 0, NumFlags+3)
	for _, f := range AllFlags() {
		names = append(names, f.String())
	}
	return append(names, FactorKeywordFit, FactorLocationBias, FactorRecencyBoost)
}

// ParseWeights builds weights from a name -> value mapping. Names missing from
// the mapping stay at zero. Unknown names and negative values are errors.
func ParseWeights(m map[string]float64) (Weights, error) {
	var w Weights
	var errs []error

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.Set(k, m[k]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return Weights{}, errors.Join(errs...)
	}
	return w, nil
}

func canonicalFactor(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := factorAliases[key]; ok {
		return c
	}
	return ""
}
