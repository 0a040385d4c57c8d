package ranking

import (
	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/filter"
)

// FromConfig builds a ranking configuration from the application
// configuration: weights, themes, geography markers and default filters.
func FromConfig(cfg *config.Config) (Config, error) {
	weights, err := cfg.ParsedWeights()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Weights:         weights,
		Keywords:        cfg.KeywordGraph(),
		LocationMarkers: cfg.Geography.Markers,
		Criteria: filter.Criteria{
			Query:              cfg.Filters.Query,
			Region:             cfg.RegionFilter(cfg.Filters.Region),
			OnlyHighConfidence: cfg.Filters.OnlyHighConfidence,
			MinScore:           cfg.Filters.MinScore,
		},
	}, nil
}
