package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/filter"
	"github.com/vijay-prabhu/leadradar/internal/ingest"
	"github.com/vijay-prabhu/leadradar/internal/lead"
	"github.com/vijay-prabhu/leadradar/internal/output"
	"github.com/vijay-prabhu/leadradar/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank a batch of signal records",
	Long: `Score, filter, deduplicate and rank a batch of signal records.

Filters default to the [filters] section of the config file; flags override them.

Examples:
  leadradar rank --input signals.json
  leadradar rank --input signals.csv --region Bayern --min-score 80
  leadradar rank --input signals.yaml --query robotics --high-confidence
  leadradar rank --input signals.json --weight leadershipHire=3 --weight keywordFit=0
  leadradar rank --input signals.json --now 2025-10-24 -o json`,
	RunE: runRank,
}

var rankOpts rankOptions

func init() {
	rootCmd.AddCommand(rankCmd)
	rankOpts.bind(rankCmd, true)
}

// rankOptions are the ranking flags shared by rank, export, stats and show
type rankOptions struct {
	input          string
	query          string
	region         string
	minScore       int
	highConfidence bool
	now            string
	weights        []string
	limit          int
	metricsFile    string
	filtered       bool // False ranks without any filters or min score cut
}

func (o *rankOptions) bind(cmd *cobra.Command, filters bool) {
	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "", "signal record batch (.json, .yaml, .csv)")
	f.StringVar(&o.now, "now", "", "reference date for recency (YYYY-MM-DD, default today)")
	f.StringArrayVar(&o.weights, "weight", nil, "override a weight as name=value (repeatable)")
	f.StringVar(&o.metricsFile, "metrics-textfile", "", "write run metrics in Prometheus text format to this file")
	_ = cmd.MarkFlagRequired("input")

	o.filtered = filters
	if !filters {
		return
	}
	f.StringVarP(&o.query, "query", "q", "", "case-insensitive text filter over organization, title, snippet and sector")
	f.StringVar(&o.region, "region", "", "region filter ('"+config.Nationwide+"' for none)")
	f.IntVar(&o.minScore, "min-score", 0, fmt.Sprintf("hide leads scoring below this (0-%d)", config.MaxMinScore))
	f.BoolVar(&o.highConfidence, "high-confidence", false, "only keep records with confidence >= 0.70")
	f.IntVar(&o.limit, "limit", 0, "maximum number of results (0 for all)")
}

// rankingConfig overlays the flags that were set on the configured ranking
func (o *rankOptions) rankingConfig(cmd *cobra.Command, cfg *config.Config) (ranking.Config, error) {
	rc, err := ranking.FromConfig(cfg)
	if err != nil {
		return rc, err
	}

	overrides, err := parseWeightFlags(o.weights)
	if err != nil {
		return rc, err
	}
	if rc.Weights, err = config.MergeWeights(rc.Weights, overrides); err != nil {
		return rc, err
	}

	if !o.filtered {
		rc.Criteria = filter.Criteria{}
		return rc, nil
	}

	f := cmd.Flags()
	if f.Changed("query") {
		rc.Criteria.Query = o.query
	}
	if f.Changed("region") {
		rc.Criteria.Region = cfg.RegionFilter(o.region)
	}
	if f.Changed("min-score") {
		if o.minScore < 0 || o.minScore > config.MaxMinScore {
			return rc, fmt.Errorf("--min-score must be between 0 and %d", config.MaxMinScore)
		}
		rc.Criteria.MinScore = o.minScore
	}
	if f.Changed("high-confidence") {
		rc.Criteria.OnlyHighConfidence = o.highConfidence
	}
	if o.limit < 0 {
		return rc, errors.New("--limit must not be negative")
	}

	return rc, nil
}

func (o *rankOptions) referenceTime() (time.Time, error) {
	if o.now == "" {
		return time.Now(), nil
	}
	d, err := lead.ParseDate(o.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return d.Time(), nil
}

// run loads the input, ranks it and writes the metrics textfile if asked
func (o *rankOptions) run(cmd *cobra.Command, cfg *config.Config, logger zerolog.Logger) (ranking.Result, error) {
	rc, err := o.rankingConfig(cmd, cfg)
	if err != nil {
		return ranking.Result{}, err
	}
	now, err := o.referenceTime()
	if err != nil {
		return ranking.Result{}, err
	}

	records, err := loadRecords(o.input, logger)
	if err != nil {
		return ranking.Result{}, err
	}

	metrics := ranking.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return ranking.Result{}, fmt.Errorf("failed to register metrics: %w", err)
	}

	res := metrics.Timed(records, rc, now)
	logger.Debug().
		Int("input", res.Stats.Input).
		Int("passed", res.Stats.Passed).
		Int("duplicates", res.Stats.Duplicates).
		Int("shown", res.Stats.Shown).
		Msg("ranked")

	if o.metricsFile != "" {
		if err := prometheus.WriteToTextfile(o.metricsFile, registry); err != nil {
			return res, fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return res, nil
}

func loadRecords(path string, logger zerolog.Logger) ([]lead.Record, error) {
	if path == "" {
		return nil, errors.New("--input is required")
	}
	records, err := ingest.Loader{Logger: logger}.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

// parseWeightFlags parses repeated name=value pairs
func parseWeightFlags(pairs []string) (map[string]float64, error) {
	overrides := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --weight %q: expected name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --weight %q: %w", pair, err)
		}
		overrides[strings.TrimSpace(name)] = v
	}
	return overrides, nil
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := rankOpts.run(cmd, cfg, logger)
	if err != nil {
		return err
	}

	res.Results = res.Top(rankOpts.limit)
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, res)
}
