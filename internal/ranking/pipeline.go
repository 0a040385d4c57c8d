// Package ranking turns a batch of signal records into the ordered, filtered
// and deduplicated list of leads shown to the user.
package ranking

import (
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/leadradar/internal/filter"
	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// Config is everything a ranking run depends on besides the records and the clock
type Config struct {
	Weights         lead.Weights
	Keywords        lead.KeywordGraph
	LocationMarkers []string
	Criteria        filter.Criteria
	Workers         int // Scoring parallelism; <= 0 means GOMAXPROCS
}

// Stats counts records at each stage of a run
type Stats struct {
	Input      int `json:"input"`
	Passed     int `json:"passed"`
	Duplicates int `json:"duplicates"`
	Shown      int `json:"shown"`
}

// Result is the outcome of a ranking run
type Result struct {
	Results     []lead.ScoredRecord `json:"results"`
	PreCutCount int                 `json:"total"` // after dedup, before the MinScore cut
	Stats       Stats               `json:"stats"`
}

// Rank scores, filters, sorts, deduplicates and cuts records.
//
// Records are scored in parallel; everything after scoring is sequential.
// Sorting is stable, so records with equal scores keep their input order,
// and dedup therefore keeps the highest-scored (then earliest) occurrence.
// The input slice is never modified.
func Rank(records []lead.Record, cfg Config, now time.Time) Result {
	graph := cfg.Keywords.Normalize()
	scorer := filter.NewScorer(filter.ScorerConfig{
		Weights:         cfg.Weights,
		LocationMarkers: cfg.LocationMarkers,
	})

	scored := make([]lead.ScoredRecord, len(records))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range records {
		i := i
		g.Go(func() error {
			scored[i] = scoreRecord(&records[i], graph, scorer, now)
			return nil
		})
	}
	_ = g.Wait() // scoring cannot fail

	passed := cfg.Criteria.Apply(scored)

	sort.SliceStable(passed, func(i, j int) bool {
		return passed[i].Score > passed[j].Score
	})

	unique := filter.Deduplicate(passed)
	shown := cfg.Criteria.CutMinScore(unique)

	return Result{
		Results:     shown,
		PreCutCount: len(unique),
		Stats: Stats{
			Input:      len(records),
			Passed:     len(passed),
			Duplicates: len(passed) - len(unique),
			Shown:      len(shown),
		},
	}
}

func scoreRecord(r *lead.Record, graph lead.KeywordGraph, scorer *filter.Scorer, now time.Time) lead.ScoredRecord {
	m := filter.MatchKeywords(r, graph)
	b := scorer.Explain(r, m.Count, now)

	return lead.ScoredRecord{
		Record:          *r,
		Score:           b.Score,
		MatchedCount:    m.Count,
		MatchedKeywords: m.Terms,
		Breakdown:       b,
	}
}

// Find returns the scored record with the given id from a run, if present
func (r Result) Find(id string) (lead.ScoredRecord, bool) {
	for _, s := range r.Results {
		if s.ID == id {
			return s, true
		}
	}
	return lead.ScoredRecord{}, false
}

// Top returns at most n results; n <= 0 returns all of them
func (r Result) Top(n int) []lead.ScoredRecord {
	if n <= 0 || n >= len(r.Results) {
		return r.Results
	}
	return r.Results[:n]
}
