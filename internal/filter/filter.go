// Package filter scores signal records and narrows them down to the leads
// worth showing: keyword matching, scoring, predicate filtering and dedup.
package filter

import (
	"strings"

	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// HighConfidenceThreshold is the minimum confidence kept when
// Criteria.OnlyHighConfidence is set
const HighConfidenceThreshold = 0.70

// Criteria holds the user-selected filters
type Criteria struct {
	Query              string // Case-insensitive substring of organization, title, snippet or sector
	Region             string // Substring of location; empty means no regional restriction
	OnlyHighConfidence bool   // Keep only confidence >= HighConfidenceThreshold
	MinScore           int    // Display cut, applied after sorting and dedup
}

// Passes applies the pre-sort predicates (query, region, confidence).
// MinScore is not checked here; see CutMinScore.
func (c Criteria) Passes(s *lead.ScoredRecord) bool {
	return c.matchesQuery(&s.Record) && c.matchesRegion(&s.Record) && c.matchesConfidence(&s.Record)
}

func (c Criteria) matchesQuery(r *lead.Record) bool {
	q := strings.ToLower(strings.TrimSpace(c.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{r.Organization, r.Title, r.Snippet, r.Sector} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// matchesRegion is case-sensitive: region names are picked from a fixed list
func (c Criteria) matchesRegion(r *lead.Record) bool {
	if c.Region == "" {
		return true
	}
	return strings.Contains(r.Location, c.Region)
}

func (c Criteria) matchesConfidence(r *lead.Record) bool {
	return !c.OnlyHighConfidence || r.Confidence >= HighConfidenceThreshold
}

// Apply returns the records that pass the pre-sort predicates, in input order
func (c Criteria) Apply(scored []lead.ScoredRecord) []lead.ScoredRecord {
	kept := make([]lead.ScoredRecord, 0, len(scored))
	for i := range scored {
		if c.Passes(&scored[i]) {
			kept = append(kept, scored[i])
		}
	}
	return kept
}

// CutMinScore keeps the records scoring at least MinScore. Relative order
// is preserved; the cut only truncates.
func (c Criteria) CutMinScore(ranked []lead.ScoredRecord) []lead.ScoredRecord {
	shown := make([]lead.ScoredRecord, 0, len(ranked))
	for _, s := range ranked {
		if s.Score >= c.MinScore {
			shown = append(shown, s)
		}
	}
	return shown
}
