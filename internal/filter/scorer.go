package filter

import (
	"math"
	"strings"
	"time"

	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// RecencyWindowDays is the inclusive age limit for the recency boost
const RecencyWindowDays = 14

// DefaultLocationMarkers are the location fragments recognized as the
// target geography (Germany)
var DefaultLocationMarkers = []string{
	"germany", "deutschland", "berlin", "munich", "münchen", "köln",
	"nrw", "hamburg", "frankfurt", "stuttgart", "düsseldorf",
}

// ScorerConfig configures the scoring formula
type ScorerConfig struct {
	Weights         lead.Weights
	LocationMarkers []string // Case-insensitive substrings of Record.Location
}

// Scorer computes lead scores:
//
//	score = round((base * recency * location + confidence*2) * 10)
//
// Rounding is half away from zero.
type Scorer struct {
	config  ScorerConfig
	markers []string
}

// NewScorer creates a new Scorer with the given configuration
func NewScorer(config ScorerConfig) *Scorer {
	markers := make([]string, 0, len(config.LocationMarkers))
	for _, m := range config.LocationMarkers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			markers = append(markers, m)
		}
	}
	return &Scorer{config: config, markers: markers}
}

// Score returns the score of r given its keyword match count
func (s *Scorer) Score(r *lead.Record, matchedCount int, now time.Time) int {
	return s.Explain(r, matchedCount, now).Score
}

// Explain returns the score of r together with each of its components
func (s *Scorer) Explain(r *lead.Record, matchedCount int, now time.Time) lead.Breakdown {
	w := s.config.Weights
	b := lead.Breakdown{
		Contributions:  make(map[string]float64),
		RecencyFactor:  1.0,
		LocationFactor: 1.0,
	}

	for _, f := range r.Signals.List() {
		b.Contributions[f.String()] = w.Flag(f)
		b.Base += w.Flag(f)
	}
	if matchedCount > 0 {
		b.Contributions[lead.FactorKeywordFit] = w.KeywordFit
		b.Base += w.KeywordFit
	}

	// Unknown dates never earn the boost
	if !r.Date.IsZero() {
		b.AgeDays = r.Date.DaysSince(lead.DateOf(now))
		if b.AgeDays <= RecencyWindowDays {
			b.RecencyFactor = w.RecencyBoost
		}
	}

	if s.inTargetGeography(r.Location) {
		b.LocationFactor = w.LocationBias
	}

	b.ConfidenceTerm = lead.ClampConfidence(r.Confidence) * 2
	b.Raw = (b.Base*b.RecencyFactor*b.LocationFactor + b.ConfidenceTerm) * 10
	b.Score = int(math.Round(b.Raw))
	if b.Score < 0 {
		b.Score = 0
	}

	return b
}

// inTargetGeography reports whether location mentions a recognized marker
func (s *Scorer) inTargetGeography(location string) bool {
	if location == "" {
		return false
	}
	loc := strings.ToLower(location)
	for _, m := range s.markers {
		if strings.Contains(loc, m) {
			return true
		}
	}
	return false
}

// Tone buckets a score the way the results table colors it
func Tone(score int) string {
	switch {
	case score >= 100:
		return "hot"
	case score >= 80:
		return "strong"
	case score >= 60:
		return "warm"
	default:
		return "cold"
	}
}
