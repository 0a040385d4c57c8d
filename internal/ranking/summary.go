package ranking

import (
	"strings"

	"github.com/vijay-prabhu/leadradar/internal/filter"
	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// Count is a labelled tally
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary aggregates the shown results of a run for the stats views
type Summary struct {
	Total     int     `json:"total"` // PreCutCount
	Shown     int     `json:"shown"`
	TopScore  int     `json:"top_score"`
	MeanScore float64 `json:"mean_score"`
	Stats     Stats   `json:"stats"`
	ByFlag    []Count `json:"by_flag"`  // Declaration order
	ByTheme   []Count `json:"by_theme"` // Theme order
	ByTone    []Count `json:"by_tone"`  // hot, strong, warm, cold
}

// Summarize counts flags, themes and score tones over res.Results. A record
// counts once per theme when any of its matched terms belongs to it.
func Summarize(res Result, graph lead.KeywordGraph) Summary {
	s := Summary{
		Total: res.PreCutCount,
		Shown: len(res.Results),
		Stats: res.Stats,
	}

	flagCounts := make([]int, lead.NumFlags)
	themeCounts := make([]int, len(graph.Themes))
	toneCounts := map[string]int{}

	sum := 0
	for i, r := range res.Results {
		if i == 0 || r.Score > s.TopScore {
			s.TopScore = r.Score
		}
		sum += r.Score
		toneCounts[filter.Tone(r.Score)]++

		for _, f := range r.Signals.List() {
			flagCounts[f]++
		}

		matched := make(map[string]bool, len(r.MatchedKeywords))
		for _, term := range r.MatchedKeywords {
			matched[strings.ToLower(term)] = true
		}
		for ti, theme := range graph.Themes {
			for _, term := range theme.Terms {
				if matched[strings.ToLower(term)] {
					themeCounts[ti]++
					break
				}
			}
		}
	}
	if s.Shown > 0 {
		s.MeanScore = float64(sum) / float64(s.Shown)
	}

	for _, f := range lead.AllFlags() {
		s.ByFlag = append(s.ByFlag, Count{Name: f.String(), Count: flagCounts[f]})
	}
	for i, theme := range graph.Themes {
		s.ByTheme = append(s.ByTheme, Count{Name: theme.Label, Count: themeCounts[i]})
	}
	for _, tone := range []string{"hot", "strong", "warm", "cold"} {
		s.ByTone = append(s.ByTone, Count{Name: tone, Count: toneCounts[tone]})
	}

	return s
}
