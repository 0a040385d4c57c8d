package lead

import "strings"

// Theme is a named group of related keyword terms
type Theme struct {
	Label string   `json:"label" yaml:"label"`
	Terms []string `json:"terms" yaml:"terms"`
}

// KeywordGraph is the ordered list of themes used for topical matching
type KeywordGraph struct {
	Themes []Theme `json:"themes" yaml:"themes"`
}

// termSeparator joins the searchable fields of a record. Terms containing it
// are dropped so a match can never span two fields.
const termSeparator = "\x00"

// TermSeparator returns the separator used between searchable fields
func TermSeparator() string { return termSeparator }

// DefaultKeywordGraph returns the stock themes
func DefaultKeywordGraph() KeywordGraph {
	return KeywordGraph{Themes: []Theme{
		{Label: "Market Entry", Terms: []string{"market entry", "go-to-market", "GTM", "launch", "expansion", "EU entry"}},
		{Label: "Strategy", Terms: []string{"strategy", "corporate development", "BD", "partnerships", "category expansion"}},
		{Label: "Marketing", Terms: []string{"brand", "growth marketing", "performance", "demand gen", "positioning"}},
		{Label: "Entrepreneurial", Terms: []string{"generalist", "0→1", "founding team", "builder", "operator"}},
	}}
}

// Normalize returns a copy with trimmed terms. Empty terms and terms that
// contain the field separator are removed; themes keep their order.
func (g KeywordGraph) Normalize() KeywordGraph {
	out := KeywordGraph{Themes: make([]Theme, 0, len(g.Themes))}
	for _, t := range g.Themes {
		nt := Theme{Label: strings.TrimSpace(t.Label), Terms: make([]string, 0, len(t.Terms))}
		for _, term := range t.Terms {
			term = strings.TrimSpace(term)
			if term == "" || strings.Contains(term, termSeparator) {
				continue
			}
			nt.Terms = append(nt.Terms, term)
		}
		out.Themes = append(out.Themes, nt)
	}
	return out
}

// TermCount returns the total number of terms across all themes
func (g KeywordGraph) TermCount() int {
	n := 0
	for _, t := range g.Themes {
		n += len(t.Terms)
	}
	return n
}

// ParseTerms splits a comma-separated term list, dropping blanks
func ParseTerms(s string) []string {
	var terms []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
