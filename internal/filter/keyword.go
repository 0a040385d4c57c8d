package filter

import (
	"strings"

	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// Match is the result of scanning a record against a keyword graph
type Match struct {
	Count int      // Number of (theme, term) pairs found
	Terms []string // Matched terms in original casing, theme order then term order
}

// searchBlob joins the free-text fields that keyword matching looks at
func searchBlob(r *lead.Record) string {
	return strings.ToLower(strings.Join([]string{
		r.Title,
		r.Snippet,
		r.Organization,
		r.Sector,
	}, lead.TermSeparator()))
}

// MatchKeywords scans the title, snippet, organization and sector of r for
// every non-empty term of g. Matching is a case-insensitive substring test
// with no word-boundary requirement. A term listed under two themes counts twice.
func MatchKeywords(r *lead.Record, g lead.KeywordGraph) Match {
	blob := searchBlob(r)
	sep := lead.TermSeparator()

	var m Match
	for _, theme := range g.Themes {
		for _, term := range theme.Terms {
			if strings.TrimSpace(term) == "" || strings.Contains(term, sep) {
				continue
			}
			if strings.Contains(blob, strings.ToLower(term)) {
				m.Count++
				m.Terms = append(m.Terms, term)
			}
		}
	}
	return m
}

// ExtractKeywordContext extracts context around matched keywords
func ExtractKeywordContext(text string, keywords []string, contextSize int) []string {
	runes := []rune(text)
	lower := []rune(strings.ToLower(text))
	var contexts []string

	// Lowercasing can change the rune count for a few scripts; fall back
	// to the original runes so indexes stay aligned.
	if len(lower) != len(runes) {
		lower = runes
	}

	for _, kw := range keywords {
		kwLower := []rune(strings.ToLower(kw))
		idx := indexRunes(lower, kwLower)
		if idx == -1 {
			continue
		}

		// Extract context around the keyword
		start := max(0, idx-contextSize)
		end := min(len(runes), idx+len(kwLower)+contextSize)

		context := string(runes[start:end])
		if start > 0 {
			context = "..." + context
		}
		if end < len(runes) {
			context = context + "..."
		}

		contexts = append(contexts, context)
	}

	return contexts
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
