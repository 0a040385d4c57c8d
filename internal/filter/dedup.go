package filter

import "github.com/vijay-prabhu/leadradar/internal/lead"

// Deduplicate collapses records sharing the same case-insensitive
// (organization, title) key. The input must already be ranked: the first
// occurrence of each key survives. The input slice is not modified.
func Deduplicate(ranked []lead.ScoredRecord) []lead.ScoredRecord {
	seen := make(map[string]struct{}, len(ranked))
	out := make([]lead.ScoredRecord, 0, len(ranked))

	for _, s := range ranked {
		key := s.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	return out
}
