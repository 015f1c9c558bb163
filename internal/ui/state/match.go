package state

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchOptions returns the options matching query, best matches first.
// Fuzzy ranking is tried before a plain substring fallback.
func MatchOptions(options []string, query string) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]string(nil), options...)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, options)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		out := make([]string, 0, len(ranks))
		for _, rank := range ranks {
			out = append(out, rank.Target)
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	out := make([]string, 0, len(options))
	for _, option := range options {
		if strings.Contains(strings.ToLower(option), lower) {
			out = append(out, option)
		}
	}
	return out
}

// BestMatchIndex returns the index of the option that best matches query,
// or -1 when nothing matches.
func BestMatchIndex(options []string, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		if len(options) == 0 {
			return -1
		}
		return 0
	}
	for i, option := range options {
		if strings.EqualFold(option, trimmed) {
			return i
		}
	}
	lower := strings.ToLower(trimmed)
	for i, option := range options {
		if strings.HasPrefix(strings.ToLower(option), lower) {
			return i
		}
	}
	for i, option := range options {
		if strings.Contains(strings.ToLower(option), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, options)
	if len(ranks) == 0 {
		return -1
	}
	sort.Sort(ranks)
	return ranks[0].OriginalIndex
}
