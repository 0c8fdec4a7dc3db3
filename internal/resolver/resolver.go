// Package resolver maps free-text chat names to exact chat ids. The matcher
// is pluggable: the pipeline only performs exact lookups, so any ranking
// algorithm can sit behind the interface.
package resolver

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MaxMatches caps the candidate list returned to the caller.
const MaxMatches = 10

// Match is one ranked candidate. Lower Distance means a closer match.
type Match struct {
	ChatID   string
	Distance int
}

// Matcher ranks candidate chat ids against a free-text query.
type Matcher interface {
	Resolve(query string, candidates []string) []Match
}

// Levenshtein ranks candidates by edit distance on the normalized query.
// It is the default Matcher.
type Levenshtein struct{}

// Resolve returns up to MaxMatches candidates ordered by ascending edit
// distance; ties keep candidate order.
func (Levenshtein) Resolve(query string, candidates []string) []Match {
	query = normalize(query)
	if query == "" || len(candidates) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		matches = append(matches, Match{
			ChatID:   candidate,
			Distance: fuzzy.LevenshteinDistance(query, normalize(candidate)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}
