package domain

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultFuzzyThreshold is the minimum similarity for a non-substring match.
const DefaultFuzzyThreshold = 0.3

// FieldFunc extracts one searchable string from an item.
type FieldFunc[T any] func(T) string

// FuzzyOptions tunes FuzzySearch. A nil Threshold means
// DefaultFuzzyThreshold; a threshold of 0 keeps any nonzero similarity.
type FuzzyOptions struct {
	Threshold *float64
}

// WithThreshold returns options using threshold t.
func WithThreshold(t float64) FuzzyOptions {
	return FuzzyOptions{Threshold: &t}
}

// FuzzySearch filters items to those where any field contains query or is
// more similar to it than the threshold, ordered by best field similarity.
// Ties keep input order. A blank query returns items unchanged.
func FuzzySearch[T any](items []T, query string, fields []FieldFunc[T], opts FuzzyOptions) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	threshold := DefaultFuzzyThreshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}
	q := strings.ToLower(query)

	type ranked struct {
		item  T
		score float64
	}
	var matches []ranked
	for _, item := range items {
		best := 0.0
		keep := false
		for _, field := range fields {
			v := strings.ToLower(field(item))
			sim := Similarity(q, v)
			if strings.Contains(v, q) || sim > threshold {
				keep = true
			}
			best = max(best, sim)
		}
		if keep {
			matches = append(matches, ranked{item: item, score: best})
		}
	}

	slices.SortStableFunc(matches, func(a, b ranked) int {
		return cmp.Compare(b.score, a.score)
	})
	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// Similarity returns 1 - editDistance/maxLen for two strings, in [0,1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	longer, shorter := a, b
	if len(longer) < len(shorter) {
		longer, shorter = shorter, longer
	}
	if len(longer) == 0 {
		return 1
	}
	return float64(len(longer)-EditDistance(longer, shorter)) / float64(len(longer))
}

// EditDistance is the Levenshtein distance between a and b over bytes.
func EditDistance(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// PlantSearchFields are the catalog fields searched by name.
var PlantSearchFields = []FieldFunc[PlantCandidate]{
	func(p PlantCandidate) string { return p.Name },
	func(p PlantCandidate) string { return p.ScientificName },
	func(p PlantCandidate) string { return p.Category },
	func(p PlantCandidate) string { return strings.Join(p.Tags, " ") },
}
