package faq

import (
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer returns how alike two normalized strings are, in [0, 1].
type Scorer func(a, b string) float64

// Scorer names accepted by ScorerByName.
const (
	ScorerRatcliff    = "ratcliff"
	ScorerJaroWinkler = "jaro-winkler"
	ScorerLevenshtein = "levenshtein"
)

// Similarity is the block-matching ratio 2*M/T, where M is the total size of
// the matching blocks found by recursive longest-block alignment and T the
// combined length of both strings.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	m := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return m.Ratio()
}

var scorers = map[string]Scorer{
	ScorerRatcliff:    Similarity,
	ScorerJaroWinkler: edlibScorer(edlib.JaroWinkler),
	ScorerLevenshtein: edlibScorer(edlib.Levenshtein),
}

// ScorerByName resolves a configured algorithm name. Unknown or empty names
// resolve to Similarity.
func ScorerByName(name string) Scorer {
	if score, ok := scorers[scorerKey(name)]; ok {
		return score
	}
	return Similarity
}

// KnownScorer reports whether name selects a registered algorithm. The empty
// name selects the default.
func KnownScorer(name string) bool {
	key := scorerKey(name)
	if key == "" {
		return true
	}
	_, ok := scorers[key]
	return ok
}

func scorerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func edlibScorer(algo edlib.Algorithm) Scorer {
	return func(a, b string) float64 {
		if a == b {
			return 1.0
		}
		if a == "" || b == "" {
			return 0.0
		}
		score, err := edlib.StringsSimilarity(a, b, algo)
		if err != nil {
			return 0.0
		}
		return float64(score)
	}
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
