package faq

// DefaultSimilarityThreshold is the minimum pattern score accepted by the
// similarity pass.
const DefaultSimilarityThreshold = 0.60

// Config holds runtime knobs for the FAQ service.
type Config struct {
	// SimilarityThreshold of zero selects DefaultSimilarityThreshold; the
	// configuration layer rejects an explicit zero.
	SimilarityThreshold float64
	SimilarityAlgorithm string
	TopRecommendations  int
	// MatchCacheSize bounds the per-query match cache; zero disables it.
	MatchCacheSize int
}
