package faq

import "strings"

// EmptyInputPrompt is returned when the input has nothing left after normalization.
const EmptyInputPrompt = "Digite sua dúvida ou 'menu' para ver opções."

type compiledText struct {
	raw        string
	normalized string
}

type compiledEntry struct {
	id       string
	answer   string
	tags     []compiledText
	patterns []compiledText
}

// Matcher picks the best answer of a knowledge base for a free-text question.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	entries   []compiledEntry
	fallback  Entry
	threshold float64
	score     Scorer
}

// MatcherOption customizes a Matcher.
type MatcherOption func(*Matcher)

// WithThreshold sets the minimum accepted similarity score. Values outside
// [0, 1] are ignored.
func WithThreshold(threshold float64) MatcherOption {
	return func(m *Matcher) {
		if threshold >= 0 && threshold <= 1 {
			m.threshold = threshold
		}
	}
}

// WithScorer replaces the similarity function.
func WithScorer(score Scorer) MatcherOption {
	return func(m *Matcher) {
		if score != nil {
			m.score = score
		}
	}
}

// NewMatcher compiles the knowledge base for matching.
func NewMatcher(kb *KnowledgeBase, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		fallback:  kb.Fallback(),
		threshold: DefaultSimilarityThreshold,
		score:     Similarity,
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, entry := range kb.Entries() {
		m.entries = append(m.entries, compiledEntry{
			id:       entry.ID,
			answer:   entry.Answer,
			tags:     compileTexts(entry.Tags),
			patterns: compileTexts(entry.Patterns),
		})
	}
	return m
}

// Threshold returns the similarity threshold in use.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// FindBestAnswer returns the answer text for raw user input.
func (m *Matcher) FindBestAnswer(raw string) string {
	return m.Match(raw).Answer
}

// Match runs the tag pass, then the similarity pass, then falls back.
func (m *Matcher) Match(raw string) Match {
	query := Normalize(raw)
	if query == "" {
		return Match{Answer: EmptyInputPrompt, Stage: StageEmpty}
	}

	if match, ok := m.matchTag(query); ok {
		return match
	}

	var (
		bestScore   float64
		bestEntry   = -1
		bestPattern string
	)
	for i, entry := range m.entries {
		for _, pattern := range entry.patterns {
			score := m.score(query, pattern.normalized)
			// strictly greater: earlier entries win ties
			if score > bestScore {
				bestScore = score
				bestEntry = i
				bestPattern = pattern.raw
			}
		}
	}

	if bestEntry >= 0 && bestScore >= m.threshold {
		entry := m.entries[bestEntry]
		return Match{
			EntryID:        entry.id,
			Answer:         entry.answer,
			Stage:          StageSimilarity,
			Score:          bestScore,
			MatchedPattern: bestPattern,
		}
	}

	return Match{
		EntryID:  m.fallback.ID,
		Answer:   m.fallback.Answer,
		Stage:    StageFallback,
		Score:    bestScore,
		Fallback: true,
	}
}

func (m *Matcher) matchTag(query string) (Match, bool) {
	for _, entry := range m.entries {
		for _, tag := range entry.tags {
			if tag.normalized == "" {
				continue
			}
			// Plain substring containment: short tags such as "pt" also hit
			// inside unrelated words ("aceptar", "opt").
			if strings.Contains(query, tag.normalized) {
				return Match{
					EntryID:    entry.id,
					Answer:     entry.answer,
					Stage:      StageTag,
					Score:      1.0,
					MatchedTag: tag.raw,
				}, true
			}
		}
	}
	return Match{}, false
}

func compileTexts(texts []string) []compiledText {
	out := make([]compiledText, 0, len(texts))
	for _, text := range texts {
		out = append(out, compiledText{raw: text, normalized: Normalize(text)})
	}
	return out
}
