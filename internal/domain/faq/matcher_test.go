package faq

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherDefaultKnowledgeBase(t *testing.T) {
	matcher := NewMatcher(DefaultKnowledgeBase())

	tests := []struct {
		name    string
		input   string
		entryID string
		stage   Stage
		tag     string
		pattern string
	}{
		{
			name:    "tag order wins over later topics",
			input:   "Quero saber sobre FÉRIAS e também sobre afastamento",
			entryID: "ferias_basico",
			stage:   StageTag,
			tag:     "ferias",
		},
		{
			name:    "exact pattern is caught by the tag pass first",
			input:   "como marcar ferias",
			entryID: "ferias_basico",
			stage:   StageTag,
			tag:     "ferias",
		},
		{
			name:    "accented tag",
			input:   "Preciso de uma LICENÇA",
			entryID: "afastamentos",
			stage:   StageTag,
			tag:     "licenca",
		},
		{
			name:    "short tag hits inside unrelated words",
			input:   "aceptar convite",
			entryID: "plano_trabalho",
			stage:   StageTag,
			tag:     "pt",
		},
		{
			name:    "similar pattern",
			input:   "qual o telefone do setor?",
			entryID: "horario_contato",
			stage:   StageSimilarity,
			pattern: "telefone do setor",
		},
		{
			name:    "typo close to pattern",
			input:   "telefone do setr",
			entryID: "horario_contato",
			stage:   StageSimilarity,
			pattern: "telefone do setor",
		},
		{
			name:    "partial pattern",
			input:   "Onde estão os arquivos?",
			entryID: "documentos_publicos",
			stage:   StageSimilarity,
			pattern: "onde estao os documentos",
		},
		{
			name:    "gibberish falls back",
			input:   "xkjh qwopp zzxy",
			entryID: FallbackID,
			stage:   StageFallback,
		},
		{
			name:    "below threshold falls back",
			input:   "ola bom dia",
			entryID: FallbackID,
			stage:   StageFallback,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := matcher.Match(tc.input)
			require.Equal(t, tc.entryID, got.EntryID)
			require.Equal(t, tc.stage, got.Stage)
			require.Equal(t, tc.tag, got.MatchedTag)
			require.Equal(t, tc.pattern, got.MatchedPattern)
			require.Equal(t, tc.stage == StageFallback, got.Fallback)

			entry, ok := DefaultKnowledgeBase().Entry(tc.entryID)
			require.True(t, ok)
			require.Equal(t, entry.Answer, got.Answer)
			require.Equal(t, entry.Answer, matcher.FindBestAnswer(tc.input))
		})
	}
}

func TestMatcherEmptyInputReturnsPrompt(t *testing.T) {
	matcher := NewMatcher(DefaultKnowledgeBase())

	for _, in := range []string{"", "   ", "?!...", "¿¡"} {
		got := matcher.Match(in)
		require.Equal(t, StageEmpty, got.Stage, "input %q", in)
		require.Equal(t, EmptyInputPrompt, got.Answer)
		require.Empty(t, got.EntryID)
		require.False(t, got.Fallback)
	}
	require.Equal(t, EmptyInputPrompt, matcher.FindBestAnswer(""))
}

func TestMatcherTagPassSkipsSimilarity(t *testing.T) {
	kb := MustKnowledgeBase([]Entry{
		{ID: "keyword", Tags: []string{"boleto"}, Answer: "keyword answer"},
		{ID: "pattern", Patterns: []string{"segunda via do boleto"}, Answer: "pattern answer"},
		{ID: FallbackID, Answer: "fallback answer"},
	}, nil)

	calls := 0
	matcher := NewMatcher(kb, WithScorer(func(a, b string) float64 {
		calls++
		return 1.0
	}))

	got := matcher.Match("Segunda via do BOLETO")
	require.Equal(t, "keyword", got.EntryID)
	require.Equal(t, StageTag, got.Stage)
	require.Zero(t, calls)
}

func TestMatcherTagOrderWithinEntry(t *testing.T) {
	kb := MustKnowledgeBase([]Entry{
		{ID: "first", Tags: []string{"zzz", "abc"}, Answer: "first"},
		{ID: "second", Tags: []string{"abc def"}, Answer: "second"},
		{ID: FallbackID, Answer: "fallback"},
	}, nil)

	got := NewMatcher(kb).Match("abc def")
	require.Equal(t, "first", got.EntryID)
	require.Equal(t, "abc", got.MatchedTag)
}

func TestMatcherThresholdBoundary(t *testing.T) {
	kb := MustKnowledgeBase([]Entry{
		{ID: "topic", Patterns: []string{"anchor"}, Answer: "topic answer"},
		{ID: FallbackID, Answer: "fallback answer"},
	}, nil)

	fixed := func(score float64) Scorer {
		return func(a, b string) float64 { return score }
	}

	accepted := NewMatcher(kb, WithScorer(fixed(0.60))).Match("question")
	require.Equal(t, "topic", accepted.EntryID)
	require.Equal(t, StageSimilarity, accepted.Stage)
	require.Equal(t, 0.60, accepted.Score)

	rejected := NewMatcher(kb, WithScorer(fixed(0.5999999))).Match("question")
	require.Equal(t, FallbackID, rejected.EntryID)
	require.True(t, rejected.Fallback)
	require.Equal(t, "fallback answer", rejected.Answer)
}

func TestMatcherThresholdWithRealRatio(t *testing.T) {
	// "abc" vs "abcdefg" scores exactly 2*3/10.
	kb := MustKnowledgeBase([]Entry{
		{ID: "topic", Patterns: []string{"abcdefg"}, Answer: "topic answer"},
		{ID: FallbackID, Answer: "fallback answer"},
	}, nil)

	got := NewMatcher(kb).Match("abc")
	require.Equal(t, "topic", got.EntryID)
	require.InDelta(t, 0.6, got.Score, 1e-12)
}

func TestMatcherSimilarityTieKeepsEarliest(t *testing.T) {
	kb := MustKnowledgeBase([]Entry{
		{ID: "early", Patterns: []string{"one", "two"}, Answer: "early"},
		{ID: "late", Patterns: []string{"three"}, Answer: "late"},
		{ID: FallbackID, Answer: "fallback"},
	}, nil)

	matcher := NewMatcher(kb, WithScorer(func(a, b string) float64 { return 0.9 }))
	got := matcher.Match("anything")
	require.Equal(t, "early", got.EntryID)
	require.Equal(t, "one", got.MatchedPattern)
}

func TestMatcherBestScoreWinsRegardlessOfOrder(t *testing.T) {
	kb := MustKnowledgeBase([]Entry{
		{ID: "weak", Patterns: []string{"renovar matricula"}, Answer: "weak"},
		{ID: "strong", Patterns: []string{"solicitar diploma"}, Answer: "strong"},
		{ID: FallbackID, Answer: "fallback"},
	}, nil)

	got := NewMatcher(kb).Match("solicitar diplomas")
	require.Equal(t, "strong", got.EntryID)
	require.Equal(t, StageSimilarity, got.Stage)
}

func TestMatcherExactPatternScoresOne(t *testing.T) {
	kb := MustKnowledgeBase([]Entry{
		{ID: "other", Patterns: []string{"como marcar consulta"}, Answer: "other"},
		{ID: "ferias_basico", Patterns: []string{"Como marcar FÉRIAS?"}, Answer: "ferias"},
		{ID: FallbackID, Answer: "fallback"},
	}, nil)

	got := NewMatcher(kb).Match("como marcar ferias")
	require.Equal(t, "ferias_basico", got.EntryID)
	require.Equal(t, 1.0, got.Score)
}

func TestMatcherOptions(t *testing.T) {
	kb := DefaultKnowledgeBase()
	require.Equal(t, DefaultSimilarityThreshold, NewMatcher(kb).Threshold())
	require.Equal(t, 0.8, NewMatcher(kb, WithThreshold(0.8)).Threshold())
	require.Equal(t, DefaultSimilarityThreshold, NewMatcher(kb, WithThreshold(1.5)).Threshold())
	require.Equal(t, DefaultSimilarityThreshold, NewMatcher(kb, WithThreshold(-0.1)).Threshold())

	strict := NewMatcher(kb, WithThreshold(0.95))
	require.True(t, strict.Match("qual o telefone do setor").Fallback)
}

func TestMatcherConcurrentUse(t *testing.T) {
	matcher := NewMatcher(DefaultKnowledgeBase())
	inputs := []string{"ferias", "telefone do setr", "xkjh qwopp zzxy", ""}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := inputs[i%len(inputs)]
			assert.Equal(t, matcher.Match(in), matcher.Match(in))
		}(i)
	}
	wg.Wait()
}
