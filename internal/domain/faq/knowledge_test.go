package faq

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/ccs-faqbot/pkg/errors"
)

func TestDefaultKnowledgeBase(t *testing.T) {
	kb := DefaultKnowledgeBase()
	require.Equal(t, 6, kb.Len())

	ids := make([]string, 0, kb.Len())
	for _, entry := range kb.Entries() {
		ids = append(ids, entry.ID)
	}
	require.Equal(t, []string{"ferias_basico", "plano_trabalho", "afastamentos", "horario_contato", "documentos_publicos", FallbackID}, ids)

	fallback := kb.Fallback()
	require.Equal(t, FallbackID, fallback.ID)
	require.Empty(t, fallback.Tags)
	require.Empty(t, fallback.Patterns)
	require.Contains(t, fallback.Answer, "Não encontrei")
	require.Len(t, kb.Menu(), 5)
}

func TestNewKnowledgeBaseValidation(t *testing.T) {
	fallback := Entry{ID: FallbackID, Answer: "none"}

	tests := []struct {
		name    string
		entries []Entry
	}{
		{name: "missing fallback", entries: []Entry{{ID: "a", Tags: []string{"x"}, Answer: "a"}}},
		{name: "duplicate ids", entries: []Entry{{ID: "a", Tags: []string{"x"}, Answer: "a"}, {ID: "a", Tags: []string{"y"}, Answer: "b"}, fallback}},
		{name: "duplicate fallback", entries: []Entry{fallback, fallback}},
		{name: "empty id", entries: []Entry{{ID: " ", Tags: []string{"x"}, Answer: "a"}, fallback}},
		{name: "empty answer", entries: []Entry{{ID: "a", Tags: []string{"x"}, Answer: "  "}, fallback}},
		{name: "fallback with tags", entries: []Entry{{ID: FallbackID, Tags: []string{"x"}, Answer: "none"}}},
		{name: "fallback with patterns", entries: []Entry{{ID: FallbackID, Patterns: []string{"x"}, Answer: "none"}}},
		{name: "entry without anchors", entries: []Entry{{ID: "a", Answer: "a"}, fallback}},
		{name: "tag without letters", entries: []Entry{{ID: "a", Tags: []string{"ok", "?!"}, Answer: "a"}, fallback}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kb, err := NewKnowledgeBase(tc.entries, nil)
			require.Error(t, err)
			require.Nil(t, kb)
			require.True(t, apperrors.IsCode(err, CodeInvalidKnowledgeBase))
		})
	}
}

func TestMustKnowledgeBasePanics(t *testing.T) {
	require.Panics(t, func() {
		MustKnowledgeBase(nil, nil)
	})
}

func TestKnowledgeBaseIsImmutable(t *testing.T) {
	entries := []Entry{
		{ID: "a", Tags: []string{"alpha"}, Patterns: []string{"first"}, Answer: "A"},
		{ID: FallbackID, Answer: "none"},
	}
	menu := []MenuItem{{Title: "A", Description: "alpha"}}
	kb, err := NewKnowledgeBase(entries, menu)
	require.NoError(t, err)

	entries[0].Tags[0] = "mutated"
	menu[0].Title = "mutated"

	got, ok := kb.Entry("a")
	require.True(t, ok)
	require.Equal(t, []string{"alpha"}, got.Tags)
	require.Equal(t, "A", kb.Menu()[0].Title)

	got.Patterns[0] = "mutated"
	kb.Entries()[0].Tags[0] = "mutated"
	again, _ := kb.Entry("a")
	require.Equal(t, []string{"first"}, again.Patterns)
	require.Equal(t, []string{"alpha"}, again.Tags)

	_, ok = kb.Entry("missing")
	require.False(t, ok)
}
