package faq

import (
	"fmt"
	"strings"

	apperrors "github.com/yanqian/ccs-faqbot/pkg/errors"
)

// CodeInvalidKnowledgeBase marks a knowledge base that failed validation.
const CodeInvalidKnowledgeBase = "invalid_knowledge_base"

// KnowledgeBase is the immutable, ordered set of FAQ entries plus the help menu.
// It is built once at startup and only handed out as copies afterwards.
type KnowledgeBase struct {
	entries  []Entry
	byID     map[string]int
	fallback int
	menu     []MenuItem
}

// NewKnowledgeBase validates and copies the given entries and menu.
func NewKnowledgeBase(entries []Entry, menu []MenuItem) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		entries:  make([]Entry, 0, len(entries)),
		byID:     make(map[string]int, len(entries)),
		fallback: -1,
		menu:     append([]MenuItem(nil), menu...),
	}
	for i, entry := range entries {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, invalidKB(fmt.Sprintf("entry %d has an empty id", i))
		}
		if _, dup := kb.byID[id]; dup {
			return nil, invalidKB(fmt.Sprintf("duplicate entry id %q", id))
		}
		if strings.TrimSpace(entry.Answer) == "" {
			return nil, invalidKB(fmt.Sprintf("entry %q has an empty answer", id))
		}
		if id == FallbackID {
			if len(entry.Tags) > 0 || len(entry.Patterns) > 0 {
				return nil, invalidKB("fallback entry must not declare tags or patterns")
			}
			kb.fallback = len(kb.entries)
		} else if len(entry.Tags) == 0 && len(entry.Patterns) == 0 {
			return nil, invalidKB(fmt.Sprintf("entry %q has neither tags nor patterns", id))
		}
		for _, tag := range entry.Tags {
			// an empty tag would be contained in every input
			if Normalize(tag) == "" {
				return nil, invalidKB(fmt.Sprintf("entry %q has a tag with no letters or digits: %q", id, tag))
			}
		}
		kb.byID[id] = len(kb.entries)
		kb.entries = append(kb.entries, cloneEntry(Entry{
			ID:       id,
			Tags:     entry.Tags,
			Patterns: entry.Patterns,
			Answer:   entry.Answer,
		}))
	}
	if kb.fallback < 0 {
		return nil, invalidKB(fmt.Sprintf("missing %q entry", FallbackID))
	}
	return kb, nil
}

// MustKnowledgeBase is NewKnowledgeBase for static data; it panics on error.
func MustKnowledgeBase(entries []Entry, menu []MenuItem) *KnowledgeBase {
	kb, err := NewKnowledgeBase(entries, menu)
	if err != nil {
		panic(err)
	}
	return kb
}

// Len returns the number of entries, fallback included.
func (kb *KnowledgeBase) Len() int {
	return len(kb.entries)
}

// Entries returns the entries in their defined order.
func (kb *KnowledgeBase) Entries() []Entry {
	out := make([]Entry, len(kb.entries))
	for i, entry := range kb.entries {
		out[i] = cloneEntry(entry)
	}
	return out
}

// Entry looks up an entry by id.
func (kb *KnowledgeBase) Entry(id string) (Entry, bool) {
	idx, ok := kb.byID[id]
	if !ok {
		return Entry{}, false
	}
	return cloneEntry(kb.entries[idx]), true
}

// Fallback returns the entry used when nothing else matches.
func (kb *KnowledgeBase) Fallback() Entry {
	return cloneEntry(kb.entries[kb.fallback])
}

// Menu returns the help listing.
func (kb *KnowledgeBase) Menu() []MenuItem {
	return append([]MenuItem(nil), kb.menu...)
}

func cloneEntry(e Entry) Entry {
	return Entry{
		ID:       e.ID,
		Tags:     append([]string(nil), e.Tags...),
		Patterns: append([]string(nil), e.Patterns...),
		Answer:   e.Answer,
	}
}

func invalidKB(message string) error {
	return apperrors.Wrap(CodeInvalidKnowledgeBase, message, nil)
}
