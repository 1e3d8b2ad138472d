package faq

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes text for comparison: lowercase, accents folded,
// anything outside [a-z0-9] treated as space and whitespace collapsed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	lowered := strings.ToLower(strings.TrimSpace(text))
	folded := foldAccents(lowered)

	var builder strings.Builder
	builder.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		// whitespace and punctuation alike
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(builder.String())
}

func foldAccents(s string) string {
	// transform.Chain keeps state, so build a fresh chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
