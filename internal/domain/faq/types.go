package faq

import (
	"time"
)

// FallbackID identifies the entry returned when nothing matches.
const FallbackID = "fallback"

// Entry is one topic of the knowledge base. Tags and patterns are stored as
// written; normalization happens at comparison time.
type Entry struct {
	ID       string   `json:"id" yaml:"id"`
	Tags     []string `json:"tags" yaml:"tags"`
	Patterns []string `json:"patterns" yaml:"patterns"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// MenuItem is one line of the static help listing.
type MenuItem struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Stage identifies which step of the matcher produced a result.
type Stage string

const (
	// StageEmpty means the input normalized to nothing.
	StageEmpty Stage = "empty"
	// StageTag means a tag occurred inside the input.
	StageTag Stage = "tag"
	// StageSimilarity means a pattern scored at or above the threshold.
	StageSimilarity Stage = "similarity"
	// StageFallback means the fallback entry was selected.
	StageFallback Stage = "fallback"
)

// Match is the structured outcome of a matcher call.
type Match struct {
	EntryID        string  `json:"entryId,omitempty"`
	Answer         string  `json:"answer"`
	Stage          Stage   `json:"stage"`
	Score          float64 `json:"score"`
	MatchedTag     string  `json:"matchedTag,omitempty"`
	MatchedPattern string  `json:"matchedPattern,omitempty"`
	Fallback       bool    `json:"fallback"`
}

// Kind classifies a service reply.
type Kind string

const (
	KindAnswer   Kind = "answer"
	KindFallback Kind = "fallback"
	KindPrompt   Kind = "prompt"
	KindMenu     Kind = "menu"
	KindFarewell Kind = "farewell"
)

// Request is a chat message sent by a user.
type Request struct {
	Message string `json:"message"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Message         string          `json:"message"`
	Answer          string          `json:"answer"`
	Kind            Kind            `json:"kind"`
	EntryID         string          `json:"entryId,omitempty"`
	Stage           Stage           `json:"stage,omitempty"`
	Score           float64         `json:"score,omitempty"`
	MatchedTag      string          `json:"matchedTag,omitempty"`
	MatchedPattern  string          `json:"matchedPattern,omitempty"`
	Recommendations []TrendingQuery `json:"recommendations,omitempty"`
	AnsweredAt      time.Time       `json:"answeredAt"`
	DurationMs      int64           `json:"durationMs"`
}

// MenuResponse lists the help topics.
type MenuResponse struct {
	Items []MenuItem `json:"items"`
	Text  string     `json:"text"`
}

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}
