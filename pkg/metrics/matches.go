package metrics

import "sync/atomic"

// MatchCounters tallies how chat messages were resolved.
type MatchCounters struct {
	tag        atomic.Int64
	similarity atomic.Int64
	fallback   atomic.Int64
	prompt     atomic.Int64
	menu       atomic.Int64
	farewell   atomic.Int64
}

// MatchSnapshot is a point-in-time copy of MatchCounters.
type MatchSnapshot struct {
	Tag        int64 `json:"tag"`
	Similarity int64 `json:"similarity"`
	Fallback   int64 `json:"fallback"`
	Prompt     int64 `json:"prompt"`
	Menu       int64 `json:"menu"`
	Farewell   int64 `json:"farewell"`
}

func (c *MatchCounters) IncTag()        { c.tag.Add(1) }
func (c *MatchCounters) IncSimilarity() { c.similarity.Add(1) }
func (c *MatchCounters) IncFallback()   { c.fallback.Add(1) }
func (c *MatchCounters) IncPrompt()     { c.prompt.Add(1) }
func (c *MatchCounters) IncMenu()       { c.menu.Add(1) }
func (c *MatchCounters) IncFarewell()   { c.farewell.Add(1) }

// Snapshot reads every counter.
func (c *MatchCounters) Snapshot() MatchSnapshot {
	return MatchSnapshot{
		Tag:        c.tag.Load(),
		Similarity: c.similarity.Load(),
		Fallback:   c.fallback.Load(),
		Prompt:     c.prompt.Load(),
		Menu:       c.menu.Load(),
		Farewell:   c.farewell.Load(),
	}
}

// Total returns the number of messages counted.
func (s MatchSnapshot) Total() int64 {
	return s.Tag + s.Similarity + s.Fallback + s.Prompt + s.Menu + s.Farewell
}
