package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchCounters(t *testing.T) {
	var c MatchCounters
	require.Zero(t, c.Snapshot().Total())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncTag()
			c.IncFallback()
		}()
	}
	wg.Wait()
	c.IncSimilarity()
	c.IncPrompt()
	c.IncMenu()
	c.IncFarewell()

	snap := c.Snapshot()
	require.Equal(t, MatchSnapshot{Tag: 10, Similarity: 1, Fallback: 10, Prompt: 1, Menu: 1, Farewell: 1}, snap)
	require.Equal(t, int64(24), snap.Total())
}
