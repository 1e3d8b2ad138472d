package faqstore

import (
	"container/heap"
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
)

// MemoryStore keeps query counters in process memory for tests/dev. At most
// maxQueries distinct questions are tracked; the least recently asked one is
// dropped first.
type MemoryStore struct {
	mu      sync.Mutex
	queries *lru.Cache[string, *trackedQuery]
}

type trackedQuery struct {
	display string
	count   int64
}

// NewMemoryStore constructs a store tracking up to DefaultMaxQueries questions.
func NewMemoryStore() *MemoryStore {
	return NewBoundedMemoryStore(DefaultMaxQueries)
}

// NewBoundedMemoryStore constructs a store tracking up to maxQueries questions.
func NewBoundedMemoryStore(maxQueries int) *MemoryStore {
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}
	// lru.New only fails on a non-positive size
	queries, _ := lru.New[string, *trackedQuery](maxQueries)
	return &MemoryStore{queries: queries}
}

// IncrementQuery bumps the counter for a canonical query and records a display string.
func (s *MemoryStore) IncrementQuery(_ context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	if display == "" {
		display = canonical
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tracked, ok := s.queries.Get(canonical); ok {
		tracked.count++
		return nil
	}
	s.queries.Add(canonical, &trackedQuery{display: display, count: 1})
	return nil
}

// TopQueries returns the most frequent questions, ties broken alphabetically.
// Selection keeps a heap of at most limit items.
func (s *MemoryStore) TopQueries(_ context.Context, limit int) ([]faq.TrendingQuery, error) {
	limit = topLimit(limit)

	s.mu.Lock()
	top := make(rankHeap, 0, limit)
	for _, tracked := range s.queries.Values() {
		item := faq.TrendingQuery{Query: tracked.display, Count: tracked.count}
		if len(top) < limit {
			heap.Push(&top, item)
			continue
		}
		if outranks(item, top[0]) {
			top[0] = item
			heap.Fix(&top, 0)
		}
	}
	s.mu.Unlock()

	out := make([]faq.TrendingQuery, len(top))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&top).(faq.TrendingQuery)
	}
	return out, nil
}

func outranks(a, b faq.TrendingQuery) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Query < b.Query
}

// rankHeap is a min-heap on rank: the root is the weakest of the kept items.
type rankHeap []faq.TrendingQuery

func (h rankHeap) Len() int           { return len(h) }
func (h rankHeap) Less(i, j int) bool { return outranks(h[j], h[i]) }
func (h rankHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankHeap) Push(x any) { *h = append(*h, x.(faq.TrendingQuery)) }

func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

var _ faq.Store = (*MemoryStore)(nil)
