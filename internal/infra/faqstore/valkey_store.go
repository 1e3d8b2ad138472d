package faqstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
)

// ValkeyStore keeps query counters in a Valkey sorted set so every replica
// reports the same trending list. The set is trimmed to maxQueries members
// after each increment.
type ValkeyStore struct {
	client     valkey.Client
	prefix     string
	maxQueries int64
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "faq"
	}
	return &ValkeyStore{client: client, prefix: prefix, maxQueries: DefaultMaxQueries}
}

// IncrementQuery implements faq.Store.
func (s *ValkeyStore) IncrementQuery(ctx context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	if err := s.client.Do(ctx, s.client.B().Zincrby().Key(s.trendingKey()).Increment(1).Member(canonical).Build()).Error(); err != nil {
		return err
	}
	if display != "" {
		_ = s.client.Do(ctx, s.client.B().Set().Key(s.displayKey(canonical)).Value(display).Nx().ExSeconds(int64(displayTTL.Seconds())).Build()).Error()
	}
	// keep only the maxQueries highest scores
	return s.client.Do(ctx, s.client.B().Zremrangebyrank().Key(s.trendingKey()).Start(0).Stop(-(s.maxQueries + 1)).Build()).Error()
}

// TopQueries implements faq.Store. Display strings are fetched with a single
// MGET after the ranking read.
func (s *ValkeyStore) TopQueries(ctx context.Context, limit int) ([]faq.TrendingQuery, error) {
	limit = topLimit(limit)
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	ranked, err := parseScoredMembers(arr)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ranked))
	for i, item := range ranked {
		keys[i] = s.displayKey(item.Query)
	}
	displays, err := s.client.Do(ctx, s.client.B().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		// rankings are still useful with canonical text
		return ranked, nil
	}
	for i := range ranked {
		if i >= len(displays) {
			break
		}
		if display, err := displays[i].ToString(); err == nil && display != "" {
			ranked[i].Query = display
		}
	}
	return ranked, nil
}

// parseScoredMembers accepts both RESP3 ([member, score] pairs) and RESP2
// (flat alternating array) WITHSCORES replies.
func parseScoredMembers(arr []valkey.ValkeyMessage) ([]faq.TrendingQuery, error) {
	out := make([]faq.TrendingQuery, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			memberMsg valkey.ValkeyMessage
			scoreMsg  valkey.ValkeyMessage
		)
		if tuple, err := arr[i].ToArray(); err == nil && len(tuple) == 2 {
			memberMsg, scoreMsg = tuple[0], tuple[1]
			i++
		} else {
			if i+1 >= len(arr) {
				break
			}
			memberMsg, scoreMsg = arr[i], arr[i+1]
			i += 2
		}
		member, err := memberMsg.ToString()
		if err != nil {
			if valkey.IsValkeyNil(err) {
				continue
			}
			return nil, err
		}
		score, err := scoreMsg.AsFloat64()
		if err != nil {
			return nil, err
		}
		out = append(out, faq.TrendingQuery{Query: member, Count: int64(score)})
	}
	return out, nil
}

func (s *ValkeyStore) trendingKey() string {
	return fmt.Sprintf("%s:trending", s.prefix)
}

func (s *ValkeyStore) displayKey(canonical string) string {
	return fmt.Sprintf("%s:display:%s", s.prefix, canonical)
}

var _ faq.Store = (*ValkeyStore)(nil)
