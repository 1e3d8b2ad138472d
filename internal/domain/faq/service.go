package faq

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	apperrors "github.com/yanqian/ccs-faqbot/pkg/errors"
	"github.com/yanqian/ccs-faqbot/pkg/metrics"
	"github.com/yanqian/ccs-faqbot/pkg/util"
)

const (
	// EmptyMessagePrompt answers a request that carried no message at all.
	EmptyMessagePrompt = "Por favor, digite sua pergunta."
	// FallbackSuggestions is appended to the fallback answer.
	FallbackSuggestions = "\nExemplos: 'como marcar férias', 'plano de trabalho', 'afastamento para capacitação'."

	// CodeStoreUnavailable marks a trending store that could not be read.
	CodeStoreUnavailable = "faq_error"
)

// Service exposes the FAQ bot to transports.
type Service interface {
	Answer(ctx context.Context, req Request) (Response, error)
	Menu(ctx context.Context) MenuResponse
	Trending(ctx context.Context) ([]TrendingQuery, error)
	Stats(ctx context.Context) metrics.MatchSnapshot
}

type service struct {
	cfg     Config
	kb      *KnowledgeBase
	matcher *Matcher
	store   Store
	logger  *slog.Logger
	stats   *metrics.MatchCounters
	cache   *lru.Cache[string, Match]
	now     func() time.Time
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, kb *KnowledgeBase, store Store, logger *slog.Logger) Service {
	threshold := cfg.SimilarityThreshold
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	svc := &service{
		cfg: cfg,
		kb:  kb,
		matcher: NewMatcher(kb,
			WithThreshold(threshold),
			WithScorer(ScorerByName(cfg.SimilarityAlgorithm)),
		),
		store:  store,
		logger: logger.With("component", "faq.service"),
		stats:  &metrics.MatchCounters{},
		now:    util.NowUTC,
	}
	svc.logger.Info("faq service ready",
		"entries", kb.Len(),
		"threshold", svc.matcher.Threshold(),
		"algorithm", cfg.SimilarityAlgorithm,
		"match_cache", cfg.MatchCacheSize,
	)
	if cfg.MatchCacheSize > 0 {
		// lru.New only fails on a non-positive size
		svc.cache, _ = lru.New[string, Match](cfg.MatchCacheSize)
	}
	return svc
}

func (s *service) Answer(ctx context.Context, req Request) (Response, error) {
	start := s.now()
	resp := s.answer(ctx, req.Message)
	resp.Message = req.Message
	resp.AnsweredAt = s.now()
	resp.DurationMs = util.SinceMillis(start, resp.AnsweredAt)
	s.logger.Debug("faq answered", "kind", resp.Kind, "entry_id", resp.EntryID, "stage", resp.Stage, "score", resp.Score)
	return resp, nil
}

func (s *service) answer(ctx context.Context, message string) Response {
	if message == "" {
		s.stats.IncPrompt()
		return Response{Answer: EmptyMessagePrompt, Kind: KindPrompt}
	}

	normalized := Normalize(message)
	switch DetectCommand(normalized) {
	case CommandExit:
		s.stats.IncFarewell()
		return Response{Answer: FarewellMessage, Kind: KindFarewell}
	case CommandMenu:
		s.stats.IncMenu()
		return Response{Answer: RenderMenu(s.kb.Menu()), Kind: KindMenu}
	}

	match := s.match(message, normalized)
	resp := Response{
		Answer:         match.Answer,
		EntryID:        match.EntryID,
		Stage:          match.Stage,
		Score:          match.Score,
		MatchedTag:     match.MatchedTag,
		MatchedPattern: match.MatchedPattern,
	}
	switch {
	case match.Stage == StageEmpty:
		s.stats.IncPrompt()
		resp.Kind = KindPrompt
		return resp
	case match.Fallback:
		s.stats.IncFallback()
		resp.Kind = KindFallback
		resp.Answer += FallbackSuggestions
	case match.Stage == StageTag:
		s.stats.IncTag()
		resp.Kind = KindAnswer
	default:
		s.stats.IncSimilarity()
		resp.Kind = KindAnswer
	}

	// Only answered questions become trending candidates; fallback input is
	// arbitrary user text and is never shown to other users.
	if !match.Fallback {
		if err := s.store.IncrementQuery(ctx, normalized, message); err != nil {
			s.logger.Warn("faq trending increment failed", "error", err)
		}
	}
	if s.cfg.TopRecommendations > 0 {
		recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
		if err != nil {
			s.logger.Warn("faq trending fetch failed", "error", err)
		}
		resp.Recommendations = recs
	}
	return resp
}

// match consults the cache first; results depend only on the normalized text.
func (s *service) match(message, normalized string) Match {
	if s.cache == nil {
		return s.matcher.Match(message)
	}
	if cached, ok := s.cache.Get(normalized); ok {
		return cached
	}
	match := s.matcher.Match(message)
	s.cache.Add(normalized, match)
	return match
}

func (s *service) Menu(_ context.Context) MenuResponse {
	items := s.kb.Menu()
	return MenuResponse{Items: items, Text: RenderMenu(items)}
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		return nil, apperrors.Wrap(CodeStoreUnavailable, "failed to load trending queries", err)
	}
	return recs, nil
}

func (s *service) Stats(_ context.Context) metrics.MatchSnapshot {
	return s.stats.Snapshot()
}
