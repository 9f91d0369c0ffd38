// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/logging"
	"github.com/tomtom215/hybridrec/internal/metrics"
	"github.com/tomtom215/hybridrec/internal/worker"
)

// Dependencies are the collaborators an Engine is wired with.
type Dependencies struct {
	// Signals are matched to fusion slots by Source. The popular signal is
	// mandatory; any other missing signal contributes an empty list.
	Signals []Signal

	History History

	// Store memoizes fused lists. Nil disables caching.
	Store cache.Store

	// Pool schedules GenerateAll. Nil runs sequentially.
	Pool *worker.Pool

	// Clock supplies the current time for weekday-dependent signals.
	// Nil uses time.Now.
	Clock func() time.Time
}

// Engine fuses signal outputs into one explained ranking.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	signals map[Source]Signal
	history History
	store   cache.Store
	pool    *worker.Pool
	clock   func() time.Time

	// writeMu orders cache writes against Retire.
	writeMu sync.RWMutex
	retired bool

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	newUsers     atomic.Int64
	fallbacks    atomic.Int64
	cacheErrors  atomic.Int64
}

// NewEngine creates an engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.History == nil {
		return nil, fmt.Errorf("history is required")
	}

	signals := make(map[Source]Signal, len(deps.Signals))
	for _, s := range deps.Signals {
		if _, dup := signals[s.Source()]; dup {
			return nil, fmt.Errorf("duplicate signal %q", s.Source())
		}
		signals[s.Source()] = s
	}
	if _, ok := signals[SourcePopular]; !ok {
		return nil, ErrNoPopularSignal
	}

	store := deps.Store
	if store == nil {
		store = cache.NopStore{}
	}
	pool := deps.Pool
	if pool == nil {
		pool = worker.NewSequential()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		signals: signals,
		history: deps.History,
		store:   store,
		pool:    pool,
		clock:   clock,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config { return e.config.Clone() }

// Recommend returns up to TopN explained recommendations for a user. It
// fails only on a malformed request; cache and signal problems degrade the
// result instead.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.TopN < 0 {
		return nil, fmt.Errorf("top_n must be >= 0, got %d", req.TopN)
	}
	if req.TopN == 0 {
		req.TopN = e.config.TopN
	}
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	req.Seasons = NormalizeSeasons(req.Seasons)

	logger := e.requestLogger(req)
	key := RecommendationKey(req.UserID, req.Seasons)

	if recs, ok := e.cachedResult(ctx, key, req.TopN, logger); ok {
		e.cacheHits.Add(1)
		logger.Debug().Msg("cache hit")
		return e.respond(req, recs, OutcomeCacheHit, nil, start), nil
	}
	e.cacheMisses.Add(1)

	q := Query{UserID: req.UserID, Seasons: req.Seasons, TopN: req.TopN, Now: e.clock()}
	newUser := !e.history.HasHistory(req.UserID)

	if newUser && !e.config.BlendNewUsers {
		e.newUsers.Add(1)
		recs := explainAll(truncate(e.collect(SourcePopular, q), req.TopN), SourcePopular)
		e.storeResult(ctx, key, req.TopN, recs, logger)
		return e.respond(req, recs, OutcomeNewUser, []Source{SourcePopular}, start), nil
	}

	lists := make(map[Source][]int, len(FusionOrder))
	for _, s := range FusionOrder {
		if newUser && (s == SourceMF || s == SourceCBF) {
			continue
		}
		lists[s] = e.collect(s, q)
	}

	if onlyPopular(lists) {
		e.fallbacks.Add(1)
		logger.Debug().Msg("no personalised signal, falling back to popularity")
		recs := explainAll(truncate(lists[SourcePopular], req.TopN), SourcePopular)
		return e.respond(req, recs, OutcomeFallback, []Source{SourcePopular}, start), nil
	}

	recs := Fuse(lists, e.config.Weights.For(newUser), req.TopN, func(productID int) bool {
		return e.history.HasPurchased(req.UserID, productID)
	})
	e.storeResult(ctx, key, req.TopN, recs, logger)

	logger.Debug().
		Int("returned", len(recs)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return e.respond(req, recs, OutcomeFused, nonEmptySources(lists), start), nil
}

// collect runs one signal; an unwired signal yields nil.
func (e *Engine) collect(s Source, q Query) []int {
	sig, ok := e.signals[s]
	if !ok {
		return nil
	}
	ids := sig.Recommend(q)
	metrics.RecordSignal(string(s), len(ids))
	return ids
}

// cachedList is the payload stored under a recommendations key. TopN is the
// list length the entry was computed for.
type cachedList struct {
	TopN            int              `json:"top_n"`
	Recommendations []Recommendation `json:"recommendations"`
}

// cachedResult returns the cached list for key cut to topN. An entry built
// for a smaller topN, an empty entry or an unreadable one is a miss.
func (e *Engine) cachedResult(ctx context.Context, key string, topN int, logger zerolog.Logger) ([]Recommendation, bool) {
	var entry cachedList
	hit, err := cache.GetJSON(ctx, e.store, key, &entry)
	if err != nil {
		e.cacheErrors.Add(1)
		logger.Warn().Err(err).Str("key", key).Msg("cache read failed, computing directly")
		return nil, false
	}
	if !hit || len(entry.Recommendations) == 0 {
		return nil, false
	}
	if entry.TopN < topN {
		logger.Debug().Int("cached_top_n", entry.TopN).Int("top_n", topN).Msg("cached list too short")
		return nil, false
	}
	if len(entry.Recommendations) > topN {
		entry.Recommendations = entry.Recommendations[:topN]
	}
	return entry.Recommendations, true
}

func (e *Engine) storeResult(ctx context.Context, key string, topN int, recs []Recommendation, logger zerolog.Logger) {
	if len(recs) == 0 {
		return
	}
	e.writeMu.RLock()
	defer e.writeMu.RUnlock()
	if e.retired {
		return
	}
	entry := cachedList{TopN: topN, Recommendations: recs}
	if err := cache.SetJSON(ctx, e.store, key, entry, e.config.ResultTTL); err != nil {
		e.cacheErrors.Add(1)
		logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) requestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Strs("seasons", req.Seasons).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) respond(req Request, recs []Recommendation, outcome Outcome, sources []Source, start time.Time) *Response {
	elapsed := time.Since(start)
	metrics.RecordRecommendation(string(outcome), elapsed)

	if recs == nil {
		recs = []Recommendation{}
	}
	return &Response{
		Recommendations: recs,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			UserID:    req.UserID,
			Seasons:   req.Seasons,
			TopN:      req.TopN,
			Outcome:   outcome,
			CacheHit:  outcome == OutcomeCacheHit,
			Signals:   sources,
			LatencyMS: elapsed.Milliseconds(),
			Timestamp: time.Now(),
		},
	}
}

// Retire stops the engine from writing results to the cache. It keeps
// answering requests. Once Retire returns no write from this engine is in
// flight, so a caller can purge cached lists without racing it.
func (e *Engine) Retire() {
	e.writeMu.Lock()
	e.retired = true
	e.writeMu.Unlock()
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		NewUsers:    e.newUsers.Load(),
		Fallbacks:   e.fallbacks.Load(),
		CacheErrors: e.cacheErrors.Load(),
	}
}

func onlyPopular(lists map[Source][]int) bool {
	for s, ids := range lists {
		if s != SourcePopular && len(ids) > 0 {
			return false
		}
	}
	return true
}

func nonEmptySources(lists map[Source][]int) []Source {
	var out []Source
	for _, s := range FusionOrder {
		if len(lists[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func explainAll(ids []int, s Source) []Recommendation {
	recs := make([]Recommendation, len(ids))
	for i, id := range ids {
		recs[i] = Recommendation{ProductID: id, Explanation: s.Explanation()}
	}
	return recs
}

func truncate(ids []int, n int) []int {
	if len(ids) > n {
		return ids[:n]
	}
	return ids
}
