// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/worker"
)

// stubSignal returns a fixed list and counts calls.
type stubSignal struct {
	src   Source
	ids   []int
	calls atomic.Int32
	last  atomic.Value
}

func (s *stubSignal) Source() Source { return s.src }

func (s *stubSignal) Recommend(q Query) []int {
	s.calls.Add(1)
	s.last.Store(q)
	return s.ids
}

type stubHistory struct {
	known     map[int]bool
	purchased map[int][]int
}

func (h *stubHistory) HasHistory(userID int) bool { return h.known[userID] }

func (h *stubHistory) HasPurchased(userID, productID int) bool {
	for _, id := range h.purchased[userID] {
		if id == productID {
			return true
		}
	}
	return false
}

// brokenStore fails every operation.
type brokenStore struct{}

var errBroken = errors.New("connection refused")

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errBroken }
func (brokenStore) SetWithTTL(context.Context, string, []byte, time.Duration) error {
	return errBroken
}
func (brokenStore) Delete(context.Context, string) error           { return errBroken }
func (brokenStore) Keys(context.Context, string) ([]string, error) { return nil, errBroken }

type fixture struct {
	mf, cbf, popular, timeSig, device *stubSignal
	history                           *stubHistory
	store                             *cache.MemoryStore
}

func newFixture() *fixture {
	return &fixture{
		mf:      &stubSignal{src: SourceMF},
		cbf:     &stubSignal{src: SourceCBF},
		popular: &stubSignal{src: SourcePopular},
		timeSig: &stubSignal{src: SourceTime},
		device:  &stubSignal{src: SourceDevice},
		history: &stubHistory{known: map[int]bool{}, purchased: map[int][]int{}},
		store:   cache.NewMemoryStore(0),
	}
}

func (f *fixture) engine(t *testing.T, mutate func(*Config), store cache.Store) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	if store == nil {
		store = f.store
	}
	e, err := NewEngine(cfg, Dependencies{
		Signals: []Signal{f.mf, f.cbf, f.popular, f.timeSig, f.device},
		History: f.history,
		Store:   store,
		Clock:   func() time.Time { return time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC) },
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngine_Errors(t *testing.T) {
	t.Parallel()
	hist := &stubHistory{}

	tests := []struct {
		name string
		cfg  *Config
		deps Dependencies
		want error
	}{
		{
			name: "missing popular signal",
			deps: Dependencies{Signals: []Signal{&stubSignal{src: SourceMF}}, History: hist},
			want: ErrNoPopularSignal,
		},
		{
			name: "duplicate signal",
			deps: Dependencies{Signals: []Signal{&stubSignal{src: SourcePopular}, &stubSignal{src: SourcePopular}}, History: hist},
		},
		{
			name: "missing history",
			deps: Dependencies{Signals: []Signal{&stubSignal{src: SourcePopular}}},
		},
		{
			name: "invalid config",
			cfg:  &Config{TopN: 0, ResultTTL: time.Hour},
			deps: Dependencies{Signals: []Signal{&stubSignal{src: SourcePopular}}, History: hist},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewEngine(tt.cfg, tt.deps, zerolog.Nop())
			if err == nil {
				t.Fatal("NewEngine() = nil error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("NewEngine() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRecommend_NewUserGetsPopularityAndIsCached(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.popular.ids = []int{101, 103, 105}
	f.mf.ids = []int{999}
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	resp, err := e.Recommend(ctx, Request{UserID: 999, Seasons: []string{"Summer"}})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.Outcome != OutcomeNewUser {
		t.Errorf("Outcome = %q, want new_user", resp.Metadata.Outcome)
	}
	if got := ids(resp.Recommendations); !reflect.DeepEqual(got, []int{101, 103, 105}) {
		t.Errorf("ids = %v", got)
	}
	for _, r := range resp.Recommendations {
		if r.Explanation != SourcePopular.Explanation() {
			t.Errorf("explanation = %q, want popularity only", r.Explanation)
		}
	}
	if f.mf.calls.Load() != 0 || f.cbf.calls.Load() != 0 {
		t.Error("latent or content signal consulted for a new user")
	}

	again, err := e.Recommend(ctx, Request{UserID: 999, Seasons: []string{"Summer"}})
	if err != nil {
		t.Fatalf("Recommend (cached): %v", err)
	}
	if !again.Metadata.CacheHit {
		t.Error("second call was not a cache hit")
	}
	if !reflect.DeepEqual(again.Recommendations, resp.Recommendations) {
		t.Errorf("cached = %+v, want %+v", again.Recommendations, resp.Recommendations)
	}
	if got := f.popular.calls.Load(); got != 1 {
		t.Errorf("popular signal called %d times, want 1", got)
	}
}

func TestRecommend_FallbackIsNotCached(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.history.known[1] = true
	f.popular.ids = []int{103, 105}
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := e.Recommend(ctx, Request{UserID: 1})
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if resp.Metadata.Outcome != OutcomeFallback {
			t.Fatalf("call %d outcome = %q, want fallback", i, resp.Metadata.Outcome)
		}
		if got := ids(resp.Recommendations); !reflect.DeepEqual(got, []int{103, 105}) {
			t.Errorf("ids = %v", got)
		}
	}
	if got := f.popular.calls.Load(); got != 2 {
		t.Errorf("popular calls = %d, want 2 (fallback must not be cached)", got)
	}
	if keys, _ := f.store.Keys(ctx, "recommendations:*"); len(keys) != 0 {
		t.Errorf("cached keys = %v, want none", keys)
	}
}

func TestRecommend_FusedExcludesPurchased(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.history.known[1] = true
	f.history.purchased[1] = []int{101}
	f.mf.ids = []int{103, 102}
	f.popular.ids = []int{103}
	f.timeSig.ids = []int{101, 104}
	f.device.ids = []int{102}
	e := f.engine(t, nil, nil)

	resp, err := e.Recommend(context.Background(), Request{UserID: 1, Seasons: []string{"All Year", "Summer"}})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.Outcome != OutcomeFused {
		t.Fatalf("Outcome = %q, want fused", resp.Metadata.Outcome)
	}
	for _, r := range resp.Recommendations {
		if r.ProductID == 101 {
			t.Fatalf("purchased product 101 recommended: %+v", resp.Recommendations)
		}
	}
	// 103: 0.5+0.3=0.8, 102: 0.25+0.2=0.45, 104: 0.2*(1-1/2)=0.1
	if got := ids(resp.Recommendations); !reflect.DeepEqual(got, []int{103, 102, 104}) {
		t.Errorf("ids = %v, want [103 102 104]", got)
	}
	wantSignals := []Source{SourceMF, SourcePopular, SourceTime, SourceDevice}
	if !reflect.DeepEqual(resp.Metadata.Signals, wantSignals) {
		t.Errorf("Signals = %v, want %v", resp.Metadata.Signals, wantSignals)
	}

	q, ok := f.timeSig.last.Load().(Query)
	if !ok || q.Now.Weekday() != time.Sunday || !reflect.DeepEqual(q.Seasons, []string{"All Year", "Summer"}) || q.TopN != 5 {
		t.Errorf("time signal query = %+v", q)
	}
}

func TestRecommend_SeasonOrderSharesCacheEntry(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.history.known[1] = true
	f.device.ids = []int{102}
	f.popular.ids = []int{103}
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	if _, err := e.Recommend(ctx, Request{UserID: 1, Seasons: []string{"Summer", "All Year", "Summer"}}); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	resp, err := e.Recommend(ctx, Request{UserID: 1, Seasons: []string{"All Year", "Summer"}})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !resp.Metadata.CacheHit {
		t.Error("reordered season set missed the cache")
	}
	if stats := e.Stats(); stats.Requests != 2 || stats.CacheHits != 1 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestRecommend_CacheFailureDegrades(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.history.known[1] = true
	f.device.ids = []int{102}
	f.popular.ids = []int{103}
	e := f.engine(t, nil, brokenStore{})

	resp, err := e.Recommend(context.Background(), Request{UserID: 1})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Recommendations) != 2 {
		t.Errorf("Recommendations = %+v, want 2 entries", resp.Recommendations)
	}
	if got := e.Stats().CacheErrors; got != 2 {
		t.Errorf("CacheErrors = %d, want 2 (read and write)", got)
	}
}

func TestRecommend_CorruptCacheEntryIsAMiss(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.popular.ids = []int{103}
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	key := RecommendationKey(42, nil)
	_ = f.store.SetWithTTL(ctx, key, []byte("{garbage"), time.Hour)

	resp, err := e.Recommend(ctx, Request{UserID: 42})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("corrupt entry treated as hit")
	}
	if got := ids(resp.Recommendations); !reflect.DeepEqual(got, []int{103}) {
		t.Errorf("ids = %v", got)
	}
}

func TestRecommend_BlendNewUsers(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.mf.ids = []int{1}
	f.popular.ids = []int{7}
	f.timeSig.ids = []int{5}
	f.device.ids = []int{6}
	e := f.engine(t, func(c *Config) { c.BlendNewUsers = true }, nil)

	resp, err := e.Recommend(context.Background(), Request{UserID: 999})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.Outcome != OutcomeFused {
		t.Errorf("Outcome = %q, want fused", resp.Metadata.Outcome)
	}
	if f.mf.calls.Load() != 0 {
		t.Error("latent signal consulted for a new user")
	}
	// new-user weights: popular 0.5, time 0.3, device 0.2
	if got := ids(resp.Recommendations); !reflect.DeepEqual(got, []int{7, 5, 6}) {
		t.Errorf("ids = %v, want [7 5 6]", got)
	}
}

func TestRecommend_TopN(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.popular.ids = []int{1, 2, 3, 4, 5, 6}
	e := f.engine(t, nil, nil)

	if _, err := e.Recommend(context.Background(), Request{UserID: 1, TopN: -1}); err == nil {
		t.Error("negative top_n accepted")
	}

	resp, err := e.Recommend(context.Background(), Request{UserID: 1, TopN: 3})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	q, _ := f.popular.last.Load().(Query)
	if q.TopN != 3 || resp.Metadata.TopN != 3 {
		t.Errorf("TopN propagated as %d / %d, want 3", q.TopN, resp.Metadata.TopN)
	}
	if len(resp.Recommendations) != 3 {
		t.Errorf("len = %d, want 3", len(resp.Recommendations))
	}
}

func TestRecommend_CachedListHonoursTopN(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.popular.ids = []int{101, 103, 105, 102, 104}
	e := f.engine(t, nil, nil)
	ctx := context.Background()
	seasons := []string{"Summer"}

	tests := []struct {
		name      string
		topN      int
		wantIDs   []int
		wantHit   bool
		wantCalls int32
	}{
		{"computes five", 5, []int{101, 103, 105, 102, 104}, false, 1},
		{"shorter request is cut from the cached list", 2, []int{101, 103}, true, 1},
		{"full request still hits", 5, []int{101, 103, 105, 102, 104}, true, 1},
	}
	for _, tt := range tests {
		resp, err := e.Recommend(ctx, Request{UserID: 999, Seasons: seasons, TopN: tt.topN})
		if err != nil {
			t.Fatalf("%s: Recommend: %v", tt.name, err)
		}
		if got := ids(resp.Recommendations); !reflect.DeepEqual(got, tt.wantIDs) {
			t.Errorf("%s: ids = %v, want %v", tt.name, got, tt.wantIDs)
		}
		if resp.Metadata.CacheHit != tt.wantHit {
			t.Errorf("%s: CacheHit = %v, want %v", tt.name, resp.Metadata.CacheHit, tt.wantHit)
		}
		if got := f.popular.calls.Load(); got != tt.wantCalls {
			t.Errorf("%s: popular calls = %d, want %d", tt.name, got, tt.wantCalls)
		}
	}
}

func TestRecommend_ShortCachedListIsAMiss(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.popular.ids = []int{101, 103, 105}
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	if _, err := e.Recommend(ctx, Request{UserID: 999, TopN: 2}); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	resp, err := e.Recommend(ctx, Request{UserID: 999, TopN: 3})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("list cached for top_n 2 served a top_n 3 request")
	}
	if got := ids(resp.Recommendations); !reflect.DeepEqual(got, []int{101, 103, 105}) {
		t.Errorf("ids = %v, want [101 103 105]", got)
	}
}

func TestRecommend_EmptyCachedListIsAMiss(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.popular.ids = []int{103}
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	key := RecommendationKey(42, nil)
	_ = f.store.SetWithTTL(ctx, key, []byte(`{"top_n":5,"recommendations":[]}`), time.Hour)

	resp, err := e.Recommend(ctx, Request{UserID: 42})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("empty cached list treated as hit")
	}
	if got := ids(resp.Recommendations); !reflect.DeepEqual(got, []int{103}) {
		t.Errorf("ids = %v, want [103]", got)
	}
}

func TestRecommend_EmptyResultIsNotCached(t *testing.T) {
	t.Parallel()
	f := newFixture()
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	resp, err := e.Recommend(ctx, Request{UserID: 999})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Fatalf("Recommendations = %+v, want none", resp.Recommendations)
	}
	if keys, _ := f.store.Keys(ctx, RecommendationPattern()); len(keys) != 0 {
		t.Errorf("cached keys = %v, want none", keys)
	}
}

func TestRetire_StopsCacheWrites(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.popular.ids = []int{101}
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	e.Retire()
	for i := 0; i < 2; i++ {
		resp, err := e.Recommend(ctx, Request{UserID: 999})
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if resp.Metadata.CacheHit {
			t.Errorf("call %d: retired engine served a cache hit", i)
		}
	}
	if keys, _ := f.store.Keys(ctx, RecommendationPattern()); len(keys) != 0 {
		t.Errorf("cached keys = %v, want none", keys)
	}
}

func TestClearUserCache(t *testing.T) {
	t.Parallel()
	f := newFixture()
	e := f.engine(t, nil, nil)
	ctx := context.Background()

	for _, key := range []string{
		RecommendationKey(1, []string{"Summer"}),
		RecommendationKey(1, []string{"All Year", "Summer"}),
		RecommendationKey(10, []string{"Summer"}),
	} {
		_ = f.store.SetWithTTL(ctx, key, []byte("[]"), time.Hour)
	}

	removed, err := e.ClearUserCache(ctx, 1)
	if err != nil {
		t.Fatalf("ClearUserCache: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if _, err := f.store.Get(ctx, RecommendationKey(10, []string{"Summer"})); err != nil {
		t.Errorf("another user's entry was removed: %v", err)
	}

	broken := f.engine(t, nil, brokenStore{})
	if _, err := broken.ClearUserCache(ctx, 1); !errors.Is(err, errBroken) {
		t.Errorf("ClearUserCache error = %v, want wrapped errBroken", err)
	}
}

func TestGenerateAll(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.popular.ids = []int{101}
	f.history.known[2] = true
	f.device.ids = []int{105}

	pool, err := worker.New(worker.Config{Mode: worker.Parallel, Workers: 2}, zerolog.Nop())
	if err != nil {
		t.Fatalf("worker.New: %v", err)
	}
	e, err := NewEngine(nil, Dependencies{
		Signals: []Signal{f.popular, f.device},
		History: f.history,
		Store:   f.store,
		Pool:    pool,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	res := e.GenerateAll(context.Background(), []int{1, 2, 3}, []string{"Summer"}, 5)
	if res.Failed() {
		t.Fatalf("failures: %v", res.Failures)
	}
	if len(res.Values) != 3 {
		t.Fatalf("Values = %v", res.Values)
	}
	// popular 0.3 outranks device 0.2
	if got := ids(res.Values[2]); !reflect.DeepEqual(got, []int{101, 105}) {
		t.Errorf("user 2 ids = %v, want [101 105]", got)
	}
}
