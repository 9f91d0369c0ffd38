// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// ErrNotReady is returned before the first successful build.
var ErrNotReady = errors.New("model not built yet")

// BuildFunc produces a fresh model.
type BuildFunc func(ctx context.Context) (*Model, error)

// FromSource returns a BuildFunc that reloads the data set on every call.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func FromSource(load func() (*dataset.Dataset, error), store cache.Store, opts Options, logger zerolog.Logger) BuildFunc {
	return func(ctx context.Context) (*Model, error) {
		ds, err := load()
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		return Build(ctx, ds, store, opts, logger)
	}
}

// Holder owns the current model. Refreshes are serialized; readers never
// block on a build.
type Holder struct {
	build  BuildFunc
	store  cache.Store
	logger zerolog.Logger

	refreshMu sync.Mutex

	mu      sync.RWMutex
	current *Model
}

// NewHolder creates an empty Holder. Call Refresh to build the first model.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHolder(build BuildFunc, store cache.Store, logger zerolog.Logger) *Holder {
	if store == nil {
		store = cache.NopStore{}
	}
	return &Holder{
		build:  build,
		store:  store,
		logger: logger.With().Str("component", "model_holder").Logger(),
	}
}

// Current returns the live model, or nil before the first build.
func (h *Holder) Current() *Model {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Engine returns the live engine.
func (h *Holder) Engine() (*recommend.Engine, error) {
	m := h.Current()
	if m == nil {
		return nil, ErrNotReady
	}
	return m.Engine, nil
}

// Refresh builds a new model and swaps it in. With purge, every derived
// cache key is deleted first so the build recomputes from the data set.
// Build purges on its own when the dataset fingerprint changed; the
// previous engine is then retired and its cached lists dropped before the
// swap, so no list computed from the old data outlives it.
// On failure the previous model stays live.
func (h *Holder) Refresh(ctx context.Context, purge bool) (*Model, error) {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	if purge {
		removed := h.Purge(ctx)
		h.logger.Info().Int("removed", removed).Msg("derived cache purged")
	}

	m, err := h.build(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("model refresh failed, keeping previous model")
		return nil, err
	}

	if prev := h.Current(); prev != nil && (purge || m.Stats.DatasetChanged) {
		prev.Engine.Retire()
		removed := deleteMatching(ctx, h.store, []string{recommend.RecommendationPattern()}, h.logger)
		h.logger.Debug().Int("removed", removed).Msg("lists of the previous model dropped")
	}

	h.mu.Lock()
	h.current = m
	h.mu.Unlock()
	return m, nil
}

// Purge deletes every derived cache key and returns how many were removed.
// Listing or delete failures are logged and skipped.
func (h *Holder) Purge(ctx context.Context) int {
	return deleteMatching(ctx, h.store, recommend.DerivedKeyPatterns(), h.logger)
}

// ClearUserCache removes the cached lists of one user from the live model's
// cache.
func (h *Holder) ClearUserCache(ctx context.Context, userID int) (int, error) {
	engine, err := h.Engine()
	if err != nil {
		return 0, err
	}
	return engine.ClearUserCache(ctx, userID)
}
