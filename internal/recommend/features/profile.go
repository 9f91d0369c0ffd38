// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package features

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/recommend"
	"github.com/tomtom215/hybridrec/internal/worker"
)

// Interactions lists the distinct products a user browsed or purchased.
type Interactions interface {
	InteractedProducts(userID int) []int
}

// ProfileBuilder computes user profiles through the cache.
type ProfileBuilder struct {
	dim    int
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewProfileBuilder creates a builder for vectors of length dim.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewProfileBuilder(dim int, store cache.Store, ttl time.Duration, logger zerolog.Logger) *ProfileBuilder {
	if store == nil {
		store = cache.NopStore{}
	}
	return &ProfileBuilder{
		dim:    dim,
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "profiles").Logger(),
	}
}

// Mean averages the vectors of productIDs. Ids without a vector are
// skipped; with nothing left the zero vector is returned.
func Mean(dim int, productIDs []int, vectors map[int][]float64) []float64 {
	profile := make([]float64, dim)
	n := 0
	for _, id := range productIDs {
		vec, ok := vectors[id]
		if !ok || len(vec) != dim {
			continue
		}
		floats.Add(profile, vec)
		n++
	}
	if n > 0 {
		floats.Scale(1/float64(n), profile)
	}
	return profile
}

// Profile returns the profile of userID, from cache when possible.
func (b *ProfileBuilder) Profile(ctx context.Context, userID int, history Interactions, vectors map[int][]float64) []float64 {
	key := recommend.UserProfileKey(userID)

	var cached []float64
	hit, err := cache.GetJSON(ctx, b.store, key, &cached)
	switch {
	case err != nil:
		b.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, building profile directly")
	case hit && len(cached) == b.dim:
		return cached
	case hit:
		b.logger.Warn().Str("key", key).Int("len", len(cached)).Int("dim", b.dim).
			Msg("cached profile has wrong length, ignoring")
	}

	profile := Mean(b.dim, history.InteractedProducts(userID), vectors)
	if err := cache.SetJSON(ctx, b.store, key, profile, b.ttl); err != nil {
		b.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return profile
}

// BuildAll computes profiles for userIDs on pool. Users whose task fails
// are logged and absent from the map; callers treat them as zero profiles.
func (b *ProfileBuilder) BuildAll(ctx context.Context, pool *worker.Pool, userIDs []int, history Interactions, vectors map[int][]float64) map[int][]float64 {
	res := worker.Map(ctx, pool, "profile", userIDs, func(ctx context.Context, userID int) ([]float64, error) {
		return b.Profile(ctx, userID, history, vectors), nil
	})
	for id, err := range res.Failures {
		b.logger.Error().Err(err).Int("user_id", id).Msg("user dropped from profiles")
	}
	return res.Values
}
