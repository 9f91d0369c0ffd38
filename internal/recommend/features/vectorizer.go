// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package features

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend"
	"github.com/tomtom215/hybridrec/internal/worker"
)

// Vectorizer computes product vectors through the cache.
type Vectorizer struct {
	vocab  *Vocabulary
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewVectorizer creates a Vectorizer. A nil store disables memoization.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewVectorizer(vocab *Vocabulary, store cache.Store, ttl time.Duration, logger zerolog.Logger) *Vectorizer {
	if store == nil {
		store = cache.NopStore{}
	}
	return &Vectorizer{
		vocab:  vocab,
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "vectorizer").Logger(),
	}
}

// Vocabulary returns the layout in use.
func (vz *Vectorizer) Vocabulary() *Vocabulary { return vz.vocab }

// Vector returns the feature vector of p, from cache when possible.
func (vz *Vectorizer) Vector(ctx context.Context, p *dataset.Product) ([]float64, error) {
	key := recommend.ProductFeatureKey(p.ID)

	var cached []float64
	hit, err := cache.GetJSON(ctx, vz.store, key, &cached)
	switch {
	case err != nil:
		vz.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, vectorizing directly")
	case hit && len(cached) == vz.vocab.Dim():
		return cached, nil
	case hit:
		vz.logger.Warn().Str("key", key).Int("len", len(cached)).Int("dim", vz.vocab.Dim()).
			Msg("cached feature vector has wrong length, ignoring")
	}

	vec, err := vz.vocab.Vectorize(p)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, vz.store, key, vec, vz.ttl); err != nil {
		vz.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return vec, nil
}

// VectorizeAll vectorizes the catalog on pool. Products that fail are
// logged and absent from the returned map.
func (vz *Vectorizer) VectorizeAll(ctx context.Context, pool *worker.Pool, products []dataset.Product) map[int][]float64 {
	byID := make(map[int]*dataset.Product, len(products))
	ids := make([]int, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
		ids[i] = products[i].ID
	}

	res := worker.Map(ctx, pool, "vectorize", ids, func(ctx context.Context, id int) ([]float64, error) {
		return vz.Vector(ctx, byID[id])
	})
	for id, err := range res.Failures {
		vz.logger.Error().Err(err).Int("product_id", id).Msg("product dropped from feature vectors")
	}
	return res.Values
}
