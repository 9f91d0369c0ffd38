// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/hybridrec/internal/worker"
)

// GenerateAll computes recommendations for every user on the engine's pool.
// Users whose computation fails are absent from Values and listed in
// Failures.
func (e *Engine) GenerateAll(ctx context.Context, userIDs []int, seasons []string, topN int) worker.Result[int, []Recommendation] {
	return worker.Map(ctx, e.pool, "recommend", userIDs, func(ctx context.Context, userID int) ([]Recommendation, error) {
		resp, err := e.Recommend(ctx, Request{UserID: userID, Seasons: seasons, TopN: topN})
		if err != nil {
			return nil, err
		}
		return resp.Recommendations, nil
	})
}

// ClearUserCache deletes every cached list of a user and returns how many
// keys were removed. A key that fails to delete is logged and skipped.
func (e *Engine) ClearUserCache(ctx context.Context, userID int) (int, error) {
	pattern := UserRecommendationPattern(userID)
	keys, err := e.store.Keys(ctx, pattern)
	if err != nil {
		e.cacheErrors.Add(1)
		e.logger.Warn().Err(err).Str("pattern", pattern).Msg("listing cached recommendations failed")
		return 0, fmt.Errorf("list %s: %w", pattern, err)
	}

	removed := 0
	for _, key := range keys {
		if err := e.store.Delete(ctx, key); err != nil {
			e.cacheErrors.Add(1)
			e.logger.Warn().Err(err).Str("key", key).Msg("deleting cached recommendations failed")
			continue
		}
		removed++
	}

	e.logger.Debug().Int("user_id", userID).Int("removed", removed).Msg("user cache cleared")
	return removed, nil
}
