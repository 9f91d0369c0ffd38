// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// deleteMatching removes every key matching one of patterns and returns how
// many were removed. Listing or delete failures are logged and skipped.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func deleteMatching(ctx context.Context, store cache.Store, patterns []string, logger zerolog.Logger) int {
	removed := 0
	for _, pattern := range patterns {
		keys, err := store.Keys(ctx, pattern)
		if err != nil {
			logger.Warn().Err(err).Str("pattern", pattern).Msg("listing cache keys failed")
			continue
		}
		for _, key := range keys {
			if err := store.Delete(ctx, key); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("deleting cache key failed")
				continue
			}
			removed++
		}
	}
	return removed
}

// syncFingerprint compares ds with the fingerprint recorded in store. When
// they differ, or none is recorded, every derived key is purged and the new
// fingerprint is written. It reports the fingerprint and whether a purge ran.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func syncFingerprint(ctx context.Context, ds *dataset.Dataset, store cache.Store, ttl time.Duration, logger zerolog.Logger) (string, bool, error) {
	fp, err := ds.Fingerprint()
	if err != nil {
		return "", false, err
	}

	var stored string
	hit, err := cache.GetJSON(ctx, store, recommend.DatasetFingerprintKey, &stored)
	if err != nil {
		logger.Warn().Err(err).Msg("reading dataset fingerprint failed, treating data as changed")
	}
	if hit && stored == fp {
		return fp, false, nil
	}

	removed := deleteMatching(ctx, store, recommend.DerivedKeyPatterns(), logger)
	event := logger.Debug()
	if removed > 0 {
		event = logger.Info()
	}
	event.Str("fingerprint", fp[:12]).Int("removed", removed).Msg("dataset changed, derived cache purged")

	if err := cache.SetJSON(ctx, store, recommend.DatasetFingerprintKey, fp, ttl); err != nil {
		logger.Warn().Err(err).Msg("recording dataset fingerprint failed")
	}
	return fp, true, nil
}
