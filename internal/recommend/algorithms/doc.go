// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package algorithms implements the derived models and the five signal
// recommenders of the hybrid engine.
//
// # Models
//
//   - LatentModel: truncated SVD of the implicit user-item purchase matrix
//     (gonum), memoized under svd_factors:{rows}:{cols}
//   - Popularity: 0.7 × rating + 0.3 × purchase count, scaled by the maximum,
//     over products with at least one purchase
//
// # Signals
//
// Every signal implements recommend.Signal. Signals are immutable after
// construction and safe for concurrent use.
//
//   - LatentSignal (mf): item factors · user factors, descending
//   - ContentSignal (cbf): cosine nearest neighbours of the user profile
//   - PopularSignal (popular): the popularity ranking
//   - ContextSignal (time_based): categories peaking today in an active season
//   - DeviceSignal (device_based): products suited to the user's device
//
// All except ContextSignal drop products the user already purchased and
// return at most Query.TopN ids. ContextSignal returns every qualifying
// product in catalog order.
//
// ContentSignal searches the full catalog and removes purchases afterwards,
// so it may return fewer than TopN ids even when more candidates exist.
package algorithms
