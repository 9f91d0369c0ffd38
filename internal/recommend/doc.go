// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package recommend implements the hybrid fusion engine for product
// recommendations.
//
// # Architecture
//
// Five independent signals each produce a ranked list of product ids:
//
//   - mf: latent-factor similarity (truncated SVD of purchases)
//   - cbf: cosine nearest neighbours of the user's content profile
//   - popular: global popularity from ratings and purchase counts
//   - time_based: categories trending on the current weekday in an active season
//   - device_based: products suited to the user's device
//
// The signals themselves live in the algorithms subpackage and are wired
// together by the pipeline subpackage. This package holds only what every
// signal shares: the Signal contract, weights, cache keys and the Engine.
//
// # Fusion
//
// For a returning user the Engine runs every signal and scores each product
// as the sum over signals of weight × (1 − i/L), where i is the product's
// position in that signal's list and L the list's length. Products are
// ranked by score with ties kept in first-seen order, truncated to top_n,
// and explained by joining the explanation of every contributing signal.
//
// Users without any history receive the popularity list. When every
// non-popularity signal is empty the popularity list is returned as a
// fallback and, because the gap may be transient, not cached.
//
// # Caching
//
// Final lists are cached under recommendations:{user}:{seasons}. The cache
// is optional: any cache error is logged and treated as a miss.
//
// # Thread Safety
//
// Engine is safe for concurrent use. Concurrent identical requests may both
// compute and both write the cache; results are deterministic so the last
// writer wins without changing the answer.
package recommend
