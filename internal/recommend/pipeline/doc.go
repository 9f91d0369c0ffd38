// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package pipeline builds every derived artifact of a data set and wires the
// signal recommenders into a recommend.Engine.
//
// Build order:
//
//  1. tag and category vocabularies
//  2. product feature vectors (worker pool, cached)
//  3. user profiles (worker pool, cached)
//  4. user × product purchase matrix and its truncated SVD (cached)
//  5. popularity ranking
//  6. signals and engine
//
// A Holder keeps the current Model and swaps in a fresh one on Refresh, so
// requests in flight keep using the model they started with.
package pipeline
