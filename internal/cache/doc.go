// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package cache provides the key-value store used to memoize feature
// vectors, user profiles, latent factors and fused recommendation lists.
//
// The cache is an acceleration layer only. Every caller treats any error
// returned by a Store as a miss and computes the value directly, so losing
// the cache changes cost, never results.
//
// # Backends
//
//   - MemoryStore: in-process map with TTL expiry (default)
//   - RedisStore: go-redis v9, SCAN based key listing
//   - BadgerStore: embedded Badger v4 with native entry TTL
//   - NopStore: always misses, accepts and drops writes
//
// New wraps the selected backend in a ResilientStore, which bounds each call
// with a timeout and trips a circuit breaker after repeated failures so an
// unreachable backend costs at most one timeout per breaker interval.
//
// # Values
//
// Stores hold raw bytes. GetJSON and SetJSON encode values with goccy/go-json;
// an undecodable payload is reported as ErrCorrupt.
package cache
