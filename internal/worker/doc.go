// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package worker runs independent per-key computations either sequentially
// or on a bounded pool of goroutines.
//
// Batch work in the engine (vectorizing every product, building every user
// profile, generating recommendations for every user) is a pure function per
// key. Map fans that work out, isolates failures and panics to the key that
// caused them, and returns values keyed by input so results are identical
// regardless of mode or scheduling.
//
// An optional token-bucket limiter (golang.org/x/time/rate) caps task starts
// per second, which keeps a batch run from saturating a shared cache backend.
package worker
