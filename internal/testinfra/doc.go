// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package testinfra starts Docker containers for integration tests through
// testcontainers-go. Everything in it is behind the integration build tag:
//
//	go test -tags integration ./internal/cache/...
//
// Tests call StartRedis, which skips when Docker is not available:
//
//	rc := testinfra.StartRedis(t)
//	store := cache.NewRedisStore(cache.RedisOptions{Host: rc.Host, Port: rc.Port})
package testinfra
