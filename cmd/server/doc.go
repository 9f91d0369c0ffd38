// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Command server runs the hybrid product recommendation engine.

Startup loads configuration (koanf: defaults, then config.yaml, then
environment variables), initializes zerolog, opens the cache backend,
builds the worker pool and loads the catalog (DATASET_PATH, or the built-in
sample when unset).

# Batch mode

The default. The model is built once and every user's list is generated
for BATCH_SEASONS (default "All Year,Summer") and printed to stdout:

	Recommendations for User 1 (Alice):
	  - Electric Toothbrush (Category: Personal Care)
	    Explanation: Trending in your region at this time.

# Server mode

With SERVER_ENABLED=true the process runs a suture supervisor tree with
the scheduled model refresh, the invalidation consumer and the HTTP API:

	GET    /api/v1/recommendations/{userID}?seasons=All%20Year,Summer&top_n=5
	DELETE /api/v1/recommendations/{userID}/cache
	POST   /api/v1/model/refresh?purge=true
	GET    /healthz
	GET    /metrics

SIGINT and SIGTERM shut the tree down gracefully. SIGHUP publishes a model
refresh event.

# Examples

	./hybridrec
	CACHE_BACKEND=redis REDIS_HOST=localhost ./hybridrec
	SERVER_ENABLED=true SERVER_PORT=8080 DATASET_PATH=catalog.yaml ./hybridrec
*/
package main
