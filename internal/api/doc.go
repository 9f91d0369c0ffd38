// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package api provides the HTTP surface of the recommender, routed with chi.

Endpoints:

	GET    /api/v1/recommendations/{userID}?seasons=All%20Year,Summer&top_n=5
	DELETE /api/v1/recommendations/{userID}/cache
	POST   /api/v1/model/refresh?purge=true
	GET    /healthz
	GET    /metrics

Every JSON response uses the models.APIResponse envelope. Cache clears are
asynchronous: the handler publishes an invalidation event and answers 202
with the event id. Model refresh is synchronous and answers with the build
summary.

Middleware stack (outermost first): request id, real IP, panic recovery,
CORS, then per group rate limiting, security headers and Prometheus metrics.
*/
package api
