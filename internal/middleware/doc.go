// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package middleware provides HTTP middleware for the API server.

Key Components:

  - RequestID: accepts or generates an X-Request-ID and stores it on the
    request context, where logging.Ctx and the recommendation engine pick it up
  - PrometheusMetrics: counts requests and observes latency per chi route
    pattern, so /api/v1/recommendations/1 and /api/v1/recommendations/2
    share one series

Both use the http.HandlerFunc shape; the api package adapts them to chi's
func(http.Handler) http.Handler.

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
