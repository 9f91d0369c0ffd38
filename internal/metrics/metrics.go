// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_recommend_requests_total",
			Help: "Total number of hybrid recommendation requests by outcome",
		},
		[]string{"outcome"}, // "cache_hit", "new_user", "fallback", "fused"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hybridrec_recommend_duration_seconds",
			Help:    "Duration of hybrid recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"outcome"},
	)

	SignalResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hybridrec_signal_results",
			Help:    "Number of products returned by each signal recommender",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"signal"},
	)

	// Cache Metrics
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_cache_operations_total",
			Help: "Total number of cache operations by backend, operation and result",
		},
		[]string{"backend", "op", "result"},
	)

	CacheBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hybridrec_cache_breaker_state",
			Help: "Cache circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"backend"},
	)

	// Worker Pool Metrics
	WorkerTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_worker_tasks_total",
			Help: "Total number of worker pool tasks by pool and result",
		},
		[]string{"pool", "result"}, // result: "ok", "error"
	)

	// Model Metrics
	ModelBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hybridrec_model_build_duration_seconds",
			Help:    "Duration of full model builds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ModelProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hybridrec_model_products",
			Help: "Number of products with a feature vector in the current model",
		},
	)

	ModelUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hybridrec_model_users",
			Help: "Number of users known to the current model",
		},
	)

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hybridrec_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRecommendation records the outcome and latency of one request.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordSignal records how many products a signal returned.
func RecordSignal(signal string, n int) {
	SignalResults.WithLabelValues(signal).Observe(float64(n))
}

// RecordCacheOp records a cache operation result ("hit", "miss", "ok", "error").
func RecordCacheOp(backend, op, result string) {
	CacheOperations.WithLabelValues(backend, op, result).Inc()
}

// SetBreakerState publishes the breaker state for a backend.
func SetBreakerState(backend string, state int) {
	CacheBreakerState.WithLabelValues(backend).Set(float64(state))
}

// RecordWorkerTask records one finished pool task.
func RecordWorkerTask(pool string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	WorkerTasks.WithLabelValues(pool, result).Inc()
}

// RecordModelBuild records a finished model build.
func RecordModelBuild(duration time.Duration, products, users int) {
	ModelBuildDuration.Observe(duration.Seconds())
	ModelProducts.Set(float64(products))
	ModelUsers.Set(float64(users))
}

// RecordHTTPRequest records metrics for one HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
