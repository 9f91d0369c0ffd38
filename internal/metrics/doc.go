// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package metrics provides Prometheus instrumentation for Hybridrec.

All collectors are registered on the default registry through promauto and
exposed at /metrics in server mode:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation requests:
  - hybridrec_recommend_requests_total{outcome}: cache_hit, new_user, fallback, fused
  - hybridrec_recommend_duration_seconds{outcome}
  - hybridrec_signal_results{signal}: list length returned by each signal

Cache:
  - hybridrec_cache_operations_total{backend,op,result}: result is hit, miss, ok, error
  - hybridrec_cache_breaker_state{backend}: 0 closed, 1 half-open, 2 open

Worker pool and model:
  - hybridrec_worker_tasks_total{pool,result}
  - hybridrec_model_build_duration_seconds
  - hybridrec_model_products, hybridrec_model_users

HTTP:
  - hybridrec_http_requests_total{method,route,status}
  - hybridrec_http_request_duration_seconds{method,route}
*/
package metrics
