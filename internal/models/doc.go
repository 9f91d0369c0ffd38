// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package models defines the HTTP API payloads.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "cached": true}
	}

Errors use the same envelope with status "error" and an APIError.

Payloads:
  - RecommendationsData: GET /api/v1/recommendations/{userID}
  - CacheClearData: DELETE /api/v1/recommendations/{userID}/cache
  - RefreshData: POST /api/v1/model/refresh
  - HealthData: GET /healthz
*/
package models
