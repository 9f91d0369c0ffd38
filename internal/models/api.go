// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package models

import (
	"time"
)

// APIResponse is the envelope of every HTTP response.
//
// Status is "success" with Data set, or "error" with Error set.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response timing and cache information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Codes: VALIDATION_ERROR, NOT_FOUND, SERVICE_UNAVAILABLE, INTERNAL_ERROR,
// RATE_LIMIT_EXCEEDED.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendedProduct is one entry of a recommendation list, enriched with
// catalog fields for display.
type RecommendedProduct struct {
	ProductID   int    `json:"product_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Explanation string `json:"explanation"`
}

// RecommendationsData is the payload of a recommendation request.
type RecommendationsData struct {
	UserID          int                  `json:"user_id"`
	UserName        string               `json:"user_name,omitempty"`
	Seasons         []string             `json:"seasons"`
	TopN            int                  `json:"top_n"`
	Outcome         string               `json:"outcome"`
	Signals         []string             `json:"signals,omitempty"`
	Recommendations []RecommendedProduct `json:"recommendations"`
}

// CacheClearData acknowledges an accepted cache invalidation.
type CacheClearData struct {
	UserID   int    `json:"user_id"`
	Accepted bool   `json:"accepted"`
	EventID  string `json:"event_id,omitempty"`
	Removed  int    `json:"removed,omitempty"`
}

// RefreshData describes a completed model rebuild.
type RefreshData struct {
	BuiltAt    time.Time `json:"built_at"`
	DurationMS int64     `json:"duration_ms"`
	Users      int       `json:"users"`
	Products   int       `json:"products"`
	Vectorized int       `json:"vectorized"`
	Rank       int       `json:"rank"`
	Purged     bool      `json:"purged"`
}

// HealthData reports process health.
type HealthData struct {
	Status     string    `json:"status"`
	ModelReady bool      `json:"model_ready"`
	ModelBuilt time.Time `json:"model_built,omitempty"`
	Cache      string    `json:"cache"`
	Breaker    string    `json:"breaker,omitempty"`
	Uptime     string    `json:"uptime"`
}
