// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"time"
)

// Source names a signal recommender.
type Source string

const (
	SourceMF      Source = "mf"
	SourceCBF     Source = "cbf"
	SourcePopular Source = "popular"
	SourceTime    Source = "time_based"
	SourceDevice  Source = "device_based"
)

// FusionOrder is the order signals are accumulated in. It fixes both the
// first-seen tie-break and the order of joined explanations.
var FusionOrder = []Source{SourceMF, SourceCBF, SourcePopular, SourceTime, SourceDevice}

var explanations = map[Source]string{
	SourceMF:      "Recommended because users similar to you purchased this.",
	SourceCBF:     "Recommended because it matches your interests.",
	SourcePopular: "Recommended because it's popular among other users.",
	SourceTime:    "Recommended because it's trending this season.",
	SourceDevice:  "Recommended because it's suitable for your device.",
}

// Explanation returns the human-readable reason attached for this source.
func (s Source) Explanation() string {
	return explanations[s]
}

// String implements fmt.Stringer.
func (s Source) String() string { return string(s) }

// Recommendation is one entry of a result list.
type Recommendation struct {
	ProductID   int    `json:"product_id"`
	Explanation string `json:"explanation"`
}

// Query is what a Signal sees for one request.
type Query struct {
	UserID int
	// Seasons is the normalized active season set.
	Seasons []string
	TopN    int
	// Now drives weekday-dependent signals.
	Now time.Time
}

// HasSeason reports whether label is active.
func (q *Query) HasSeason(label string) bool {
	for _, s := range q.Seasons {
		if s == label {
			return true
		}
	}
	return false
}

// Signal is one independent recommender. Recommend returns product ids best
// first and never fails: missing inputs yield an empty list.
type Signal interface {
	Source() Source
	Recommend(q Query) []int
}

// History answers the per-user questions fusion needs.
type History interface {
	HasHistory(userID int) bool
	HasPurchased(userID, productID int) bool
}

// Outcome classifies how a request was answered.
type Outcome string

const (
	OutcomeCacheHit Outcome = "cache_hit"
	OutcomeNewUser  Outcome = "new_user"
	OutcomeFallback Outcome = "fallback"
	OutcomeFused    Outcome = "fused"
)

// Request asks for recommendations for one user.
type Request struct {
	UserID  int      `json:"user_id"`
	Seasons []string `json:"seasons"`
	// TopN of zero uses the configured default.
	TopN      int    `json:"top_n,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of Engine.Recommend.
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	Metadata        ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string    `json:"request_id,omitempty"`
	UserID    int       `json:"user_id"`
	Seasons   []string  `json:"seasons"`
	TopN      int       `json:"top_n"`
	Outcome   Outcome   `json:"outcome"`
	CacheHit  bool      `json:"cache_hit"`
	Signals   []Source  `json:"signals,omitempty"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats are cumulative engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	NewUsers    int64 `json:"new_users"`
	Fallbacks   int64 `json:"fallbacks"`
	CacheErrors int64 `json:"cache_errors"`
}
