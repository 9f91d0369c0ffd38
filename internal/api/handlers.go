// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package api

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/hybridrec/internal/recommend/pipeline"
)

// ModelSource owns the live model. *pipeline.Holder implements it.
type ModelSource interface {
	Current() *pipeline.Model
	Refresh(ctx context.Context, purge bool) (*pipeline.Model, error)
	ClearUserCache(ctx context.Context, userID int) (int, error)
}

// Invalidator publishes cache invalidation events. *events.Bus implements it.
type Invalidator interface {
	PublishUserInvalidation(ctx context.Context, userID int) (string, error)
}

// CacheStatus reports on the cache backend. *cache.ResilientStore implements it.
type CacheStatus interface {
	Name() string
	State() gobreaker.State
}

// HandlerConfig tunes request defaults.
type HandlerConfig struct {
	// DefaultSeasons apply when a request has no seasons parameter.
	DefaultSeasons []string
	// MaxTopN bounds the top_n parameter.
	MaxTopN int
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommendations and per-user cache clear
//   - handlers_model.go: model refresh
//   - handlers_health.go: health
type Handler struct {
	models      ModelSource
	invalidator Invalidator
	cache       CacheStatus
	config      HandlerConfig
	startTime   time.Time
}

// NewHandler creates a Handler. invalidator and cacheStatus are optional:
// without an invalidator cache clears run synchronously, without a cache
// status health omits cache details.
func NewHandler(models ModelSource, invalidator Invalidator, cacheStatus CacheStatus, cfg HandlerConfig) *Handler {
	if cfg.MaxTopN <= 0 {
		cfg.MaxTopN = 100
	}
	return &Handler{
		models:      models,
		invalidator: invalidator,
		cache:       cacheStatus,
		config:      cfg,
		startTime:   time.Now(),
	}
}
