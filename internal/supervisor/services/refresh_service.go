// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/recommend/pipeline"
)

// ModelRefresher rebuilds the live model. Satisfied by *pipeline.Holder.
type ModelRefresher interface {
	Refresh(ctx context.Context, purge bool) (*pipeline.Model, error)
}

// RefreshServiceConfig controls the refresh loop.
type RefreshServiceConfig struct {
	// Interval between rebuilds. Non-positive means 24h.
	Interval time.Duration

	// Timeout bounds one rebuild. Non-positive means 10m.
	Timeout time.Duration

	// OnStartup rebuilds once as soon as the service starts.
	OnStartup bool
}

// RefreshService rebuilds the model on a fixed schedule.
//
// Each tick reloads the dataset and builds a fresh model through the
// refresher. Rebuilds do not force a purge: the build compares the dataset
// fingerprint with the one recorded in the cache and drops derived keys
// only when the data changed, so an unchanged catalog keeps its cached
// artifacts and lists.
//
// A failed rebuild is logged and the previous model keeps serving. Serve
// returns only when its context is canceled.
//
// Example usage:
//
//	svc := services.NewRefreshService(holder, services.RefreshServiceConfig{
//	    Interval:  cfg.Server.RefreshInterval,
//	    OnStartup: initialBuildFailed,
//	}, logger)
//	tree.AddModelService(svc)
type RefreshService struct {
	refresher ModelRefresher
	config    RefreshServiceConfig
	logger    zerolog.Logger
	name      string
}

// NewRefreshService creates the scheduled refresh service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRefreshService(refresher ModelRefresher, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &RefreshService{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "model-refresh").Logger(),
		name:      "model-refresh",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("on_startup", s.config.OnStartup).
		Msg("model refresh service starting")

	if s.config.OnStartup {
		s.refresh(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("model refresh service stopping")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *RefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	m, err := s.refresher.Refresh(refreshCtx, false)
	if err != nil {
		s.logger.Warn().Err(err).Msg("scheduled model refresh failed")
		return
	}
	ev := s.logger.Info().Dur("duration", time.Since(start))
	if m != nil {
		ev = ev.Int("users", m.Stats.Users).
			Int("products", m.Stats.Products).
			Bool("dataset_changed", m.Stats.DatasetChanged)
	}
	ev.Msg("scheduled model refresh complete")
}

// String implements fmt.Stringer for suture's logs.
func (s *RefreshService) String() string {
	return s.name
}
