// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/config"
	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/recommend/pipeline"
	"github.com/tomtom215/hybridrec/internal/worker"
)

// app holds the components shared by both modes.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	store  *cache.ResilientStore
	pool   *worker.Pool
	opts   pipeline.Options
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, err := cache.New(ctx, cacheOptions(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	pool, err := worker.New(worker.Config{
		Mode:    worker.Mode(cfg.Worker.Mode),
		Workers: cfg.Worker.Workers,
		Rate:    cfg.Worker.Rate,
	}, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init worker pool: %w", err)
	}

	logger.Info().
		Str("worker_mode", string(pool.Mode())).
		Int("workers", pool.Workers()).
		Str("dataset", datasetLabel(cfg.Dataset.Path)).
		Msg("Configuration loaded")

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		pool:   pool,
		opts:   pipeline.OptionsFromConfig(cfg, pool),
	}, nil
}

// Close releases the cache backend.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Error closing cache")
	}
}

// loadDataset reads the configured catalog, or the built-in sample.
func (a *app) loadDataset() (*dataset.Dataset, error) {
	if a.cfg.Dataset.Path == "" {
		return dataset.Sample(), nil
	}
	return dataset.Load(a.cfg.Dataset.Path)
}

// buildFunc rebuilds the model from a fresh read of the catalog.
func (a *app) buildFunc() pipeline.BuildFunc {
	return pipeline.FromSource(a.loadDataset, a.store, a.opts, a.logger)
}

func cacheOptions(cfg *config.Config) cache.Options {
	c := cfg.Cache
	return cache.Options{
		Backend:   c.Backend,
		OpTimeout: c.OpTimeout,
		Redis: cache.RedisOptions{
			Host:     c.Redis.Host,
			Port:     c.Redis.Port,
			DB:       c.Redis.DB,
			Password: c.Redis.Password,
		},
		Badger: cache.BadgerOptions{
			Path:     c.Badger.Path,
			InMemory: c.Badger.InMemory,
		},
		Breaker: cache.BreakerOptions{
			MaxFailures: c.Breaker.MaxFailures,
			OpenTimeout: c.Breaker.OpenTimeout,
			Interval:    c.Breaker.Interval,
		},
	}
}

func datasetLabel(path string) string {
	if path == "" {
		return "built-in sample"
	}
	return path
}
