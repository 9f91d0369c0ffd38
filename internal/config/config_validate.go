// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/hybridrec/internal/logging"
)

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateWorker(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.TopN < 1 {
		return fmt.Errorf("RECOMMEND_TOP_N must be at least 1, got %d", r.TopN)
	}
	if r.Rank < 1 {
		return fmt.Errorf("RECOMMEND_RANK must be at least 1, got %d", r.Rank)
	}
	if r.ResultTTL <= 0 {
		return fmt.Errorf("RECOMMEND_RESULT_TTL must be positive, got %v", r.ResultTTL)
	}
	if r.ArtifactTTL <= 0 {
		return fmt.Errorf("RECOMMEND_ARTIFACT_TTL must be positive, got %v", r.ArtifactTTL)
	}
	if r.RatingWeight < 0 || r.FrequencyWeight < 0 {
		return fmt.Errorf("popularity weights must be non-negative, got rating=%f frequency=%f",
			r.RatingWeight, r.FrequencyWeight)
	}
	if err := validateWeights("returning", "", r.Weights.Returning); err != nil {
		return err
	}
	return validateWeights("new_user", "NEW_USER_", r.Weights.NewUser)
}

func validateWeights(class, envPrefix string, w SignalWeights) error {
	fields := []struct {
		env   string
		value float64
	}{
		{"MF_WEIGHT", w.MF},
		{"CBF_WEIGHT", w.CBF},
		{"POPULAR_WEIGHT", w.Popular},
		{"TIME_BASE_WEIGHT", w.Time},
		{"DEVICE_WEIGHT", w.Device},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s%s must be non-negative for %s users, got %f", envPrefix, f.env, class, f.value)
		}
	}
	return nil
}

func (c *Config) validateCache() error {
	switch strings.ToLower(c.Cache.Backend) {
	case "memory", "none":
	case "redis":
		if c.Cache.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required when CACHE_BACKEND=redis")
		}
		if c.Cache.Redis.Port < 1 || c.Cache.Redis.Port > 65535 {
			return fmt.Errorf("REDIS_PORT must be between 1 and 65535, got %d", c.Cache.Redis.Port)
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("REDIS_DB must be non-negative, got %d", c.Cache.Redis.DB)
		}
	case "badger":
		if c.Cache.Badger.Path == "" && !c.Cache.Badger.InMemory {
			return fmt.Errorf("BADGER_PATH is required when CACHE_BACKEND=badger")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of memory, redis, badger, none; got %q", c.Cache.Backend)
	}

	if c.Cache.OpTimeout <= 0 {
		return fmt.Errorf("CACHE_OP_TIMEOUT must be positive, got %v", c.Cache.OpTimeout)
	}
	return nil
}

func (c *Config) validateWorker() error {
	switch strings.ToLower(c.Worker.Mode) {
	case "sequential", "parallel":
	default:
		return fmt.Errorf("WORKER_MODE must be sequential or parallel, got %q", c.Worker.Mode)
	}
	if c.Worker.Workers < 0 {
		return fmt.Errorf("WORKER_COUNT must be non-negative, got %d", c.Worker.Workers)
	}
	if c.Worker.Rate < 0 {
		return fmt.Errorf("WORKER_RATE must be non-negative, got %f", c.Worker.Rate)
	}
	return nil
}

func (c *Config) validateServer() error {
	if !c.Server.Enabled {
		return nil
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive, got %v", c.Server.RefreshInterval)
	}
	if c.Server.RateLimitReqs < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be non-negative, got %d", c.Server.RateLimitReqs)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
