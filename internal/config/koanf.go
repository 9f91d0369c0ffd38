// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/hybridrec/config.yaml",
	"/etc/hybridrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Recommend: RecommendConfig{
			TopN:            5,
			ResultTTL:       time.Hour,
			ArtifactTTL:     24 * time.Hour,
			Rank:            2,
			RatingWeight:    0.7,
			FrequencyWeight: 0.3,
			Weights: WeightsConfig{
				Returning: SignalWeights{MF: 0.5, CBF: 0.4, Popular: 0.3, Time: 0.2, Device: 0.2},
				NewUser:   SignalWeights{MF: 0.0, CBF: 0.0, Popular: 0.5, Time: 0.3, Device: 0.2},
			},
		},
		Cache: CacheConfig{
			Backend:   "memory",
			OpTimeout: 250 * time.Millisecond,
			Redis: RedisConfig{
				Host: "localhost",
				Port: 6379,
				DB:   0,
			},
			Badger: BadgerConfig{
				Path: "/data/hybridrec/cache",
			},
			Breaker: BreakerConfig{
				MaxFailures: 5,
				OpenTimeout: 30 * time.Second,
				Interval:    time.Minute,
			},
		},
		Worker: WorkerConfig{
			Mode:    "parallel",
			Workers: 0, // 0 = runtime.NumCPU()
			Rate:    0,
		},
		Server: ServerConfig{
			Enabled:         false, // batch mode unless explicitly enabled
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RefreshInterval: time.Hour,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{},
		},
		Batch: BatchConfig{
			Seasons: []string{"All Year", "Summer"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
// defaults, then an optional YAML file, then mapped environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are keys whose env values arrive comma separated.
var sliceConfigPaths = []string{
	"batch.seasons",
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf keys.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		// Returning-user signal weights
		"mf_weight":        "recommend.weights.returning.mf",
		"cbf_weight":       "recommend.weights.returning.cbf",
		"popular_weight":   "recommend.weights.returning.popular",
		"time_base_weight": "recommend.weights.returning.time_based",
		"device_weight":    "recommend.weights.returning.device_based",

		// New-user signal weights
		"new_user_mf_weight":        "recommend.weights.new_user.mf",
		"new_user_cbf_weight":       "recommend.weights.new_user.cbf",
		"new_user_popular_weight":   "recommend.weights.new_user.popular",
		"new_user_time_base_weight": "recommend.weights.new_user.time_based",
		"new_user_device_weight":    "recommend.weights.new_user.device_based",

		"new_user_blend": "recommend.blend_new_users",

		"recommend_top_n":             "recommend.top_n",
		"recommend_result_ttl":        "recommend.result_ttl",
		"recommend_artifact_ttl":      "recommend.artifact_ttl",
		"recommend_rank":              "recommend.rank",
		"popularity_rating_weight":    "recommend.rating_weight",
		"popularity_frequency_weight": "recommend.frequency_weight",

		"cache_backend":          "cache.backend",
		"cache_op_timeout":       "cache.op_timeout",
		"redis_host":             "cache.redis.host",
		"redis_port":             "cache.redis.port",
		"redis_db":               "cache.redis.db",
		"redis_password":         "cache.redis.password",
		"badger_path":            "cache.badger.path",
		"badger_in_memory":       "cache.badger.in_memory",
		"cache_breaker_failures": "cache.breaker.max_failures",
		"cache_breaker_timeout":  "cache.breaker.open_timeout",
		"cache_breaker_interval": "cache.breaker.interval",

		"worker_mode":   "worker.mode",
		"worker_count":  "worker.workers",
		"worker_rate":   "worker.rate",
		"dataset_path":  "dataset.path",
		"batch_seasons": "batch.seasons",

		"server_enabled":      "server.enabled",
		"http_host":           "server.host",
		"http_port":           "server.port",
		"http_timeout":        "server.timeout",
		"shutdown_timeout":    "server.shutdown_timeout",
		"refresh_interval":    "server.refresh_interval",
		"rate_limit_requests": "server.rate_limit_reqs",
		"rate_limit_window":   "server.rate_limit_window",
		"cors_origins":        "server.cors_origins",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
