// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Worker    WorkerConfig    `koanf:"worker"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Server    ServerConfig    `koanf:"server"`
	Batch     BatchConfig     `koanf:"batch"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// RecommendConfig holds the hybrid engine settings.
type RecommendConfig struct {
	// TopN is the default number of recommendations per user.
	TopN int `koanf:"top_n"`

	// ResultTTL is how long a fused recommendation list stays cached.
	ResultTTL time.Duration `koanf:"result_ttl"`

	// ArtifactTTL is how long feature vectors, profiles and factors stay cached.
	ArtifactTTL time.Duration `koanf:"artifact_ttl"`

	// Rank is the requested latent dimension before clamping to min(shape)-1.
	Rank int `koanf:"rank"`

	// RatingWeight and FrequencyWeight shape the popularity score.
	RatingWeight    float64 `koanf:"rating_weight"`
	FrequencyWeight float64 `koanf:"frequency_weight"`

	Weights WeightsConfig `koanf:"weights"`

	// BlendNewUsers fuses popular, time and device signals for users without
	// history using the new-user weights instead of returning popularity only.
	BlendNewUsers bool `koanf:"blend_new_users"`
}

// WeightsConfig holds the per-signal weights for both user classes.
type WeightsConfig struct {
	Returning SignalWeights `koanf:"returning"`
	NewUser   SignalWeights `koanf:"new_user"`
}

// SignalWeights is one weight per signal recommender.
type SignalWeights struct {
	MF      float64 `koanf:"mf"`
	CBF     float64 `koanf:"cbf"`
	Popular float64 `koanf:"popular"`
	Time    float64 `koanf:"time_based"`
	Device  float64 `koanf:"device_based"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	// Backend is one of memory, redis, badger, none.
	Backend string `koanf:"backend"`

	// OpTimeout bounds every cache call so a hung backend cannot stall a request.
	OpTimeout time.Duration `koanf:"op_timeout"`

	Redis   RedisConfig   `koanf:"redis"`
	Badger  BadgerConfig  `koanf:"badger"`
	Breaker BreakerConfig `koanf:"breaker"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	DB       int    `koanf:"db"`
	Password string `koanf:"password"`
}

// BadgerConfig holds the embedded cache settings.
type BadgerConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// BreakerConfig tunes the circuit breaker in front of the cache backend.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32        `koanf:"max_failures"`
	OpenTimeout time.Duration `koanf:"open_timeout"`
	Interval    time.Duration `koanf:"interval"`
}

// WorkerConfig configures the fan-out pool.
type WorkerConfig struct {
	// Mode is sequential or parallel.
	Mode string `koanf:"mode"`

	// Workers bounds parallelism. 0 = runtime.NumCPU().
	Workers int `koanf:"workers"`

	// Rate limits task starts per second. 0 = unlimited.
	Rate float64 `koanf:"rate"`
}

// DatasetConfig locates the catalog and history data.
type DatasetConfig struct {
	// Path is a .json or .yaml data set. Empty uses the built-in sample.
	Path string `koanf:"path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// BatchConfig controls the one-shot batch run.
type BatchConfig struct {
	Seasons []string `koanf:"seasons"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Defaults returns the built-in configuration without reading any source.
func Defaults() *Config {
	return defaultConfig()
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
