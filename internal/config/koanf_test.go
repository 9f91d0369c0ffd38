// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns the documented defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	want := SignalWeights{MF: 0.5, CBF: 0.4, Popular: 0.3, Time: 0.2, Device: 0.2}
	if cfg.Recommend.Weights.Returning != want {
		t.Errorf("Returning weights = %+v, want %+v", cfg.Recommend.Weights.Returning, want)
	}
	wantNew := SignalWeights{MF: 0, CBF: 0, Popular: 0.5, Time: 0.3, Device: 0.2}
	if cfg.Recommend.Weights.NewUser != wantNew {
		t.Errorf("NewUser weights = %+v, want %+v", cfg.Recommend.Weights.NewUser, wantNew)
	}
	if cfg.Recommend.TopN != 5 {
		t.Errorf("TopN = %d, want 5", cfg.Recommend.TopN)
	}
	if cfg.Recommend.ResultTTL != time.Hour {
		t.Errorf("ResultTTL = %v, want 1h", cfg.Recommend.ResultTTL)
	}
	if cfg.Recommend.ArtifactTTL != 24*time.Hour {
		t.Errorf("ArtifactTTL = %v, want 24h", cfg.Recommend.ArtifactTTL)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Port != 6379 {
		t.Errorf("Cache.Redis.Port = %d, want 6379", cfg.Cache.Redis.Port)
	}
	if cfg.Worker.Mode != "parallel" {
		t.Errorf("Worker.Mode = %q, want parallel", cfg.Worker.Mode)
	}
	if !reflect.DeepEqual(cfg.Batch.Seasons, []string{"All Year", "Summer"}) {
		t.Errorf("Batch.Seasons = %v", cfg.Batch.Seasons)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"MF_WEIGHT", "recommend.weights.returning.mf"},
		{"CBF_WEIGHT", "recommend.weights.returning.cbf"},
		{"POPULAR_WEIGHT", "recommend.weights.returning.popular"},
		{"TIME_BASE_WEIGHT", "recommend.weights.returning.time_based"},
		{"DEVICE_WEIGHT", "recommend.weights.returning.device_based"},
		{"NEW_USER_MF_WEIGHT", "recommend.weights.new_user.mf"},
		{"NEW_USER_POPULAR_WEIGHT", "recommend.weights.new_user.popular"},
		{"NEW_USER_TIME_BASE_WEIGHT", "recommend.weights.new_user.time_based"},
		{"REDIS_HOST", "cache.redis.host"},
		{"REDIS_DB", "cache.redis.db"},
		{"CACHE_BACKEND", "cache.backend"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("MF_WEIGHT", "0.9")
	t.Setenv("NEW_USER_DEVICE_WEIGHT", "0.05")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("WORKER_MODE", "sequential")
	t.Setenv("BATCH_SEASONS", "Holiday, Summer ,")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Recommend.Weights.Returning.MF != 0.9 {
		t.Errorf("Returning.MF = %f, want 0.9", cfg.Recommend.Weights.Returning.MF)
	}
	if cfg.Recommend.Weights.Returning.CBF != 0.4 {
		t.Errorf("Returning.CBF = %f, want default 0.4", cfg.Recommend.Weights.Returning.CBF)
	}
	if cfg.Recommend.Weights.NewUser.Device != 0.05 {
		t.Errorf("NewUser.Device = %f, want 0.05", cfg.Recommend.Weights.NewUser.Device)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Host != "cache.internal" || cfg.Cache.Redis.Port != 6380 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Worker.Mode != "sequential" {
		t.Errorf("Worker.Mode = %q, want sequential", cfg.Worker.Mode)
	}
	if !reflect.DeepEqual(cfg.Batch.Seasons, []string{"Holiday", "Summer"}) {
		t.Errorf("Batch.Seasons = %#v, want [Holiday Summer]", cfg.Batch.Seasons)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
recommend:
  top_n: 7
  weights:
    returning:
      cbf: 0.1
cache:
  backend: none
server:
  enabled: true
  port: 9090
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9191")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Recommend.TopN != 7 {
		t.Errorf("TopN = %d, want 7", cfg.Recommend.TopN)
	}
	if cfg.Recommend.Weights.Returning.CBF != 0.1 {
		t.Errorf("Returning.CBF = %f, want 0.1", cfg.Recommend.Weights.Returning.CBF)
	}
	if cfg.Recommend.Weights.Returning.MF != 0.5 {
		t.Errorf("Returning.MF = %f, want default 0.5", cfg.Recommend.Weights.Returning.MF)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	// Environment wins over the file.
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
}

func TestLoadWithKoanf_InvalidWeight(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("NEW_USER_POPULAR_WEIGHT", "-1")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected validation error for negative weight")
	}
	if !strings.Contains(err.Error(), "NEW_USER_POPULAR_WEIGHT") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero top_n", func(c *Config) { c.Recommend.TopN = 0 }, "RECOMMEND_TOP_N"},
		{"zero rank", func(c *Config) { c.Recommend.Rank = 0 }, "RECOMMEND_RANK"},
		{"negative cbf", func(c *Config) { c.Recommend.Weights.Returning.CBF = -0.1 }, "CBF_WEIGHT"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, "CACHE_BACKEND"},
		{"redis without host", func(c *Config) { c.Cache.Backend = "redis"; c.Cache.Redis.Host = "" }, "REDIS_HOST"},
		{"badger without path", func(c *Config) { c.Cache.Backend = "badger"; c.Cache.Badger.Path = "" }, "BADGER_PATH"},
		{"badger in memory", func(c *Config) {
			c.Cache.Backend = "badger"
			c.Cache.Badger.Path = ""
			c.Cache.Badger.InMemory = true
		}, ""},
		{"bad worker mode", func(c *Config) { c.Worker.Mode = "auto" }, "WORKER_MODE"},
		{"server bad port", func(c *Config) { c.Server.Enabled = true; c.Server.Port = 0 }, "HTTP_PORT"},
		{"server disabled ignores port", func(c *Config) { c.Server.Port = 0 }, ""},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"log level any case", func(c *Config) { c.Logging.Level = "WARNING" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
