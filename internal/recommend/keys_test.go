// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestKeys(t *testing.T) {
	t.Parallel()
	tests := []struct {
		got  string
		want string
	}{
		{ProductFeatureKey(101), "product_feature:101"},
		{UserProfileKey(3), "user_profile:3"},
		{SVDFactorsKey(5, 5), "svd_factors:5:5"},
		{RecommendationKey(1, []string{"Summer", "All Year"}), "recommendations:1:All Year,Summer"},
		{RecommendationKey(1, []string{"Summer", " Summer", ""}), "recommendations:1:Summer"},
		{RecommendationKey(2, nil), "recommendations:2:"},
		{UserRecommendationPattern(7), "recommendations:7:*"},
		{RecommendationPattern(), "recommendations:*"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestNormalizeSeasons(t *testing.T) {
	t.Parallel()
	got := NormalizeSeasons([]string{"Summer", "All Year", "Summer", "  "})
	want := []string{"All Year", "Summer"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeSeasons() = %v, want %v", got, want)
	}
	if got := NormalizeSeasons(nil); len(got) != 0 {
		t.Errorf("NormalizeSeasons(nil) = %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative returning weight", func(c *Config) { c.Weights.Returning.Device = -1 }, true},
		{"negative new user weight", func(c *Config) { c.Weights.NewUser.Popular = -0.1 }, true},
		{"zero top_n", func(c *Config) { c.TopN = 0 }, true},
		{"zero ttl", func(c *Config) { c.ResultTTL = 0 }, true},
		{"all zero weights", func(c *Config) { c.Weights.Returning = SignalWeights{} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Weights.Returning.MF = 9
	if cfg.Weights.Returning.MF != 0.5 {
		t.Errorf("Clone shares state: original MF = %v", cfg.Weights.Returning.MF)
	}
}

func TestInvalidEntityError(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("vectorize: %w", &InvalidEntityError{Kind: "product", ID: 106, Field: "category", Value: "Garden"})
	if !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("errors.Is(%v, ErrInvalidEntity) = false", err)
	}
	var iee *InvalidEntityError
	if !errors.As(err, &iee) || iee.Value != "Garden" {
		t.Errorf("errors.As failed: %v", err)
	}
}
