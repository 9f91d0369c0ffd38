// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"fmt"
	"time"
)

// SignalWeights holds one non-negative weight per signal.
type SignalWeights struct {
	MF      float64 `json:"mf"`
	CBF     float64 `json:"cbf"`
	Popular float64 `json:"popular"`
	Time    float64 `json:"time_based"`
	Device  float64 `json:"device_based"`
}

// For returns the weight of source s.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) For(s Source) float64 {
	switch s {
	case SourceMF:
		return w.MF
	case SourceCBF:
		return w.CBF
	case SourcePopular:
		return w.Popular
	case SourceTime:
		return w.Time
	case SourceDevice:
		return w.Device
	default:
		return 0
	}
}

// Validate rejects negative weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) Validate() error {
	for _, s := range FusionOrder {
		if v := w.For(s); v < 0 {
			return fmt.Errorf("%s weight must be >= 0, got %v", s, v)
		}
	}
	return nil
}

// Weights holds the weight sets for returning and new users.
type Weights struct {
	Returning SignalWeights `json:"returning"`
	NewUser   SignalWeights `json:"new_user"`
}

// For selects the weight set for a user class.
func (w *Weights) For(newUser bool) SignalWeights {
	if newUser {
		return w.NewUser
	}
	return w.Returning
}

// Config controls the fusion engine.
type Config struct {
	Weights Weights `json:"weights"`

	// TopN is the default result length.
	TopN int `json:"top_n"`

	// ResultTTL is how long a fused list stays cached.
	ResultTTL time.Duration `json:"result_ttl"`

	// BlendNewUsers routes users without history through fusion with the
	// new-user weights instead of the popularity-only path.
	BlendNewUsers bool `json:"blend_new_users"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Returning: SignalWeights{MF: 0.5, CBF: 0.4, Popular: 0.3, Time: 0.2, Device: 0.2},
			NewUser:   SignalWeights{MF: 0.0, CBF: 0.0, Popular: 0.5, Time: 0.3, Device: 0.2},
		},
		TopN:      5,
		ResultTTL: time.Hour,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Weights.Returning.Validate(); err != nil {
		return fmt.Errorf("returning weights: %w", err)
	}
	if err := c.Weights.NewUser.Validate(); err != nil {
		return fmt.Errorf("new user weights: %w", err)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be >= 1, got %d", c.TopN)
	}
	if c.ResultTTL <= 0 {
		return fmt.Errorf("result_ttl must be positive, got %v", c.ResultTTL)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
