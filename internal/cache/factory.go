// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendNone   = "none"
)

// memoryCleanupInterval matches the sweep cadence of the in-process cache.
const memoryCleanupInterval = 5 * time.Minute

// Options selects and configures a backend.
type Options struct {
	Backend   string
	OpTimeout time.Duration
	Redis     RedisOptions
	Badger    BadgerOptions
	Breaker   BreakerOptions
}

// New builds the configured backend wrapped in a ResilientStore. A Redis
// backend that does not answer a ping is logged and kept: the breaker
// absorbs the outage and requests continue uncached.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(ctx context.Context, opts Options, logger zerolog.Logger) (*ResilientStore, error) {
	var backend Store

	switch opts.Backend {
	case BackendMemory, "":
		backend = NewMemoryStore(memoryCleanupInterval)
		opts.Backend = BackendMemory
	case BackendRedis:
		rs := NewRedisStore(opts.Redis)
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout(opts.OpTimeout))
		err := rs.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("addr", opts.Redis.Addr()).
				Msg("Redis cache unreachable at startup, continuing without cache hits")
		}
		backend = rs
	case BackendBadger:
		bs, err := NewBadgerStore(opts.Badger)
		if err != nil {
			return nil, err
		}
		backend = bs
	case BackendNone:
		backend = NopStore{}
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}

	logger.Info().Str("backend", opts.Backend).Dur("op_timeout", opts.OpTimeout).Msg("Cache initialized")
	return NewResilientStore(backend, opts.Backend, opts.OpTimeout, opts.Breaker, logger), nil
}

func pingTimeout(op time.Duration) time.Duration {
	if op < time.Second {
		return time.Second
	}
	return op
}
