// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/hybridrec/internal/metrics"
)

// BreakerOptions tunes the circuit breaker.
type BreakerOptions struct {
	// MaxFailures is the consecutive failure count that opens the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
	// Interval resets the closed-state counters. Zero never resets.
	Interval time.Duration
}

// ResilientStore bounds every backend call with a timeout and a circuit
// breaker.
//
// Every operation runs inside a gobreaker.CircuitBreaker. ErrNotFound is a
// normal outcome and never counts as a failure; timeouts and backend errors
// do. Once MaxFailures consecutive calls fail the breaker opens and calls
// return ErrUnavailable without touching the backend until OpenTimeout has
// passed. Callers treat any error as a miss, so an unreachable Redis slows
// nothing down after the breaker trips.
//
// Outcomes and breaker transitions are exported through the metrics
// package under the store name.
//
// Example usage:
//
//	store := cache.NewResilientStore(redisStore, "redis", 250*time.Millisecond,
//	    cache.BreakerOptions{MaxFailures: 5, OpenTimeout: 30 * time.Second}, logger)
//	defer store.Close()
//	hit, err := cache.GetJSON(ctx, store, recommend.UserProfileKey(1), &profile)
type ResilientStore struct {
	backend Store
	name    string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[any]
	logger  zerolog.Logger
}

// NewResilientStore wraps backend. A non-positive timeout disables the
// per-call deadline.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewResilientStore(backend Store, name string, timeout time.Duration, bo BreakerOptions, logger zerolog.Logger) *ResilientStore {
	r := &ResilientStore{
		backend: backend,
		name:    name,
		timeout: timeout,
		logger:  logger.With().Str("component", "cache").Str("backend", name).Logger(),
	}

	maxFailures := bo.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	r.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "cache-" + name,
		MaxRequests: 1,
		Interval:    bo.Interval,
		Timeout:     bo.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			metrics.SetBreakerState(name, int(to))
			r.logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Cache circuit breaker state changed")
		},
	})
	metrics.SetBreakerState(name, int(gobreaker.StateClosed))
	return r
}

// Backend returns the wrapped store.
func (r *ResilientStore) Backend() Store { return r.backend }

// Name returns the backend name used in metrics and logs.
func (r *ResilientStore) Name() string { return r.name }

// State returns the breaker state.
func (r *ResilientStore) State() gobreaker.State { return r.cb.State() }

// Get implements Store.
func (r *ResilientStore) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := r.execute(ctx, "get", func(ctx context.Context) (any, error) {
		return r.backend.Get(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	data, _ := res.([]byte)
	return data, nil
}

// SetWithTTL implements Store.
func (r *ResilientStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := r.execute(ctx, "set", func(ctx context.Context) (any, error) {
		return nil, r.backend.SetWithTTL(ctx, key, value, ttl)
	})
	return err
}

// Delete implements Store.
func (r *ResilientStore) Delete(ctx context.Context, key string) error {
	_, err := r.execute(ctx, "delete", func(ctx context.Context) (any, error) {
		return nil, r.backend.Delete(ctx, key)
	})
	return err
}

// Keys implements Store.
func (r *ResilientStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	res, err := r.execute(ctx, "keys", func(ctx context.Context) (any, error) {
		return r.backend.Keys(ctx, pattern)
	})
	if err != nil {
		return nil, err
	}
	keys, _ := res.([]string)
	return keys, nil
}

// Close closes the backend if it holds resources.
func (r *ResilientStore) Close() error {
	if c, ok := r.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type callResult struct {
	value any
	err   error
}

func (r *ResilientStore) execute(ctx context.Context, op string, fn func(context.Context) (any, error)) (any, error) {
	res, err := r.cb.Execute(func() (any, error) {
		return r.withTimeout(ctx, fn)
	})

	switch {
	case err == nil:
		metrics.RecordCacheOp(r.name, op, "ok")
	case errors.Is(err, ErrNotFound):
		metrics.RecordCacheOp(r.name, op, "miss")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCacheOp(r.name, op, "rejected")
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, r.name)
	default:
		metrics.RecordCacheOp(r.name, op, "error")
		r.logger.Debug().Err(err).Str("op", op).Msg("Cache operation failed")
	}
	return res, err
}

// withTimeout runs fn on its own goroutine so a backend that ignores context
// cancellation still cannot stall the caller past the deadline.
func (r *ResilientStore) withTimeout(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	if r.timeout <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan callResult, 1)
	go func() {
		v, err := fn(ctx)
		done <- callResult{value: v, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("cache %s: %w", r.name, ctx.Err())
	}
}
