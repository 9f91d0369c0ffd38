// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package worker

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/hybridrec/internal/metrics"
)

// Mode selects how tasks are scheduled.
type Mode string

const (
	// Sequential runs tasks one at a time in input order.
	Sequential Mode = "sequential"
	// Parallel runs tasks on up to Workers goroutines.
	Parallel Mode = "parallel"
)

// Config configures a Pool.
type Config struct {
	Mode Mode
	// Workers bounds concurrency in Parallel mode. Zero means GOMAXPROCS.
	Workers int
	// Rate caps task starts per second. Zero disables limiting.
	Rate float64
}

// Pool schedules per-key tasks.
//
// In Sequential mode Map runs tasks one after another on the calling
// goroutine. In Parallel mode it runs at most Workers tasks at once on an
// errgroup. Either way results are keyed by input, so the two modes
// produce identical output for pure tasks.
//
// A Pool holds no goroutines between calls and may be shared by every
// stage of a build.
//
// Example usage:
//
//	pool, err := worker.New(worker.Config{Mode: worker.Parallel, Workers: 8}, logger)
//	if err != nil {
//	    return err
//	}
//	res := worker.Map(ctx, pool, "vectorize", ids, func(ctx context.Context, id int) ([]float64, error) {
//	    return vectorize(ctx, id)
//	})
//	for id, err := range res.Failures {
//	    logger.Warn().Err(err).Int("product_id", id).Msg("skipped")
//	}
type Pool struct {
	mode    Mode
	workers int
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// New creates a Pool. Unknown modes are rejected.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, logger zerolog.Logger) (*Pool, error) {
	switch cfg.Mode {
	case Sequential, Parallel:
	case "":
		cfg.Mode = Parallel
	default:
		return nil, fmt.Errorf("unknown worker mode %q", cfg.Mode)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("worker count must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Rate < 0 {
		return nil, fmt.Errorf("worker rate must be >= 0, got %v", cfg.Rate)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		mode:    cfg.Mode,
		workers: workers,
		logger:  logger.With().Str("component", "worker").Logger(),
	}
	if cfg.Rate > 0 {
		burst := int(cfg.Rate)
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}
	return p, nil
}

// NewSequential returns an unlimited sequential pool with a no-op logger.
func NewSequential() *Pool {
	return &Pool{mode: Sequential, workers: 1, logger: zerolog.Nop()}
}

// Mode returns the scheduling mode.
func (p *Pool) Mode() Mode { return p.mode }

// Workers returns the concurrency bound.
func (p *Pool) Workers() int {
	if p.mode == Sequential {
		return 1
	}
	return p.workers
}

// Result holds per-key outcomes of Map. Every input key appears in exactly
// one of Values or Failures.
type Result[K comparable, V any] struct {
	Values   map[K]V
	Failures map[K]error
}

// Failed reports whether any task failed.
func (r Result[K, V]) Failed() bool { return len(r.Failures) > 0 }

type outcome[V any] struct {
	value V
	err   error
}

// Map runs fn for every key and collects the results. A failing or panicking
// task is recorded under its key and never aborts the others. Cancellation of
// ctx fails the tasks that have not started yet.
func Map[K comparable, V any](ctx context.Context, p *Pool, name string, keys []K, fn func(context.Context, K) (V, error)) Result[K, V] {
	if p == nil {
		p = NewSequential()
	}

	outcomes := make([]outcome[V], len(keys))

	if p.mode == Sequential {
		for i, k := range keys {
			outcomes[i] = runTask(ctx, p, name, k, fn)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(p.workers)
		for i, k := range keys {
			g.Go(func() error {
				outcomes[i] = runTask(ctx, p, name, k, fn)
				return nil
			})
		}
		_ = g.Wait()
	}

	res := Result[K, V]{
		Values:   make(map[K]V, len(keys)),
		Failures: make(map[K]error),
	}
	for i, k := range keys {
		if outcomes[i].err != nil {
			res.Failures[k] = outcomes[i].err
			continue
		}
		res.Values[k] = outcomes[i].value
	}

	if len(res.Failures) > 0 {
		p.logger.Warn().
			Str("task", name).
			Int("failed", len(res.Failures)).
			Int("total", len(keys)).
			Msg("Batch completed with failures")
	}
	return res
}

func runTask[K comparable, V any](ctx context.Context, p *Pool, name string, key K, fn func(context.Context, K) (V, error)) (out outcome[V]) {
	defer func() {
		if r := recover(); r != nil {
			out.err = fmt.Errorf("task %s panicked on %v: %v", name, key, r)
		}
		metrics.RecordWorkerTask(name, out.err)
		if out.err != nil {
			p.logger.Debug().Err(out.err).Str("task", name).Interface("key", key).Msg("Task failed")
		}
	}()

	if err := ctx.Err(); err != nil {
		out.err = err
		return out
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			out.err = err
			return out
		}
	}

	out.value, out.err = fn(ctx, key)
	return out
}
