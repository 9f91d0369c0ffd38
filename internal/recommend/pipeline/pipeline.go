// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/config"
	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/metrics"
	"github.com/tomtom215/hybridrec/internal/recommend"
	"github.com/tomtom215/hybridrec/internal/recommend/algorithms"
	"github.com/tomtom215/hybridrec/internal/recommend/features"
	"github.com/tomtom215/hybridrec/internal/worker"
)

// Options configure Build.
type Options struct {
	Engine *recommend.Config

	// Rank is the requested number of latent factors before clamping.
	Rank int

	// ArtifactTTL bounds cached vectors, profiles and factors.
	ArtifactTTL time.Duration

	Popularity algorithms.PopularityWeights

	// Pool runs vectorization, profiling and batch generation.
	// Nil runs sequentially.
	Pool *worker.Pool

	// Clock is handed to the engine. Nil uses time.Now.
	Clock func() time.Time
}

// DefaultOptions returns rank 2, a 24h artifact TTL and default weights.
func DefaultOptions() Options {
	return Options{
		Engine:      recommend.DefaultConfig(),
		Rank:        2,
		ArtifactTTL: 24 * time.Hour,
		Popularity:  algorithms.DefaultPopularityWeights(),
	}
}

// OptionsFromConfig maps the recommend section of cfg onto Options.
func OptionsFromConfig(cfg *config.Config, pool *worker.Pool) Options {
	rc := cfg.Recommend
	return Options{
		Engine: &recommend.Config{
			Weights: recommend.Weights{
				Returning: signalWeights(rc.Weights.Returning),
				NewUser:   signalWeights(rc.Weights.NewUser),
			},
			TopN:          rc.TopN,
			ResultTTL:     rc.ResultTTL,
			BlendNewUsers: rc.BlendNewUsers,
		},
		Rank:        rc.Rank,
		ArtifactTTL: rc.ArtifactTTL,
		Popularity: algorithms.PopularityWeights{
			Rating:    rc.RatingWeight,
			Purchases: rc.FrequencyWeight,
		},
		Pool: pool,
	}
}

func signalWeights(w config.SignalWeights) recommend.SignalWeights {
	return recommend.SignalWeights{
		MF:      w.MF,
		CBF:     w.CBF,
		Popular: w.Popular,
		Time:    w.Time,
		Device:  w.Device,
	}
}

// BuildStats summarize one Build.
type BuildStats struct {
	BuiltAt    time.Time     `json:"built_at"`
	Duration   time.Duration `json:"duration"`
	Users      int           `json:"users"`
	Products   int           `json:"products"`
	Vectorized int           `json:"vectorized"`
	Profiles   int           `json:"profiles"`
	Dimension  int           `json:"dimension"`
	Rank       int           `json:"rank"`
	Popular    int           `json:"popular"`

	// Fingerprint identifies the dataset. DatasetChanged is set when it
	// differed from the one recorded in the cache and derived keys were
	// purged before the build.
	Fingerprint    string `json:"fingerprint"`
	DatasetChanged bool   `json:"dataset_changed"`
}

// Model is one immutable build of the recommender.
type Model struct {
	Engine     *recommend.Engine
	Dataset    *dataset.Dataset
	Vocabulary *features.Vocabulary
	Vectors    map[int][]float64
	Profiles   map[int][]float64

	// Factors is nil when the purchase matrix is too small to factorize.
	Factors    *algorithms.Factors
	Popularity []algorithms.Scored
	Stats      BuildStats
}

// Build derives every artifact of ds and wires them into an engine.
// Cached artifacts are reused only when the dataset fingerprint matches
// the one recorded in store; otherwise every derived key is purged first.
// Products that fail to vectorize are logged and left out of the content
// signal. A purchase matrix too small for a positive rank disables the mf
// signal instead of failing the build.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Build(ctx context.Context, ds *dataset.Dataset, store cache.Store, opts Options, logger zerolog.Logger) (*Model, error) {
	if ds == nil {
		return nil, errors.New("dataset is required")
	}
	if store == nil {
		store = cache.NopStore{}
	}
	pool := opts.Pool
	if pool == nil {
		pool = worker.NewSequential()
	}
	logger = logger.With().Str("component", "pipeline").Logger()
	start := time.Now()

	fingerprint, changed, err := syncFingerprint(ctx, ds, store, opts.ArtifactTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("dataset fingerprint: %w", err)
	}

	vocab := features.NewVocabulary(ds.Products())
	vectors := features.NewVectorizer(vocab, store, opts.ArtifactTTL, logger).
		VectorizeAll(ctx, pool, ds.Products())
	profiles := features.NewProfileBuilder(vocab.Dim(), store, opts.ArtifactTTL, logger).
		BuildAll(ctx, pool, ds.UserIDs(), ds, vectors)

	interactions := algorithms.BuildInteractionMatrix(ds.UserIDs(), ds.ProductIDs(), ds.HasPurchased)
	factors, err := algorithms.NewLatentModel(store, opts.ArtifactTTL, logger).Factors(ctx, interactions, opts.Rank)
	if err != nil {
		if !errors.Is(err, recommend.ErrInvalidRank) {
			return nil, fmt.Errorf("latent factors: %w", err)
		}
		logger.Warn().Err(err).Msg("latent factor signal disabled")
		factors = nil
	}

	popularity := algorithms.ComputePopularity(ds.Products(), ds.Purchases(), opts.Popularity)

	signals := []recommend.Signal{
		algorithms.NewContentSignal(vectors, profiles, ds),
		algorithms.NewPopularSignal(popularity, ds),
		algorithms.NewContextSignal(ds),
		algorithms.NewDeviceSignal(ds),
	}
	if factors != nil {
		signals = append(signals, algorithms.NewLatentSignal(factors, ds))
	}

	engine, err := recommend.NewEngine(opts.Engine, recommend.Dependencies{
		Signals: signals,
		History: ds,
		Store:   store,
		Pool:    pool,
		Clock:   opts.Clock,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build canceled: %w", err)
	}

	users, products := ds.Len()
	stats := BuildStats{
		BuiltAt:    time.Now(),
		Duration:   time.Since(start),
		Users:      users,
		Products:   products,
		Vectorized: len(vectors),
		Profiles:   len(profiles),
		Dimension:  vocab.Dim(),
		Popular:    len(popularity),

		Fingerprint:    fingerprint,
		DatasetChanged: changed,
	}
	if factors != nil {
		stats.Rank = factors.Rank
	}
	metrics.RecordModelBuild(stats.Duration, stats.Vectorized, stats.Profiles)

	logger.Info().
		Int("users", stats.Users).
		Int("products", stats.Products).
		Int("vectorized", stats.Vectorized).
		Int("dimension", stats.Dimension).
		Int("rank", stats.Rank).
		Dur("duration", stats.Duration).
		Msg("model built")

	return &Model{
		Engine:     engine,
		Dataset:    ds,
		Vocabulary: vocab,
		Vectors:    vectors,
		Profiles:   profiles,
		Factors:    factors,
		Popularity: popularity,
		Stats:      stats,
	}, nil
}
