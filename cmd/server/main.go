// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/hybridrec/internal/config"
	"github.com/tomtom215/hybridrec/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The global logger still has its defaults here.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("hybridrec exited with error")
		stop()
		os.Exit(1)
	}
}

// run wires the shared components and dispatches to batch or server mode.
func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.With().Str("service", "hybridrec").Logger()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Server.Enabled {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting hybridrec in server mode")
		return runServer(ctx, a)
	}

	logger.Info().Strs("seasons", cfg.Batch.Seasons).Msg("Starting hybridrec in batch mode")
	return runBatch(ctx, a, os.Stdout)
}
