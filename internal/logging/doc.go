// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package logging provides the process-wide zerolog logger for Hybridrec.
//
// A single global logger is configured once at startup with Init and then
// shared. Components take a zerolog.Logger by value and derive a child with
// their own "component" field:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logger := logging.With().Str("component", "pipeline").Logger()
//	logger.Info().Int("products", n).Msg("vectorized catalog")
//
// # Request Scoped Logging
//
// The HTTP layer stores a request ID on the context. Ctx returns a logger
// carrying that ID:
//
//	ctx = logging.ContextWithRequestID(ctx, id)
//	logging.Ctx(ctx).Warn().Err(err).Msg("cache write failed")
//
// # slog Bridge
//
// Libraries that only accept *slog.Logger (suture via sutureslog, watermill)
// are given NewSlogLogger, which forwards every record to zerolog.
//
// # Environment
//
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
package logging
