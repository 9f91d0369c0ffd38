// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/hybridrec/internal/events"
	"github.com/tomtom215/hybridrec/internal/logging"
	"github.com/tomtom215/hybridrec/internal/recommend/pipeline"
)

// EventSource delivers invalidation events. Satisfied by *events.Bus.
type EventSource interface {
	Consume(ctx context.Context, h events.Handler) error
}

// ModelController is the part of *pipeline.Holder the consumer drives.
type ModelController interface {
	ModelRefresher
	ClearUserCache(ctx context.Context, userID int) (int, error)
}

// InvalidationService applies invalidation events to the live model.
//
// The HTTP layer publishes an event for every admin cache request and the
// SIGHUP handler publishes a model refresh. This service is the only
// consumer, so refreshes and user cache clears are applied in publish
// order:
//
//   - user_cache: drops the cached lists of one user
//   - model_refresh: rebuilds the model, purging derived keys first when
//     the event asks for it
//
// A handler error is logged by the bus and the event is dropped; a model
// that is not built yet turns a user cache clear into a no-op.
//
// Example usage:
//
//	bus := events.NewBus(64, logger)
//	svc := services.NewInvalidationService(bus, holder, logger)
//	tree.AddEventService(svc)
type InvalidationService struct {
	source EventSource
	models ModelController
	logger zerolog.Logger
	name   string
}

// NewInvalidationService creates the event consumer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewInvalidationService(source EventSource, models ModelController, logger zerolog.Logger) *InvalidationService {
	return &InvalidationService{
		source: source,
		models: models,
		logger: logger.With().Str("service", "invalidations").Logger(),
		name:   "invalidation-consumer",
	}
}

// Serve implements suture.Service. A closed bus ends the service for good.
func (s *InvalidationService) Serve(ctx context.Context) error {
	s.logger.Info().Msg("invalidation consumer starting")
	err := s.source.Consume(ctx, s.Handle)
	switch {
	case err == nil, errors.Is(err, events.ErrClosed):
		s.logger.Info().Msg("event bus closed, invalidation consumer done")
		return suture.ErrDoNotRestart
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("consume invalidations: %w", err)
	}
}

// Handle applies one event.
func (s *InvalidationService) Handle(ctx context.Context, e *events.Invalidation) error {
	lc := s.logger.With().Str("event_id", e.EventID).Str("kind", string(e.Kind))
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	logger := lc.Logger()

	switch e.Kind {
	case events.KindUserCache:
		removed, err := s.models.ClearUserCache(ctx, e.UserID)
		if err != nil {
			if errors.Is(err, pipeline.ErrNotReady) {
				logger.Debug().Int("user_id", e.UserID).Msg("no model yet, nothing to clear")
				return nil
			}
			return fmt.Errorf("clear cache for user %d: %w", e.UserID, err)
		}
		logger.Info().Int("user_id", e.UserID).Int("removed", removed).Msg("user cache cleared")
		return nil

	case events.KindModelRefresh:
		if _, err := s.models.Refresh(ctx, e.Purge); err != nil {
			return fmt.Errorf("refresh model: %w", err)
		}
		logger.Info().Bool("purge", e.Purge).Msg("model refreshed from event")
		return nil

	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *InvalidationService) String() string {
	return s.name
}
