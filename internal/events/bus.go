// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/logging"
)

// ErrClosed is returned by operations on a closed Bus.
var ErrClosed = errors.New("event bus is closed")

// Handler processes one decoded event.
type Handler func(ctx context.Context, e *Invalidation) error

// Bus publishes and subscribes to invalidation events.
//
// It is a thin layer over watermill's in-process GoChannel pub/sub on the
// TopicInvalidations topic. Publishers stamp each event with an id, the
// request ID found on the context and a UTC timestamp; consumers get the
// decoded Invalidation with that request ID restored on their context.
//
// Messages are acked after the handler runs whether it succeeded or not.
// A failing handler is logged and the event is not redelivered.
//
// Example usage:
//
//	bus := events.NewBus(64, logger)
//	defer bus.Close()
//
//	go bus.Consume(ctx, func(ctx context.Context, e *events.Invalidation) error {
//	    return apply(ctx, e)
//	})
//	id, err := bus.PublishUserInvalidation(ctx, 42)
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewBus creates an in-process bus. buffer sizes each subscriber's output
// channel.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBus(buffer int64, logger zerolog.Logger) *Bus {
	logger = logger.With().Str("component", "events").Logger()
	wmLogger := watermill.NewSlogLogger(slog.New(logging.NewSlogHandlerWithLogger(logger)))
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, wmLogger),
		logger: logger,
		now:    time.Now,
	}
}

// PublishUserInvalidation asks subscribers to clear userID's cached lists
// and returns the event id.
func (b *Bus) PublishUserInvalidation(ctx context.Context, userID int) (string, error) {
	return b.publish(ctx, &Invalidation{Kind: KindUserCache, UserID: userID})
}

// PublishModelRefresh asks subscribers to rebuild the model, optionally
// purging derived cache entries first, and returns the event id.
func (b *Bus) PublishModelRefresh(ctx context.Context, purge bool) (string, error) {
	return b.publish(ctx, &Invalidation{Kind: KindModelRefresh, Purge: purge})
}

func (b *Bus) publish(ctx context.Context, e *Invalidation) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return "", ErrClosed
	}

	e.EventID = uuid.NewString()
	e.RequestID = logging.RequestIDFromContext(ctx)
	e.Timestamp = b.now().UTC()

	data, err := Marshal(e)
	if err != nil {
		return "", err
	}
	msg := message.NewMessage(e.EventID, data)
	msg.Metadata.Set("kind", string(e.Kind))
	if e.RequestID != "" {
		msg.Metadata.Set("request_id", e.RequestID)
	}

	if err := b.pubsub.Publish(TopicInvalidations, msg); err != nil {
		return "", fmt.Errorf("publish %s: %w", e.Kind, err)
	}
	b.logger.Debug().Str("event_id", e.EventID).Str("kind", string(e.Kind)).Msg("event published")
	return e.EventID, nil
}

// Subscribe returns the raw message channel. It is closed when ctx ends or
// the bus closes.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrClosed
	}
	return b.pubsub.Subscribe(ctx, TopicInvalidations)
}

// Consume subscribes and runs h for every event until ctx ends or the bus
// closes. Malformed messages and handler errors are logged and acknowledged.
func (b *Bus) Consume(ctx context.Context, h Handler) error {
	messages, err := b.Subscribe(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.handle(ctx, msg, h)
		}
	}
}

func (b *Bus) handle(ctx context.Context, msg *message.Message, h Handler) {
	defer msg.Ack()

	e, err := Unmarshal(msg.Payload)
	if err != nil {
		b.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed event")
		return
	}
	if e.RequestID != "" {
		ctx = logging.ContextWithRequestID(ctx, e.RequestID)
	}
	if err := h(ctx, e); err != nil {
		b.logger.Error().Err(err).
			Str("event_id", e.EventID).
			Str("kind", string(e.Kind)).
			Msg("event handler failed")
	}
}

// Close stops the bus and closes every subscriber channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}
