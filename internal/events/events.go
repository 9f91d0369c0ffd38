// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// TopicInvalidations carries every Invalidation.
const TopicInvalidations = "hybridrec.invalidations"

// Kind says what an Invalidation asks for.
type Kind string

const (
	// KindUserCache clears the cached lists of one user.
	KindUserCache Kind = "user_cache"
	// KindModelRefresh rebuilds the model.
	KindModelRefresh Kind = "model_refresh"
)

// Invalidation is the payload of every event on TopicInvalidations.
type Invalidation struct {
	EventID   string    `json:"event_id"`
	Kind      Kind      `json:"kind"`
	UserID    int       `json:"user_id,omitempty"`
	Purge     bool      `json:"purge,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks required fields for the event kind.
func (e *Invalidation) Validate() error {
	if e.EventID == "" {
		return errors.New("event_id is required")
	}
	switch e.Kind {
	case KindUserCache:
		if e.UserID <= 0 {
			return fmt.Errorf("user_cache event needs a positive user_id, got %d", e.UserID)
		}
	case KindModelRefresh:
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	return nil
}

// Marshal validates and encodes an event.
func Marshal(e *Invalidation) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates an event.
func Unmarshal(data []byte) (*Invalidation, error) {
	var e Invalidation
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return &e, nil
}
