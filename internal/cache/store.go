// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package cache

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

var (
	// ErrNotFound is returned by Get when the key is absent or expired.
	ErrNotFound = errors.New("cache: key not found")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("cache: backend unavailable")

	// ErrCorrupt is returned by GetJSON when a stored payload cannot be decoded.
	ErrCorrupt = errors.New("cache: corrupt payload")
)

// Store is the cache collaborator contract.
//
// Keys patterns use glob syntax with * as the wildcard, the same syntax Redis
// SCAN MATCH accepts.
type Store interface {
	// Get returns the stored bytes, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetWithTTL stores value under key for ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists keys matching pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// GetJSON loads key and decodes it into v. It reports false with a nil
// error on a plain miss.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key for ttl.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.SetWithTTL(ctx, key, data, ttl)
}

// matchPattern reports whether key matches the glob pattern.
func matchPattern(pattern, key string) bool {
	ok, err := path.Match(pattern, key)
	return err == nil && ok
}

// literalPrefix returns the part of pattern before its first glob metacharacter.
func literalPrefix(pattern string) string {
	if i := strings.IndexAny(pattern, `*?[\`); i >= 0 {
		return pattern[:i]
	}
	return pattern
}

// NopStore never stores anything. It backs CACHE_BACKEND=none.
type NopStore struct{}

// Get always misses.
func (NopStore) Get(context.Context, string) ([]byte, error) { return nil, ErrNotFound }

// SetWithTTL drops the value.
func (NopStore) SetWithTTL(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (NopStore) Delete(context.Context, string) error { return nil }

// Keys always returns an empty list.
func (NopStore) Keys(context.Context, string) ([]string, error) { return nil, nil }

// Verify interface implementations at compile time
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*BadgerStore)(nil)
	_ Store = (*ResilientStore)(nil)
	_ Store = NopStore{}
)
