// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntity marks malformed catalog data, such as a product whose
	// category or tag is outside the vocabulary.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidRank is returned when the clamped latent rank is not positive.
	ErrInvalidRank = errors.New("invalid latent rank")

	// ErrNoPopularSignal is returned by NewEngine when no popularity signal
	// is wired; new users and the fallback path depend on it.
	ErrNoPopularSignal = errors.New("popularity signal is required")
)

// InvalidEntityError describes which entity field failed.
type InvalidEntityError struct {
	Kind  string
	ID    int
	Field string
	Value string
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("%s: %s %d: %s %q not in vocabulary", ErrInvalidEntity, e.Kind, e.ID, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrInvalidEntity) match.
func (e *InvalidEntityError) Is(target error) bool {
	return target == ErrInvalidEntity
}
